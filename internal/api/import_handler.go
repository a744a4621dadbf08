package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/studydeck/backend/internal/store"
)

// ── Request / Response types ────────────────────────────────────────────────

type StartImportRequest struct {
	Path  string `json:"path"`  // server-local path to the PDF
	Topic string `json:"topic"` // topic assigned to imported questions
}

func (r *StartImportRequest) Validate() error {
	if r.Path == "" {
		return errors.New("path is required")
	}
	if r.Topic == "" {
		return errors.New("topic is required")
	}
	return nil
}

type ImportJobResponse struct {
	ID             string    `json:"id"`
	SourcePath     string    `json:"source_path"`
	Topic          string    `json:"topic"`
	Status         string    `json:"status"`
	QuestionsAdded int       `json:"questions_added"`
	Error          string    `json:"error,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func toImportJobResponse(job *store.ImportJob) ImportJobResponse {
	return ImportJobResponse{
		ID:             job.ID,
		SourcePath:     job.SourcePath,
		Topic:          job.Topic,
		Status:         string(job.Status),
		QuestionsAdded: job.QuestionsAdded,
		Error:          job.Error,
		CreatedAt:      job.CreatedAt,
	}
}

// ── Handlers ────────────────────────────────────────────────────────────────

// startImport queues a PDF catalog import and returns the pending job.
// @Summary      Start a PDF import
// @Description  Parse a server-local PDF into questions under a topic. Runs asynchronously.
// @Tags         Imports
// @Accept       json
// @Produce      json
// @Param        body  body      StartImportRequest  true  "Import to run"
// @Success      202   {object}  ImportJobResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /imports [post]
func (h *Handler) startImport(w http.ResponseWriter, r *http.Request) {
	var req StartImportRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	job, err := h.imports.Submit(req.Path, req.Topic)
	if err != nil {
		h.logger.Error("failed to submit import", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to submit import")
		return
	}

	respondJSON(w, http.StatusAccepted, toImportJobResponse(job))
}

// getImportJob reports the state of a previously submitted import.
// @Summary      Get an import job
// @Tags         Imports
// @Produce      json
// @Param        jobID  path      string  true  "Import job ID"
// @Success      200    {object}  ImportJobResponse
// @Failure      404    {object}  map[string]string  "import job not found"
// @Failure      500    {object}  map[string]string
// @Router       /imports/{jobID} [get]
func (h *Handler) getImportJob(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("jobID")

	job, err := h.store.GetImportJob(jobID)
	if h.handleStoreError(w, err, "import job") {
		return
	}

	respondJSON(w, http.StatusOK, toImportJobResponse(job))
}
