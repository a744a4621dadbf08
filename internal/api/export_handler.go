package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/studydeck/backend/internal/domain/quizsession"
	"github.com/studydeck/backend/internal/id"
)

// ── Request / Response types ────────────────────────────────────────────────

type ExportQuestion struct {
	Topic         string   `json:"topic"`
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
}

type ExportData struct {
	Version    string           `json:"version"`
	ExportedAt string           `json:"exported_at"`
	Questions  []ExportQuestion `json:"questions"`
}

func (d *ExportData) Validate() error {
	if len(d.Questions) == 0 {
		return errors.New("no questions to restore")
	}
	for _, q := range d.Questions {
		if q.Topic == "" || q.Prompt == "" || len(q.Options) < 2 {
			return errors.New("every question needs a topic, a prompt, and at least two options")
		}
		if q.CorrectOption < 0 || q.CorrectOption >= len(q.Options) {
			return errors.New("correct_option out of range")
		}
	}
	return nil
}

type RestoreResult struct {
	QuestionsCreated int `json:"questions_created"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// exportAll dumps the whole catalog as a downloadable JSON document.
// @Summary      Export the catalog
// @Tags         Backup
// @Produce      json
// @Success      200  {object}  ExportData
// @Failure      500  {object}  map[string]string
// @Router       /export [get]
func (h *Handler) exportAll(w http.ResponseWriter, r *http.Request) {
	questions, err := h.store.ReadAll(quizsession.TopicAny)
	if h.handleStoreError(w, err, "questions") {
		return
	}

	exportData := ExportData{
		Version:    "1.0",
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Questions:  make([]ExportQuestion, len(questions)),
	}
	for i, q := range questions {
		exportData.Questions[i] = ExportQuestion{
			Topic:         q.Topic,
			Prompt:        q.Prompt,
			Options:       q.Options,
			CorrectOption: q.CorrectOption,
		}
	}

	w.Header().Set("Content-Disposition", "attachment; filename=studydeck-export.json")
	respondJSON(w, http.StatusOK, exportData)
}

// restore loads an exported document back into the catalog as new rows.
// @Summary      Restore an export
// @Tags         Backup
// @Accept       json
// @Produce      json
// @Param        body  body      ExportData  true  "Previously exported catalog"
// @Success      201   {object}  RestoreResult
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /restore [post]
func (h *Handler) restore(w http.ResponseWriter, r *http.Request) {
	var data ExportData
	if !decodeAndValidate(w, r, &data) {
		return
	}

	batch := make(map[string]quizsession.Question, len(data.Questions))
	for _, q := range data.Questions {
		qid := id.New("q")
		batch[qid] = quizsession.Question{
			ID:            qid,
			Topic:         q.Topic,
			Prompt:        q.Prompt,
			Options:       q.Options,
			CorrectOption: q.CorrectOption,
		}
	}

	if err := h.store.UpsertMany(batch); err != nil {
		h.logger.Error("restore failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to restore questions")
		return
	}

	respondJSON(w, http.StatusCreated, RestoreResult{QuestionsCreated: len(batch)})
}
