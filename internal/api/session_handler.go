package api

import (
	"fmt"
	"net/http"

	"github.com/studydeck/backend/internal/domain/quizsession"
	"github.com/studydeck/backend/internal/domain/streak"
	"github.com/studydeck/backend/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateSessionRequest struct {
	Count int    `json:"count"`
	Topic string `json:"topic,omitempty"` // empty or "any" = all topics
	Mode  string `json:"mode"`
}

func (r *CreateSessionRequest) Validate() error {
	// A non-positive count is caller misuse, but the engine answers it
	// with an empty session rather than an error; only an unknown mode
	// is rejected.
	if r.Mode != "" && !quizsession.Mode(r.Mode).Valid() {
		return fmt.Errorf("mode must be one of %s, %s, %s",
			quizsession.ModeSequential, quizsession.ModeRandom, quizsession.ModeUnique)
	}
	return nil
}

type SessionQuestion struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

type CreateSessionResponse struct {
	ID        string            `json:"id"`
	Topic     string            `json:"topic"`
	Mode      string            `json:"mode"`
	Questions []SessionQuestion `json:"questions"`
	// MissingQuestions counts session questions deleted from the catalog
	// after the session was created, so clients can reconcile totals.
	MissingQuestions int `json:"missing_questions,omitempty"`
}

type SubmittedAnswer struct {
	QuestionID     string `json:"question_id"`
	SelectedOption int    `json:"selected_option"`
}

type CompleteSessionRequest struct {
	Answers []SubmittedAnswer `json:"answers"`
}

type AnswerResultResponse struct {
	QuestionID    string `json:"question_id"`
	Correct       bool   `json:"correct"`
	CorrectOption int    `json:"correct_option"`
}

type CompleteSessionResponse struct {
	SessionID    string                 `json:"session_id"`
	Total        int                    `json:"total"`
	CorrectCount int                    `json:"correct_count"`
	Results      []AnswerResultResponse `json:"results"`
	StreakLength int                    `json:"streak_length"`
	StreakStatus streak.Status          `json:"streak_status"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// createSession starts a quiz session from the current catalog.
// @Summary      Create a quiz session
// @Description  Pick questions by mode (sequential, random, or unique) and topic.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        body  body      CreateSessionRequest  true  "Session parameters"
// @Success      201   {object}  CreateSessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /sessions [post]
func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	mode := quizsession.Mode(req.Mode)
	if req.Mode == "" {
		mode = quizsession.ModeSequential
	}
	topic := req.Topic
	if topic == "" {
		topic = quizsession.TopicAny
	}

	session, records, err := h.sessions.Start(quizsession.Request{
		Count: req.Count,
		Topic: topic,
		Mode:  mode,
	})
	if err != nil {
		h.logger.Error("failed to start session", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to start session")
		return
	}

	// The correct option is deliberately absent from session payloads.
	questions := make([]SessionQuestion, len(records))
	for i, q := range records {
		questions[i] = SessionQuestion{
			ID:      q.ID,
			Prompt:  q.Prompt,
			Options: q.Options,
		}
	}

	respondJSON(w, http.StatusCreated, CreateSessionResponse{
		ID:        session.ID,
		Topic:     session.Topic,
		Mode:      string(session.Mode),
		Questions: questions,
	})
}

// getSession fetches an existing session and its surviving questions.
// @Summary      Get a session
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  CreateSessionResponse
// @Failure      404        {object}  map[string]string  "session not found"
// @Failure      500        {object}  map[string]string
// @Router       /sessions/{sessionID} [get]
func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")

	session, err := h.store.GetSession(sessionID)
	if h.handleStoreError(w, err, "session") {
		return
	}

	questions := make([]SessionQuestion, 0, len(session.QuestionIDs))
	missing := 0
	for _, qid := range session.QuestionIDs {
		q, err := h.store.GetQuestion(qid)
		if err != nil {
			// Question deleted since the session was created.
			missing++
			continue
		}
		questions = append(questions, SessionQuestion{
			ID:      q.ID,
			Prompt:  q.Prompt,
			Options: q.Options,
		})
	}

	respondJSON(w, http.StatusOK, CreateSessionResponse{
		ID:               session.ID,
		Topic:            session.Topic,
		Mode:             string(session.Mode),
		Questions:        questions,
		MissingQuestions: missing,
	})
}

// completeSession grades submitted answers and advances the streak.
// @Summary      Complete a session
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string                  true  "Session ID"
// @Param        body       body      CompleteSessionRequest  true  "Submitted answers"
// @Success      200        {object}  CompleteSessionResponse
// @Failure      400        {object}  map[string]string
// @Failure      404        {object}  map[string]string  "session not found"
// @Failure      500        {object}  map[string]string
// @Router       /sessions/{sessionID}/complete [post]
func (h *Handler) completeSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")

	var req CompleteSessionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	answers := make([]service.Answer, len(req.Answers))
	for i, a := range req.Answers {
		answers[i] = service.Answer{
			QuestionID:     a.QuestionID,
			SelectedOption: a.SelectedOption,
		}
	}

	summary, err := h.sessions.Complete(sessionID, answers)
	if h.handleStoreError(w, err, "session") {
		return
	}

	results := make([]AnswerResultResponse, len(summary.Results))
	for i, res := range summary.Results {
		results[i] = AnswerResultResponse{
			QuestionID:    res.QuestionID,
			Correct:       res.Correct,
			CorrectOption: res.CorrectOption,
		}
	}

	respondJSON(w, http.StatusOK, CompleteSessionResponse{
		SessionID:    summary.SessionID,
		Total:        summary.Total,
		CorrectCount: summary.CorrectCount,
		Results:      results,
		StreakLength: summary.StreakLength,
		StreakStatus: summary.StreakStatus,
	})
}
