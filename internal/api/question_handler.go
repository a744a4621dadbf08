package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/studydeck/backend/internal/domain/quizsession"
	"github.com/studydeck/backend/internal/id"
)

// ── Request / Response types ────────────────────────────────────────────────

type AddQuestionRequest struct {
	Topic         string   `json:"topic"`
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
}

func (r *AddQuestionRequest) Validate() error {
	if r.Topic == "" {
		return errors.New("topic is required")
	}
	if r.Topic == quizsession.TopicAny {
		return fmt.Errorf("topic %q is reserved", quizsession.TopicAny)
	}
	if r.Prompt == "" {
		return errors.New("prompt is required")
	}
	if len(r.Options) < 2 {
		return errors.New("at least two options are required")
	}
	if r.CorrectOption < 0 || r.CorrectOption >= len(r.Options) {
		return errors.New("correct_option is out of range")
	}
	return nil
}

type QuestionResponse struct {
	ID              string     `json:"id"`
	Topic           string     `json:"topic"`
	Prompt          string     `json:"prompt"`
	Options         []string   `json:"options"`
	CorrectOption   int        `json:"correct_option"`
	TimesAttempted  int        `json:"times_attempted"`
	LastAttemptedAt *time.Time `json:"last_attempted_at,omitempty"`
}

func toQuestionResponse(q *quizsession.Question) QuestionResponse {
	return QuestionResponse{
		ID:              q.ID,
		Topic:           q.Topic,
		Prompt:          q.Prompt,
		Options:         q.Options,
		CorrectOption:   q.CorrectOption,
		TimesAttempted:  q.TimesAttempted,
		LastAttemptedAt: q.LastAttemptedAt,
	}
}

// ── Handlers ────────────────────────────────────────────────────────────────

// addQuestion adds a single question to the catalog.
// @Summary      Add a question
// @Description  Add a multiple-choice question under a topic.
// @Tags         Questions
// @Accept       json
// @Produce      json
// @Param        body  body      AddQuestionRequest  true  "Question to add"
// @Success      201   {object}  QuestionResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /questions [post]
func (h *Handler) addQuestion(w http.ResponseWriter, r *http.Request) {
	var req AddQuestionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	q := &quizsession.Question{
		ID:            id.New("q"),
		Topic:         req.Topic,
		Prompt:        req.Prompt,
		Options:       req.Options,
		CorrectOption: req.CorrectOption,
	}
	if err := h.store.SaveQuestion(q); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save question")
		return
	}

	respondJSON(w, http.StatusCreated, toQuestionResponse(q))
}

// listQuestions lists the catalog, optionally filtered by topic.
// @Summary      List questions
// @Tags         Questions
// @Produce      json
// @Param        topic  query     string  false  "Filter by topic"
// @Success      200    {array}   QuestionResponse
// @Failure      500    {object}  map[string]string
// @Router       /questions [get]
func (h *Handler) listQuestions(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")

	questions, err := h.store.ReadAll(topic)
	if h.handleStoreError(w, err, "questions") {
		return
	}

	response := make([]QuestionResponse, len(questions))
	for i := range questions {
		response[i] = toQuestionResponse(&questions[i])
	}
	respondJSON(w, http.StatusOK, response)
}

// getQuestion fetches one question by ID.
// @Summary      Get a question
// @Tags         Questions
// @Produce      json
// @Param        questionID  path      string  true  "Question ID"
// @Success      200         {object}  QuestionResponse
// @Failure      404         {object}  map[string]string  "question not found"
// @Failure      500         {object}  map[string]string
// @Router       /questions/{questionID} [get]
func (h *Handler) getQuestion(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("questionID")

	q, err := h.store.GetQuestion(questionID)
	if h.handleStoreError(w, err, "question") {
		return
	}

	respondJSON(w, http.StatusOK, toQuestionResponse(q))
}

// deleteQuestion removes a question from the catalog.
// @Summary      Delete a question
// @Tags         Questions
// @Param        questionID  path  string  true  "Question ID"
// @Success      204         "No Content"
// @Failure      404         {object}  map[string]string  "question not found"
// @Failure      500         {object}  map[string]string
// @Router       /questions/{questionID} [delete]
func (h *Handler) deleteQuestion(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("questionID")

	if h.handleStoreError(w, h.store.DeleteQuestion(questionID), "question") {
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// listTopics lists the distinct topics present in the catalog.
// @Summary      List topics
// @Tags         Questions
// @Produce      json
// @Success      200  {array}   string
// @Failure      500  {object}  map[string]string
// @Router       /topics [get]
func (h *Handler) listTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.store.ListTopics()
	if h.handleStoreError(w, err, "topics") {
		return
	}
	if topics == nil {
		topics = []string{}
	}
	respondJSON(w, http.StatusOK, topics)
}
