package api

import (
	"net/http"
	"time"

	"github.com/studydeck/backend/internal/domain/streak"
)

type StreakResponse struct {
	Length      int           `json:"length"`
	Status      streak.Status `json:"status"`
	LastStudyAt *time.Time    `json:"last_study_at,omitempty"`
}

// getStreak reports the current streak length and its status.
// @Summary      Get the study streak
// @Tags         Streak
// @Produce      json
// @Success      200  {object}  StreakResponse
// @Failure      500  {object}  map[string]string
// @Router       /streak [get]
func (h *Handler) getStreak(w http.ResponseWriter, r *http.Request) {
	st, err := h.store.GetStreak()
	if h.handleStoreError(w, err, "streak") {
		return
	}

	respondJSON(w, http.StatusOK, StreakResponse{
		Length:      st.Length,
		Status:      streak.Classify(st.LastStudyAt, time.Now()),
		LastStudyAt: st.LastStudyAt,
	})
}
