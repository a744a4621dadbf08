package quizsession

import (
	"time"

	"github.com/google/uuid"
)

// Session is one sitting of a quiz: the ordered question IDs produced by
// the Selector, frozen at creation time. Resolving IDs back to full
// records for display is the presentation layer's job.
type Session struct {
	ID          string
	Topic       string
	Mode        Mode
	QuestionIDs []string
	CreatedAt   time.Time
}

// NewSession freezes a selection result into a Session.
func NewSession(topic string, mode Mode, questionIDs []string) *Session {
	return &Session{
		ID:          uuid.NewString(),
		Topic:       topic,
		Mode:        mode,
		QuestionIDs: questionIDs,
		CreatedAt:   time.Now().UTC(),
	}
}
