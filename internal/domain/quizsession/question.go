package quizsession

import "time"

// TopicAny disables topic filtering when used in a Request.
const TopicAny = "any"

// Question is a read-only snapshot of a stored question. The selection
// engine receives a slice of these and must never mutate them; ownership
// stays with the store that produced the snapshot.
type Question struct {
	ID              string
	Topic           string
	Prompt          string
	Options         []string
	CorrectOption   int
	TimesAttempted  int
	LastAttemptedAt *time.Time
}

// IsCorrect reports whether the chosen option index is the correct one.
func (q *Question) IsCorrect(option int) bool {
	return option == q.CorrectOption
}

// IsValidOption reports whether the chosen option index exists.
func (q *Question) IsValidOption(option int) bool {
	return option >= 0 && option < len(q.Options)
}
