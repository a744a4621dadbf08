package store

import (
	"errors"
	"time"

	"github.com/studydeck/backend/internal/domain/quizsession"
	"github.com/studydeck/backend/internal/domain/streak"
)

var (
	ErrNotFound = errors.New("not found")
)

// ImportJob tracks one background PDF import from submission to outcome.
type ImportJob struct {
	ID             string
	SourcePath     string
	Topic          string
	Status         ImportStatus
	QuestionsAdded int
	Error          string
	CreatedAt      time.Time
}

type ImportStatus string

const (
	ImportPending ImportStatus = "pending"
	ImportRunning ImportStatus = "running"
	ImportDone    ImportStatus = "done"
	ImportFailed  ImportStatus = "failed"
)

// Store is the persistence boundary. The selection engine never touches
// it directly: callers materialize a snapshot with ReadAll, run the
// engine over it, and write attempt counters back with UpsertMany.
type Store interface {
	// Questions
	SaveQuestion(q *quizsession.Question) error
	GetQuestion(id string) (*quizsession.Question, error)
	ReadAll(topic string) ([]quizsession.Question, error)
	DeleteQuestion(id string) error
	ListTopics() ([]string, error)

	// UpsertMany writes every record in one transaction. Post-session
	// counter updates go through here instead of one write per record.
	UpsertMany(questions map[string]quizsession.Question) error

	// Sessions
	SaveSession(s *quizsession.Session) error
	GetSession(id string) (*quizsession.Session, error)

	// Streak
	GetStreak() (streak.Streak, error)
	PutStreak(s streak.Streak) error

	// Import jobs
	SaveImportJob(job *ImportJob) error
	GetImportJob(id string) (*ImportJob, error)
	UpdateImportJob(job *ImportJob) error

	Close() error
}
