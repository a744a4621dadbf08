// internal/service/session.go
package service

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/studydeck/backend/internal/domain/quizsession"
	"github.com/studydeck/backend/internal/domain/streak"
	"github.com/studydeck/backend/internal/store"
)

// Answer is one submitted response from a completed session.
type Answer struct {
	QuestionID     string
	SelectedOption int
}

// AnswerResult is the graded outcome for one answer.
type AnswerResult struct {
	QuestionID    string
	Correct       bool
	CorrectOption int
}

// SessionSummary is what a finished session reports back.
type SessionSummary struct {
	SessionID    string
	Total        int
	CorrectCount int
	Results      []AnswerResult
	StreakLength int
	StreakStatus streak.Status
}

// SessionService wires the pure selection engine to the store: it
// materializes the snapshot, runs the Selector, persists the session,
// and on completion writes attempt counters back in one bulk upsert.
type SessionService struct {
	store    store.Store
	selector *quizsession.Selector
	logger   *slog.Logger

	// The selector's rand source is not safe for concurrent use.
	mu sync.Mutex
}

// NewSessionService creates a SessionService around the given selector.
func NewSessionService(s store.Store, selector *quizsession.Selector, logger *slog.Logger) *SessionService {
	return &SessionService{
		store:    s,
		selector: selector,
		logger:   logger,
	}
}

// Start selects questions for a new session and persists it. It returns
// the session plus the full records for the selected IDs, in session
// order, so the caller can present them without another store round trip.
func (ss *SessionService) Start(req quizsession.Request) (*quizsession.Session, []quizsession.Question, error) {
	snapshot, err := ss.store.ReadAll(req.Topic)
	if err != nil {
		return nil, nil, fmt.Errorf("read snapshot: %w", err)
	}

	ss.mu.Lock()
	ids := ss.selector.Select(snapshot, req)
	ss.mu.Unlock()

	session := quizsession.NewSession(req.Topic, req.Mode, ids)
	if err := ss.store.SaveSession(session); err != nil {
		return nil, nil, fmt.Errorf("save session: %w", err)
	}

	byID := make(map[string]quizsession.Question, len(snapshot))
	for _, q := range snapshot {
		byID[q.ID] = q
	}
	records := make([]quizsession.Question, 0, len(ids))
	for _, id := range ids {
		records = append(records, byID[id])
	}

	ss.logger.Info("session started",
		"session_id", session.ID,
		"mode", string(req.Mode),
		"topic", req.Topic,
		"questions", len(ids),
	)
	return session, records, nil
}

// Complete grades the submitted answers, bumps attempt counters for every
// answered question in a single transaction, and advances the streak.
// Answers for questions outside the session are ignored.
func (ss *SessionService) Complete(sessionID string, answers []Answer) (*SessionSummary, error) {
	session, err := ss.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	inSession := make(map[string]bool, len(session.QuestionIDs))
	for _, id := range session.QuestionIDs {
		inSession[id] = true
	}

	now := time.Now().UTC()
	delta := make(map[string]quizsession.Question)
	var results []AnswerResult
	correctCount := 0

	for _, a := range answers {
		if !inSession[a.QuestionID] {
			ss.logger.Warn("answer for question outside session",
				"session_id", sessionID,
				"question_id", a.QuestionID,
			)
			continue
		}

		q, err := ss.store.GetQuestion(a.QuestionID)
		if err != nil {
			return nil, fmt.Errorf("load question %s: %w", a.QuestionID, err)
		}

		correct := q.IsValidOption(a.SelectedOption) && q.IsCorrect(a.SelectedOption)
		if correct {
			correctCount++
		}
		results = append(results, AnswerResult{
			QuestionID:    q.ID,
			Correct:       correct,
			CorrectOption: q.CorrectOption,
		})

		q.TimesAttempted++
		q.LastAttemptedAt = &now
		delta[q.ID] = *q
	}

	if err := ss.store.UpsertMany(delta); err != nil {
		return nil, fmt.Errorf("update attempt counters: %w", err)
	}

	current, err := ss.store.GetStreak()
	if err != nil {
		return nil, fmt.Errorf("load streak: %w", err)
	}
	advanced := streak.Advance(current, now)
	if err := ss.store.PutStreak(advanced); err != nil {
		return nil, fmt.Errorf("save streak: %w", err)
	}

	ss.logger.Info("session completed",
		"session_id", sessionID,
		"answered", len(results),
		"correct", correctCount,
		"streak", advanced.Length,
	)

	return &SessionSummary{
		SessionID:    sessionID,
		Total:        len(session.QuestionIDs),
		CorrectCount: correctCount,
		Results:      results,
		StreakLength: advanced.Length,
		StreakStatus: streak.Classify(advanced.LastStudyAt, now),
	}, nil
}
