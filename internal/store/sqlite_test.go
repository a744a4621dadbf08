package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studydeck/backend/internal/domain/quizsession"
	"github.com/studydeck/backend/internal/domain/streak"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testQuestion(id, topic string) *quizsession.Question {
	return &quizsession.Question{
		ID:            id,
		Topic:         topic,
		Prompt:        "prompt for " + id,
		Options:       []string{"a", "b", "c", "d"},
		CorrectOption: 1,
	}
}

func TestSaveAndGetQuestion(t *testing.T) {
	s := newTestStore(t)

	q := testQuestion("q1", "go")
	require.NoError(t, s.SaveQuestion(q))

	got, err := s.GetQuestion("q1")
	require.NoError(t, err)
	assert.Equal(t, "q1", got.ID)
	assert.Equal(t, "go", got.Topic)
	assert.Equal(t, []string{"a", "b", "c", "d"}, got.Options)
	assert.Equal(t, 1, got.CorrectOption)
	assert.Zero(t, got.TimesAttempted)
	assert.Nil(t, got.LastAttemptedAt)
}

func TestGetQuestion_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetQuestion("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReadAll_PreservesInsertionOrder(t *testing.T) {
	s := newTestStore(t)

	for _, id := range []string{"q3", "q1", "q2"} {
		require.NoError(t, s.SaveQuestion(testQuestion(id, "go")))
	}

	snapshot, err := s.ReadAll(quizsession.TopicAny)
	require.NoError(t, err)
	require.Len(t, snapshot, 3)
	assert.Equal(t, "q3", snapshot[0].ID)
	assert.Equal(t, "q1", snapshot[1].ID)
	assert.Equal(t, "q2", snapshot[2].ID)
}

func TestReadAll_TopicFilter(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SaveQuestion(testQuestion("q1", "go")))
	require.NoError(t, s.SaveQuestion(testQuestion("q2", "sql")))
	require.NoError(t, s.SaveQuestion(testQuestion("q3", "go")))

	snapshot, err := s.ReadAll("go")
	require.NoError(t, err)
	assert.Len(t, snapshot, 2)

	snapshot, err = s.ReadAll("history")
	require.NoError(t, err)
	assert.Empty(t, snapshot)
}

func TestUpsertMany_UpdatesCountersInOneTransaction(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SaveQuestion(testQuestion("q1", "go")))
	require.NoError(t, s.SaveQuestion(testQuestion("q2", "go")))

	now := time.Now().UTC().Truncate(time.Second)
	q1 := *testQuestion("q1", "go")
	q1.TimesAttempted = 3
	q1.LastAttemptedAt = &now
	q2 := *testQuestion("q2", "go")
	q2.TimesAttempted = 1
	q2.LastAttemptedAt = &now

	err := s.UpsertMany(map[string]quizsession.Question{"q1": q1, "q2": q2})
	require.NoError(t, err)

	got, err := s.GetQuestion("q1")
	require.NoError(t, err)
	assert.Equal(t, 3, got.TimesAttempted)
	require.NotNil(t, got.LastAttemptedAt)
	assert.True(t, got.LastAttemptedAt.Equal(now))
}

func TestUpsertMany_InsertsNewRecords(t *testing.T) {
	s := newTestStore(t)

	err := s.UpsertMany(map[string]quizsession.Question{
		"new": *testQuestion("new", "sql"),
	})
	require.NoError(t, err)

	got, err := s.GetQuestion("new")
	require.NoError(t, err)
	assert.Equal(t, "sql", got.Topic)
}

func TestUpsertMany_EmptyMapIsNoop(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.UpsertMany(nil))
}

func TestListTopics(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SaveQuestion(testQuestion("q1", "go")))
	require.NoError(t, s.SaveQuestion(testQuestion("q2", "sql")))
	require.NoError(t, s.SaveQuestion(testQuestion("q3", "go")))

	topics, err := s.ListTopics()
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "sql"}, topics)
}

func TestDeleteQuestion(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SaveQuestion(testQuestion("q1", "go")))
	require.NoError(t, s.DeleteQuestion("q1"))

	_, err := s.GetQuestion("q1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.DeleteQuestion("q1"), ErrNotFound)
}

func TestSaveAndGetSession_OrderPreserved(t *testing.T) {
	s := newTestStore(t)

	session := quizsession.NewSession("go", quizsession.ModeRandom, []string{"q2", "q1", "q3"})
	require.NoError(t, s.SaveSession(session))

	got, err := s.GetSession(session.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"q2", "q1", "q3"}, got.QuestionIDs)
	assert.Equal(t, quizsession.ModeRandom, got.Mode)
	assert.Equal(t, "go", got.Topic)
}

func TestGetSession_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetSession("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStreakRoundTrip(t *testing.T) {
	s := newTestStore(t)

	// Fresh database: zero-value streak, no error.
	got, err := s.GetStreak()
	require.NoError(t, err)
	assert.Zero(t, got.Length)
	assert.Nil(t, got.LastStudyAt)

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, s.PutStreak(streak.Streak{Length: 7, LastStudyAt: &now}))

	got, err = s.GetStreak()
	require.NoError(t, err)
	assert.Equal(t, 7, got.Length)
	require.NotNil(t, got.LastStudyAt)
	assert.True(t, got.LastStudyAt.Equal(now))

	// Upsert replaces the single profile row.
	require.NoError(t, s.PutStreak(streak.Streak{Length: 8, LastStudyAt: &now}))
	got, err = s.GetStreak()
	require.NoError(t, err)
	assert.Equal(t, 8, got.Length)
}

func TestImportJobLifecycle(t *testing.T) {
	s := newTestStore(t)

	job := &ImportJob{
		ID:         "job_abc",
		SourcePath: "/tmp/catalog.pdf",
		Topic:      "biology",
		Status:     ImportPending,
		CreatedAt:  time.Now().UTC(),
	}
	require.NoError(t, s.SaveImportJob(job))

	job.Status = ImportDone
	job.QuestionsAdded = 42
	require.NoError(t, s.UpdateImportJob(job))

	got, err := s.GetImportJob("job_abc")
	require.NoError(t, err)
	assert.Equal(t, ImportDone, got.Status)
	assert.Equal(t, 42, got.QuestionsAdded)
	assert.Equal(t, "biology", got.Topic)

	assert.ErrorIs(t, s.UpdateImportJob(&ImportJob{ID: "nope"}), ErrNotFound)
	_, err = s.GetImportJob("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
