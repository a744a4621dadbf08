// internal/store/sqlite.go
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/studydeck/backend/internal/domain/quizsession"
	"github.com/studydeck/backend/internal/domain/streak"
)

const schema = `
CREATE TABLE IF NOT EXISTS questions (
    id TEXT PRIMARY KEY,
    topic TEXT NOT NULL,
    prompt TEXT NOT NULL,
    options TEXT NOT NULL,
    correct_option INTEGER NOT NULL,
    times_attempted INTEGER NOT NULL DEFAULT 0,
    last_attempted_at TEXT
);

CREATE INDEX IF NOT EXISTS idx_questions_topic ON questions(topic);

CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,
    topic TEXT NOT NULL,
    mode TEXT NOT NULL,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS session_questions (
    session_id TEXT NOT NULL,
    question_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (session_id, question_id),
    FOREIGN KEY (session_id) REFERENCES sessions(id)
);

CREATE TABLE IF NOT EXISTS profile (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    streak_length INTEGER NOT NULL DEFAULT 0,
    last_study_at TEXT
);

CREATE TABLE IF NOT EXISTS import_jobs (
    id TEXT PRIMARY KEY,
    source_path TEXT NOT NULL,
    topic TEXT NOT NULL,
    status TEXT NOT NULL,
    questions_added INTEGER NOT NULL DEFAULT 0,
    error TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);
`

// SQLiteStore persists everything through a single sqlite database file.
// Timestamps are stored as RFC 3339 text so NULLs round-trip cleanly.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ============================================================================
// Questions
// ============================================================================

func (s *SQLiteStore) SaveQuestion(q *quizsession.Question) error {
	options, err := json.Marshal(q.Options)
	if err != nil {
		return fmt.Errorf("marshal options: %w", err)
	}

	_, err = s.db.Exec(
		"INSERT INTO questions (id, topic, prompt, options, correct_option, times_attempted, last_attempted_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		q.ID, q.Topic, q.Prompt, string(options), q.CorrectOption, q.TimesAttempted, formatTime(q.LastAttemptedAt),
	)
	return err
}

func (s *SQLiteStore) GetQuestion(id string) (*quizsession.Question, error) {
	row := s.db.QueryRow(
		"SELECT id, topic, prompt, options, correct_option, times_attempted, last_attempted_at FROM questions WHERE id = ?",
		id,
	)

	q, err := scanQuestion(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

// ReadAll materializes the snapshot the selection engine runs over.
// rowid order is the insertion order, which is exactly what sequential
// mode must preserve.
func (s *SQLiteStore) ReadAll(topic string) ([]quizsession.Question, error) {
	query := "SELECT id, topic, prompt, options, correct_option, times_attempted, last_attempted_at FROM questions ORDER BY rowid"
	args := []any{}
	if topic != "" && topic != quizsession.TopicAny {
		query = "SELECT id, topic, prompt, options, correct_option, times_attempted, last_attempted_at FROM questions WHERE topic = ? ORDER BY rowid"
		args = append(args, topic)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []quizsession.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *q)
	}
	return questions, rows.Err()
}

func (s *SQLiteStore) DeleteQuestion(id string) error {
	result, err := s.db.Exec("DELETE FROM questions WHERE id = ?", id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) ListTopics() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT topic FROM questions ORDER BY topic")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var topics []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

// UpsertMany writes all records in a single transaction. One commit per
// completed session, not one per answered question.
func (s *SQLiteStore) UpsertMany(questions map[string]quizsession.Question) error {
	if len(questions) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO questions (id, topic, prompt, options, correct_option, times_attempted, last_attempted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			topic = excluded.topic,
			prompt = excluded.prompt,
			options = excluded.options,
			correct_option = excluded.correct_option,
			times_attempted = excluded.times_attempted,
			last_attempted_at = excluded.last_attempted_at
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, q := range questions {
		options, err := json.Marshal(q.Options)
		if err != nil {
			return fmt.Errorf("marshal options for %s: %w", q.ID, err)
		}
		if _, err := stmt.Exec(
			q.ID, q.Topic, q.Prompt, string(options), q.CorrectOption, q.TimesAttempted, formatTime(q.LastAttemptedAt),
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ============================================================================
// Sessions
// ============================================================================

func (s *SQLiteStore) SaveSession(session *quizsession.Session) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO sessions (id, topic, mode, created_at) VALUES (?, ?, ?, ?)",
		session.ID, session.Topic, string(session.Mode), session.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}

	for i, qid := range session.QuestionIDs {
		_, err = tx.Exec(
			"INSERT INTO session_questions (session_id, question_id, position) VALUES (?, ?, ?)",
			session.ID, qid, i,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetSession(id string) (*quizsession.Session, error) {
	var session quizsession.Session
	var mode, createdAt string

	err := s.db.QueryRow("SELECT id, topic, mode, created_at FROM sessions WHERE id = ?", id).
		Scan(&session.ID, &session.Topic, &mode, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	session.Mode = quizsession.Mode(mode)
	session.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse session created_at: %w", err)
	}

	rows, err := s.db.Query(
		"SELECT question_id FROM session_questions WHERE session_id = ? ORDER BY position",
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var qid string
		if err := rows.Scan(&qid); err != nil {
			return nil, err
		}
		session.QuestionIDs = append(session.QuestionIDs, qid)
	}

	return &session, rows.Err()
}

// ============================================================================
// Streak
// ============================================================================

func (s *SQLiteStore) GetStreak() (streak.Streak, error) {
	var length int
	var lastStudy sql.NullString

	err := s.db.QueryRow("SELECT streak_length, last_study_at FROM profile WHERE id = 1").
		Scan(&length, &lastStudy)
	if err == sql.ErrNoRows {
		// No profile row yet means no study history.
		return streak.Streak{}, nil
	}
	if err != nil {
		return streak.Streak{}, err
	}

	last, err := parseTime(lastStudy)
	if err != nil {
		return streak.Streak{}, err
	}
	return streak.Streak{Length: length, LastStudyAt: last}, nil
}

func (s *SQLiteStore) PutStreak(st streak.Streak) error {
	_, err := s.db.Exec(`
		INSERT INTO profile (id, streak_length, last_study_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			streak_length = excluded.streak_length,
			last_study_at = excluded.last_study_at
	`, st.Length, formatTime(st.LastStudyAt))
	return err
}

// ============================================================================
// Import jobs
// ============================================================================

func (s *SQLiteStore) SaveImportJob(job *ImportJob) error {
	_, err := s.db.Exec(
		"INSERT INTO import_jobs (id, source_path, topic, status, questions_added, error, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		job.ID, job.SourcePath, job.Topic, string(job.Status), job.QuestionsAdded, job.Error, job.CreatedAt.Format(time.RFC3339Nano),
	)
	return err
}

func (s *SQLiteStore) GetImportJob(id string) (*ImportJob, error) {
	var job ImportJob
	var status, createdAt string

	err := s.db.QueryRow(
		"SELECT id, source_path, topic, status, questions_added, error, created_at FROM import_jobs WHERE id = ?",
		id,
	).Scan(&job.ID, &job.SourcePath, &job.Topic, &status, &job.QuestionsAdded, &job.Error, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	job.Status = ImportStatus(status)
	job.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse job created_at: %w", err)
	}
	return &job, nil
}

func (s *SQLiteStore) UpdateImportJob(job *ImportJob) error {
	result, err := s.db.Exec(
		"UPDATE import_jobs SET status = ?, questions_added = ?, error = ? WHERE id = ?",
		string(job.Status), job.QuestionsAdded, job.Error, job.ID,
	)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ============================================================================
// Helpers
// ============================================================================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (*quizsession.Question, error) {
	var q quizsession.Question
	var options string
	var lastAttempted sql.NullString

	err := row.Scan(&q.ID, &q.Topic, &q.Prompt, &options, &q.CorrectOption, &q.TimesAttempted, &lastAttempted)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(options), &q.Options); err != nil {
		return nil, fmt.Errorf("unmarshal options for %s: %w", q.ID, err)
	}

	q.LastAttemptedAt, err = parseTime(lastAttempted)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func formatTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339Nano)
}

func parseTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s.String)
	if err != nil {
		return nil, fmt.Errorf("parse timestamp %q: %w", s.String, err)
	}
	return &t, nil
}
