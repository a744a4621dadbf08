package service_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studydeck/backend/internal/pdfcatalog"
	"github.com/studydeck/backend/internal/service"
	"github.com/studydeck/backend/internal/store"
)

func newImportService(t *testing.T, parse service.ParseFunc) (*service.ImportService, *store.SQLiteStore) {
	t.Helper()
	db, err := store.NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return service.NewImportService(db, slog.New(slog.DiscardHandler), parse), db
}

func TestImport_Success(t *testing.T) {
	parse := func(path string) ([]pdfcatalog.ParsedQuestion, error) {
		return []pdfcatalog.ParsedQuestion{
			{
				Number: 1,
				Text:   "Which keyword declares a constant?",
				Options: []pdfcatalog.Option{
					{Letter: "a", Text: "var"},
					{Letter: "b", Text: "const", Correct: true},
				},
			},
			{
				Number: 2,
				Text:   "No marker in the catalog for this one",
				Options: []pdfcatalog.Option{
					{Letter: "a", Text: "x"},
					{Letter: "b", Text: "y"},
				},
			},
		}, nil
	}

	svc, db := newImportService(t, parse)

	job, err := svc.Submit("/tmp/catalog.pdf", "go")
	require.NoError(t, err)
	assert.Equal(t, store.ImportPending, job.Status)

	// Close drains the pool, so afterwards the job has its final state.
	svc.Close()

	final, err := db.GetImportJob(job.ID)
	require.NoError(t, err)
	assert.Equal(t, store.ImportDone, final.Status)
	assert.Equal(t, 1, final.QuestionsAdded) // unmarked question skipped

	questions, err := db.ReadAll("go")
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "Which keyword declares a constant?", questions[0].Prompt)
	assert.Equal(t, []string{"var", "const"}, questions[0].Options)
	assert.Equal(t, 1, questions[0].CorrectOption)
}

func TestImport_ParseFailure(t *testing.T) {
	parse := func(path string) ([]pdfcatalog.ParsedQuestion, error) {
		return nil, errors.New("pdftotext failed: exit status 1")
	}

	svc, db := newImportService(t, parse)

	job, err := svc.Submit("/tmp/broken.pdf", "go")
	require.NoError(t, err)
	svc.Close()

	final, err := db.GetImportJob(job.ID)
	require.NoError(t, err)
	assert.Equal(t, store.ImportFailed, final.Status)
	assert.Contains(t, final.Error, "pdftotext failed")

	questions, err := db.ReadAll("go")
	require.NoError(t, err)
	assert.Empty(t, questions)
}
