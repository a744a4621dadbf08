// internal/service/importer.go
package service

import (
	"log/slog"
	"time"

	"github.com/studydeck/backend/internal/domain/quizsession"
	"github.com/studydeck/backend/internal/id"
	"github.com/studydeck/backend/internal/pdfcatalog"
	"github.com/studydeck/backend/internal/store"
	"github.com/studydeck/backend/internal/worker"
)

// ParseFunc extracts questions from a PDF file. Swappable for tests.
type ParseFunc func(path string) ([]pdfcatalog.ParsedQuestion, error)

type importOutcome struct {
	questions []pdfcatalog.ParsedQuestion
	err       error
}

// ImportService runs PDF catalog imports on a worker pool so parsing
// never blocks a request. Each import is tracked as a store.ImportJob
// that callers poll for status.
type ImportService struct {
	store  store.Store
	logger *slog.Logger
	parse  ParseFunc
	pool   *worker.Pool[importOutcome]
	done   chan struct{}
}

// NewImportService creates the service and starts its workers.
func NewImportService(s store.Store, logger *slog.Logger, parse ParseFunc) *ImportService {
	if parse == nil {
		parse = func(path string) ([]pdfcatalog.ParsedQuestion, error) {
			return pdfcatalog.NewParser(path).Parse()
		}
	}

	is := &ImportService{
		store:  s,
		logger: logger,
		parse:  parse,
		pool:   worker.NewPool[importOutcome](2, 8),
		done:   make(chan struct{}),
	}
	go is.collect()
	return is
}

// Submit registers an import job and queues the parse. Returns the job
// in pending state; poll the store for its final status.
func (is *ImportService) Submit(pdfPath, topic string) (*store.ImportJob, error) {
	job := &store.ImportJob{
		ID:         id.New("job"),
		SourcePath: pdfPath,
		Topic:      topic,
		Status:     store.ImportPending,
		CreatedAt:  time.Now().UTC(),
	}
	if err := is.store.SaveImportJob(job); err != nil {
		return nil, err
	}

	is.pool.Submit(job.ID, func() importOutcome {
		running := *job
		running.Status = store.ImportRunning
		if err := is.store.UpdateImportJob(&running); err != nil {
			is.logger.Error("failed to mark job running", "job_id", job.ID, "error", err)
		}

		questions, err := is.parse(pdfPath)
		return importOutcome{questions: questions, err: err}
	})

	return job, nil
}

// collect drains parse results and persists their outcomes.
func (is *ImportService) collect() {
	defer close(is.done)
	for result := range is.pool.Results() {
		is.finalize(result.JobID, result.Output)
	}
}

func (is *ImportService) finalize(jobID string, outcome importOutcome) {
	job, err := is.store.GetImportJob(jobID)
	if err != nil {
		is.logger.Error("import job vanished", "job_id", jobID, "error", err)
		return
	}

	if outcome.err != nil {
		job.Status = store.ImportFailed
		job.Error = outcome.err.Error()
		if err := is.store.UpdateImportJob(job); err != nil {
			is.logger.Error("failed to record import failure", "job_id", jobID, "error", err)
		}
		is.logger.Error("import failed", "job_id", jobID, "error", outcome.err)
		return
	}

	batch := make(map[string]quizsession.Question, len(outcome.questions))
	skipped := 0
	for _, pq := range outcome.questions {
		correct := pq.CorrectIndex()
		if correct < 0 {
			// Catalog omitted the answer marker; unusable as a quiz question.
			skipped++
			continue
		}

		options := make([]string, len(pq.Options))
		for i, o := range pq.Options {
			options[i] = o.Text
		}

		qid := id.New("q")
		batch[qid] = quizsession.Question{
			ID:            qid,
			Topic:         job.Topic,
			Prompt:        pq.Text,
			Options:       options,
			CorrectOption: correct,
		}
	}

	if err := is.store.UpsertMany(batch); err != nil {
		job.Status = store.ImportFailed
		job.Error = err.Error()
		if updateErr := is.store.UpdateImportJob(job); updateErr != nil {
			is.logger.Error("failed to record import failure", "job_id", jobID, "error", updateErr)
		}
		return
	}

	job.Status = store.ImportDone
	job.QuestionsAdded = len(batch)
	if err := is.store.UpdateImportJob(job); err != nil {
		is.logger.Error("failed to record import success", "job_id", jobID, "error", err)
		return
	}

	is.logger.Info("import finished",
		"job_id", jobID,
		"questions_added", len(batch),
		"skipped", skipped,
	)
}

// Close stops accepting imports and waits for in-flight jobs to finish.
func (is *ImportService) Close() {
	is.pool.Close()
	<-is.done
}
