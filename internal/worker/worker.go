// Package worker runs background indexing of answered interactions so
// the vector backend catches up without blocking request handling.
package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"rag-pipeline/internal/domain"
)

const (
	defaultQueueSize = 256
	jobTimeout       = 60 * time.Second
	initialBackoff   = 1 * time.Second
	maxBackoff       = 5 * time.Minute
)

// Indexer persists the chunked search results of one interaction.
// *usecase.IndexUsecase satisfies this.
type Indexer interface {
	Index(ctx context.Context, interactionID string, results []domain.SearchResult) (int, error)
}

type indexJob struct {
	interactionID string
	results       []domain.SearchResult
}

// IndexWorker consumes indexing jobs from an in-process queue one at a
// time. Failures back off exponentially so a dead database does not
// turn into a hot loop.
type IndexWorker struct {
	indexer Indexer
	jobs    chan indexJob
	logger  *slog.Logger

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

func NewIndexWorker(indexer Indexer, queueSize int, logger *slog.Logger) *IndexWorker {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &IndexWorker{
		indexer: indexer,
		jobs:    make(chan indexJob, queueSize),
		logger:  logger,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start launches the consumer goroutine. Call Stop to drain and exit.
func (w *IndexWorker) Start() {
	go w.run()
}

// Stop signals the consumer and waits for the in-flight job to finish.
// Queued jobs that have not started are dropped.
func (w *IndexWorker) Stop() {
	w.stopOnce.Do(func() { close(w.stop) })
	<-w.done
}

// Enqueue hands an interaction to the worker without blocking. It
// returns false when the queue is full, in which case the caller just
// skips indexing for that interaction.
func (w *IndexWorker) Enqueue(interactionID string, results []domain.SearchResult) bool {
	select {
	case w.jobs <- indexJob{interactionID: interactionID, results: results}:
		return true
	default:
		w.logger.Warn("index_queue_full", slog.String("interaction_id", interactionID))
		return false
	}
}

func (w *IndexWorker) run() {
	defer close(w.done)

	backoff := initialBackoff
	for {
		select {
		case <-w.stop:
			return
		case job := <-w.jobs:
			if err := w.process(job); err != nil {
				w.logger.Error("index_job_failed",
					slog.String("interaction_id", job.interactionID),
					slog.String("error", err.Error()),
					slog.Duration("backoff", backoff))
				select {
				case <-w.stop:
					return
				case <-time.After(backoff):
				}
				backoff = nextBackoff(backoff)
				continue
			}
			backoff = initialBackoff
		}
	}
}

func (w *IndexWorker) process(job indexJob) error {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	chunks, err := w.indexer.Index(ctx, job.interactionID, job.results)
	if err != nil {
		return err
	}
	w.logger.Info("interaction_index_queued_done",
		slog.String("interaction_id", job.interactionID),
		slog.Int("chunks", chunks))
	return nil
}

func nextBackoff(current time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}
