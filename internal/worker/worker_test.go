package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rag-pipeline/internal/domain"
)

type recordingIndexer struct {
	mu      sync.Mutex
	calls   []string
	err     error
	indexed chan string
}

func newRecordingIndexer() *recordingIndexer {
	return &recordingIndexer{indexed: make(chan string, 16)}
}

func (r *recordingIndexer) Index(_ context.Context, interactionID string, _ []domain.SearchResult) (int, error) {
	r.mu.Lock()
	r.calls = append(r.calls, interactionID)
	r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	r.indexed <- interactionID
	return 1, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestIndexWorker_ProcessesEnqueuedJobs(t *testing.T) {
	indexer := newRecordingIndexer()
	w := NewIndexWorker(indexer, 4, discardLogger())
	w.Start()
	defer w.Stop()

	ok := w.Enqueue("itx-1", []domain.SearchResult{{PageURL: "https://example.com"}})
	require.True(t, ok)

	select {
	case id := <-indexer.indexed:
		assert.Equal(t, "itx-1", id)
	case <-time.After(2 * time.Second):
		t.Fatal("job was not processed in time")
	}
}

func TestIndexWorker_EnqueueRejectsWhenQueueFull(t *testing.T) {
	indexer := newRecordingIndexer()
	// Never started, so the queue only drains by capacity.
	w := NewIndexWorker(indexer, 1, discardLogger())

	require.True(t, w.Enqueue("itx-1", nil))
	assert.False(t, w.Enqueue("itx-2", nil))
}

func TestIndexWorker_StopWaitsForConsumer(t *testing.T) {
	indexer := newRecordingIndexer()
	indexer.err = errors.New("db down")
	w := NewIndexWorker(indexer, 4, discardLogger())
	w.Start()

	w.Enqueue("itx-1", nil)

	done := make(chan struct{})
	go func() {
		w.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("Stop did not return")
	}
}

func TestNextBackoff_DoublesUpToCap(t *testing.T) {
	assert.Equal(t, 2*time.Second, nextBackoff(time.Second))
	assert.Equal(t, 4*time.Second, nextBackoff(2*time.Second))
	assert.Equal(t, maxBackoff, nextBackoff(4*time.Minute))
	assert.Equal(t, maxBackoff, nextBackoff(maxBackoff))
}
