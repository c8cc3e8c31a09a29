package retrieval

import (
	"context"
	"log/slog"
	"time"

	"rag-pipeline/internal/domain"
	"rag-pipeline/internal/htmlextract"

	"golang.org/x/sync/errgroup"
)

// ExtractDocuments converts each search result's raw page into plain text on
// a bounded worker pool. Output is positional: documents[i] corresponds to
// results[i], with the page snippets appended afterwards as independent
// documents. A task that fails or exceeds the per-task timeout yields an
// empty document; the batch never aborts.
func ExtractDocuments(
	ctx context.Context,
	results []domain.SearchResult,
	cfg Config,
	logger *slog.Logger,
) []string {
	documents := make([]string, len(results), len(results)*2)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.ExtractWorkers)
	for i := range results {
		g.Go(func() error {
			start := time.Now()
			text, ok := extractOne(gctx, results[i].PageResult, cfg.ExtractTimeout)
			if !ok {
				logger.Warn("extraction_timed_out",
					slog.String("url", results[i].PageURL),
					slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			}
			documents[i] = text
			return nil
		})
	}
	// Workers only return nil; Wait is for completion, not errors.
	_ = g.Wait()

	for _, r := range results {
		documents = append(documents, r.PageSnippet)
	}
	return documents
}

// extractOne runs extraction with a hard deadline. The extractor itself is
// not cancellable, so a slow page is abandoned to the runtime rather than
// blocking the pool slot's caller.
func extractOne(ctx context.Context, raw string, timeout time.Duration) (string, bool) {
	done := make(chan string, 1)
	go func() {
		done <- htmlextract.Text(raw)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case text := <-done:
		return text, true
	case <-timer.C:
		return "", false
	case <-ctx.Done():
		return "", false
	}
}
