package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"rag-pipeline/internal/domain"
)

// IndexRetriever serves passages from a pre-populated persistent vector
// index, partitioned by interaction ID. It ignores the raw search results
// entirely; extraction and chunking happened offline.
type IndexRetriever struct {
	repo     domain.ChunkRepository
	encoder  domain.VectorEncoder
	reranker domain.Reranker
	cfg      Config
	logger   *slog.Logger
}

// NewIndexRetriever builds the index-backed retriever.
func NewIndexRetriever(repo domain.ChunkRepository, encoder domain.VectorEncoder, reranker domain.Reranker, cfg Config, logger *slog.Logger) *IndexRetriever {
	return &IndexRetriever{
		repo:     repo,
		encoder:  encoder,
		reranker: reranker,
		cfg:      cfg,
		logger:   logger,
	}
}

// Retrieve embeds the query and searches the interaction's partition of the
// index. The results slice is unused; it exists to satisfy the shared
// retriever contract.
func (r *IndexRetriever) Retrieve(ctx context.Context, query, interactionID string, _ []domain.SearchResult) ([]string, error) {
	start := time.Now()

	vectors, err := r.encoder.Encode(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("no embedding returned for query")
	}

	hits, err := r.repo.SearchWithinInteraction(ctx, vectors[0], interactionID, r.cfg.TopK)
	if err != nil {
		return nil, fmt.Errorf("failed to search chunk index: %w", err)
	}

	passages := make([]string, 0, len(hits))
	for _, hit := range hits {
		passages = append(passages, hit.Chunk.Content)
	}
	passages = RerankPassages(ctx, r.reranker, query, passages, r.cfg, r.logger)

	r.logger.Info("indexed_passages_retrieved",
		slog.String("interaction_id", interactionID),
		slog.Int("hit_count", len(hits)),
		slog.Int("passage_count", len(passages)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	return passages, nil
}
