package retrieval

import (
	"context"
	"log/slog"
	"time"

	"rag-pipeline/internal/domain"
)

// StagedRetriever is the default PassageRetriever: it extracts text from the
// supplied raw search results on every call and runs the lexical, dense, and
// rerank stages in sequence.
type StagedRetriever struct {
	encoder  domain.VectorEncoder
	reranker domain.Reranker
	cfg      Config
	logger   *slog.Logger
}

// NewStagedRetriever builds the staged retriever. reranker may be nil, in
// which case dense-retrieval order is final.
func NewStagedRetriever(encoder domain.VectorEncoder, reranker domain.Reranker, cfg Config, logger *slog.Logger) *StagedRetriever {
	return &StagedRetriever{
		encoder:  encoder,
		reranker: reranker,
		cfg:      cfg,
		logger:   logger,
	}
}

// Retrieve returns up to TopN passages for the query, most relevant first.
func (r *StagedRetriever) Retrieve(ctx context.Context, query, interactionID string, results []domain.SearchResult) ([]string, error) {
	start := time.Now()
	results = domain.DedupeByURL(results)
	documents := ExtractDocuments(ctx, results, r.cfg, r.logger)

	prefiltered := false
	if len(results) > r.cfg.PrefilterThreshold {
		chunker := domain.TokenChunker{Size: r.cfg.PrefilterChunkSize, Overlap: r.cfg.PrefilterOverlap}
		documents = PrefilterChunks(query, chunker.SplitAll(documents), r.cfg.PrefilterTop)
		prefiltered = true
	}

	chunker := domain.TokenChunker{Size: r.cfg.DenseChunkSize, Overlap: r.cfg.DenseOverlap}
	chunks := chunker.SplitAll(documents)

	top, err := DenseRank(ctx, r.encoder, query, chunks, r.cfg.TopK)
	if err != nil {
		return nil, err
	}

	passages := RerankPassages(ctx, r.reranker, query, top, r.cfg, r.logger)

	r.logger.Info("passages_retrieved",
		slog.String("interaction_id", interactionID),
		slog.Int("result_count", len(results)),
		slog.Bool("prefiltered", prefiltered),
		slog.Int("chunk_count", len(chunks)),
		slog.Int("passage_count", len(passages)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	return passages, nil
}

// ChunksForIndex prepares a query's search results for offline indexing:
// dedupe, extract, and chunk at the dense stage's granularity. The returned
// chunks are ordinal-ordered and ready for embedding and bulk insertion.
func ChunksForIndex(ctx context.Context, results []domain.SearchResult, cfg Config, logger *slog.Logger) []string {
	results = domain.DedupeByURL(results)
	documents := ExtractDocuments(ctx, results, cfg, logger)
	chunker := domain.TokenChunker{Size: cfg.DenseChunkSize, Overlap: cfg.DenseOverlap}

	var chunks []string
	for _, chunk := range chunker.SplitAll(documents) {
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
	}
	return chunks
}
