package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"

	"rag-pipeline/internal/domain"
	"rag-pipeline/internal/usecase/retrieval"
)

// IndexUsecase builds the persistent vector index: it extracts and chunks the
// raw search results of one interaction, embeds the chunks, and replaces that
// interaction's partition in one transaction.
type IndexUsecase struct {
	repo    domain.ChunkRepository
	tx      domain.TransactionManager
	encoder domain.VectorEncoder
	cfg     retrieval.Config
	logger  *slog.Logger
}

func NewIndexUsecase(
	repo domain.ChunkRepository,
	tx domain.TransactionManager,
	encoder domain.VectorEncoder,
	cfg retrieval.Config,
	logger *slog.Logger,
) *IndexUsecase {
	return &IndexUsecase{repo: repo, tx: tx, encoder: encoder, cfg: cfg, logger: logger}
}

// Index replaces the chunk partition for one interaction. It returns the
// number of chunks written.
func (u *IndexUsecase) Index(ctx context.Context, interactionID string, results []domain.SearchResult) (int, error) {
	start := time.Now()
	chunks := retrieval.ChunksForIndex(ctx, results, u.cfg, u.logger)
	if len(chunks) == 0 {
		u.logger.Warn("no_chunks_to_index", slog.String("interaction_id", interactionID))
		return 0, nil
	}

	embeddings, err := u.encoder.Encode(ctx, chunks)
	if err != nil {
		return 0, fmt.Errorf("failed to encode chunks: %w", err)
	}
	if len(embeddings) != len(chunks) {
		return 0, fmt.Errorf("encoder returned %d vectors for %d chunks", len(embeddings), len(chunks))
	}

	rows := make([]domain.PassageChunk, len(chunks))
	for i, content := range chunks {
		rows[i] = domain.PassageChunk{
			ID:            uuid.New(),
			InteractionID: interactionID,
			Ordinal:       i,
			Content:       content,
			Embedding:     pgvector.NewVector(embeddings[i]),
		}
	}

	err = u.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := u.repo.DeleteByInteraction(ctx, interactionID); err != nil {
			return err
		}
		return u.repo.BulkInsert(ctx, rows)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to write chunk partition: %w", err)
	}

	u.logger.Info("interaction_indexed",
		slog.String("interaction_id", interactionID),
		slog.Int("chunk_count", len(rows)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	return len(rows), nil
}
