package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// PassageChunk is one embedded text chunk in the persistent vector index,
// partitioned by the interaction it was extracted for.
type PassageChunk struct {
	ID            uuid.UUID
	InteractionID string
	Ordinal       int
	Content       string
	Embedding     pgvector.Vector
}

// ChunkSearchResult is one similarity hit from the persistent index.
type ChunkSearchResult struct {
	Chunk PassageChunk
	Score float32
}

// TransactionManager runs a function within one database transaction.
type TransactionManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ChunkRepository stores and searches embedded passage chunks.
type ChunkRepository interface {
	BulkInsert(ctx context.Context, chunks []PassageChunk) error
	// SearchWithinInteraction returns the most similar chunks restricted to one
	// interaction partition, ordered by decreasing similarity.
	SearchWithinInteraction(ctx context.Context, queryVector []float32, interactionID string, limit int) ([]ChunkSearchResult, error)
	DeleteByInteraction(ctx context.Context, interactionID string) error
}
