package repository

import (
	"context"
	"fmt"

	"rag-pipeline/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

type passageChunkRepository struct {
	pool *pgxpool.Pool
}

// NewPassageChunkRepository creates the pgvector-backed chunk store.
func NewPassageChunkRepository(pool *pgxpool.Pool) domain.ChunkRepository {
	return &passageChunkRepository{pool: pool}
}

type dbExecutor interface {
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

func (r *passageChunkRepository) getExecutor(ctx context.Context) dbExecutor {
	tx := ExtractTx(ctx)
	if tx != nil {
		return tx
	}
	return r.pool
}

func (r *passageChunkRepository) BulkInsert(ctx context.Context, chunks []domain.PassageChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	rows := make([][]interface{}, len(chunks))
	for i, chunk := range chunks {
		rows[i] = []interface{}{
			chunk.ID,
			chunk.InteractionID,
			chunk.Ordinal,
			chunk.Content,
			chunk.Embedding,
		}
	}

	_, err := r.getExecutor(ctx).CopyFrom(
		ctx,
		pgx.Identifier{"passage_chunks"},
		[]string{"id", "interaction_id", "ordinal", "content", "embedding"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to bulk insert passage chunks: %w", err)
	}

	return nil
}

func (r *passageChunkRepository) SearchWithinInteraction(ctx context.Context, queryVector []float32, interactionID string, limit int) ([]domain.ChunkSearchResult, error) {
	// Cosine distance; similarity is 1 - distance.
	query := `
		SELECT id, interaction_id, ordinal, content, embedding,
		       1 - (embedding <=> $1) AS score
		FROM passage_chunks
		WHERE interaction_id = $2
		ORDER BY embedding <=> $1
		LIMIT $3
	`
	rows, err := r.getExecutor(ctx).Query(ctx, query, pgvector.NewVector(queryVector), interactionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search passage chunks: %w", err)
	}
	defer rows.Close()

	var results []domain.ChunkSearchResult
	for rows.Next() {
		var res domain.ChunkSearchResult
		if err := rows.Scan(
			&res.Chunk.ID,
			&res.Chunk.InteractionID,
			&res.Chunk.Ordinal,
			&res.Chunk.Content,
			&res.Chunk.Embedding,
			&res.Score,
		); err != nil {
			return nil, fmt.Errorf("failed to scan passage chunk: %w", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return results, nil
}

func (r *passageChunkRepository) DeleteByInteraction(ctx context.Context, interactionID string) error {
	_, err := r.getExecutor(ctx).Exec(ctx, `DELETE FROM passage_chunks WHERE interaction_id = $1`, interactionID)
	if err != nil {
		return fmt.Errorf("failed to delete passage chunks: %w", err)
	}
	return nil
}
