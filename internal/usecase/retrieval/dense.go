package retrieval

import (
	"context"
	"fmt"
	"math"
	"sort"

	"rag-pipeline/internal/domain"
)

// DenseRank embeds the query and all chunks with the shared encoder and
// returns the top k chunks by cosine similarity. Ties keep extraction order.
func DenseRank(ctx context.Context, encoder domain.VectorEncoder, query string, chunks []string, k int) ([]string, error) {
	if len(chunks) == 0 {
		return nil, nil
	}

	batch := make([]string, 0, len(chunks)+1)
	batch = append(batch, query)
	batch = append(batch, chunks...)
	vectors, err := encoder.Encode(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query and chunks: %w", err)
	}
	if len(vectors) != len(batch) {
		return nil, fmt.Errorf("encoder returned %d vectors for %d texts", len(vectors), len(batch))
	}

	queryVec := vectors[0]
	scored := make([]scoredChunk, len(chunks))
	for i := range chunks {
		scored[i] = scoredChunk{index: i, score: cosineSimilarity(queryVec, vectors[i+1])}
	}
	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].score > scored[b].score
	})

	if k > len(scored) {
		k = len(scored)
	}
	top := make([]string, 0, k)
	for _, s := range scored[:k] {
		top = append(top, chunks[s.index])
	}
	return top, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
