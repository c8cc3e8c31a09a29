package retrieval

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"rag-pipeline/internal/domain"
)

// Limit candidates to prevent reranker timeout on cross-encoder inference.
const maxRerankCandidates = 30

// RerankPassages rescores the dense-retrieval passages with the cross-encoder
// and returns the top n. On reranker failure the dense ordering is kept, so
// the caller always gets up to n passages.
func RerankPassages(
	ctx context.Context,
	reranker domain.Reranker,
	query string,
	passages []string,
	cfg Config,
	logger *slog.Logger,
) []string {
	if len(passages) == 0 {
		return nil
	}
	if !cfg.RerankEnabled || reranker == nil {
		return truncate(passages, cfg.TopN)
	}

	candidates := make([]domain.RerankCandidate, 0, len(passages))
	for i, p := range passages {
		// Dense rank doubles as the fallback score.
		candidates = append(candidates, domain.RerankCandidate{
			ID:      strconv.Itoa(i),
			Content: p,
			Score:   float32(len(passages) - i),
		})
	}
	if len(candidates) > maxRerankCandidates {
		candidates = candidates[:maxRerankCandidates]
	}

	rerankStart := time.Now()
	rerankCtx, cancel := context.WithTimeout(ctx, cfg.RerankTimeout)
	reranked, err := reranker.Rerank(rerankCtx, query, candidates)
	cancel()

	if err != nil {
		logger.Warn("reranking_failed_using_dense_order",
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(rerankStart).Milliseconds()))
		return truncate(passages, cfg.TopN)
	}

	logger.Info("reranking_completed",
		slog.Int("candidate_count", len(candidates)),
		slog.Int("reranked_count", len(reranked)),
		slog.String("model", reranker.ModelName()),
		slog.Int64("duration_ms", time.Since(rerankStart).Milliseconds()))

	scores := make(map[int]float32, len(reranked))
	for _, r := range reranked {
		idx, err := strconv.Atoi(r.ID)
		if err != nil || idx < 0 || idx >= len(passages) {
			continue
		}
		scores[idx] = r.Score
	}

	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	ranked := make([]string, 0, len(order))
	for _, idx := range order {
		ranked = append(ranked, passages[idx])
	}
	return truncate(ranked, cfg.TopN)
}

func truncate(passages []string, n int) []string {
	if n > 0 && len(passages) > n {
		return passages[:n]
	}
	return passages
}
