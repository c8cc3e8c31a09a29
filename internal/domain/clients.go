package domain

import "context"

// ChatClient sends a system/user message pair to a chat-completion model and
// returns the assistant text.
type ChatClient interface {
	Chat(ctx context.Context, system, user string) (string, error)
	Version() string
}

// VectorEncoder generates embeddings for a batch of texts. The returned slice
// is positionally aligned with the input.
type VectorEncoder interface {
	Encode(ctx context.Context, texts []string) ([][]float32, error)
	Version() string
}

// RerankCandidate is one document candidate for cross-encoder reranking.
type RerankCandidate struct {
	ID      string
	Content string
	// Score is the first-stage retrieval score, kept for logging and fallback.
	Score float32
}

// RerankResult is a reranked candidate with its cross-encoder relevance score.
type RerankResult struct {
	ID    string
	Score float32
}

// Reranker scores candidates against a query with a cross-encoder model.
// Results come back sorted by score descending. On error, callers fall back
// to the first-stage ordering.
type Reranker interface {
	Rerank(ctx context.Context, query string, candidates []RerankCandidate) ([]RerankResult, error)
	ModelName() string
}

// PassageRetriever returns passages for a query, ordered by decreasing
// relevance. Implementations may extract passages from the supplied raw
// search results or consult a pre-built index keyed by interaction ID;
// callers are agnostic to which backend is active.
type PassageRetriever interface {
	Retrieve(ctx context.Context, query, interactionID string, results []SearchResult) ([]string, error)
}

// ClassifierFunc is an opaque label classifier (domain or volatility routing).
// The classification models themselves live outside this service.
type ClassifierFunc func(ctx context.Context, query string) (string, error)
