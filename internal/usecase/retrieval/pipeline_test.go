package retrieval_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rag-pipeline/internal/domain"
	"rag-pipeline/internal/usecase/retrieval"
)

// stubEncoder embeds texts as term-count vectors over a fixed vocabulary so
// cosine similarity is deterministic.
type stubEncoder struct {
	vocabulary []string
}

func (e *stubEncoder) Encode(_ context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		lowered := strings.ToLower(text)
		vec := make([]float32, len(e.vocabulary)+1)
		for j, term := range e.vocabulary {
			vec[j] = float32(strings.Count(lowered, term))
		}
		// Constant tail component so no vector is all zero.
		vec[len(e.vocabulary)] = 0.1
		vectors[i] = vec
	}
	return vectors, nil
}

func (e *stubEncoder) Version() string { return "stub-encoder" }

type failingEncoder struct{}

func (failingEncoder) Encode(context.Context, []string) ([][]float32, error) {
	return nil, fmt.Errorf("embedding service unavailable")
}

func (failingEncoder) Version() string { return "failing-encoder" }

type reversingReranker struct{}

func (reversingReranker) Rerank(_ context.Context, _ string, candidates []domain.RerankCandidate) ([]domain.RerankResult, error) {
	results := make([]domain.RerankResult, 0, len(candidates))
	for i, c := range candidates {
		results = append(results, domain.RerankResult{ID: c.ID, Score: float32(i)})
	}
	return results, nil
}

func (reversingReranker) ModelName() string { return "reversing-reranker" }

type failingReranker struct{}

func (failingReranker) Rerank(context.Context, string, []domain.RerankCandidate) ([]domain.RerankResult, error) {
	return nil, fmt.Errorf("reranker unavailable")
}

func (failingReranker) ModelName() string { return "failing-reranker" }

func testConfig() retrieval.Config {
	cfg := retrieval.DefaultConfig()
	cfg.ExtractWorkers = 2
	cfg.ExtractTimeout = 5 * time.Second
	cfg.RerankEnabled = false
	return cfg
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func searchResults(n int, text func(i int) string) []domain.SearchResult {
	results := make([]domain.SearchResult, 0, n)
	for i := 0; i < n; i++ {
		results = append(results, domain.SearchResult{
			PageURL:    fmt.Sprintf("https://example.com/page-%d", i),
			PageResult: text(i),
		})
	}
	return results
}

func TestStagedRetriever_SmallResultSetSkipsPrefilter(t *testing.T) {
	encoder := &stubEncoder{vocabulary: []string{"apple", "banana"}}
	cfg := testConfig()
	cfg.PrefilterTop = 1
	cfg.TopK = 3
	cfg.TopN = 3
	r := retrieval.NewStagedRetriever(encoder, nil, cfg, testLogger())

	results := searchResults(4, func(i int) string {
		if i == 0 {
			return "apple reported strong quarterly results"
		}
		return fmt.Sprintf("banana shipment report number %d arrived today", i)
	})

	passages, err := r.Retrieve(context.Background(), "apple quarterly results", "interaction-1", results)

	require.NoError(t, err)
	// Four results stay under the threshold, so the 1-chunk lexical cap
	// never applies and dense retrieval sees every document.
	assert.Len(t, passages, 3)
	assert.Contains(t, passages[0], "apple")
}

func TestStagedRetriever_LargeResultSetIsPrefiltered(t *testing.T) {
	encoder := &stubEncoder{vocabulary: []string{"apple", "banana"}}
	cfg := testConfig()
	cfg.PrefilterTop = 1
	cfg.TopK = 5
	cfg.TopN = 5
	r := retrieval.NewStagedRetriever(encoder, nil, cfg, testLogger())

	results := searchResults(12, func(i int) string {
		if i == 7 {
			return "apple reported strong quarterly results"
		}
		return fmt.Sprintf("banana shipment report number %d arrived today", i)
	})

	passages, err := r.Retrieve(context.Background(), "apple quarterly results", "interaction-2", results)

	require.NoError(t, err)
	// Twelve results exceed the threshold: only the single best lexical
	// chunk survives into the dense stage.
	require.Len(t, passages, 1)
	assert.Contains(t, passages[0], "apple reported strong quarterly results")
}

func TestStagedRetriever_DuplicateURLsCollapse(t *testing.T) {
	encoder := &stubEncoder{vocabulary: []string{"apple"}}
	cfg := testConfig()
	cfg.TopK = 10
	cfg.TopN = 10
	r := retrieval.NewStagedRetriever(encoder, nil, cfg, testLogger())

	results := []domain.SearchResult{
		{PageURL: "https://example.com/a", PageResult: "apple earnings beat expectations"},
		{PageURL: "https://example.com/a", PageResult: "apple earnings beat expectations"},
	}

	passages, err := r.Retrieve(context.Background(), "apple earnings", "interaction-3", results)

	require.NoError(t, err)
	assert.Len(t, passages, 1)
}

func TestStagedRetriever_EncoderFailure(t *testing.T) {
	r := retrieval.NewStagedRetriever(failingEncoder{}, nil, testConfig(), testLogger())

	results := searchResults(2, func(i int) string { return "some text" })
	_, err := r.Retrieve(context.Background(), "query", "interaction-4", results)

	assert.Error(t, err)
}

func TestStagedRetriever_RerankReorders(t *testing.T) {
	encoder := &stubEncoder{vocabulary: []string{"apple", "banana", "cherry"}}
	cfg := testConfig()
	cfg.RerankEnabled = true
	cfg.TopK = 3
	cfg.TopN = 2
	r := retrieval.NewStagedRetriever(encoder, reversingReranker{}, cfg, testLogger())

	results := searchResults(3, func(i int) string {
		return []string{
			"apple apple apple news",
			"apple banana news",
			"apple cherry news",
		}[i]
	})

	passages, err := r.Retrieve(context.Background(), "apple", "interaction-5", results)

	require.NoError(t, err)
	require.Len(t, passages, 2)
	// The reranker scores later candidates higher, inverting dense order.
	assert.NotContains(t, passages[0], "apple apple apple")
}

func TestStagedRetriever_RerankFailureFallsBack(t *testing.T) {
	encoder := &stubEncoder{vocabulary: []string{"apple"}}
	cfg := testConfig()
	cfg.RerankEnabled = true
	cfg.TopK = 4
	cfg.TopN = 2
	r := retrieval.NewStagedRetriever(encoder, failingReranker{}, cfg, testLogger())

	results := searchResults(3, func(i int) string {
		return fmt.Sprintf("apple news item %d", i)
	})

	passages, err := r.Retrieve(context.Background(), "apple", "interaction-6", results)

	require.NoError(t, err)
	assert.Len(t, passages, 2)
}

func TestChunksForIndex_DropsEmptyDocuments(t *testing.T) {
	results := []domain.SearchResult{
		{PageURL: "https://example.com/a", PageResult: "apple earnings beat expectations this quarter"},
		{PageURL: "https://example.com/b", PageResult: ""},
	}

	chunks := retrieval.ChunksForIndex(context.Background(), results, testConfig(), testLogger())

	require.Len(t, chunks, 1)
	assert.Contains(t, chunks[0], "apple earnings")
}
