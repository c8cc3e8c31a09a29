// Package retrieval implements staged passage retrieval over raw web search
// results: parallel text extraction, an optional lexical prefilter for large
// result sets, dense embedding similarity, and an optional cross-encoder
// reranking pass. An alternate backend retrieves from a persistent vector
// index instead, behind the same interface.
package retrieval

import "time"

// Config holds the tuning knobs for the staged retriever.
type Config struct {
	// ExtractWorkers bounds parallel HTML extraction tasks.
	ExtractWorkers int
	// ExtractTimeout is the per-result extraction budget. A task that
	// exceeds it is abandoned and contributes an empty document.
	ExtractTimeout time.Duration

	// PrefilterThreshold is the result count above which the lexical
	// prefilter runs.
	PrefilterThreshold int
	PrefilterChunkSize int
	PrefilterOverlap   int
	PrefilterTop       int

	DenseChunkSize int
	DenseOverlap   int
	// TopK is how many chunks dense retrieval keeps.
	TopK int

	RerankEnabled bool
	RerankTimeout time.Duration
	// TopN is the final passage count after reranking.
	TopN int
}

// DefaultConfig returns the standard stage parameters.
func DefaultConfig() Config {
	return Config{
		ExtractWorkers:     8,
		ExtractTimeout:     20 * time.Second,
		PrefilterThreshold: 5,
		PrefilterChunkSize: 1024,
		PrefilterOverlap:   20,
		PrefilterTop:       50,
		DenseChunkSize:     256,
		DenseOverlap:       20,
		TopK:               10,
		RerankEnabled:      true,
		RerankTimeout:      30 * time.Second,
		TopN:               5,
	}
}
