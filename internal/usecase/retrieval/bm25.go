package retrieval

import (
	"math"
	"sort"
	"strings"
)

// BM25 parameters, standard Okapi defaults.
const (
	bm25K1 = 1.2
	bm25B  = 0.75
)

type scoredChunk struct {
	index int
	score float64
}

// PrefilterChunks ranks chunks lexically against the query and keeps the top
// n, preserving the original chunk order among rank ties. With n greater
// than the chunk count all chunks come back, still relevance-ordered.
func PrefilterChunks(query string, chunks []string, n int) []string {
	if len(chunks) == 0 {
		return nil
	}

	queryTerms := tokenize(query)
	docTerms := make([]map[string]int, len(chunks))
	docLengths := make([]float64, len(chunks))
	var totalLength float64
	for i, chunk := range chunks {
		terms := tokenize(chunk)
		freq := make(map[string]int, len(terms))
		for _, t := range terms {
			freq[t]++
		}
		docTerms[i] = freq
		docLengths[i] = float64(len(terms))
		totalLength += docLengths[i]
	}
	avgLength := totalLength / float64(len(chunks))
	if avgLength == 0 {
		avgLength = 1
	}

	// Document frequency per query term.
	docFreq := make(map[string]int, len(queryTerms))
	for _, term := range queryTerms {
		if _, seen := docFreq[term]; seen {
			continue
		}
		for _, freq := range docTerms {
			if freq[term] > 0 {
				docFreq[term]++
			}
		}
	}

	totalDocs := float64(len(chunks))
	scored := make([]scoredChunk, len(chunks))
	for i := range chunks {
		var score float64
		for _, term := range queryTerms {
			tf := float64(docTerms[i][term])
			if tf == 0 {
				continue
			}
			df := float64(docFreq[term])
			idf := math.Log(1 + (totalDocs-df+0.5)/(df+0.5))
			norm := tf * (bm25K1 + 1) / (tf + bm25K1*(1-bm25B+bm25B*docLengths[i]/avgLength))
			score += idf * norm
		}
		scored[i] = scoredChunk{index: i, score: score}
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].score > scored[b].score
	})

	if n > len(scored) {
		n = len(scored)
	}
	kept := make([]string, 0, n)
	for _, s := range scored[:n] {
		kept = append(kept, chunks[s.index])
	}
	return kept
}

func tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}
