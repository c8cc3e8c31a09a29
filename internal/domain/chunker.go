package domain

import "strings"

// TokenChunker splits text into fixed-size windows of whitespace tokens with a
// fixed overlap between consecutive windows. Chunking is deterministic: the
// same input always yields the same chunk sequence.
type TokenChunker struct {
	Size    int
	Overlap int
}

// Split returns the overlapping token windows of text. Text shorter than one
// window is returned as a single chunk; empty text yields no chunks.
func (c TokenChunker) Split(text string) []string {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return nil
	}
	if len(tokens) <= c.Size {
		return []string{strings.Join(tokens, " ")}
	}

	step := c.Size - c.Overlap
	if step < 1 {
		step = 1
	}

	var chunks []string
	for start := 0; start < len(tokens); start += step {
		end := start + c.Size
		if end > len(tokens) {
			end = len(tokens)
		}
		chunks = append(chunks, strings.Join(tokens[start:end], " "))
		if end == len(tokens) {
			break
		}
	}
	return chunks
}

// SplitAll chunks each text and concatenates the results in input order.
func (c TokenChunker) SplitAll(texts []string) []string {
	var chunks []string
	for _, t := range texts {
		chunks = append(chunks, c.Split(t)...)
	}
	return chunks
}
