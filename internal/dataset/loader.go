// Package dataset reads the batch evaluation data: a jsonl file (optionally
// bz2-compressed) of queries with their raw search results, and writes the
// prediction output alongside the gold answers.
package dataset

import (
	"bufio"
	"compress/bzip2"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"rag-pipeline/internal/domain"
)

// Record is one dataset line.
type Record struct {
	InteractionID string                `json:"interaction_id"`
	Query         string                `json:"query"`
	SearchResults []domain.SearchResult `json:"search_results"`
	QueryTime     string                `json:"query_time"`
	// Domain and StaticOrDynamic are annotation labels, present in labeled
	// splits only.
	Domain          string `json:"domain,omitempty"`
	StaticOrDynamic string `json:"static_or_dynamic,omitempty"`
	// Answer is the gold answer, present in labeled splits only.
	Answer string `json:"answer,omitempty"`
}

// Loader streams records from a dataset file in fixed-size batches.
type Loader struct {
	path      string
	batchSize int
	logger    *slog.Logger
}

// NewLoader creates a loader. batchSize below 1 is treated as 1.
func NewLoader(path string, batchSize int, logger *slog.Logger) *Loader {
	if batchSize < 1 {
		batchSize = 1
	}
	return &Loader{path: path, batchSize: batchSize, logger: logger}
}

// Batches reads the file and invokes fn once per batch, in file order. A
// missing or unreadable file is a hard error; a malformed line is skipped
// with a warning. fn returning an error stops the iteration.
func (l *Loader) Batches(fn func(batch []Record) error) error {
	f, err := os.Open(l.path)
	if err != nil {
		return fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var reader io.Reader = f
	if strings.HasSuffix(l.path, ".bz2") {
		reader = bzip2.NewReader(f)
	}

	// Lines carry full page HTML, so they can run to many megabytes.
	buffered := bufio.NewReaderSize(reader, 1<<20)

	var (
		batch   []Record
		lineNum int
	)
	for {
		line, err := readLine(buffered)
		if len(line) > 0 {
			lineNum++
			var rec Record
			if jsonErr := json.Unmarshal(line, &rec); jsonErr != nil {
				l.logger.Warn("skipping_malformed_dataset_line",
					slog.Int("line", lineNum),
					slog.String("error", jsonErr.Error()))
			} else {
				batch = append(batch, rec)
				if len(batch) == l.batchSize {
					if fnErr := fn(batch); fnErr != nil {
						return fnErr
					}
					batch = nil
				}
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read dataset file: %w", err)
		}
	}

	if len(batch) > 0 {
		return fn(batch)
	}
	return nil
}

// readLine reads one full line regardless of length.
func readLine(r *bufio.Reader) ([]byte, error) {
	line, err := r.ReadBytes('\n')
	return trimNewline(line), err
}

func trimNewline(line []byte) []byte {
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line
}
