package dataset

import (
	"encoding/json"
	"fmt"
	"os"
)

// Prediction is one output line of a batch run.
type Prediction struct {
	InteractionID string `json:"interaction_id"`
	Query         string `json:"query"`
	Prediction    string `json:"prediction"`
	// Answer carries the gold answer through for scoring, when known.
	Answer string `json:"answer,omitempty"`
}

// PredictionWriter appends prediction lines to a jsonl file.
type PredictionWriter struct {
	f       *os.File
	encoder *json.Encoder
}

// NewPredictionWriter creates (or truncates) the output file.
func NewPredictionWriter(path string) (*PredictionWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create predictions file: %w", err)
	}
	return &PredictionWriter{f: f, encoder: json.NewEncoder(f)}, nil
}

// NewPredictionAppender opens the output file for appending, for resumed
// runs that continue a partial output.
func NewPredictionAppender(path string) (*PredictionWriter, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open predictions file: %w", err)
	}
	return &PredictionWriter{f: f, encoder: json.NewEncoder(f)}, nil
}

// Write appends one prediction line.
func (w *PredictionWriter) Write(p Prediction) error {
	if err := w.encoder.Encode(p); err != nil {
		return fmt.Errorf("failed to write prediction: %w", err)
	}
	return nil
}

// Close flushes and closes the output file.
func (w *PredictionWriter) Close() error {
	return w.f.Close()
}
