package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile validation errors.
var (
	ErrMissingDatasetPath = errors.New("dataset_path is required")
	ErrMissingOutputPath  = errors.New("output_path is required")
	ErrInvalidBatchSize   = errors.New("batch_size must be at least 1")
	ErrInvalidBackend     = errors.New("retriever_backend must be 'staged' or 'index'")
)

// Profile describes one batch prediction run: which dataset to read, where to
// write predictions, and which retriever backend to use.
type Profile struct {
	DatasetPath      string `yaml:"dataset_path"`
	OutputPath       string `yaml:"output_path"`
	BatchSize        int    `yaml:"batch_size"`
	Limit            int    `yaml:"limit"`
	RetrieverBackend string `yaml:"retriever_backend"`
	// CheckpointPath enables resumable runs when set.
	CheckpointPath string `yaml:"checkpoint_path"`
}

// LoadProfile reads and validates a run profile YAML file. BatchSize defaults
// to 4 and RetrieverBackend to "staged" when omitted.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile YAML: %w", err)
	}

	if p.BatchSize == 0 {
		p.BatchSize = 4
	}
	if p.RetrieverBackend == "" {
		p.RetrieverBackend = "staged"
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("profile validation failed: %w", err)
	}
	return &p, nil
}

// Validate checks the profile for required fields and legal values.
func (p *Profile) Validate() error {
	if p.DatasetPath == "" {
		return ErrMissingDatasetPath
	}
	if p.OutputPath == "" {
		return ErrMissingOutputPath
	}
	if p.BatchSize < 1 {
		return ErrInvalidBatchSize
	}
	if p.RetrieverBackend != "staged" && p.RetrieverBackend != "index" {
		return ErrInvalidBackend
	}
	return nil
}
