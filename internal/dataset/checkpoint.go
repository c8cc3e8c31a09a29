package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"
)

const CheckpointVersion = 1

// Checkpoint records how far a batch run has progressed, so an interrupted
// run can resume instead of re-answering from the top of the file.
type Checkpoint struct {
	Version           int       `json:"version"`
	LastInteractionID string    `json:"last_interaction_id"`
	ProcessedCount    int       `json:"processed_count"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// IsEmpty reports whether the checkpoint has no position set.
func (c Checkpoint) IsEmpty() bool {
	return c.ProcessedCount == 0 && c.LastInteractionID == ""
}

// CheckpointManager persists the checkpoint with atomic writes and an
// exclusive file lock, so two runs cannot share one output file.
type CheckpointManager struct {
	filePath string
	lockFile *os.File
}

func NewCheckpointManager(filePath string) *CheckpointManager {
	return &CheckpointManager{filePath: filePath}
}

// Lock acquires an exclusive lock on the checkpoint file. It fails when
// another process already holds it.
func (m *CheckpointManager) Lock() error {
	lockPath := m.filePath + ".lock"
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("failed to open lock file: %w", err)
	}
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		_ = f.Close()
		if errors.Is(err, syscall.EWOULDBLOCK) {
			return fmt.Errorf("checkpoint is locked by another process")
		}
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	m.lockFile = f
	return nil
}

// Unlock releases the lock and removes the lock file.
func (m *CheckpointManager) Unlock() error {
	if m.lockFile == nil {
		return nil
	}
	if err := syscall.Flock(int(m.lockFile.Fd()), syscall.LOCK_UN); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	if err := m.lockFile.Close(); err != nil {
		return fmt.Errorf("failed to close lock file: %w", err)
	}
	m.lockFile = nil
	_ = os.Remove(m.filePath + ".lock")
	return nil
}

// Load reads the checkpoint. A missing or empty file yields a fresh one.
func (m *CheckpointManager) Load() (Checkpoint, error) {
	data, err := os.ReadFile(m.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return Checkpoint{Version: CheckpointVersion}, nil
		}
		return Checkpoint{}, fmt.Errorf("failed to read checkpoint file: %w", err)
	}
	if len(data) == 0 {
		return Checkpoint{Version: CheckpointVersion}, nil
	}

	var cp Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return Checkpoint{}, fmt.Errorf("failed to parse checkpoint file: %w", err)
	}
	if cp.Version == 0 {
		cp.Version = CheckpointVersion
	}
	return cp, nil
}

// Save writes the checkpoint atomically via write-to-temp-then-rename.
func (m *CheckpointManager) Save(cp Checkpoint) error {
	cp.Version = CheckpointVersion
	cp.UpdatedAt = time.Now()

	data, err := json.MarshalIndent(cp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal checkpoint: %w", err)
	}

	tmpPath := m.filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp checkpoint file: %w", err)
	}
	if err := os.Rename(tmpPath, m.filePath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename checkpoint file: %w", err)
	}
	return nil
}

// Reset removes the checkpoint file.
func (m *CheckpointManager) Reset() error {
	if err := os.Remove(m.filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove checkpoint file: %w", err)
	}
	return nil
}
