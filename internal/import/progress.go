// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package catalogimport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
)

// FileProgress implements ProgressTracker with a JSON file. Writes go to a
// temporary file that is renamed into place, so a crash mid-save leaves
// the previous progress intact.
type FileProgress struct {
	mu   sync.Mutex
	path string
}

// NewFileProgress creates a tracker that stores progress at path.
func NewFileProgress(path string) *FileProgress {
	return &FileProgress{path: path}
}

// Path returns the progress file location.
func (p *FileProgress) Path() string {
	return p.path
}

// Save persists the current import progress.
func (p *FileProgress) Save(_ context.Context, stats *ImportStats) error {
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(p.path), ".import-progress-*")
	if err != nil {
		return fmt.Errorf("create progress file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		closeQuietly(tmp)
		_ = os.Remove(tmpName) //nolint:errcheck // best-effort cleanup
		return fmt.Errorf("write progress: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName) //nolint:errcheck // best-effort cleanup
		return fmt.Errorf("close progress file: %w", err)
	}
	if err := os.Rename(tmpName, p.path); err != nil {
		_ = os.Remove(tmpName) //nolint:errcheck // best-effort cleanup
		return fmt.Errorf("replace progress file: %w", err)
	}
	return nil
}

// Load retrieves the last saved import progress.
// Returns nil, nil if no progress has been saved.
func (p *FileProgress) Load(_ context.Context) (*ImportStats, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	data, err := os.ReadFile(p.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}

	var stats ImportStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	if stats.StartTime.IsZero() {
		return nil, nil
	}
	return &stats, nil
}

// Clear removes saved progress.
// Use this to start a fresh import.
func (p *FileProgress) Clear(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := os.Remove(p.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil // Already cleared
	}
	return err
}

// InMemoryProgress implements ProgressTracker using in-memory storage.
// This is useful for testing or when persistence is not required.
type InMemoryProgress struct {
	mu    sync.Mutex
	stats *ImportStats
}

// NewInMemoryProgress creates a new in-memory progress tracker.
func NewInMemoryProgress() *InMemoryProgress {
	return &InMemoryProgress{}
}

// Save stores the progress in memory.
func (p *InMemoryProgress) Save(_ context.Context, stats *ImportStats) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	// Deep copy to prevent external modifications
	statsCopy := *stats
	p.stats = &statsCopy
	return nil
}

// Load retrieves the progress from memory.
func (p *InMemoryProgress) Load(_ context.Context) (*ImportStats, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stats == nil {
		return nil, nil
	}
	statsCopy := *p.stats
	return &statsCopy, nil
}

// Clear removes the stored progress.
func (p *InMemoryProgress) Clear(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stats = nil
	return nil
}
