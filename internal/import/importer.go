// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package catalogimport

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/anshulrawat2507/CineArchive/internal/config"
	"github.com/anshulrawat2507/CineArchive/internal/logging"
	"github.com/anshulrawat2507/CineArchive/internal/models"
)

// MovieSink writes cleaned movies. database.DB implements it.
type MovieSink interface {
	UpsertMovies(ctx context.Context, movies []models.AddMovieRequest) (inserted, updated int, err error)
}

// ProgressTracker defines the interface for tracking import progress.
type ProgressTracker interface {
	// Save persists the current import progress.
	Save(ctx context.Context, stats *ImportStats) error

	// Load retrieves the last saved import progress.
	Load(ctx context.Context) (*ImportStats, error)

	// Clear removes saved progress (for fresh imports).
	Clear(ctx context.Context) error
}

// Importer loads catalogue records into a MovieSink in batches.
type Importer struct {
	cfg      *config.ImportConfig
	sink     MovieSink
	progress ProgressTracker
	mapper   *Mapper

	// State
	mu       sync.RWMutex
	running  bool
	stats    *ImportStats
	stopChan chan struct{}
}

// NewImporter creates a new catalogue importer. progress may be nil.
func NewImporter(cfg *config.ImportConfig, sink MovieSink, progress ProgressTracker) *Importer {
	return &Importer{
		cfg:      cfg,
		sink:     sink,
		progress: progress,
		mapper:   NewMapper(),
		stopChan: make(chan struct{}),
	}
}

// Import reads every record from source, cleans it and upserts it, one
// transaction per batch. A failed batch write aborts the import without
// saving progress past the last good batch, so a rerun resumes there.
func (i *Importer) Import(ctx context.Context, source RecordSource) (*ImportStats, error) {
	i.mu.Lock()
	if i.running {
		i.mu.Unlock()
		return nil, fmt.Errorf("import already in progress")
	}
	i.running = true
	i.stats = &ImportStats{
		StartTime: time.Now(),
		DryRun:    i.cfg.DryRun,
	}
	i.mapper.Reset()
	stop := i.stopChan
	i.mu.Unlock()

	defer func() {
		i.mu.Lock()
		i.running = false
		i.stats.EndTime = time.Now()
		i.mu.Unlock()
	}()

	startLine := i.cfg.ResumeFromLine
	if startLine == 0 && i.progress != nil {
		if prev, err := i.progress.Load(ctx); err != nil {
			logging.Warn().Err(err).Msg("Failed to load import progress")
		} else if prev != nil {
			startLine = prev.LastLine
			logging.Info().Int64("start_line", startLine).Msg("Resuming import from line")
		}
	}

	total, err := source.Count(ctx, startLine)
	if err != nil {
		return i.GetStats(), fmt.Errorf("count records: %w", err)
	}

	i.mu.Lock()
	i.stats.TotalRecords = total
	i.stats.LastLine = startLine
	i.mu.Unlock()

	logging.Info().
		Int64("total_records", total).
		Int64("start_line", startLine).
		Bool("dry_run", i.cfg.DryRun).
		Msg("Starting catalogue import")

	if err := i.processAllBatches(ctx, source, startLine, stop); err != nil {
		return i.GetStats(), err
	}

	if i.progress != nil && !i.cfg.DryRun {
		if err := i.progress.Clear(ctx); err != nil {
			logging.Warn().Err(err).Msg("Failed to clear import progress")
		}
	}

	stats := i.GetStats()
	logging.Info().
		Int64("inserted", stats.Inserted).
		Int64("updated", stats.Updated).
		Int64("skipped", stats.Skipped).
		Int64("errors", stats.Errors).
		Dur("duration", stats.Duration()).
		Msg("Import completed")

	return stats, nil
}

// processAllBatches processes all batches after the given line.
func (i *Importer) processAllBatches(ctx context.Context, source RecordSource, startLine int64, stop <-chan struct{}) error {
	currentLine := startLine
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return fmt.Errorf("import canceled")
		default:
		}

		records, err := source.ReadBatch(ctx, currentLine, i.cfg.BatchSize)
		if err != nil {
			return fmt.Errorf("read batch: %w", err)
		}
		if len(records) == 0 {
			return nil
		}

		currentLine, err = i.processBatchAndUpdateStats(ctx, records)
		if err != nil {
			return err
		}
	}
}

// processBatchAndUpdateStats writes one batch and updates statistics.
// Returns the last processed line for the next iteration.
func (i *Importer) processBatchAndUpdateStats(ctx context.Context, records []SourceRecord) (int64, error) {
	valid, skipped, malformed := i.mapper.FilterValidRecords(records)
	for _, rec := range records {
		if rec.Err != nil {
			logging.Debug().Err(rec.Err).Msg("Skipping malformed catalogue line")
		}
	}

	var inserted, updated int
	if i.cfg.DryRun {
		inserted = len(valid)
	} else if len(valid) > 0 {
		var err error
		inserted, updated, err = i.sink.UpsertMovies(ctx, valid)
		if err != nil {
			i.mu.Lock()
			i.stats.Errors += int64(len(valid))
			i.mu.Unlock()
			return 0, fmt.Errorf("write batch ending at line %d: %w", records[len(records)-1].Line, err)
		}
	}

	i.mu.Lock()
	i.stats.Processed += int64(len(records))
	i.stats.Inserted += int64(inserted)
	i.stats.Updated += int64(updated)
	i.stats.Skipped += int64(skipped)
	i.stats.Errors += int64(malformed)
	lastLine := records[len(records)-1].Line
	i.stats.LastLine = lastLine
	stats := *i.stats
	i.mu.Unlock()

	if i.progress != nil && !i.cfg.DryRun {
		if err := i.progress.Save(ctx, &stats); err != nil {
			logging.Warn().Err(err).Msg("Failed to save progress")
		}
	}

	logging.Info().
		Float64("progress_percent", stats.Progress()).
		Int64("processed", stats.Processed).
		Int64("total_records", stats.TotalRecords).
		Int64("inserted", stats.Inserted).
		Int64("updated", stats.Updated).
		Int64("skipped", stats.Skipped).
		Int64("errors", stats.Errors).
		Float64("records_per_second", stats.RecordsPerSecond()).
		Msg("Import progress")

	return lastLine, nil
}

// Stop cancels a running import operation.
func (i *Importer) Stop() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if !i.running {
		return fmt.Errorf("no import in progress")
	}

	close(i.stopChan)
	i.stopChan = make(chan struct{}) // Reset for next import

	return nil
}

// GetStats returns the current import statistics.
func (i *Importer) GetStats() *ImportStats {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if i.stats == nil {
		return &ImportStats{}
	}

	// Return a copy
	stats := *i.stats
	return &stats
}

// IsRunning returns whether an import is currently in progress.
func (i *Importer) IsRunning() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.running
}
