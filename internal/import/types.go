// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package catalogimport

import (
	"time"
)

// ImportStats holds statistics about an import operation.
type ImportStats struct {
	// TotalRecords is the number of non-blank lines in the source.
	TotalRecords int64 `json:"total_records"`

	// Processed is the number of records processed (including skipped).
	Processed int64 `json:"processed"`

	// Inserted is the number of new movies written.
	Inserted int64 `json:"inserted"`

	// Updated is the number of existing movies overwritten.
	Updated int64 `json:"updated"`

	// Skipped is the number of records dropped by cleaning or dedup.
	Skipped int64 `json:"skipped"`

	// Errors counts malformed lines and records in failed batches.
	Errors int64 `json:"errors"`

	// StartTime is when the import started.
	StartTime time.Time `json:"start_time"`

	// EndTime is when the import completed (zero if still running).
	EndTime time.Time `json:"end_time"`

	// LastLine is the source line number of the last processed record.
	LastLine int64 `json:"last_line"`

	// DryRun indicates if this was a dry run (no writes).
	DryRun bool `json:"dry_run"`
}

// Imported returns the number of movies written.
func (s *ImportStats) Imported() int64 {
	return s.Inserted + s.Updated
}

// Duration returns the duration of the import operation.
func (s *ImportStats) Duration() time.Duration {
	if s.StartTime.IsZero() {
		return 0
	}
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// Progress returns the import progress as a percentage (0-100).
func (s *ImportStats) Progress() float64 {
	if s.TotalRecords == 0 {
		return 0
	}
	return float64(s.Processed) / float64(s.TotalRecords) * 100
}

// RecordsPerSecond returns the import rate.
func (s *ImportStats) RecordsPerSecond() float64 {
	duration := s.Duration().Seconds()
	if duration == 0 {
		return 0
	}
	return float64(s.Processed) / duration
}

// ProgressSummary provides a human-readable summary of import progress.
type ProgressSummary struct {
	Status          string    `json:"status"`
	Progress        float64   `json:"progress"`
	TotalRecords    int64     `json:"total_records"`
	Processed       int64     `json:"processed"`
	Inserted        int64     `json:"inserted"`
	Updated         int64     `json:"updated"`
	Skipped         int64     `json:"skipped"`
	Errors          int64     `json:"errors"`
	RecordsPerSec   float64   `json:"records_per_second"`
	ElapsedSeconds  float64   `json:"elapsed_seconds"`
	EstimatedRemain float64   `json:"estimated_remaining_seconds"`
	StartTime       time.Time `json:"start_time"`
	LastLine        int64     `json:"last_line"`
	DryRun          bool      `json:"dry_run"`
}

// ToSummary converts ImportStats to a ProgressSummary with calculated fields.
func (s *ImportStats) ToSummary(running bool) *ProgressSummary {
	summary := &ProgressSummary{
		Progress:       s.Progress(),
		TotalRecords:   s.TotalRecords,
		Processed:      s.Processed,
		Inserted:       s.Inserted,
		Updated:        s.Updated,
		Skipped:        s.Skipped,
		Errors:         s.Errors,
		RecordsPerSec:  s.RecordsPerSecond(),
		ElapsedSeconds: s.Duration().Seconds(),
		StartTime:      s.StartTime,
		LastLine:       s.LastLine,
		DryRun:         s.DryRun,
	}

	switch {
	case running:
		summary.Status = "running"
	case s.EndTime.IsZero():
		summary.Status = "pending"
	default:
		summary.Status = "completed"
	}

	if running && summary.RecordsPerSec > 0 {
		remaining := s.TotalRecords - s.Processed
		summary.EstimatedRemain = float64(remaining) / summary.RecordsPerSec
	}

	return summary
}
