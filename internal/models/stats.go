// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package models

import (
	"time"
)

// Snapshot is the dashboard headline: catalogue and rating counts plus the
// average IMDb rating rounded to two places (nil when no movie is rated).
type Snapshot struct {
	MovieCount    int64    `json:"movie_count"`
	RatingCount   int64    `json:"rating_count"`
	UserCount     int64    `json:"user_count"`
	AverageRating *float64 `json:"average_rating"`
}

// GenreAverage is the average IMDb rating of one genre string.
type GenreAverage struct {
	Genre      string  `json:"genre"`
	AvgRating  float64 `json:"avg_rating"`
	MovieCount int64   `json:"movie_count"`
}

// TableStorage describes one table of the storage report.
type TableStorage struct {
	Schema        string `json:"schema"`
	Table         string `json:"table"`
	EstimatedRows int64  `json:"estimated_rows"`
	ColumnCount   int64  `json:"column_count"`
	IndexCount    int64  `json:"index_count"`
}

// StorageReport summarizes on-disk usage of the database.
type StorageReport struct {
	Tables       []TableStorage `json:"tables"`
	DatabaseSize string         `json:"database_size"`
	WALSize      string         `json:"wal_size"`
	BlockSize    int64          `json:"block_size"`
	TotalBlocks  int64          `json:"total_blocks"`
	UsedBlocks   int64          `json:"used_blocks"`
	GeneratedAt  time.Time      `json:"generated_at"`
}

// HealthStatus represents the health check response
type HealthStatus struct {
	Status            string  `json:"status"`
	Version           string  `json:"version"`
	DatabaseConnected bool    `json:"database_connected"`
	CorpusSize        int     `json:"corpus_size"`
	Uptime            float64 `json:"uptime_seconds"`
}
