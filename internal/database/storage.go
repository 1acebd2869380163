// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/anshulrawat2507/CineArchive/internal/models"
)

// Snapshot returns headline catalogue counts. AverageRating is the mean
// IMDb rating rounded to two places, nil when no movie is rated.
func (db *DB) Snapshot(ctx context.Context) (snap *models.Snapshot, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer observe("aggregate", "snapshot", time.Now(), &err)

	query := `SELECT
		(SELECT COUNT(*) FROM movies),
		(SELECT COUNT(*) FROM ratings),
		(SELECT COUNT(*) FROM users),
		(SELECT ROUND(AVG(imdb_rating), 2) FROM movies)`

	snap = &models.Snapshot{}
	var avg sql.NullFloat64
	if err = db.conn.QueryRowContext(ctx, query).Scan(&snap.MovieCount, &snap.RatingCount, &snap.UserCount, &avg); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	snap.AverageRating = floatPtr(avg)
	return snap, nil
}

// StorageReport describes per-table sizes and the database file usage.
func (db *DB) StorageReport(ctx context.Context) (report *models.StorageReport, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer observe("aggregate", "storage", time.Now(), &err)

	query := `SELECT schema_name, table_name, estimated_size, column_count, index_count
		FROM duckdb_tables()
		WHERE NOT internal AND NOT temporary
		ORDER BY schema_name, table_name`

	tables, err := queryAndScan(ctx, db.conn, query, nil, func(rows *sql.Rows) (models.TableStorage, error) {
		var t models.TableStorage
		err := rows.Scan(&t.Schema, &t.Table, &t.EstimatedRows, &t.ColumnCount, &t.IndexCount)
		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("table storage: %w", err)
	}

	report = &models.StorageReport{
		Tables:      tables,
		GeneratedAt: time.Now().UTC(),
	}

	sizeQuery := `SELECT database_size, wal_size, block_size, total_blocks, used_blocks
		FROM pragma_database_size()
		WHERE database_name = current_database()`

	err = db.conn.QueryRowContext(ctx, sizeQuery).Scan(
		&report.DatabaseSize, &report.WALSize, &report.BlockSize, &report.TotalBlocks, &report.UsedBlocks)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("database size: %w", err)
	}
	err = nil
	return report, nil
}

// RecordCounts returns the row count of each core table.
func (db *DB) RecordCounts(ctx context.Context) (map[string]int64, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	counts := make(map[string]int64, 3)
	for _, table := range []string{"movies", "users", "ratings"} {
		var n int64
		// table names come from the fixed list above
		if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
		counts[table] = n
	}
	return counts, nil
}
