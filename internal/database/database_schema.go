// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package database

import (
	"context"
	"fmt"
)

// createTables creates sequences, the three core tables and the
// top_rated_movies view. Every statement is idempotent.
func (db *DB) createTables(ctx context.Context) error {
	queries := []string{
		`CREATE SEQUENCE IF NOT EXISTS movie_id_seq START 1;`,
		`CREATE SEQUENCE IF NOT EXISTS user_id_seq START 1;`,
		`CREATE SEQUENCE IF NOT EXISTS rating_id_seq START 1;`,

		`CREATE TABLE IF NOT EXISTS movies (
			movie_id BIGINT PRIMARY KEY DEFAULT nextval('movie_id_seq'),
			imdb_id TEXT UNIQUE,
			title TEXT NOT NULL,
			genre TEXT,
			language TEXT,
			release_year INTEGER,
			duration_minutes INTEGER,
			director TEXT,
			actor_1 TEXT,
			actor_2 TEXT,
			actor_3 TEXT,
			imdb_rating DOUBLE,
			votes BIGINT,
			created_at TIMESTAMP NOT NULL DEFAULT current_timestamp
		);`,

		`CREATE TABLE IF NOT EXISTS users (
			user_id BIGINT PRIMARY KEY DEFAULT nextval('user_id_seq'),
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			region TEXT,
			age_group TEXT,
			is_admin BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMP NOT NULL DEFAULT current_timestamp,
			last_login TIMESTAMP
		);`,

		// Ratings outside 0..10 are rejected by the store before they reach
		// the CHECK constraint, which stays as the last line of defence.
		`CREATE TABLE IF NOT EXISTS ratings (
			rating_id BIGINT PRIMARY KEY DEFAULT nextval('rating_id_seq'),
			user_id BIGINT NOT NULL,
			movie_id BIGINT NOT NULL,
			rating DOUBLE NOT NULL CHECK (rating >= 0 AND rating <= 10),
			rated_at TIMESTAMP NOT NULL DEFAULT current_timestamp,
			UNIQUE (user_id, movie_id)
		);`,

		`CREATE OR REPLACE VIEW top_rated_movies AS
			SELECT movie_id, imdb_id, title, genre, language, release_year,
				duration_minutes, director, imdb_rating, votes
			FROM movies
			WHERE imdb_rating >= 8.0;`,
	}

	for _, query := range queries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// createIndexes creates secondary indexes for the filters used by search,
// genre aggregation and per-user rating lookups.
func (db *DB) createIndexes(ctx context.Context) error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_movies_genre ON movies(genre);`,
		`CREATE INDEX IF NOT EXISTS idx_movies_language ON movies(language);`,
		`CREATE INDEX IF NOT EXISTS idx_movies_rating ON movies(imdb_rating);`,
		`CREATE INDEX IF NOT EXISTS idx_ratings_user ON ratings(user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_ratings_movie ON ratings(movie_id);`,
	}

	for _, query := range indexes {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}
