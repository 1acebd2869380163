// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package database

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/anshulrawat2507/CineArchive/internal/logging"
	"github.com/anshulrawat2507/CineArchive/internal/models"
	"github.com/anshulrawat2507/CineArchive/internal/recommend"
)

// maxUpsertAttempts bounds retries on DuckDB transaction conflicts.
const maxUpsertAttempts = 3

// UpsertRating stores the user's rating of a movie, replacing any earlier
// rating and refreshing rated_at. Ratings are kept to one decimal place.
func (db *DB) UpsertRating(ctx context.Context, userID, movieID int64, rating float64) (err error) {
	if math.IsNaN(rating) || rating < models.MinUserRating || rating > models.MaxUserRating {
		return ErrInvalidRating
	}
	rating = math.Round(rating*10) / 10

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer observe("upsert", "ratings", time.Now(), &err)

	for attempt := 1; attempt <= maxUpsertAttempts; attempt++ {
		err = db.upsertRatingTx(ctx, userID, movieID, rating)
		if err == nil || !isTransactionConflict(err) {
			break
		}
		logging.Debug().
			Int("attempt", attempt).
			Int64("user_id", userID).
			Int64("movie_id", movieID).
			Msg("Rating upsert conflict, retrying")
	}
	return err
}

func (db *DB) upsertRatingTx(ctx context.Context, userID, movieID int64, rating float64) (err error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.Error().
					Err(rbErr).
					AnErr("original_error", err).
					Msg("Transaction rollback failed")
			}
		}
	}()

	exists, err := movieExists(ctx, tx, movieID)
	if err != nil {
		return fmt.Errorf("check movie: %w", err)
	}
	if !exists {
		return fmt.Errorf("movie %d: %w", movieID, ErrNotFound)
	}

	query := `INSERT INTO ratings (user_id, movie_id, rating, rated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, movie_id) DO UPDATE
		SET rating = excluded.rating, rated_at = excluded.rated_at`

	if _, err = tx.ExecContext(ctx, query, userID, movieID, rating, time.Now().UTC()); err != nil {
		return fmt.Errorf("upsert rating: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetUserRatings returns the user's ratings joined with movie details,
// newest first.
func (db *DB) GetUserRatings(ctx context.Context, userID int64) (ratings []models.UserRating, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer observe("select", "ratings", time.Now(), &err)

	query := `SELECT r.rating_id, m.movie_id, m.title, m.genre, m.language, m.release_year,
			m.imdb_rating, r.rating, r.rated_at
		FROM ratings r
		JOIN movies m ON m.movie_id = r.movie_id
		WHERE r.user_id = ?
		ORDER BY r.rated_at DESC, r.rating_id DESC`

	ratings, err = queryAndScan(ctx, db.conn, query, []interface{}{userID}, func(rows *sql.Rows) (models.UserRating, error) {
		var (
			r               models.UserRating
			genre, language sql.NullString
			releaseYear     sql.NullInt64
			imdbRating      sql.NullFloat64
		)
		if err := rows.Scan(&r.RatingID, &r.MovieID, &r.Title, &genre, &language, &releaseYear,
			&imdbRating, &r.UserRating, &r.RatedAt); err != nil {
			return r, err
		}
		r.Genre = genre.String
		r.Language = language.String
		r.ReleaseYear = intPtr(releaseYear)
		r.IMDbRating = floatPtr(imdbRating)
		return r, nil
	})
	if err != nil {
		return nil, fmt.Errorf("get user ratings: %w", err)
	}
	return ratings, nil
}

// GetRatingHistory returns the user's ratings with title and genre, the
// input of preference profiling.
func (db *DB) GetRatingHistory(ctx context.Context, userID int64) (history []recommend.RatedMovie, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer observe("select", "ratings", time.Now(), &err)

	query := `SELECT r.user_id, r.movie_id, r.rating, r.rated_at, m.title, m.genre
		FROM ratings r
		JOIN movies m ON m.movie_id = r.movie_id
		WHERE r.user_id = ?
		ORDER BY r.rated_at DESC`

	history, err = queryAndScan(ctx, db.conn, query, []interface{}{userID}, func(rows *sql.Rows) (recommend.RatedMovie, error) {
		var (
			rm    recommend.RatedMovie
			genre sql.NullString
		)
		if err := rows.Scan(&rm.UserID, &rm.MovieID, &rm.Rating, &rm.RatedAt, &rm.Title, &genre); err != nil {
			return rm, err
		}
		rm.Genre = genre.String
		return rm, nil
	})
	if err != nil {
		return nil, fmt.Errorf("get rating history: %w", err)
	}
	return history, nil
}

// GetRatedMovieIDs returns the ids of every movie the user has rated.
func (db *DB) GetRatedMovieIDs(ctx context.Context, userID int64) (ids []int64, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer observe("select", "ratings", time.Now(), &err)

	ids, err = queryAndScan(ctx, db.conn, "SELECT movie_id FROM ratings WHERE user_id = ? ORDER BY movie_id",
		[]interface{}{userID}, func(rows *sql.Rows) (int64, error) {
			var id int64
			err := rows.Scan(&id)
			return id, err
		})
	if err != nil {
		return nil, fmt.Errorf("get rated movie ids: %w", err)
	}
	return ids, nil
}
