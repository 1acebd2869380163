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
	"strings"
	"time"

	"github.com/anshulrawat2507/CineArchive/internal/logging"
	"github.com/anshulrawat2507/CineArchive/internal/models"
	"github.com/anshulrawat2507/CineArchive/internal/recommend"
)

const (
	defaultSearchLimit   = 100
	defaultGenreLimit    = 20
	defaultTopRatedLimit = 50
	topRatedThreshold    = 8.0
)

const movieColumns = `movie_id, imdb_id, title, genre, language, release_year, duration_minutes,
	director, actor_1, actor_2, actor_3, imdb_rating, votes, created_at`

// scanMovie scans one row selected with movieColumns.
func scanMovie(rows *sql.Rows) (models.Movie, error) {
	var (
		m                                 models.Movie
		imdbID, genre, language, director sql.NullString
		actor1, actor2, actor3            sql.NullString
		releaseYear, duration, votes      sql.NullInt64
		rating                            sql.NullFloat64
	)
	if err := rows.Scan(&m.ID, &imdbID, &m.Title, &genre, &language, &releaseYear, &duration,
		&director, &actor1, &actor2, &actor3, &rating, &votes, &m.CreatedAt); err != nil {
		return m, err
	}
	m.IMDbID = imdbID.String
	m.Genre = genre.String
	m.Language = language.String
	m.Director = director.String
	m.Actor1 = actor1.String
	m.Actor2 = actor2.String
	m.Actor3 = actor3.String
	m.ReleaseYear = intPtr(releaseYear)
	m.DurationMinutes = intPtr(duration)
	m.IMDbRating = floatPtr(rating)
	m.Votes = int64Ptr(votes)
	return m, nil
}

// SearchMovies filters the catalogue by title substring, language and
// minimum rating, best rated first.
func (db *DB) SearchMovies(ctx context.Context, filter models.MovieFilter) (movies []models.Movie, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer observe("select", "movies", time.Now(), &err)

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	query, args := newQueryBuilder("SELECT "+movieColumns+" FROM movies WHERE 1=1").
		addTitleFilter(filter.Title).
		addLanguageFilter(filter.Language).
		addMinRatingFilter(filter.MinRating).
		addLimit(limit).
		build("ORDER BY imdb_rating DESC NULLS LAST, title ASC LIMIT ?")

	movies, err = queryAndScan(ctx, db.conn, query, args, scanMovie)
	if err != nil {
		return nil, fmt.Errorf("search movies: %w", err)
	}
	return movies, nil
}

// GetMovie returns one movie by id.
func (db *DB) GetMovie(ctx context.Context, movieID int64) (*models.Movie, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	movies, err := queryAndScan(ctx, db.conn,
		"SELECT "+movieColumns+" FROM movies WHERE movie_id = ?",
		[]interface{}{movieID}, scanMovie)
	if err != nil {
		return nil, fmt.Errorf("get movie %d: %w", movieID, err)
	}
	if len(movies) == 0 {
		return nil, fmt.Errorf("movie %d: %w", movieID, ErrNotFound)
	}
	return &movies[0], nil
}

// GenreAverages returns the average IMDb rating per genre string,
// best first. Movies without genre or rating are ignored.
func (db *DB) GenreAverages(ctx context.Context, limit int) (averages []models.GenreAverage, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer observe("aggregate", "movies", time.Now(), &err)

	if limit <= 0 {
		limit = defaultGenreLimit
	}

	query := `SELECT genre, ROUND(AVG(imdb_rating), 2) AS avg_rating, COUNT(*) AS movie_count
		FROM movies
		WHERE genre IS NOT NULL AND TRIM(genre) <> '' AND imdb_rating IS NOT NULL
		GROUP BY genre
		ORDER BY avg_rating DESC, movie_count DESC, genre ASC
		LIMIT ?`

	averages, err = queryAndScan(ctx, db.conn, query, []interface{}{limit}, func(rows *sql.Rows) (models.GenreAverage, error) {
		var g models.GenreAverage
		err := rows.Scan(&g.Genre, &g.AvgRating, &g.MovieCount)
		return g, err
	})
	if err != nil {
		return nil, fmt.Errorf("genre averages: %w", err)
	}
	return averages, nil
}

// TopRated reads the top_rated_movies view. minRating below the view
// threshold is raised to it.
func (db *DB) TopRated(ctx context.Context, minRating float64, limit int) (movies []models.Movie, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer observe("select", "top_rated_movies", time.Now(), &err)

	if limit <= 0 {
		limit = defaultTopRatedLimit
	}
	if minRating < topRatedThreshold {
		minRating = topRatedThreshold
	}

	query := `SELECT movie_id, imdb_id, title, genre, language, release_year, duration_minutes,
			director, imdb_rating, votes
		FROM top_rated_movies
		WHERE imdb_rating >= ?
		ORDER BY imdb_rating DESC, release_year DESC NULLS LAST, title ASC
		LIMIT ?`

	movies, err = queryAndScan(ctx, db.conn, query, []interface{}{minRating, limit}, func(rows *sql.Rows) (models.Movie, error) {
		var (
			m                                 models.Movie
			imdbID, genre, language, director sql.NullString
			releaseYear, duration, votes      sql.NullInt64
			rating                            sql.NullFloat64
		)
		if err := rows.Scan(&m.ID, &imdbID, &m.Title, &genre, &language, &releaseYear, &duration,
			&director, &rating, &votes); err != nil {
			return m, err
		}
		m.IMDbID = imdbID.String
		m.Genre = genre.String
		m.Language = language.String
		m.Director = director.String
		m.ReleaseYear = intPtr(releaseYear)
		m.DurationMinutes = intPtr(duration)
		m.IMDbRating = floatPtr(rating)
		m.Votes = int64Ptr(votes)
		return m, nil
	})
	if err != nil {
		return nil, fmt.Errorf("top rated movies: %w", err)
	}
	return movies, nil
}

// InsertMovie adds a movie to the catalogue and returns its id.
func (db *DB) InsertMovie(ctx context.Context, req *models.AddMovieRequest) (movieID int64, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer observe("insert", "movies", time.Now(), &err)

	imdbID := strings.TrimSpace(req.IMDbID)
	title := strings.TrimSpace(req.Title)
	if imdbID == "" || title == "" {
		return 0, fmt.Errorf("imdb_id and title are required")
	}

	var exists bool
	if err = db.conn.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM movies WHERE imdb_id = ?)", imdbID).Scan(&exists); err != nil {
		return 0, fmt.Errorf("check imdb id: %w", err)
	}
	if exists {
		return 0, ErrDuplicateIMDbID
	}

	query := `INSERT INTO movies (imdb_id, title, genre, language, release_year, duration_minutes,
			director, actor_1, actor_2, actor_3, imdb_rating, votes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING movie_id`

	err = db.conn.QueryRowContext(ctx, query,
		imdbID, title,
		nullIfEmpty(req.Genre), nullIfEmpty(req.Language),
		nullable(req.ReleaseYear), nullable(req.DurationMinutes),
		nullIfEmpty(req.Director), nullIfEmpty(req.Actor1), nullIfEmpty(req.Actor2), nullIfEmpty(req.Actor3),
		nullable(req.IMDbRating), nullable(req.Votes),
		time.Now().UTC(),
	).Scan(&movieID)
	if err != nil {
		if isConstraintViolation(err) {
			return 0, ErrDuplicateIMDbID
		}
		return 0, fmt.Errorf("insert movie: %w", err)
	}

	logging.Info().
		Int64("movie_id", movieID).
		Str("imdb_id", imdbID).
		Str("title", title).
		Msg("Movie added")
	return movieID, nil
}

// UpsertMovies writes a batch of catalogue rows keyed by imdb_id in one
// transaction. Existing movies are updated in place; the rest are
// inserted. Rows without imdb_id or title are skipped by the caller.
func (db *DB) UpsertMovies(ctx context.Context, batch []models.AddMovieRequest) (inserted, updated int, err error) {
	if len(batch) == 0 {
		return 0, 0, nil
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer observe("upsert", "movies", time.Now(), &err)

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin transaction: %w", err)
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

	updateQuery := `UPDATE movies SET title = ?, genre = ?, language = ?, release_year = ?,
			duration_minutes = ?, director = ?, actor_1 = ?, actor_2 = ?, actor_3 = ?,
			imdb_rating = ?, votes = ?
		WHERE imdb_id = ?`
	insertQuery := `INSERT INTO movies (imdb_id, title, genre, language, release_year, duration_minutes,
			director, actor_1, actor_2, actor_3, imdb_rating, votes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	now := time.Now().UTC()
	for i := range batch {
		m := &batch[i]
		imdbID := strings.TrimSpace(m.IMDbID)
		fields := []interface{}{
			strings.TrimSpace(m.Title),
			nullIfEmpty(m.Genre), nullIfEmpty(m.Language),
			nullable(m.ReleaseYear), nullable(m.DurationMinutes),
			nullIfEmpty(m.Director), nullIfEmpty(m.Actor1), nullIfEmpty(m.Actor2), nullIfEmpty(m.Actor3),
			nullable(m.IMDbRating), nullable(m.Votes),
		}

		res, execErr := tx.ExecContext(ctx, updateQuery, append(fields, imdbID)...)
		if execErr != nil {
			err = fmt.Errorf("update movie %s: %w", imdbID, execErr)
			return 0, 0, err
		}
		if n, _ := res.RowsAffected(); n > 0 {
			updated++
			continue
		}

		args := append([]interface{}{imdbID}, fields...)
		if _, execErr = tx.ExecContext(ctx, insertQuery, append(args, now)...); execErr != nil {
			err = fmt.Errorf("insert movie %s: %w", imdbID, execErr)
			return 0, 0, err
		}
		inserted++
	}

	if err = tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return inserted, updated, nil
}

// ListMovies returns every catalogue row with numeric columns left as the
// driver produced them. Cleanup is done by recommend.Normalize.
func (db *DB) ListMovies(ctx context.Context) (movies []recommend.RawMovie, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer observe("select", "movies", time.Now(), &err)

	query := `SELECT movie_id, imdb_id, title, genre, director, actor_1, actor_2, actor_3, language,
			release_year, duration_minutes, imdb_rating, votes
		FROM movies
		ORDER BY movie_id`

	movies, err = queryAndScan(ctx, db.conn, query, nil, func(rows *sql.Rows) (recommend.RawMovie, error) {
		var (
			m                                recommend.RawMovie
			imdbID, title, genre, director   sql.NullString
			actor1, actor2, actor3, language sql.NullString
		)
		if err := rows.Scan(&m.MovieID, &imdbID, &title, &genre, &director, &actor1, &actor2, &actor3, &language,
			&m.ReleaseYear, &m.DurationMinutes, &m.IMDbRating, &m.Votes); err != nil {
			return m, err
		}
		m.IMDbID = stringPtr(imdbID)
		m.Title = stringPtr(title)
		m.Genre = stringPtr(genre)
		m.Director = stringPtr(director)
		m.Actor1 = stringPtr(actor1)
		m.Actor2 = stringPtr(actor2)
		m.Actor3 = stringPtr(actor3)
		m.Language = stringPtr(language)
		return m, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return movies, nil
}

// movieExists reports whether movieID is in the catalogue.
func movieExists(ctx context.Context, q interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}, movieID int64) (bool, error) {
	var exists bool
	err := q.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM movies WHERE movie_id = ?)", movieID).Scan(&exists)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}
	return exists, nil
}

func nullIfEmpty(s string) interface{} {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return s
}

// nullable unwraps an optional value into a query argument.
func nullable[T any](p *T) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func int64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}
