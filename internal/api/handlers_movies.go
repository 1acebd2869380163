// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/anshulrawat2507/CineArchive/internal/cache"
	"github.com/anshulrawat2507/CineArchive/internal/metrics"
	"github.com/anshulrawat2507/CineArchive/internal/models"
	"github.com/anshulrawat2507/CineArchive/internal/recommend"
)

// Stats handles GET /api/v1/stats: movie, rating and user counts plus the
// catalogue's average IMDb rating.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	snap, err := h.store.Snapshot(ctx)
	if err != nil {
		respondError(rw, err)
		return
	}
	rw.Success(snap)
}

// SearchMovies handles GET /api/v1/movies/search.
//
// Query parameters: title (substring, case-insensitive), language ("All"
// or empty for any), min_rating, limit.
func (h *Handler) SearchMovies(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	q := newQueryParams(r)
	req := SearchRequest{
		Title:     q.String("title"),
		Language:  q.String("language"),
		MinRating: q.Float("min_rating"),
		Limit:     q.Int("limit"),
	}
	if err := q.Err(); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if !validateRequest(rw, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	limit := capLimit(req.Limit, h.maxPageSize())
	movies, err := h.store.SearchMovies(ctx, models.MovieFilter{
		Title:     req.Title,
		Language:  req.Language,
		MinRating: req.MinRating,
		Limit:     limit,
	})
	if err != nil {
		respondError(rw, err)
		return
	}
	if movies == nil {
		movies = []models.Movie{}
	}
	rw.SuccessWithPagination(movies, listMeta(len(movies), limit))
}

// GenreAverages handles GET /api/v1/movies/genres/averages. Results are
// served from the read cache.
func (h *Handler) GenreAverages(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	q := newQueryParams(r)
	req := LimitRequest{Limit: q.Int("limit")}
	if err := q.Err(); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if !validateRequest(rw, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	limit := capLimit(req.Limit, h.maxPageSize())
	averages, err := cachedRead(h, cache.GenerateKey("GenreAverages", limit), func() ([]models.GenreAverage, error) {
		return h.store.GenreAverages(ctx, limit)
	})
	if err != nil {
		respondError(rw, err)
		return
	}
	if averages == nil {
		averages = []models.GenreAverage{}
	}
	rw.Success(averages)
}

// TopRated handles GET /api/v1/movies/top-rated. Results are served from
// the read cache.
func (h *Handler) TopRated(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	q := newQueryParams(r)
	req := TopRatedRequest{
		MinRating: q.Float("min_rating"),
		Limit:     q.Int("limit"),
	}
	if err := q.Err(); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if !validateRequest(rw, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	limit := capLimit(req.Limit, h.maxPageSize())
	movies, err := cachedRead(h, cache.GenerateKey("TopRated", []any{req.MinRating, limit}), func() ([]models.Movie, error) {
		return h.store.TopRated(ctx, req.MinRating, limit)
	})
	if err != nil {
		respondError(rw, err)
		return
	}
	if movies == nil {
		movies = []models.Movie{}
	}
	rw.SuccessWithPagination(movies, listMeta(len(movies), limit))
}

// MoviesByGenre handles GET /api/v1/movies/by-genre. It is served from the
// normalized corpus: genre matches case-insensitively as a substring of the
// movie's genre list, best rated first.
func (h *Handler) MoviesByGenre(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	q := newQueryParams(r)
	req := ByGenreRequest{
		Genre:     q.String("genre"),
		MinRating: q.Float("min_rating"),
		Limit:     q.Int("limit"),
	}
	if err := q.Err(); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if !validateRequest(rw, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	start := time.Now()
	movies, err := h.engine.ByGenre(ctx, req.Genre, req.MinRating, req.Limit)
	metrics.RecordRecommendation("genre", time.Since(start), err)
	if err != nil {
		respondError(rw, err)
		return
	}
	if movies == nil {
		movies = []recommend.MovieRecord{}
	}
	rw.Success(movies)
}
