// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/anshulrawat2507/CineArchive/internal/auth"
	"github.com/anshulrawat2507/CineArchive/internal/logging"
	"github.com/anshulrawat2507/CineArchive/internal/middleware"
	"github.com/anshulrawat2507/CineArchive/internal/models"
	"github.com/anshulrawat2507/CineArchive/internal/recommend"
)

// AddMovie handles POST /api/v1/admin/movies. The engine's corpus cache is
// dropped so the new movie is visible to recommendations immediately.
func (h *Handler) AddMovie(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req models.AddMovieRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if !validateRequest(rw, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	movieID, err := h.store.InsertMovie(ctx, &req)
	if err != nil {
		respondError(rw, err)
		return
	}
	h.InvalidateCorpus()

	logger := logging.Ctx(r.Context())
	if claims := auth.GetClaims(r.Context()); claims != nil {
		logger.Info().Int64("admin_id", claims.UserID).Int64("movie_id", movieID).Str("imdb_id", req.IMDbID).Msg("Movie added")
	}
	rw.Created(map[string]interface{}{
		"movie_id": movieID,
		"imdb_id":  req.IMDbID,
		"title":    req.Title,
	})
}

// Storage handles GET /api/v1/admin/storage: per-table size estimates and
// database file sizes.
func (h *Handler) Storage(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	report, err := h.store.StorageReport(ctx)
	if err != nil {
		respondError(rw, err)
		return
	}
	rw.Success(report)
}

// InvalidateCache handles POST /api/v1/admin/cache/invalidate.
func (h *Handler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	h.InvalidateCorpus()

	var stats recommend.Stats
	if h.engine != nil {
		stats = h.engine.Stats()
	}
	logging.Ctx(r.Context()).Info().Msg("Recommendation corpus cache invalidated")
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"invalidated": true,
		"engine":      stats,
	})
}

// PerformanceReport is the body of GET /api/v1/admin/performance.
type PerformanceReport struct {
	Since     time.Time                  `json:"since"`
	Endpoints []middleware.EndpointStats `json:"endpoints"`
	Engine    recommend.Stats            `json:"engine"`
}

// Performance handles GET /api/v1/admin/performance: latency percentiles
// per route over the most recent requests, plus engine counters.
func (h *Handler) Performance(w http.ResponseWriter, r *http.Request) {
	report := PerformanceReport{
		Since:     h.perfMon.Since(),
		Endpoints: h.perfMon.GetStats(),
	}
	if h.engine != nil {
		report.Engine = h.engine.Stats()
	}
	NewResponseWriter(w, r).Success(report)
}
