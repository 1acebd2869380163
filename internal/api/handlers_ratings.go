// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package api

import (
	"context"
	"net/http"

	"github.com/anshulrawat2507/CineArchive/internal/auth"
	"github.com/anshulrawat2507/CineArchive/internal/logging"
	"github.com/anshulrawat2507/CineArchive/internal/models"
)

// ListRatings handles GET /api/v1/ratings: the caller's ratings, newest first.
func (h *Handler) ListRatings(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	claims := auth.GetClaims(r.Context())
	if claims == nil {
		rw.Unauthorized("Authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	ratings, err := h.store.GetUserRatings(ctx, claims.UserID)
	if err != nil {
		respondError(rw, err)
		return
	}
	if ratings == nil {
		ratings = []models.UserRating{}
	}
	rw.Success(ratings)
}

// UpsertRating handles PUT /api/v1/ratings. Rating a movie again replaces
// the earlier rating.
func (h *Handler) UpsertRating(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	claims := auth.GetClaims(r.Context())
	if claims == nil {
		rw.Unauthorized("Authentication required")
		return
	}

	var req models.RatingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if !validateRequest(rw, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	if err := h.store.UpsertRating(ctx, claims.UserID, req.MovieID, *req.Rating); err != nil {
		respondError(rw, err)
		return
	}

	logging.Ctx(r.Context()).Debug().
		Int64("movie_id", req.MovieID).
		Float64("rating", *req.Rating).
		Msg("Rating saved")
	rw.Success(map[string]interface{}{
		"movie_id": req.MovieID,
		"rating":   *req.Rating,
	})
}
