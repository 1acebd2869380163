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
	"github.com/anshulrawat2507/CineArchive/internal/metrics"
	"github.com/anshulrawat2507/CineArchive/internal/recommend"
)

// SimilarResponse is the body of GET /recommendations/similar/{movieID}.
type SimilarResponse struct {
	MovieID int64                    `json:"movie_id"`
	Movies  []recommend.SimilarMovie `json:"movies"`
}

// PersonalResponse is the body of GET /recommendations/me.
type PersonalResponse struct {
	UserID          int64                      `json:"user_id"`
	TopGenres       []string                   `json:"top_genres"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
}

// Similar handles GET /api/v1/recommendations/similar/{movieID}.
// Returns movies ranked by Jaccard similarity of their metadata tokens.
func (h *Handler) Similar(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	movieID, err := movieIDParam(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
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

	start := time.Now()
	movies, err := h.engine.Similar(ctx, movieID, req.Limit)
	metrics.RecordRecommendation("similar", time.Since(start), err)
	if err != nil {
		respondError(rw, err)
		return
	}
	rw.Success(SimilarResponse{MovieID: movieID, Movies: movies})
}

// Popular handles GET /api/v1/recommendations/popular.
// floor_dropped in the response is set when no movie reached min_votes and
// the whole catalogue was ranked instead.
func (h *Handler) Popular(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	q := newQueryParams(r)
	req := PopularRequest{
		MinVotes: q.Int64("min_votes"),
		Limit:    q.Int("limit"),
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
	result, err := h.engine.Popular(ctx, req.MinVotes, req.Limit)
	metrics.RecordRecommendation("popular", time.Since(start), err)
	if err != nil {
		respondError(rw, err)
		return
	}
	rw.Success(result)
}

// ForMe handles GET /api/v1/recommendations/me: personalized picks for the
// authenticated user, never including movies they already rated.
func (h *Handler) ForMe(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	claims := auth.GetClaims(r.Context())
	if claims == nil {
		rw.Unauthorized("Authentication required")
		return
	}
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

	start := time.Now()
	p, err := h.engine.Personalize(ctx, claims.UserID, req.Limit)
	metrics.RecordRecommendation("personalized", time.Since(start), err)
	if err != nil {
		respondError(rw, err)
		return
	}

	rw.Success(PersonalResponse{
		UserID:          claims.UserID,
		TopGenres:       p.Profile.TopGenres(recommend.TopGenreCount),
		Recommendations: p.Recommendations,
	})
}

// Profile handles GET /api/v1/recommendations/profile: the authenticated
// user's genre affinities, strongest first.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	claims := auth.GetClaims(r.Context())
	if claims == nil {
		rw.Unauthorized("Authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	start := time.Now()
	profile, err := h.engine.Profile(ctx, claims.UserID)
	metrics.RecordRecommendation("profile", time.Since(start), err)
	if err != nil {
		respondError(rw, err)
		return
	}
	if profile == nil {
		profile = recommend.PreferenceProfile{}
	}
	rw.Success(profile)
}
