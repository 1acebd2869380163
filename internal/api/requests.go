// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package api

// Query parameter structs validated with go-playground/validator tags.
// The json names double as field names in validation error details.
// A zero Limit means the endpoint default.

// LimitRequest is used by endpoints that only take a limit.
type LimitRequest struct {
	Limit int `json:"limit" validate:"min=0"`
}

// SearchRequest represents GET /movies/search.
type SearchRequest struct {
	Title     string  `json:"title" validate:"max=255"`
	Language  string  `json:"language" validate:"max=100"`
	MinRating float64 `json:"min_rating" validate:"min=0,max=10"`
	Limit     int     `json:"limit" validate:"min=0"`
}

// TopRatedRequest represents GET /movies/top-rated.
type TopRatedRequest struct {
	MinRating float64 `json:"min_rating" validate:"min=0,max=10"`
	Limit     int     `json:"limit" validate:"min=0"`
}

// ByGenreRequest represents GET /movies/by-genre.
type ByGenreRequest struct {
	Genre     string  `json:"genre" validate:"required,notblank,max=100"`
	MinRating float64 `json:"min_rating" validate:"min=0,max=10"`
	Limit     int     `json:"limit" validate:"min=0"`
}

// PopularRequest represents GET /recommendations/popular.
// MinVotes 0 selects the configured vote floor.
type PopularRequest struct {
	MinVotes int64 `json:"min_votes" validate:"min=0"`
	Limit    int   `json:"limit" validate:"min=0"`
}
