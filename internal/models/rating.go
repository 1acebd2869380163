// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package models

import "time"

// Rating bounds enforced by the store and the request validator.
const (
	MinUserRating = 0.0
	MaxUserRating = 10.0
)

// UserRating is one of a user's ratings joined with the movie it rates.
type UserRating struct {
	RatingID    int64     `json:"rating_id"`
	MovieID     int64     `json:"movie_id"`
	Title       string    `json:"title"`
	Genre       string    `json:"genre"`
	Language    string    `json:"language"`
	ReleaseYear *int      `json:"release_year,omitempty"`
	IMDbRating  *float64  `json:"imdb_rating,omitempty"`
	UserRating  float64   `json:"user_rating"`
	RatedAt     time.Time `json:"rated_at"`
}

// RatingRequest is the body of PUT /api/v1/ratings.
type RatingRequest struct {
	MovieID int64    `json:"movie_id" validate:"required,gt=0"`
	Rating  *float64 `json:"rating" validate:"required,min=0,max=10"`
}
