// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package models

import "time"

// Movie is a catalogue row as stored. Nullable numeric columns are pointers.
type Movie struct {
	ID              int64     `json:"movie_id"`
	IMDbID          string    `json:"imdb_id"`
	Title           string    `json:"title"`
	Genre           string    `json:"genre"`
	Language        string    `json:"language"`
	ReleaseYear     *int      `json:"release_year,omitempty"`
	DurationMinutes *int      `json:"duration_minutes,omitempty"`
	Director        string    `json:"director,omitempty"`
	Actor1          string    `json:"actor_1,omitempty"`
	Actor2          string    `json:"actor_2,omitempty"`
	Actor3          string    `json:"actor_3,omitempty"`
	IMDbRating      *float64  `json:"imdb_rating,omitempty"`
	Votes           *int64    `json:"votes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// AllLanguages is the language filter value that matches every movie.
const AllLanguages = "All"

// MovieFilter selects movies for the catalogue search.
//
// Title matches case-insensitively anywhere in the title. Language "" or
// AllLanguages matches any language. Movies without a rating are kept
// regardless of MinRating.
type MovieFilter struct {
	Title     string  `json:"title,omitempty"`
	Language  string  `json:"language,omitempty"`
	MinRating float64 `json:"min_rating,omitempty"`
	Limit     int     `json:"limit,omitempty"`
}

// AddMovieRequest is the admin payload for inserting a movie.
type AddMovieRequest struct {
	IMDbID          string   `json:"imdb_id" validate:"required,max=20"`
	Title           string   `json:"title" validate:"required,notblank,max=255"`
	Genre           string   `json:"genre" validate:"max=255"`
	Language        string   `json:"language" validate:"max=100"`
	ReleaseYear     *int     `json:"release_year,omitempty" validate:"omitempty,min=1900,max=2100"`
	DurationMinutes *int     `json:"duration_minutes,omitempty" validate:"omitempty,min=1,max=1000"`
	Director        string   `json:"director" validate:"max=255"`
	Actor1          string   `json:"actor_1" validate:"max=255"`
	Actor2          string   `json:"actor_2" validate:"max=255"`
	Actor3          string   `json:"actor_3" validate:"max=255"`
	IMDbRating      *float64 `json:"imdb_rating,omitempty" validate:"omitempty,min=0,max=10"`
	Votes           *int64   `json:"votes,omitempty" validate:"omitempty,min=0"`
}
