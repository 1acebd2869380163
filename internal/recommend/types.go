// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package recommend

import (
	"context"
	"time"
)

// RawMovie is a movie row as it comes out of the store, before any cleanup.
// Text columns may be NULL. Numeric columns are typed loosely because the
// catalogue is loaded from hand-maintained CSV files and can hold strings,
// blanks or driver-specific numeric types.
type RawMovie struct {
	MovieID         int64
	IMDbID          *string
	Title           *string
	Genre           *string
	Director        *string
	Actor1          *string
	Actor2          *string
	Actor3          *string
	Language        *string
	ReleaseYear     any
	DurationMinutes any
	IMDbRating      any
	Votes           any
}

// MovieRecord is a cleaned movie. Absent numeric values stay nil so that
// display layers can tell "no rating" apart from a rating of zero. Scoring
// goes through Rating and VoteCount, which read nil as 0.
type MovieRecord struct {
	MovieID         int64    `json:"movie_id"`
	IMDbID          string   `json:"imdb_id"`
	Title           string   `json:"title"`
	Genre           string   `json:"genre"`
	Director        string   `json:"director"`
	Actor1          string   `json:"actor_1"`
	Actor2          string   `json:"actor_2"`
	Actor3          string   `json:"actor_3"`
	Language        string   `json:"language"`
	ReleaseYear     *int     `json:"release_year,omitempty"`
	DurationMinutes *int     `json:"duration_minutes,omitempty"`
	IMDbRating      *float64 `json:"imdb_rating,omitempty"`
	Votes           *int64   `json:"votes,omitempty"`

	// Tokens is derived from the descriptive fields by Normalize.
	Tokens TokenSet `json:"-"`
}

// Rating returns the IMDb rating, or 0 when absent.
func (m *MovieRecord) Rating() float64 {
	if m.IMDbRating == nil {
		return 0
	}
	return *m.IMDbRating
}

// VoteCount returns the vote count, or 0 when absent.
func (m *MovieRecord) VoteCount() int64 {
	if m.Votes == nil {
		return 0
	}
	return *m.Votes
}

// HasRating reports whether the record carries an IMDb rating.
func (m *MovieRecord) HasRating() bool {
	return m.IMDbRating != nil
}

// TokenSet is the set of lowercase descriptive tags of one movie.
type TokenSet map[string]struct{}

// Has reports whether tok is in the set.
func (t TokenSet) Has(tok string) bool {
	_, ok := t[tok]
	return ok
}

// RatingEvent is one user rating of one movie on the 0..10 scale.
type RatingEvent struct {
	UserID  int64     `json:"user_id"`
	MovieID int64     `json:"movie_id"`
	Rating  float64   `json:"rating"`
	RatedAt time.Time `json:"rated_at"`
}

// RatedMovie is a rating event joined with the rated movie's metadata.
// It is the input of BuildPreferenceProfile.
type RatedMovie struct {
	RatingEvent
	Title string `json:"title"`
	Genre string `json:"genre"`
}

// GenreAffinity summarizes how a user rated one genre.
type GenreAffinity struct {
	Genre           string  `json:"genre"`
	Count           int     `json:"count"`
	AvgRating       float64 `json:"avg_rating"`
	PreferenceScore float64 `json:"preference_score"`
}

// PreferenceProfile is ordered by descending PreferenceScore.
type PreferenceProfile []GenreAffinity

// TopGenres returns up to n genre names from the head of the profile.
func (p PreferenceProfile) TopGenres(n int) []string {
	if n > len(p) {
		n = len(p)
	}
	if n <= 0 {
		return []string{}
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = p[i].Genre
	}
	return out
}

// SimilarMovie is a SimilarTo result.
type SimilarMovie struct {
	MovieRecord
	Similarity float64 `json:"similarity"`
}

// PopularMovie is a Popular result.
type PopularMovie struct {
	MovieRecord
	PopularityScore float64 `json:"popularity_score"`
}

// PopularResult carries the ranked list together with the fallback flag.
// FloorDropped is true when no movie reached the vote floor and the whole
// corpus was ranked instead.
type PopularResult struct {
	Movies       []PopularMovie `json:"movies"`
	MinVotes     int64          `json:"min_votes"`
	CorpusMean   float64        `json:"corpus_mean"`
	FloorDropped bool           `json:"floor_dropped"`
}

// Recommendation is a RecommendFor result.
type Recommendation struct {
	MovieRecord
	Score         float64 `json:"score"`
	MatchStrength int     `json:"match_strength"`
}

// DataProvider defines how the engine reads catalogue and user data.
// This is typically implemented by the database layer.
type DataProvider interface {
	// ListMovies returns every movie in the catalogue.
	ListMovies(ctx context.Context) ([]RawMovie, error)

	// GetRatingHistory returns the user's ratings joined with movie metadata.
	GetRatingHistory(ctx context.Context, userID int64) ([]RatedMovie, error)

	// GetRatedMovieIDs returns the ids of every movie the user has rated.
	GetRatedMovieIDs(ctx context.Context, userID int64) ([]int64, error)
}
