// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package database

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"
)

func TestUpsertRating(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	user := insertTestUser(t, db, "Neha", "neha@example.com")
	movieID := insertTestMovie(t, db, "tt1", "Barfi!", "Comedy, Drama", "Hindi", ptr(8.1), nil)

	if err := db.UpsertRating(ctx, user.ID, movieID, 7.25); err != nil {
		t.Fatalf("UpsertRating() error: %v", err)
	}
	first, err := db.GetUserRatings(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserRatings() error: %v", err)
	}
	if len(first) != 1 || first[0].UserRating != 7.3 {
		t.Fatalf("first rating = %+v, want one rating of 7.3", first)
	}

	time.Sleep(5 * time.Millisecond)
	if err := db.UpsertRating(ctx, user.ID, movieID, 9); err != nil {
		t.Fatalf("UpsertRating(update) error: %v", err)
	}
	second, err := db.GetUserRatings(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserRatings() error: %v", err)
	}
	if len(second) != 1 {
		t.Fatalf("upsert created %d rows, want 1", len(second))
	}
	if second[0].UserRating != 9 || second[0].Title != "Barfi!" || second[0].Genre != "Comedy, Drama" {
		t.Errorf("updated rating = %+v", second[0])
	}
	if !second[0].RatedAt.After(first[0].RatedAt) {
		t.Error("rated_at should be refreshed on update")
	}
}

func TestUpsertRating_Invalid(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	user := insertTestUser(t, db, "Vikram", "vikram@example.com")
	movieID := insertTestMovie(t, db, "tt1", "Kahaani", "Mystery, Thriller", "Hindi", nil, nil)

	for _, r := range []float64{-0.1, 10.01, math.NaN(), math.Inf(1)} {
		if err := db.UpsertRating(ctx, user.ID, movieID, r); !errors.Is(err, ErrInvalidRating) {
			t.Errorf("UpsertRating(%v) error = %v, want ErrInvalidRating", r, err)
		}
	}
	for _, r := range []float64{0, 10} {
		if err := db.UpsertRating(ctx, user.ID, movieID, r); err != nil {
			t.Errorf("UpsertRating(%v) error = %v, want nil", r, err)
		}
	}

	if err := db.UpsertRating(ctx, user.ID, movieID+99, 5); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpsertRating(unknown movie) error = %v, want ErrNotFound", err)
	}
}

func TestRatingReads(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	user := insertTestUser(t, db, "Ishaan", "ishaan@example.com")
	other := insertTestUser(t, db, "Tara", "tara@example.com")
	m1 := insertTestMovie(t, db, "tt1", "Rang De Basanti", "Drama", "Hindi", ptr(8.1), nil)
	m2 := insertTestMovie(t, db, "tt2", "Chak De! India", "Drama, Family, Sport", "Hindi", ptr(8.1), nil)
	m3 := insertTestMovie(t, db, "tt3", "Om Shanti Om", "Action, Comedy, Drama", "Hindi", ptr(6.7), nil)

	for _, r := range []struct {
		user, movie int64
		rating      float64
	}{
		{user.ID, m1, 9},
		{user.ID, m2, 8},
		{other.ID, m3, 4},
	} {
		if err := db.UpsertRating(ctx, r.user, r.movie, r.rating); err != nil {
			t.Fatalf("UpsertRating() error: %v", err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	ratings, err := db.GetUserRatings(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserRatings() error: %v", err)
	}
	if len(ratings) != 2 || ratings[0].MovieID != m2 || ratings[1].MovieID != m1 {
		t.Errorf("GetUserRatings() should be newest first: %+v", ratings)
	}

	history, err := db.GetRatingHistory(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetRatingHistory() error: %v", err)
	}
	if len(history) != 2 || history[0].Genre != "Drama, Family, Sport" || history[0].UserID != user.ID {
		t.Errorf("GetRatingHistory() = %+v", history)
	}

	ids, err := db.GetRatedMovieIDs(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetRatedMovieIDs() error: %v", err)
	}
	if len(ids) != 2 || ids[0] != m1 || ids[1] != m2 {
		t.Errorf("GetRatedMovieIDs() = %v, want [%d %d]", ids, m1, m2)
	}

	empty, err := db.GetUserRatings(ctx, 999)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Errorf("GetUserRatings(no ratings) = %v, %v; want empty slice", empty, err)
	}
}
