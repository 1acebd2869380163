// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package recommend

import (
	"errors"
	"math"
	"testing"
)

func TestPopularScenario(t *testing.T) {
	corpus := []MovieRecord{
		testMovie(1, "Drama,Action", 8.0, 500),
		testMovie(2, "Drama", 7.0, 50),
	}

	got, err := Popular(corpus, 100, 5)
	if err != nil {
		t.Fatalf("Popular() error = %v", err)
	}
	if got.FloorDropped {
		t.Error("FloorDropped = true, want false")
	}
	if math.Abs(got.CorpusMean-7.5) > 1e-9 {
		t.Errorf("CorpusMean = %v, want 7.5", got.CorpusMean)
	}
	if len(got.Movies) != 1 || got.Movies[0].MovieID != 1 {
		t.Fatalf("Popular() = %v, want only movie 1", ids(got.Movies))
	}

	want := (500.0/600.0)*8.0 + (100.0/600.0)*7.5
	if math.Abs(got.Movies[0].PopularityScore-want) > 1e-9 {
		t.Errorf("score = %v, want %v", got.Movies[0].PopularityScore, want)
	}
	if math.Abs(got.Movies[0].PopularityScore-7.92) > 0.01 {
		t.Errorf("score = %v, want ≈7.92", got.Movies[0].PopularityScore)
	}
}

func TestPopularFloorFallback(t *testing.T) {
	corpus := []MovieRecord{
		testMovie(1, "Drama", 6.0, 10),
		testMovie(2, "Drama", 9.0, 20),
	}

	got, err := Popular(corpus, 1000, 5)
	if err != nil {
		t.Fatalf("Popular() error = %v", err)
	}
	if !got.FloorDropped {
		t.Error("FloorDropped = false, want true when nothing meets the floor")
	}
	if !equalIDs(ids(got.Movies), []int64{2, 1}) {
		t.Errorf("Popular() = %v, want [2 1]", ids(got.Movies))
	}
}

func TestPopularTieBreaks(t *testing.T) {
	// All ratings equal the corpus mean, so every score is 7.
	corpus := []MovieRecord{
		testMovie(1, "", 7.0, 100),
		testMovie(2, "", 7.0, 300),
		testMovie(3, "", 7.0, 100),
	}

	got, err := Popular(corpus, 1, 10)
	if err != nil {
		t.Fatalf("Popular() error = %v", err)
	}
	if !equalIDs(ids(got.Movies), []int64{2, 1, 3}) {
		t.Errorf("Popular() = %v, want [2 1 3]", ids(got.Movies))
	}
}

func TestPopularAbsentRatings(t *testing.T) {
	unrated := testMovie(3, "", 0, 5000)
	unrated.IMDbRating = nil
	corpus := []MovieRecord{
		testMovie(1, "", 8.0, 5000),
		testMovie(2, "", 6.0, 5000),
		unrated,
	}

	got, err := Popular(corpus, 100, 10)
	if err != nil {
		t.Fatalf("Popular() error = %v", err)
	}
	if math.Abs(got.CorpusMean-7.0) > 1e-9 {
		t.Errorf("CorpusMean = %v, want 7 (absent ratings ignored)", got.CorpusMean)
	}
	if got.Movies[len(got.Movies)-1].MovieID != 3 {
		t.Errorf("unrated movie should score lowest, got order %v", ids(got.Movies))
	}
}

func TestPopularArguments(t *testing.T) {
	corpus := []MovieRecord{testMovie(1, "", 8, 500)}

	tests := []struct {
		name     string
		minVotes int64
		limit    int
		wantErr  error
		wantLen  int
	}{
		{"zero floor", 0, 5, ErrInvalidArgument, 0},
		{"negative floor", -3, 5, ErrInvalidArgument, 0},
		{"negative limit", 1, -1, ErrInvalidArgument, 0},
		{"zero limit", 1, 0, nil, 0},
		{"valid", 1, 5, nil, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Popular(corpus, tt.minVotes, tt.limit)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if len(got.Movies) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(got.Movies), tt.wantLen)
			}
		})
	}

	empty, err := Popular(nil, 10, 5)
	if err != nil || len(empty.Movies) != 0 {
		t.Errorf("empty corpus: got %v, %v", empty.Movies, err)
	}
}

func TestBayesianScoreMonotonic(t *testing.T) {
	const m, c = 100, 7.0

	prev := math.Inf(-1)
	for r := 0.0; r <= 10; r += 0.5 {
		s := BayesianScore(r, 250, m, c)
		if s < prev {
			t.Errorf("score decreased with rating: r=%v s=%v prev=%v", r, s, prev)
		}
		prev = s
	}

	prev = math.Inf(-1)
	for v := int64(0); v <= 100000; v += 500 {
		s := BayesianScore(8.5, v, m, c)
		if s < prev {
			t.Errorf("score decreased with votes above mean: v=%d s=%v prev=%v", v, s, prev)
		}
		prev = s
	}
}
