// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package catalogimport

import (
	"errors"
	"math"
	"testing"

	"github.com/goccy/go-json"
)

func TestMapper_ToMovieRequest(t *testing.T) {
	mapper := NewMapper()

	t.Run("cleans loosely typed values", func(t *testing.T) {
		rec := &CatalogueRecord{
			IMDbID:          " tt1187043 ",
			Title:           " 3 Idiots ",
			Genre:           " Comedy, Drama ",
			Language:        "HINDI",
			ReleaseYear:     float64(2009),
			DurationMinutes: "170 min",
			IMDbRating:      "8.44",
			Votes:           "4,20,000",
			Actors:          "Aamir Khan, Madhavan, Sharman Joshi, Kareena Kapoor",
		}

		req, err := mapper.ToMovieRequest(rec)
		if err != nil {
			t.Fatalf("ToMovieRequest() error = %v", err)
		}
		if req.IMDbID != "tt1187043" || req.Title != "3 Idiots" || req.Genre != "Comedy, Drama" {
			t.Errorf("text fields = %q %q %q", req.IMDbID, req.Title, req.Genre)
		}
		if req.Language != "Hindi" {
			t.Errorf("Language = %q, want Hindi", req.Language)
		}
		if req.ReleaseYear == nil || *req.ReleaseYear != 2009 {
			t.Errorf("ReleaseYear = %v, want 2009", req.ReleaseYear)
		}
		if req.DurationMinutes == nil || *req.DurationMinutes != 170 {
			t.Errorf("DurationMinutes = %v, want 170", req.DurationMinutes)
		}
		if req.IMDbRating == nil || *req.IMDbRating != 8.4 {
			t.Errorf("IMDbRating = %v, want 8.4", req.IMDbRating)
		}
		if req.Votes == nil || *req.Votes != 420000 {
			t.Errorf("Votes = %v, want 420000", req.Votes)
		}
		if req.Actor1 != "Aamir Khan" || req.Actor2 != "Madhavan" || req.Actor3 != "Sharman Joshi" {
			t.Errorf("cast = %q %q %q", req.Actor1, req.Actor2, req.Actor3)
		}
	})

	t.Run("explicit actors win over cast list", func(t *testing.T) {
		req, err := mapper.ToMovieRequest(&CatalogueRecord{
			IMDbID: "tt1", Title: "X", Actor1: "Tabu", Actors: "Someone Else",
		})
		if err != nil {
			t.Fatalf("ToMovieRequest() error = %v", err)
		}
		if req.Actor1 != "Tabu" || req.Actor2 != "" {
			t.Errorf("cast = %q %q", req.Actor1, req.Actor2)
		}
	})

	t.Run("missing values become nil", func(t *testing.T) {
		req, err := mapper.ToMovieRequest(&CatalogueRecord{
			IMDbID: "tt2", Title: "Y", ReleaseYear: "-", DurationMinutes: "-", IMDbRating: nil, Votes: "",
		})
		if err != nil {
			t.Fatalf("ToMovieRequest() error = %v", err)
		}
		if req.ReleaseYear != nil || req.DurationMinutes != nil || req.IMDbRating != nil || req.Votes != nil {
			t.Errorf("expected nil numerics: %+v", req)
		}
	})

	t.Run("required fields", func(t *testing.T) {
		if _, err := mapper.ToMovieRequest(&CatalogueRecord{Title: "No Id"}); !errors.Is(err, ErrMissingIMDbID) {
			t.Errorf("missing id error = %v", err)
		}
		if _, err := mapper.ToMovieRequest(&CatalogueRecord{IMDbID: "tt3", Title: "  "}); !errors.Is(err, ErrMissingTitle) {
			t.Errorf("missing title error = %v", err)
		}
	})
}

func TestCleaners(t *testing.T) {
	intp := func(v int) *int { return &v }

	yearTests := []struct {
		in   any
		want *int
	}{
		{"2001", intp(2001)},
		{float64(1975), intp(1975)},
		{"1899", nil},
		{"2101", nil},
		{"2001.5", nil},
		{"20O1", nil},
		{nil, nil},
	}
	for _, tt := range yearTests {
		got := cleanYear(tt.in)
		if (got == nil) != (tt.want == nil) || (got != nil && *got != *tt.want) {
			t.Errorf("cleanYear(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	durationTests := []struct {
		in   any
		want *int
	}{
		{"142 min", intp(142)},
		{float64(95), intp(95)},
		{"2h", intp(2)},
		{"min", nil},
		{"0", nil},
		{"-", nil},
	}
	for _, tt := range durationTests {
		got := cleanDuration(tt.in)
		if (got == nil) != (tt.want == nil) || (got != nil && *got != *tt.want) {
			t.Errorf("cleanDuration(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	ratingTests := []struct {
		in   any
		want float64
		ok   bool
	}{
		{"7.25", 7.3, true},
		{float64(9), 9, true},
		{"10.04", 10, true},
		{"10.5", 0, false},
		{"-1", 0, false},
		{"n/a", 0, false},
		{math.NaN(), 0, false},
	}
	for _, tt := range ratingTests {
		got := cleanRating(tt.in)
		if (got != nil) != tt.ok || (got != nil && *got != tt.want) {
			t.Errorf("cleanRating(%v) = %v, want %v (ok=%v)", tt.in, got, tt.want, tt.ok)
		}
	}

	voteTests := []struct {
		in   any
		want int64
		ok   bool
	}{
		{"1,234", 1234, true},
		{float64(56789), 56789, true},
		{json.Number("42"), 42, true},
		{"-5", 0, false},
		{"12.5", 0, false},
	}
	for _, tt := range voteTests {
		got := cleanVotes(tt.in)
		if (got != nil) != tt.ok || (got != nil && *got != tt.want) {
			t.Errorf("cleanVotes(%v) = %v, want %v (ok=%v)", tt.in, got, tt.want, tt.ok)
		}
	}
}

func TestMapper_FilterValidRecords(t *testing.T) {
	mapper := NewMapper()

	first := []SourceRecord{
		{Line: 1, Record: &CatalogueRecord{IMDbID: "tt1", Title: "First"}},
		{Line: 2, Record: &CatalogueRecord{IMDbID: "tt1", Title: "Duplicate"}},
		{Line: 3, Record: &CatalogueRecord{IMDbID: "tt2"}},
		{Line: 4, Err: errors.New("bad json")},
		{Line: 5, Record: &CatalogueRecord{IMDbID: "tt3", Title: "Third"}},
	}
	valid, skipped, malformed := mapper.FilterValidRecords(first)
	if len(valid) != 2 || skipped != 2 || malformed != 1 {
		t.Fatalf("FilterValidRecords() = %d valid, %d skipped, %d malformed", len(valid), skipped, malformed)
	}
	if valid[0].Title != "First" {
		t.Errorf("first occurrence should win, got %q", valid[0].Title)
	}

	second := []SourceRecord{{Line: 6, Record: &CatalogueRecord{IMDbID: "tt3", Title: "Later"}}}
	valid, skipped, _ = mapper.FilterValidRecords(second)
	if len(valid) != 0 || skipped != 1 {
		t.Errorf("dedup should span batches: %d valid, %d skipped", len(valid), skipped)
	}

	mapper.Reset()
	valid, _, _ = mapper.FilterValidRecords(second)
	if len(valid) != 1 {
		t.Error("Reset() should forget seen ids")
	}
}
