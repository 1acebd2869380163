// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package catalogimport

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/anshulrawat2507/CineArchive/internal/models"
)

var (
	// ErrMissingTitle is returned for records without a usable title.
	ErrMissingTitle = errors.New("missing title")

	// ErrMissingIMDbID is returned for records without an IMDb id.
	ErrMissingIMDbID = errors.New("missing imdb_id")

	// ErrDuplicateRecord is returned for a second record with an IMDb id
	// already seen in this import.
	ErrDuplicateRecord = errors.New("duplicate imdb_id")
)

const (
	minReleaseYear = 1900
	maxReleaseYear = 2100
)

// Mapper converts raw catalogue records to insert requests. It remembers
// the IMDb ids it has accepted so the first occurrence of an id wins
// across batches. A Mapper is not safe for concurrent use.
type Mapper struct {
	seen  map[string]struct{}
	title cases.Caser
}

// NewMapper creates a new field mapper.
func NewMapper() *Mapper {
	return &Mapper{
		seen:  make(map[string]struct{}),
		title: cases.Title(language.Und),
	}
}

// Reset forgets the ids seen so far.
func (m *Mapper) Reset() {
	m.seen = make(map[string]struct{})
}

// ToMovieRequest cleans one record. It does not consult or update the
// dedup set.
func (m *Mapper) ToMovieRequest(rec *CatalogueRecord) (*models.AddMovieRequest, error) {
	imdbID := textValue(rec.IMDbID)
	if imdbID == "" {
		return nil, ErrMissingIMDbID
	}
	title := textValue(rec.Title)
	if title == "" {
		return nil, ErrMissingTitle
	}

	req := &models.AddMovieRequest{
		IMDbID:          imdbID,
		Title:           title,
		Genre:           textValue(rec.Genre),
		Language:        m.title.String(textValue(rec.Language)),
		ReleaseYear:     cleanYear(rec.ReleaseYear),
		DurationMinutes: cleanDuration(rec.DurationMinutes),
		Director:        textValue(rec.Director),
		Actor1:          textValue(rec.Actor1),
		Actor2:          textValue(rec.Actor2),
		Actor3:          textValue(rec.Actor3),
		IMDbRating:      cleanRating(rec.IMDbRating),
		Votes:           cleanVotes(rec.Votes),
	}

	if req.Actor1 == "" && req.Actor2 == "" && req.Actor3 == "" {
		cast := splitCast(textValue(rec.Actors))
		slots := []*string{&req.Actor1, &req.Actor2, &req.Actor3}
		for i := 0; i < len(cast) && i < len(slots); i++ {
			*slots[i] = cast[i]
		}
	}
	return req, nil
}

// FilterValidRecords cleans a batch. It returns the accepted requests,
// the number of records skipped by cleaning or dedup, and the number of
// malformed lines.
func (m *Mapper) FilterValidRecords(records []SourceRecord) (valid []models.AddMovieRequest, skipped, malformed int) {
	valid = make([]models.AddMovieRequest, 0, len(records))
	for _, rec := range records {
		if rec.Err != nil || rec.Record == nil {
			malformed++
			continue
		}
		req, err := m.ToMovieRequest(rec.Record)
		if err != nil {
			skipped++
			continue
		}
		if _, dup := m.seen[req.IMDbID]; dup {
			skipped++
			continue
		}
		m.seen[req.IMDbID] = struct{}{}
		valid = append(valid, *req)
	}
	return valid, skipped, malformed
}

// textValue renders a loosely typed JSON value as trimmed text. Null and
// "-" become "".
func textValue(v any) string {
	var s string
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		s = val
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return ""
		}
		s = strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		s = val.String()
	case bool:
		s = strconv.FormatBool(val)
	default:
		s = fmt.Sprint(val)
	}
	s = strings.TrimSpace(s)
	if s == "-" {
		return ""
	}
	return s
}

// cleanDuration keeps the digits of a duration such as "142 min".
func cleanDuration(v any) *int {
	var digits strings.Builder
	for _, r := range textValue(v) {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 || digits.Len() > 6 {
		return nil
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil || n == 0 {
		return nil
	}
	return &n
}

// cleanRating parses a rating, rounds it to one decimal and drops values
// outside 0..10.
func cleanRating(v any) *float64 {
	s := textValue(v)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return nil
	}
	f = math.Round(f*10) / 10
	if f < 0 || f > 10 {
		return nil
	}
	return &f
}

// cleanVotes parses a vote count that may contain thousands separators.
func cleanVotes(v any) *int64 {
	s := strings.ReplaceAll(textValue(v), ",", "")
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

// cleanYear accepts plain four-digit style years within 1900..2100.
func cleanYear(v any) *int {
	s := textValue(v)
	if s == "" {
		return nil
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return nil
		}
	}
	year, err := strconv.Atoi(s)
	if err != nil || year < minReleaseYear || year > maxReleaseYear {
		return nil
	}
	return &year
}

func splitCast(actors string) []string {
	if actors == "" {
		return nil
	}
	parts := strings.Split(actors, ",")
	cast := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			cast = append(cast, p)
		}
	}
	return cast
}
