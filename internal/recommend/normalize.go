// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package recommend

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UnknownLanguage is used when a movie has no language.
const UnknownLanguage = "Unknown"

// GenreSeparator joins normalized genre names.
const GenreSeparator = ", "

const (
	minReleaseYear = 1900
	maxReleaseYear = 2100
	maxRating      = 10.0
)

// Normalize cleans raw store rows into movie records. It never fails:
// malformed values become empty strings or nil metrics. Input order is
// preserved, which is the tie-break order used by every ranking function.
func Normalize(rows []RawMovie) []MovieRecord {
	out := make([]MovieRecord, 0, len(rows))
	for i := range rows {
		out = append(out, normalizeRow(&rows[i]))
	}
	return out
}

func normalizeRow(row *RawMovie) MovieRecord {
	rec := MovieRecord{
		MovieID:         row.MovieID,
		IMDbID:          cleanText(row.IMDbID),
		Title:           cleanText(row.Title),
		Genre:           NormalizeGenres(cleanText(row.Genre)),
		Director:        cleanText(row.Director),
		Actor1:          cleanText(row.Actor1),
		Actor2:          cleanText(row.Actor2),
		Actor3:          cleanText(row.Actor3),
		Language:        cleanText(row.Language),
		ReleaseYear:     parseYear(row.ReleaseYear),
		DurationMinutes: parseDuration(row.DurationMinutes),
		IMDbRating:      parseRating(row.IMDbRating),
		Votes:           parseVotes(row.Votes),
	}
	if rec.Language == "" {
		rec.Language = UnknownLanguage
	}
	rec.Tokens = BuildTokenSet(&rec)
	return rec
}

// NormalizeGenres splits a raw genre list on '|' or ',', title-cases each
// entry, drops blanks and duplicates (first occurrence wins), and joins the
// result with ", ".
func NormalizeGenres(raw string) string {
	return strings.Join(splitGenres(raw), GenreSeparator)
}

// splitGenres returns the distinct title-cased genre names of raw in
// first-seen order.
func splitGenres(raw string) []string {
	parts := splitTokens(raw)
	if len(parts) == 0 {
		return nil
	}
	caser := cases.Title(language.Und)
	seen := make(map[string]struct{}, len(parts))
	genres := make([]string, 0, len(parts))
	for _, p := range parts {
		g := caser.String(p)
		key := strings.ToLower(g)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		genres = append(genres, g)
	}
	return genres
}

// splitTokens splits on '|' and ',' and trims each part. Blank parts are
// dropped.
func splitTokens(raw string) []string {
	if raw == "" {
		return nil
	}
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '|' || r == ','
	})
	out := fields[:0]
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func cleanText(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func parseRating(v any) *float64 {
	f, ok := toFloat(v)
	if !ok || f < 0 || f > maxRating {
		return nil
	}
	return &f
}

// parseVotes drops counts that do not fit an int64. float64(MaxInt64)
// rounds up to 2^63, so the bound is exclusive.
func parseVotes(v any) *int64 {
	f, ok := toFloat(v)
	if !ok || f < 0 || f >= math.MaxInt64 {
		return nil
	}
	n := int64(f)
	return &n
}

func parseYear(v any) *int {
	f, ok := toFloat(v)
	if !ok || f != math.Trunc(f) || f < minReleaseYear || f > maxReleaseYear {
		return nil
	}
	y := int(f)
	return &y
}

// parseDuration accepts plain numbers and strings such as "142 min".
func parseDuration(v any) *int {
	if f, ok := toFloat(v); ok {
		if f < 0 || f > math.MaxInt32 {
			return nil
		}
		n := int(f)
		return &n
	}
	s, ok := asString(v)
	if !ok {
		return nil
	}
	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return nil
	}
	n, err := strconv.ParseInt(digits.String(), 10, 32)
	if err != nil {
		return nil
	}
	m := int(n)
	return &m
}

// toFloat coerces the loosely typed numeric values produced by the store
// and CSV imports. Strings may carry thousands separators. "-" and blanks
// count as absent, as do NaN and infinities.
func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case *float64:
		if n == nil {
			return 0, false
		}
		f = *n
	case *int64:
		if n == nil {
			return 0, false
		}
		f = float64(*n)
	default:
		s, ok := asString(v)
		if !ok {
			return 0, false
		}
		s = strings.ReplaceAll(s, ",", "")
		if s == "" || s == "-" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s), true
	case *string:
		if s == nil {
			return "", false
		}
		return strings.TrimSpace(*s), true
	case []byte:
		return strings.TrimSpace(string(s)), true
	case fmt.Stringer:
		return strings.TrimSpace(s.String()), true
	default:
		return "", false
	}
}
