// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package recommend

import (
	"strconv"
	"strings"
)

// BuildTokenSet derives the descriptive tag set of a movie from its genre,
// director, cast and language fields plus the release year. Each field is
// split on '|' and ',' and every token is lowercased and trimmed.
func BuildTokenSet(rec *MovieRecord) TokenSet {
	tokens := make(TokenSet)
	for _, field := range []string{
		rec.Genre,
		rec.Director,
		rec.Actor1,
		rec.Actor2,
		rec.Actor3,
		rec.Language,
	} {
		for _, tok := range splitTokens(field) {
			tokens[strings.ToLower(tok)] = struct{}{}
		}
	}
	if rec.ReleaseYear != nil {
		tokens[strconv.Itoa(*rec.ReleaseYear)] = struct{}{}
	}
	return tokens
}

// Jaccard returns |a∩b| / |a∪b|. Two empty sets have similarity 0.
func Jaccard(a, b TokenSet) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	inter := 0
	for tok := range small {
		if large.Has(tok) {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}
