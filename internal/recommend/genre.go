// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package recommend

import (
	"fmt"
	"sort"
	"strings"
)

// ByGenre returns movies whose normalized genre string contains genre
// (case-insensitive substring) and whose rating is at least minRating.
// Movies without a rating score as 0 here. Results are ordered by rating,
// then votes, both descending.
//
// A blank genre matches nothing. A negative limit wraps ErrInvalidArgument.
func ByGenre(corpus []MovieRecord, genre string, minRating float64, limit int) ([]MovieRecord, error) {
	if limit < 0 {
		return []MovieRecord{}, fmt.Errorf("%w: limit must be >= 0, got %d", ErrInvalidArgument, limit)
	}
	needle := strings.ToLower(strings.TrimSpace(genre))
	if needle == "" || limit == 0 {
		return []MovieRecord{}, nil
	}

	matches := make([]MovieRecord, 0)
	for i := range corpus {
		if !strings.Contains(strings.ToLower(corpus[i].Genre), needle) {
			continue
		}
		if corpus[i].Rating() < minRating {
			continue
		}
		matches = append(matches, corpus[i])
	}

	sort.SliceStable(matches, func(i, j int) bool {
		ri, rj := matches[i].Rating(), matches[j].Rating()
		if ri != rj {
			return ri > rj
		}
		return matches[i].VoteCount() > matches[j].VoteCount()
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}
