// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package recommend

import (
	"fmt"
	"sort"
)

// SimilarTo returns up to topN movies ranked by Jaccard similarity of their
// token sets to the movie with id movieID. Only candidates with positive
// similarity are returned and the base movie is never its own neighbour.
// Equal similarities keep corpus order.
//
// An empty corpus or a base movie without tokens yields an empty result.
// A movieID missing from a non-empty corpus yields an empty result and an
// error wrapping ErrNotFound. A negative topN wraps ErrInvalidArgument.
func SimilarTo(corpus []MovieRecord, movieID int64, topN int) ([]SimilarMovie, error) {
	if topN < 0 {
		return []SimilarMovie{}, fmt.Errorf("%w: topN must be >= 0, got %d", ErrInvalidArgument, topN)
	}
	if len(corpus) == 0 || topN == 0 {
		return []SimilarMovie{}, nil
	}

	base := -1
	for i := range corpus {
		if corpus[i].MovieID == movieID {
			base = i
			break
		}
	}
	if base < 0 {
		return []SimilarMovie{}, fmt.Errorf("%w: movie %d", ErrNotFound, movieID)
	}

	baseTokens := corpus[base].Tokens
	if len(baseTokens) == 0 {
		return []SimilarMovie{}, nil
	}

	results := make([]SimilarMovie, 0)
	for i := range corpus {
		if corpus[i].MovieID == movieID {
			continue
		}
		sim := Jaccard(baseTokens, corpus[i].Tokens)
		if sim <= 0 {
			continue
		}
		results = append(results, SimilarMovie{MovieRecord: corpus[i], Similarity: sim})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if len(results) > topN {
		results = results[:topN]
	}
	return results, nil
}
