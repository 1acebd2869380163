// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package recommend

import (
	"fmt"
	"sort"
)

// CorpusMean returns the mean IMDb rating over movies that have one.
// It is 0 when no movie is rated.
func CorpusMean(corpus []MovieRecord) float64 {
	var sum float64
	var n int
	for i := range corpus {
		if corpus[i].HasRating() {
			sum += corpus[i].Rating()
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// BayesianScore blends a movie's rating r with the corpus mean c, weighted
// by its vote count v against the vote floor m:
//
//	(v/(v+m))·r + (m/(v+m))·c
func BayesianScore(r float64, v int64, m int64, c float64) float64 {
	vf, mf := float64(v), float64(m)
	return (vf/(vf+mf))*r + (mf/(vf+mf))*c
}

// Popular ranks the corpus by Bayesian-average score. Only movies with at
// least minVotes votes are eligible. When that leaves nothing, the floor is
// dropped, the whole corpus is ranked and FloorDropped is set on the result.
// Ties on score are broken by votes, then by corpus order.
//
// minVotes below 1 or a negative limit wraps ErrInvalidArgument.
func Popular(corpus []MovieRecord, minVotes int64, limit int) (PopularResult, error) {
	result := PopularResult{Movies: []PopularMovie{}, MinVotes: minVotes}
	if minVotes < 1 {
		return result, fmt.Errorf("%w: minVotes must be >= 1, got %d", ErrInvalidArgument, minVotes)
	}
	if limit < 0 {
		return result, fmt.Errorf("%w: limit must be >= 0, got %d", ErrInvalidArgument, limit)
	}
	if len(corpus) == 0 {
		return result, nil
	}

	mean := CorpusMean(corpus)
	result.CorpusMean = mean

	eligible := make([]int, 0, len(corpus))
	for i := range corpus {
		if corpus[i].VoteCount() >= minVotes {
			eligible = append(eligible, i)
		}
	}
	if len(eligible) == 0 {
		result.FloorDropped = true
		for i := range corpus {
			eligible = append(eligible, i)
		}
	}

	ranked := make([]PopularMovie, 0, len(eligible))
	for _, i := range eligible {
		rec := corpus[i]
		ranked = append(ranked, PopularMovie{
			MovieRecord:     rec,
			PopularityScore: BayesianScore(rec.Rating(), rec.VoteCount(), minVotes, mean),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].PopularityScore != ranked[j].PopularityScore {
			return ranked[i].PopularityScore > ranked[j].PopularityScore
		}
		return ranked[i].VoteCount() > ranked[j].VoteCount()
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	result.Movies = ranked
	return result, nil
}
