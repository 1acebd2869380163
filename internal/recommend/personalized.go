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

// Personalized scoring parameters.
const (
	TopGenreCount         = 3
	VotesNormalizer       = 10000.0
	RecommendRatingWeight = 0.7
	RecommendMatchWeight  = 0.2
	RecommendVotesWeight  = 1.5
)

// RecommendFor scores movies the user has not rated against the top
// genres of their profile. match_strength counts how many of the top three
// genres occur (case-insensitive substring) in a candidate's genre string;
// candidates with no match are dropped. The score is
//
//	rating·0.7 + match_strength·0.2 + min(votes/10000, 1)·1.5
//
// and results are ordered by score, rating, then votes, all descending.
//
// An empty profile, a corpus without matching genres, or a fully excluded
// corpus yields an empty result. userID <= 0 or a negative limit wraps
// ErrInvalidArgument.
func RecommendFor(userID int64, corpus []MovieRecord, profile PreferenceProfile, excludeIDs []int64, limit int) ([]Recommendation, error) {
	if userID <= 0 {
		return []Recommendation{}, fmt.Errorf("%w: userID must be positive, got %d", ErrInvalidArgument, userID)
	}
	if limit < 0 {
		return []Recommendation{}, fmt.Errorf("%w: limit must be >= 0, got %d", ErrInvalidArgument, limit)
	}

	top := profile.TopGenres(TopGenreCount)
	if len(top) == 0 || limit == 0 {
		return []Recommendation{}, nil
	}
	needles := make([]string, 0, len(top))
	for _, g := range top {
		if g = strings.ToLower(strings.TrimSpace(g)); g != "" {
			needles = append(needles, g)
		}
	}
	if len(needles) == 0 {
		return []Recommendation{}, nil
	}

	excluded := make(map[int64]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}

	recs := make([]Recommendation, 0)
	for i := range corpus {
		rec := &corpus[i]
		if _, skip := excluded[rec.MovieID]; skip {
			continue
		}
		match := matchStrength(rec.Genre, needles)
		if match == 0 {
			continue
		}
		recs = append(recs, Recommendation{
			MovieRecord:   *rec,
			Score:         PersonalizedScore(rec.Rating(), match, rec.VoteCount()),
			MatchStrength: match,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		ri, rj := recs[i].Rating(), recs[j].Rating()
		if ri != rj {
			return ri > rj
		}
		return recs[i].VoteCount() > recs[j].VoteCount()
	})

	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

// PersonalizedScore computes the RecommendFor score of one candidate.
func PersonalizedScore(rating float64, match int, votes int64) float64 {
	votesNorm := float64(votes) / VotesNormalizer
	if votesNorm > 1 {
		votesNorm = 1
	}
	return rating*RecommendRatingWeight + float64(match)*RecommendMatchWeight + votesNorm*RecommendVotesWeight
}

func matchStrength(genre string, needles []string) int {
	lower := strings.ToLower(genre)
	n := 0
	for _, needle := range needles {
		if strings.Contains(lower, needle) {
			n++
		}
	}
	return n
}
