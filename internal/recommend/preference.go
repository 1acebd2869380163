// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package recommend

import "sort"

// Preference score weights.
const (
	PreferenceAvgWeight   = 0.7
	PreferenceCountWeight = 0.3
)

type genreAccumulator struct {
	genre string
	sum   float64
	count int
	order int
}

// BuildPreferenceProfile aggregates a rating history into per-genre
// affinities. Each rated movie contributes its rating once to every
// distinct genre in its genre list:
//
//	avg_rating       = sum / count
//	preference_score = avg_rating·0.7 + count·0.3
//
// The profile is sorted by descending preference score. Equal scores keep
// the order in which genres were first seen in the history.
func BuildPreferenceProfile(history []RatedMovie) PreferenceProfile {
	if len(history) == 0 {
		return PreferenceProfile{}
	}

	acc := make(map[string]*genreAccumulator)
	for i := range history {
		for _, g := range splitGenres(history[i].Genre) {
			a, ok := acc[g]
			if !ok {
				a = &genreAccumulator{genre: g, order: len(acc)}
				acc[g] = a
			}
			a.sum += history[i].Rating
			a.count++
		}
	}

	ordered := make([]*genreAccumulator, 0, len(acc))
	for _, a := range acc {
		ordered = append(ordered, a)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].order < ordered[j].order
	})

	profile := make(PreferenceProfile, 0, len(ordered))
	for _, a := range ordered {
		avg := a.sum / float64(a.count)
		profile = append(profile, GenreAffinity{
			Genre:           a.genre,
			Count:           a.count,
			AvgRating:       avg,
			PreferenceScore: avg*PreferenceAvgWeight + float64(a.count)*PreferenceCountWeight,
		})
	}

	sort.SliceStable(profile, func(i, j int) bool {
		return profile[i].PreferenceScore > profile[j].PreferenceScore
	})
	return profile
}
