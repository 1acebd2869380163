// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

// Package recommend implements the movie recommendation scoring core.
//
// # Architecture
//
// The core is a set of pure functions over an in-memory corpus of
// normalized movie records:
//
//   - Normalize: coerces raw store rows into MovieRecord values
//   - BuildTokenSet: lowercase tag set per movie (genre, cast, director, language, year)
//   - SimilarTo: Jaccard nearest neighbours over token sets
//   - Popular: Bayesian-average ranking against the corpus mean
//   - ByGenre: substring genre filter with an inclusive rating floor
//   - BuildPreferenceProfile: per-user genre affinity from rating history
//   - RecommendFor: scores unseen movies against the user's top genres
//
// None of these hold state between calls. Each call works on the slice it
// is given and never mutates it.
//
// Engine wraps the functions for request handlers. It fetches a snapshot
// through a DataProvider, normalizes it, and optionally keeps the
// normalized corpus for a configurable TTL.
//
// # Errors
//
// Empty results are never errors. Malformed numeric or text fields are
// coerced to safe defaults. Caller contract violations (unknown movie id,
// negative limit, vote floor below one) wrap ErrNotFound or
// ErrInvalidArgument and can be checked with errors.Is.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), provider, logger)
//	if err != nil {
//	    return err
//	}
//	similar, err := engine.Similar(ctx, movieID, 10)
//	recs, err := engine.Recommend(ctx, userID, 20)
package recommend
