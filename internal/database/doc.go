// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

// Package database provides the DuckDB-backed store for the CineArchive
// catalogue, user accounts and ratings.
//
// # Architecture
//
// Core Database Operations:
//   - database.go: Connection lifecycle (open, initialize, checkpoint, close)
//   - database_schema.go: Sequences, tables, the top_rated_movies view and indexes
//   - database_connection.go: Pool configuration and error classification
//   - database_utils.go: Profiling, context timeouts and query instrumentation
//   - query_helpers.go: Filter builder and generic row scanning
//
// Domain Operations:
//   - movies.go: Search, genre averages, top rated, insert and bulk upsert
//   - users.go: Registration, bcrypt authentication and admin bootstrap
//   - ratings.go: Transactional rating upsert and per-user reads
//   - storage.go: Catalogue snapshot and table storage report
//   - playground.go: Read-only SQL execution in a rolled back transaction
//   - seed.go: Demo catalogue for empty databases
//   - provider.go: recommend.DataProvider adapter behind a circuit breaker
//
// # Schema
//
//	movies(movie_id, imdb_id UNIQUE, title, genre, language, release_year,
//	       duration_minutes, director, actor_1..3, imdb_rating, votes, created_at)
//	users(user_id, name, email UNIQUE, password_hash, region, age_group,
//	      is_admin, created_at, last_login)
//	ratings(rating_id, user_id, movie_id, rating CHECK 0..10, rated_at,
//	        UNIQUE(user_id, movie_id))
//
// Genre is a comma separated string such as "Action, Drama". Grouping by
// genre in SQL groups by the whole string; per-genre scoring is done by
// the recommend package.
//
// # Error Handling
//
// Sentinel errors (ErrNotFound, ErrDuplicateEmail, ErrInvalidCredentials,
// ErrInvalidRating, ErrDuplicateIMDbID, ErrEmptyQuery, ErrReadOnlyQuery,
// ErrMultipleStatements, ErrProtectedObject) are returned directly or wrapped with %w and
// should be checked with errors.Is. Their messages are safe to show to
// users. All other failures are wrapped with the operation name.
//
// # Thread Safety
//
// DB is safe for concurrent use. Every method applies a 30 second timeout
// when the caller's context has no deadline.
package database
