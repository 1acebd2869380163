// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

/*
Package models defines data structures shared by the store, the HTTP API and
the operator CLI.

Model Categories:

 1. Database Models:
    - Movie: one catalogue row
    - User: an account (password hash never serialized)
    - UserRating: a rating joined with the rated movie

 2. Request Models (validated with go-playground/validator tags):
    - RegisterRequest, LoginRequest
    - RatingRequest
    - AddMovieRequest
    - PlaygroundRequest

 3. Reporting Models:
    - Snapshot: catalogue counters for the dashboard
    - GenreAverage: average rating per genre string
    - StorageReport / TableStorage: per-table size estimates
    - PlaygroundResult: rows returned by a read-only query

Recommendation results (SimilarMovie, PopularResult, Recommendation) live in
the recommend package next to the scoring code that produces them.
*/
package models
