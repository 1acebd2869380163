// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

/*
Package api provides the HTTP API of CineArchive.

Routes are served by a chi router (see Router.Setup). Every response uses
the same envelope:

	{
	  "success": true,
	  "data": { ... },
	  "error": {"code": "NOT_FOUND", "message": "...", "request_id": "..."},
	  "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 3}
	}

Error codes: BAD_REQUEST, UNAUTHORIZED, FORBIDDEN, NOT_FOUND, CONFLICT,
VALIDATION_ERROR, TOO_MANY_REQUESTS, DATABASE_ERROR, INTERNAL_ERROR and
SERVICE_UNAVAILABLE.

# Endpoints

Public:

	GET  /api/v1/health, /health/live, /health/ready
	POST /api/v1/auth/register
	POST /api/v1/auth/login
	GET  /metrics

Authenticated (Authorization: Bearer <jwt>, or the token cookie set by login):

	GET  /api/v1/auth/me
	GET  /api/v1/stats
	GET  /api/v1/movies/search?title=&language=&min_rating=&limit=
	GET  /api/v1/movies/genres/averages?limit=
	GET  /api/v1/movies/top-rated?min_rating=&limit=
	GET  /api/v1/movies/by-genre?genre=&min_rating=&limit=
	GET  /api/v1/recommendations/similar/{movieID}?limit=
	GET  /api/v1/recommendations/popular?min_votes=&limit=
	GET  /api/v1/recommendations/me?limit=
	GET  /api/v1/recommendations/profile
	GET  /api/v1/ratings
	PUT  /api/v1/ratings

Admin role:

	POST /api/v1/playground/query
	POST /api/v1/admin/movies
	GET  /api/v1/admin/storage
	POST /api/v1/admin/cache/invalidate
	GET  /api/v1/admin/performance

Handlers depend on the Store interface rather than the DuckDB type, so
tests can substitute an in-memory fake.
*/
package api
