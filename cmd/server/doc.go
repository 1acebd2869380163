// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

/*
Package main is the entry point for the CineArchive server.

CineArchive serves a movie catalogue over a JSON API: search, top-rated and
per-genre listings, catalogue statistics, and three recommendation modes
(similar titles, vote-weighted popularity, and personal recommendations from
a user's rating history).

# Application Architecture

Long-running components run under a Suture v4 supervisor tree:

	RootSupervisor ("cinearchive")
	├── DataSupervisor ("data-layer")
	│   └── Corpus refresh (keeps the recommendation corpus warm)
	├── BackgroundSupervisor ("background-layer")
	│   └── Login limiter sweep
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router)

Initialization order:

 1. Configuration: Koanf v2 (defaults, config file, environment)
 2. Logging: zerolog with JSON or console output
 3. Database: DuckDB schema, admin account, optional demo catalogue
 4. Recommendation engine over the database provider
 5. Authentication (JWT) and authorization (Casbin)
 6. Supervisor tree and HTTP server

# Configuration

	# Server
	HTTP_PORT=8080
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console

	# Database
	DUCKDB_PATH=/data/cinearchive.duckdb
	SEED_DEMO_DATA=true

	# Authentication
	JWT_SECRET=<32+ chars>
	ADMIN_EMAIL=admin@example.com
	ADMIN_PASSWORD=<password>

	# Recommendations
	RECOMMEND_REFRESH_INTERVAL=10m
	RECOMMEND_MIN_VOTES=1000

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains in-flight
requests for up to ten seconds, then the engine, enforcer and database close.
*/
package main
