// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

/*
Package config provides centralized configuration management for CineArchive.

Configuration is layered with Koanf v2: built-in defaults, then an optional
YAML file, then environment variables. The file is taken from CONFIG_PATH or
the first of config.yaml, config.yml and /etc/cinearchive/config.yaml that
exists.

# Environment Variables

Database (DatabaseConfig):
  - DUCKDB_PATH: database file path (default: /data/cinearchive.duckdb)
  - DUCKDB_MAX_MEMORY: DuckDB memory limit (default: 1GB)
  - DUCKDB_THREADS: worker threads, 0 = NumCPU
  - SEED_DEMO_DATA: insert the demo catalogue into an empty database

Server (ServerConfig):
  - HTTP_HOST, HTTP_PORT (default: 0.0.0.0:8080), HTTP_TIMEOUT (default: 30s)
  - ENVIRONMENT: development or production

Security (SecurityConfig):
  - JWT_SECRET (required, min 32 chars), SESSION_TIMEOUT (default: 24h)
  - ADMIN_NAME, ADMIN_EMAIL, ADMIN_PASSWORD
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - CORS_ORIGINS (comma-separated), LOGIN_ATTEMPTS_PER_MINUTE

Recommendations (RecommendConfig):
  - RECOMMEND_CORPUS_CACHE_TTL, RECOMMEND_REFRESH_INTERVAL
  - RECOMMEND_DEFAULT_LIMIT, RECOMMEND_MAX_LIMIT, RECOMMEND_MIN_VOTES

Playground (PlaygroundConfig):
  - PLAYGROUND_ENABLED, PLAYGROUND_MAX_ROWS, PLAYGROUND_TIMEOUT

Logging (LoggingConfig):
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal().Err(err).Msg("Failed to load configuration")
	}

Validation errors name the environment variable at fault, for example
"HTTP_PORT must be between 1 and 65535".
*/
package config
