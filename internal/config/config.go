// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package config

import (
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for every setting
//  2. Config File: Optional YAML file (config.yaml or CONFIG_PATH)
//  3. Environment Variables: Override any mapped setting
//
// Config is immutable after Load() and safe for concurrent reads.
type Config struct {
	Database   DatabaseConfig   `koanf:"database"`
	Server     ServerConfig     `koanf:"server"`
	API        APIConfig        `koanf:"api"`
	Security   SecurityConfig   `koanf:"security"`
	Logging    LoggingConfig    `koanf:"logging"`
	Recommend  RecommendConfig  `koanf:"recommend"`
	Playground PlaygroundConfig `koanf:"playground"`
	Import     ImportConfig     `koanf:"import"`
}

// DatabaseConfig holds DuckDB settings
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"`         // Number of DuckDB threads (0 = use NumCPU)
	SeedDemo  bool   `koanf:"seed_demo_data"`  // Insert the demo catalogue when the movies table is empty
	Breaker   bool   `koanf:"circuit_breaker"` // Guard recommendation reads with a circuit breaker
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // "development", "staging", "production" (default: "development")
}

// APIConfig holds API pagination settings
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// SecurityConfig holds authentication and authorization settings.
//
// Environment Variables:
//   - JWT_SECRET: HMAC signing secret (min 32 chars)
//   - SESSION_TIMEOUT: token lifetime (default: 24h)
//   - ADMIN_NAME / ADMIN_EMAIL / ADMIN_PASSWORD: account created or promoted at startup
//   - RATE_LIMIT_REQUESTS / RATE_LIMIT_WINDOW / DISABLE_RATE_LIMIT: per-IP API limit
//   - CORS_ORIGINS: comma-separated allowed origins
//   - LOGIN_ATTEMPTS_PER_MINUTE: per-account login throttle
type SecurityConfig struct {
	JWTSecret              string        `koanf:"jwt_secret"`
	SessionTimeout         time.Duration `koanf:"session_timeout"`
	AdminName              string        `koanf:"admin_name"`
	AdminEmail             string        `koanf:"admin_email"`
	AdminPassword          string        `koanf:"admin_password"`
	RateLimitReqs          int           `koanf:"rate_limit_reqs"`
	RateLimitWindow        time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled      bool          `koanf:"rate_limit_disabled"`
	CORSOrigins            []string      `koanf:"cors_origins"`
	LoginAttemptsPerMinute int           `koanf:"login_attempts_per_minute"`
}

// HasAdmin reports whether an admin account should be ensured at startup.
func (s *SecurityConfig) HasAdmin() bool {
	return s.AdminEmail != "" && s.AdminPassword != ""
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// RecommendConfig holds recommendation engine settings.
type RecommendConfig struct {
	// CorpusCacheTTL is how long a normalized corpus snapshot is reused.
	CorpusCacheTTL time.Duration `koanf:"corpus_cache_ttl"`
	// RefreshInterval is how often the background refresher rebuilds the
	// snapshot. Zero disables the refresher.
	RefreshInterval time.Duration `koanf:"refresh_interval"`
	DefaultLimit    int           `koanf:"default_limit"`
	MaxLimit        int           `koanf:"max_limit"`
	MinVotes        int64         `koanf:"min_votes"`
}

// PlaygroundConfig bounds the read-only SQL playground.
type PlaygroundConfig struct {
	Enabled bool          `koanf:"enabled"`
	MaxRows int           `koanf:"max_rows"`
	Timeout time.Duration `koanf:"timeout"`
}

// ImportConfig controls catalogue imports run by cinectl.
//
// Environment Variables:
//   - IMPORT_BATCH_SIZE: movies written per transaction (default: 500)
//   - IMPORT_DRY_RUN: validate records without writing (default: false)
//   - IMPORT_RESUME_FROM_LINE: skip source lines up to and including this one
type ImportConfig struct {
	// BatchSize is the number of records upserted per transaction.
	BatchSize int `koanf:"batch_size"`

	// DryRun validates the import without writing to the database.
	DryRun bool `koanf:"dry_run"`

	// ResumeFromLine skips source lines up to and including this line.
	// Zero resumes from saved progress, if any.
	ResumeFromLine int64 `koanf:"resume_from_line"`
}

// Load reads configuration using the layered approach:
//  1. Built-in defaults
//  2. Config file (config.yaml if it exists, or CONFIG_PATH)
//  3. Environment variables
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
