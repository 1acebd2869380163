// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package recommend

import (
	"errors"
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// CorpusCacheTTL is how long a normalized corpus is reused.
	// Zero disables corpus caching; every call reads the store.
	// Default: 5m.
	CorpusCacheTTL time.Duration `json:"corpus_cache_ttl"`

	// DefaultLimit is used when a caller passes limit 0 to an Engine method.
	// Default: 10.
	DefaultLimit int `json:"default_limit"`

	// MaxLimit caps every result list.
	// Default: 100.
	MaxLimit int `json:"max_limit"`

	// MinVotes is the default vote floor of the popularity ranking.
	// Default: 1000.
	MinVotes int64 `json:"min_votes"`
}

// DefaultConfig returns a Config with sensible production defaults.
func DefaultConfig() *Config {
	return &Config{
		CorpusCacheTTL: 5 * time.Minute,
		DefaultLimit:   10,
		MaxLimit:       100,
		MinVotes:       1000,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error
	if c.CorpusCacheTTL < 0 {
		errs = append(errs, fmt.Errorf("corpus_cache_ttl must be >= 0, got %s", c.CorpusCacheTTL))
	}
	if c.DefaultLimit < 1 {
		errs = append(errs, fmt.Errorf("default_limit must be >= 1, got %d", c.DefaultLimit))
	}
	if c.MaxLimit < c.DefaultLimit {
		errs = append(errs, fmt.Errorf("max_limit (%d) must be >= default_limit (%d)", c.MaxLimit, c.DefaultLimit))
	}
	if c.MinVotes < 1 {
		errs = append(errs, fmt.Errorf("min_votes must be >= 1, got %d", c.MinVotes))
	}
	return errors.Join(errs...)
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// clampLimit maps 0 to the default limit and caps at the maximum.
// Negative values pass through so the scoring functions can reject them.
func (c *Config) clampLimit(limit int) int {
	if limit == 0 {
		return c.DefaultLimit
	}
	if limit > c.MaxLimit {
		return c.MaxLimit
	}
	return limit
}
