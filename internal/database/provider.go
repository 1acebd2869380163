// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/anshulrawat2507/CineArchive/internal/logging"
	"github.com/anshulrawat2507/CineArchive/internal/metrics"
	"github.com/anshulrawat2507/CineArchive/internal/recommend"
)

// Compile-time interface assertion.
var _ recommend.DataProvider = (*RecommendationDataProvider)(nil)

const providerBreakerName = "duckdb-recommend"

// abandonedError marks a read that failed because its caller's context
// ended. The breaker does not count it against the database.
type abandonedError struct{ err error }

func (e *abandonedError) Error() string { return e.err.Error() }
func (e *abandonedError) Unwrap() error { return e.err }

// RecommendationDataProvider adapts the store to recommend.DataProvider.
// When enabled, reads go through a circuit breaker so a struggling
// database fails fast instead of piling up scoring requests.
type RecommendationDataProvider struct {
	db   *DB
	cb   *gobreaker.CircuitBreaker[interface{}]
	name string
}

// NewRecommendationDataProvider creates the provider. Breaker settings:
//   - Max 3 concurrent requests in half-open state
//   - 1 minute measurement window
//   - 30 second timeout before attempting recovery
//   - Opens after 60% failure rate with minimum 10 requests
func NewRecommendationDataProvider(db *DB) *RecommendationDataProvider {
	p := &RecommendationDataProvider{db: db, name: providerBreakerName}
	if db.cfg == nil || !db.cfg.Breaker {
		return p
	}

	metrics.CircuitBreakerState.WithLabelValues(p.name).Set(0) // 0 = closed
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(p.name).Set(0)

	p.cb = gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        p.name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				logging.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		// A caller giving up or running out of time is not a database failure.
		IsSuccessful: func(err error) bool {
			var abandoned *abandonedError
			return err == nil || errors.As(err, &abandoned)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})
	return p
}

// State returns the breaker state name, "disabled" without a breaker.
func (p *RecommendationDataProvider) State() string {
	if p.cb == nil {
		return "disabled"
	}
	return stateToString(p.cb.State())
}

// execute wraps a store read with circuit breaker protection. Errors
// returned after ctx ended are attributed to the caller.
func (p *RecommendationDataProvider) execute(ctx context.Context, fn func() (interface{}, error)) (interface{}, error) {
	if p.cb == nil {
		return fn()
	}

	result, err := p.cb.Execute(func() (interface{}, error) {
		res, err := fn()
		if err != nil && ctx.Err() != nil {
			return nil, &abandonedError{err: err}
		}
		return res, err
	})
	if err != nil {
		var abandoned *abandonedError
		if errors.As(err, &abandoned) {
			metrics.CircuitBreakerRequests.WithLabelValues(p.name, "abandoned").Inc()
			return nil, abandoned.err
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(p.name, "rejected").Inc()
			logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
			return nil, fmt.Errorf("circuit breaker %s: %w", p.name, err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(p.name, "failure").Inc()
		if isConnectionError(err) {
			logging.Error().Err(err).Msg("Database connection lost during recommendation read")
		}
		counts := p.cb.Counts()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(p.name).Set(float64(counts.ConsecutiveFailures))
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(p.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(p.name).Set(0)
	return result, nil
}

// castSlice type-casts a breaker result back to its slice type.
func castSlice[T any](result interface{}, err error) ([]T, error) {
	if err != nil {
		return nil, err
	}
	if result == nil {
		return []T{}, nil
	}
	typed, ok := result.([]T)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// ListMovies reads the catalogue with circuit breaker protection.
func (p *RecommendationDataProvider) ListMovies(ctx context.Context) ([]recommend.RawMovie, error) {
	return castSlice[recommend.RawMovie](p.execute(ctx, func() (interface{}, error) {
		return p.db.ListMovies(ctx)
	}))
}

// GetRatingHistory reads a user's rating history with circuit breaker protection.
func (p *RecommendationDataProvider) GetRatingHistory(ctx context.Context, userID int64) ([]recommend.RatedMovie, error) {
	return castSlice[recommend.RatedMovie](p.execute(ctx, func() (interface{}, error) {
		return p.db.GetRatingHistory(ctx, userID)
	}))
}

// GetRatedMovieIDs reads a user's rated ids with circuit breaker protection.
func (p *RecommendationDataProvider) GetRatedMovieIDs(ctx context.Context, userID int64) ([]int64, error) {
	return castSlice[int64](p.execute(ctx, func() (interface{}, error) {
		return p.db.GetRatedMovieIDs(ctx, userID)
	}))
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
