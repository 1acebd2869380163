// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/anshulrawat2507/CineArchive/internal/metrics"
)

// CorpusRefresher reloads the recommendation corpus and reports its size.
// *recommend.Engine satisfies it.
type CorpusRefresher interface {
	Refresh(ctx context.Context) (int, error)
}

// CorpusRefreshConfig controls the refresh loop.
type CorpusRefreshConfig struct {
	// RefreshOnStartup loads the corpus before the first request needs it.
	RefreshOnStartup bool

	// Interval between reloads. Zero or negative disables the periodic
	// reload; the engine still reloads lazily when its cache expires.
	Interval time.Duration

	// Timeout bounds a single reload. Default: 1 minute.
	Timeout time.Duration
}

// CorpusRefreshService keeps the engine's corpus warm so recommendation
// requests rarely pay for a catalogue scan.
type CorpusRefreshService struct {
	engine CorpusRefresher
	config CorpusRefreshConfig
	logger zerolog.Logger
	name   string
}

// NewCorpusRefreshService creates the refresh service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCorpusRefreshService(engine CorpusRefresher, cfg CorpusRefreshConfig, logger zerolog.Logger) *CorpusRefreshService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = time.Minute
	}
	return &CorpusRefreshService{
		engine: engine,
		config: cfg,
		logger: logger.With().Str("service", "corpus-refresh").Logger(),
		name:   "corpus-refresh",
	}
}

// Serve implements suture.Service. Failed reloads are logged and counted,
// never returned.
func (s *CorpusRefreshService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("refresh_on_startup", s.config.RefreshOnStartup).
		Dur("interval", s.config.Interval).
		Msg("corpus refresh service starting")

	if s.config.RefreshOnStartup {
		s.refresh(ctx)
	}

	if s.config.Interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("corpus refresh service shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

func (s *CorpusRefreshService) refresh(ctx context.Context) {
	refreshCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	size, err := s.engine.Refresh(refreshCtx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		metrics.RecommendCorpusRefreshes.WithLabelValues("error").Inc()
		s.logger.Warn().Err(err).Msg("corpus refresh failed")
		return
	}

	metrics.RecommendCorpusRefreshes.WithLabelValues("success").Inc()
	metrics.RecommendCorpusSize.Set(float64(size))
	s.logger.Debug().
		Int("movies", size).
		Dur("took", time.Since(start)).
		Msg("corpus refreshed")
}

// String returns the service name for logging.
func (s *CorpusRefreshService) String() string {
	return s.name
}
