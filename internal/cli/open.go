// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/anshulrawat2507/CineArchive/internal/config"
	"github.com/anshulrawat2507/CineArchive/internal/database"
	"github.com/anshulrawat2507/CineArchive/internal/recommend"
)

// OpenDuckDB loads the offline configuration, opens the DuckDB catalogue
// and builds an uncached recommendation engine over it.
func OpenDuckDB(_ context.Context, dbPath string) (*Session, error) {
	cfg, err := config.LoadOffline()
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open catalogue %s: %w", cfg.Database.Path, err)
	}

	// One command reads the corpus at most once, so caching buys nothing.
	engine, err := recommend.NewEngine(&recommend.Config{
		CorpusCacheTTL: 0,
		DefaultLimit:   cfg.Recommend.DefaultLimit,
		MaxLimit:       cfg.Recommend.MaxLimit,
		MinVotes:       cfg.Recommend.MinVotes,
	}, database.NewRecommendationDataProvider(db), zerolog.Nop())
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Session{
		Config:      cfg,
		Catalogue:   db,
		Recommender: engine,
		Close: func() error {
			engine.Close()
			return db.Close()
		},
	}, nil
}
