// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anshulrawat2507/CineArchive/internal/api"
	"github.com/anshulrawat2507/CineArchive/internal/auth"
	"github.com/anshulrawat2507/CineArchive/internal/authz"
	"github.com/anshulrawat2507/CineArchive/internal/config"
	"github.com/anshulrawat2507/CineArchive/internal/database"
	"github.com/anshulrawat2507/CineArchive/internal/logging"
	"github.com/anshulrawat2507/CineArchive/internal/metrics"
	"github.com/anshulrawat2507/CineArchive/internal/recommend"
	"github.com/anshulrawat2507/CineArchive/internal/supervisor"
	"github.com/anshulrawat2507/CineArchive/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logging is not configured yet.
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", api.Version).
		Str("environment", cfg.Server.Environment).
		Msg("Starting CineArchive")

	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS allows any origin; set CORS_ORIGINS before exposing the API")
	}

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("CineArchive exited with error")
	}

	logging.Info().Msg("Application stopped gracefully")
}

func run(cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Failed to close database")
		}
	}()
	logging.Info().Str("path", cfg.Database.Path).Msg("Database initialized")

	if err := bootstrapData(ctx, db, cfg); err != nil {
		return err
	}

	provider := database.NewRecommendationDataProvider(db)
	engine, err := recommend.NewEngine(&recommend.Config{
		CorpusCacheTTL: cfg.Recommend.CorpusCacheTTL,
		DefaultLimit:   cfg.Recommend.DefaultLimit,
		MaxLimit:       cfg.Recommend.MaxLimit,
		MinVotes:       cfg.Recommend.MinVotes,
	}, provider, logging.WithComponent("recommend"))
	if err != nil {
		return fmt.Errorf("initialize recommendation engine: %w", err)
	}
	defer engine.Close()

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		return fmt.Errorf("initialize JWT manager: %w", err)
	}
	limiter := auth.NewLoginLimiter(cfg.Security.LoginAttemptsPerMinute)

	enforcer, err := authz.NewEnforcer(authz.DefaultEnforcerConfig())
	if err != nil {
		return fmt.Errorf("initialize authorization: %w", err)
	}
	defer enforcer.Close()

	handler := api.NewHandler(db, engine, cfg, jwtManager, limiter)
	defer handler.Close()
	router := api.NewRouter(
		handler,
		auth.NewMiddleware(jwtManager),
		enforcer,
		api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security)),
	)

	metrics.SetAppInfo(api.Version)

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	tree.AddDataService(services.NewCorpusRefreshService(engine, services.CorpusRefreshConfig{
		RefreshOnStartup: true,
		Interval:         cfg.Recommend.RefreshInterval,
	}, logging.WithComponent("corpus-refresh")))

	tree.AddBackgroundService(services.NewLimiterSweepService(limiter, time.Minute, auth.IdleBucketTTL))

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.Setup(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, services.DefaultShutdownTimeout))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			serveErr = fmt.Errorf("supervisor tree: %w", err)
		}
		cancel()
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	return serveErr
}

// bootstrapData creates the configured admin account and, when asked,
// loads the demo catalogue into an empty database.
func bootstrapData(ctx context.Context, db *database.DB, cfg *config.Config) error {
	if cfg.Security.HasAdmin() {
		created, err := db.EnsureAdmin(ctx, cfg.Security.AdminName, cfg.Security.AdminEmail, cfg.Security.AdminPassword)
		if err != nil {
			return fmt.Errorf("ensure admin account: %w", err)
		}
		logging.Info().
			Str("email", cfg.Security.AdminEmail).
			Bool("created", created).
			Msg("Admin account ready")
	}

	if cfg.Database.SeedDemo {
		seeded, err := db.SeedDemoData(ctx)
		if err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
		if seeded {
			logging.Info().Msg("Demo catalogue seeded")
		}
	}
	return nil
}
