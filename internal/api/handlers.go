// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package api

import (
	"context"
	"time"

	"github.com/anshulrawat2507/CineArchive/internal/auth"
	"github.com/anshulrawat2507/CineArchive/internal/cache"
	"github.com/anshulrawat2507/CineArchive/internal/config"
	"github.com/anshulrawat2507/CineArchive/internal/database"
	"github.com/anshulrawat2507/CineArchive/internal/logging"
	"github.com/anshulrawat2507/CineArchive/internal/metrics"
	"github.com/anshulrawat2507/CineArchive/internal/middleware"
	"github.com/anshulrawat2507/CineArchive/internal/models"
	"github.com/anshulrawat2507/CineArchive/internal/recommend"
)

// handlerTimeout bounds store and engine work done for a single request.
const handlerTimeout = 10 * time.Second

// readCacheTTL is how long catalogue-only listings are served from memory.
// Catalogue writes through the API clear the cache.
const readCacheTTL = 30 * time.Second

// Repository is the write side of the store used by the handlers.
type Repository interface {
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	RegisterUser(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	UpsertRating(ctx context.Context, userID, movieID int64, rating float64) error
	InsertMovie(ctx context.Context, req *models.AddMovieRequest) (int64, error)
}

// Catalog is the read side of the store used by the handlers.
type Catalog interface {
	Ping(ctx context.Context) error
	Snapshot(ctx context.Context) (*models.Snapshot, error)
	SearchMovies(ctx context.Context, filter models.MovieFilter) ([]models.Movie, error)
	GenreAverages(ctx context.Context, limit int) ([]models.GenreAverage, error)
	TopRated(ctx context.Context, minRating float64, limit int) ([]models.Movie, error)
	GetUser(ctx context.Context, userID int64) (*models.User, error)
	GetUserRatings(ctx context.Context, userID int64) ([]models.UserRating, error)
	ExecuteReadOnly(ctx context.Context, query string, maxRows int) (*models.PlaygroundResult, error)
	StorageReport(ctx context.Context) (*models.StorageReport, error)
}

// Store is everything the handlers need from persistence.
type Store interface {
	Repository
	Catalog
}

var _ Store = (*database.DB)(nil)

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers_health.go: health and probes
//   - handlers_auth.go: register, login, current user
//   - handlers_movies.go: snapshot, search, genre charts
//   - handlers_recommend.go: similar, popular, personalized, profile
//   - handlers_ratings.go: list and upsert ratings
//   - handlers_playground.go: read-only SQL
//   - handlers_admin.go: catalogue writes, storage, cache, latency
type Handler struct {
	store       Store
	engine      *recommend.Engine
	config      *config.Config
	jwtManager  *auth.JWTManager
	limiter     *auth.LoginLimiter
	securityLog *logging.SecurityLogger
	perfMon     *middleware.PerformanceMonitor
	readCache   *cache.Cache
	startTime   time.Time
}

// NewHandler creates a new API handler with all required dependencies.
// A nil limiter is replaced by one built from the security config.
//
// Example:
//
//	handler := api.NewHandler(db, engine, cfg, jwtManager, limiter)
//	defer handler.Close()
//	router := api.NewRouter(handler, authMiddleware, enforcer, nil)
//	http.ListenAndServe(":8080", router.Setup())
func NewHandler(store Store, engine *recommend.Engine, cfg *config.Config, jwtManager *auth.JWTManager, limiter *auth.LoginLimiter) *Handler {
	if limiter == nil {
		limiter = auth.NewLoginLimiter(cfg.Security.LoginAttemptsPerMinute)
	}
	return &Handler{
		store:       store,
		engine:      engine,
		config:      cfg,
		jwtManager:  jwtManager,
		limiter:     limiter,
		securityLog: logging.NewSecurityLogger(),
		perfMon:     middleware.NewPerformanceMonitor(middleware.DefaultPerformanceWindow),
		readCache:   cache.New(readCacheTTL),
		startTime:   time.Now(),
	}
}

// Close stops the read cache sweeper.
func (h *Handler) Close() {
	h.readCache.Close()
}

// PerformanceMonitor returns the request latency monitor fed by the router.
func (h *Handler) PerformanceMonitor() *middleware.PerformanceMonitor {
	return h.perfMon
}

// InvalidateCorpus drops the engine's cached corpus and the read cache
// after catalogue writes.
func (h *Handler) InvalidateCorpus() {
	h.readCache.Clear()
	if h.engine != nil {
		h.engine.InvalidateCorpus()
	}
}

// cachedRead returns the value cached under key or calls load and caches
// its result. Errors are never cached.
func cachedRead[T any](h *Handler, key string, load func() (T, error)) (T, error) {
	if v, ok := h.readCache.Get(key); ok {
		if typed, ok := v.(T); ok {
			metrics.RecordCacheLookup("api_read", true)
			return typed, nil
		}
	}
	metrics.RecordCacheLookup("api_read", false)
	v, err := load()
	if err != nil {
		return v, err
	}
	h.readCache.Set(key, v)
	return v, nil
}

func (h *Handler) maxPageSize() int {
	return h.config.API.MaxPageSize
}
