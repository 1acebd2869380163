// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package recommend

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/anshulrawat2507/CineArchive/internal/cache"
)

// Note: apart from the generic cache, this package has no dependencies on
// other internal packages. The DataProvider interface lets the database
// layer plug in without creating circular imports.

const corpusCacheKey = "recommend:corpus"

// corpusLoadTimeout bounds a shared corpus read. The read is detached from
// the caller that started it, so it needs a deadline of its own.
const corpusLoadTimeout = 30 * time.Second

// Engine fetches snapshots through a DataProvider and runs the scoring
// functions over them. It keeps no per-user state. The normalized corpus
// may be cached for Config.CorpusCacheTTL and is shared read-only between
// requests. It is safe for concurrent use.
type Engine struct {
	config   *Config
	logger   zerolog.Logger
	provider DataProvider

	corpus *cache.Cache
	loads  singleflight.Group

	// generation is bumped by InvalidateCorpus. A load only caches its
	// result if no invalidation happened while it ran.
	cacheMu    sync.Mutex
	generation uint64

	// Metrics
	statsMu      sync.RWMutex
	lastLoadedAt time.Time
	lastLoadTook time.Duration
	corpusSize   int
	requestCount atomic.Int64
	errorCount   atomic.Int64
	corpusLoads  atomic.Int64
}

// Stats is a point-in-time view of engine activity.
type Stats struct {
	RequestCount  int64         `json:"request_count"`
	ErrorCount    int64         `json:"error_count"`
	CorpusLoads   int64         `json:"corpus_loads"`
	CorpusSize    int           `json:"corpus_size"`
	CacheHits     int64         `json:"cache_hits"`
	CacheMisses   int64         `json:"cache_misses"`
	LastLoadedAt  time.Time     `json:"last_loaded_at"`
	LastLoadTook  time.Duration `json:"last_load_took"`
	CacheTTL      time.Duration `json:"cache_ttl"`
	CachingActive bool          `json:"caching_active"`
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, provider DataProvider, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if provider == nil {
		return nil, ErrNoDataProvider
	}

	e := &Engine{
		config:   cfg.Clone(),
		logger:   logger.With().Str("component", "recommend").Logger(),
		provider: provider,
	}
	if cfg.CorpusCacheTTL > 0 {
		e.corpus = cache.New(cfg.CorpusCacheTTL)
	}
	return e, nil
}

// Close releases the corpus cache.
func (e *Engine) Close() {
	if e.corpus != nil {
		e.corpus.Close()
	}
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Corpus returns the normalized movie corpus, from cache when possible.
// The returned slice is shared and must not be modified.
func (e *Engine) Corpus(ctx context.Context) ([]MovieRecord, error) {
	if e.corpus != nil {
		if v, ok := e.corpus.Get(corpusCacheKey); ok {
			return v.([]MovieRecord), nil
		}
	}
	return e.loadCorpus(ctx)
}

// Refresh reloads the corpus from the store regardless of the cache and
// returns its size.
func (e *Engine) Refresh(ctx context.Context) (int, error) {
	records, err := e.loadCorpus(ctx)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// InvalidateCorpus drops the cached corpus. The next call reloads it, and
// loads already running when it is called do not repopulate the cache.
func (e *Engine) InvalidateCorpus() {
	e.cacheMu.Lock()
	e.generation++
	if e.corpus != nil {
		e.corpus.Delete(corpusCacheKey)
	}
	e.cacheMu.Unlock()
	e.logger.Debug().Msg("corpus cache invalidated")
}

// loadCorpus reads and normalizes the catalogue. Concurrent callers of the
// same generation share one store read. The read runs on a context detached
// from ctx, so one caller leaving does not fail the others; each caller
// still stops waiting when its own ctx ends.
func (e *Engine) loadCorpus(ctx context.Context) ([]MovieRecord, error) {
	e.cacheMu.Lock()
	gen := e.generation
	e.cacheMu.Unlock()

	ch := e.loads.DoChan(corpusCacheKey+":"+strconv.FormatUint(gen, 10), func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), corpusLoadTimeout)
		defer cancel()

		start := time.Now()
		rows, err := e.provider.ListMovies(loadCtx)
		if err != nil {
			return nil, fmt.Errorf("list movies: %w", err)
		}
		records := Normalize(rows)
		took := time.Since(start)

		e.cacheMu.Lock()
		stale := e.generation != gen
		if e.corpus != nil && !stale {
			e.corpus.Set(corpusCacheKey, records)
		}
		e.cacheMu.Unlock()
		if stale {
			e.logger.Debug().Msg("corpus invalidated during load, not cached")
		}

		e.corpusLoads.Add(1)
		e.statsMu.Lock()
		e.lastLoadedAt = time.Now()
		e.lastLoadTook = took
		e.corpusSize = len(records)
		e.statsMu.Unlock()

		e.logger.Debug().
			Int("movies", len(records)).
			Dur("took", took).
			Msg("corpus loaded")
		return records, nil
	})

	select {
	case <-ctx.Done():
		e.errorCount.Add(1)
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			e.errorCount.Add(1)
			return nil, res.Err
		}
		return res.Val.([]MovieRecord), nil
	}
}

// Similar returns movies similar to movieID. limit 0 means the default.
func (e *Engine) Similar(ctx context.Context, movieID int64, limit int) ([]SimilarMovie, error) {
	e.requestCount.Add(1)
	corpus, err := e.Corpus(ctx)
	if err != nil {
		return nil, err
	}
	out, err := SimilarTo(corpus, movieID, e.config.clampLimit(limit))
	return out, e.track(err)
}

// Popular ranks the corpus by Bayesian-average score. minVotes 0 means the
// configured floor and limit 0 means the default.
func (e *Engine) Popular(ctx context.Context, minVotes int64, limit int) (PopularResult, error) {
	e.requestCount.Add(1)
	if minVotes == 0 {
		minVotes = e.config.MinVotes
	}
	corpus, err := e.Corpus(ctx)
	if err != nil {
		return PopularResult{Movies: []PopularMovie{}, MinVotes: minVotes}, err
	}
	res, err := Popular(corpus, minVotes, e.config.clampLimit(limit))
	if err == nil && res.FloorDropped {
		e.logger.Debug().
			Int64("min_votes", minVotes).
			Msg("no movie reached the vote floor, ranking full corpus")
	}
	return res, e.track(err)
}

// ByGenre filters the corpus by genre substring and rating floor.
func (e *Engine) ByGenre(ctx context.Context, genre string, minRating float64, limit int) ([]MovieRecord, error) {
	e.requestCount.Add(1)
	corpus, err := e.Corpus(ctx)
	if err != nil {
		return nil, err
	}
	out, err := ByGenre(corpus, genre, minRating, e.config.clampLimit(limit))
	return out, e.track(err)
}

// Profile builds the user's genre preference profile from their ratings.
func (e *Engine) Profile(ctx context.Context, userID int64) (PreferenceProfile, error) {
	e.requestCount.Add(1)
	if userID <= 0 {
		return PreferenceProfile{}, e.track(fmt.Errorf("%w: userID must be positive, got %d", ErrInvalidArgument, userID))
	}
	history, err := e.provider.GetRatingHistory(ctx, userID)
	if err != nil {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("get rating history: %w", err)
	}
	return BuildPreferenceProfile(history), nil
}

// Personalized pairs a user's recommendations with the profile they were
// derived from.
type Personalized struct {
	Profile         PreferenceProfile `json:"profile"`
	Recommendations []Recommendation  `json:"recommendations"`
}

// Recommend returns personalized picks for userID. Movies the user has
// already rated are never returned.
func (e *Engine) Recommend(ctx context.Context, userID int64, limit int) ([]Recommendation, error) {
	p, err := e.Personalize(ctx, userID, limit)
	return p.Recommendations, err
}

// Personalize reads the user's rating history once and returns both the
// preference profile and the recommendations built from it.
func (e *Engine) Personalize(ctx context.Context, userID int64, limit int) (Personalized, error) {
	e.requestCount.Add(1)
	out := Personalized{Profile: PreferenceProfile{}, Recommendations: []Recommendation{}}
	if userID <= 0 {
		return out, e.track(fmt.Errorf("%w: userID must be positive, got %d", ErrInvalidArgument, userID))
	}

	logger := e.logger.With().Int64("user_id", userID).Logger()

	history, err := e.provider.GetRatingHistory(ctx, userID)
	if err != nil {
		e.errorCount.Add(1)
		return Personalized{}, fmt.Errorf("get rating history: %w", err)
	}
	profile := BuildPreferenceProfile(history)
	out.Profile = profile
	if len(profile) == 0 {
		logger.Debug().Msg("no rating history, nothing to personalize")
		return out, nil
	}

	rated, err := e.provider.GetRatedMovieIDs(ctx, userID)
	if err != nil {
		e.errorCount.Add(1)
		return Personalized{}, fmt.Errorf("get rated movie ids: %w", err)
	}

	corpus, err := e.Corpus(ctx)
	if err != nil {
		return Personalized{}, err
	}

	recs, err := RecommendFor(userID, corpus, profile, rated, e.config.clampLimit(limit))
	if err != nil {
		out.Recommendations = recs
		return out, e.track(err)
	}
	out.Recommendations = recs

	logger.Debug().
		Strs("top_genres", profile.TopGenres(TopGenreCount)).
		Int("excluded", len(rated)).
		Int("returned", len(recs)).
		Msg("recommendation complete")
	return out, nil
}

// Stats returns the current engine metrics.
func (e *Engine) Stats() Stats {
	e.statsMu.RLock()
	s := Stats{
		CorpusSize:   e.corpusSize,
		LastLoadedAt: e.lastLoadedAt,
		LastLoadTook: e.lastLoadTook,
	}
	e.statsMu.RUnlock()

	s.RequestCount = e.requestCount.Load()
	s.ErrorCount = e.errorCount.Load()
	s.CorpusLoads = e.corpusLoads.Load()
	if e.corpus != nil {
		cs := e.corpus.GetStats()
		s.CacheHits = cs.Hits
		s.CacheMisses = cs.Misses
		s.CacheTTL = e.corpus.TTL()
		s.CachingActive = true
	}
	return s
}

func (e *Engine) track(err error) error {
	if err != nil {
		e.errorCount.Add(1)
	}
	return err
}
