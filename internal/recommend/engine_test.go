// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package recommend

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// mockDataProvider implements DataProvider for testing.
type mockDataProvider struct {
	mu         sync.Mutex
	movies     []RawMovie
	history    map[int64][]RatedMovie
	moviesErr  error
	historyErr error
	ratedErr   error
	listCalls  atomic.Int32
	histCalls  atomic.Int32
	listDelay  time.Duration

	// When set, ListMovies signals entered and blocks until gate closes
	// or its context ends.
	entered chan struct{}
	gate    chan struct{}
}

func (m *mockDataProvider) ListMovies(ctx context.Context) ([]RawMovie, error) {
	m.listCalls.Add(1)
	if m.listDelay > 0 {
		time.Sleep(m.listDelay)
	}
	if m.gate != nil {
		select {
		case m.entered <- struct{}{}:
		default:
		}
		select {
		case <-m.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.moviesErr != nil {
		return nil, m.moviesErr
	}
	return m.movies, nil
}

func (m *mockDataProvider) GetRatingHistory(ctx context.Context, userID int64) ([]RatedMovie, error) {
	m.histCalls.Add(1)
	if m.historyErr != nil {
		return nil, m.historyErr
	}
	return m.history[userID], nil
}

func (m *mockDataProvider) GetRatedMovieIDs(ctx context.Context, userID int64) ([]int64, error) {
	if m.ratedErr != nil {
		return nil, m.ratedErr
	}
	out := make([]int64, 0, len(m.history[userID]))
	for _, h := range m.history[userID] {
		out = append(out, h.MovieID)
	}
	return out, nil
}

func (m *mockDataProvider) setMovies(movies []RawMovie) {
	m.mu.Lock()
	m.movies = movies
	m.mu.Unlock()
}

func rawMovie(id int64, genre string, rating any, votes any) RawMovie {
	return RawMovie{
		MovieID:    id,
		Title:      ptrStr("Movie"),
		Genre:      ptrStr(genre),
		Language:   ptrStr("Hindi"),
		IMDbRating: rating,
		Votes:      votes,
	}
}

func newTestEngine(t *testing.T, cfg *Config, dp DataProvider) *Engine {
	t.Helper()
	e, err := NewEngine(cfg, dp, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func testProvider() *mockDataProvider {
	return &mockDataProvider{
		movies: []RawMovie{
			rawMovie(1, "Drama|Action", "8.0", "500"),
			rawMovie(2, "drama", 7.0, 50),
			rawMovie(3, "Comedy", 9.1, "12,000"),
			rawMovie(4, "Action,Thriller", 6.5, nil),
		},
		history: map[int64][]RatedMovie{
			7: {rated(1, "Drama, Action", 9)},
		},
	}
}

func TestNewEngine(t *testing.T) {
	if _, err := NewEngine(nil, nil, zerolog.Nop()); !errors.Is(err, ErrNoDataProvider) {
		t.Errorf("nil provider error = %v, want ErrNoDataProvider", err)
	}

	bad := DefaultConfig()
	bad.MinVotes = 0
	if _, err := NewEngine(bad, testProvider(), zerolog.Nop()); err == nil {
		t.Error("expected invalid config error")
	}

	e := newTestEngine(t, nil, testProvider())
	if e.Config().DefaultLimit != DefaultConfig().DefaultLimit {
		t.Error("nil config should fall back to defaults")
	}
}

func TestEngineCorpusCaching(t *testing.T) {
	dp := testProvider()
	e := newTestEngine(t, DefaultConfig(), dp)
	ctx := context.Background()

	first, err := e.Corpus(ctx)
	if err != nil {
		t.Fatalf("Corpus() error = %v", err)
	}
	if len(first) != 4 {
		t.Fatalf("Corpus() len = %d, want 4", len(first))
	}

	dp.setMovies([]RawMovie{rawMovie(9, "Drama", 5, 5)})
	second, err := e.Corpus(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(second) != 4 {
		t.Errorf("cached corpus len = %d, want 4", len(second))
	}
	if calls := dp.listCalls.Load(); calls != 1 {
		t.Errorf("ListMovies calls = %d, want 1", calls)
	}

	e.InvalidateCorpus()
	third, err := e.Corpus(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(third) != 1 || third[0].MovieID != 9 {
		t.Errorf("corpus after invalidation = %v, want [9]", ids(third))
	}

	stats := e.Stats()
	if !stats.CachingActive || stats.CacheHits != 1 {
		t.Errorf("stats = %+v, want caching active with 1 hit", stats)
	}
	if stats.CorpusLoads != 2 || stats.CorpusSize != 1 {
		t.Errorf("loads = %d size = %d, want 2 and 1", stats.CorpusLoads, stats.CorpusSize)
	}
}

func TestEngineCorpusWithoutCache(t *testing.T) {
	dp := testProvider()
	cfg := DefaultConfig()
	cfg.CorpusCacheTTL = 0
	e := newTestEngine(t, cfg, dp)

	for i := 0; i < 3; i++ {
		if _, err := e.Corpus(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	if calls := dp.listCalls.Load(); calls != 3 {
		t.Errorf("ListMovies calls = %d, want 3", calls)
	}
	e.InvalidateCorpus() // no-op without cache
	if e.Stats().CachingActive {
		t.Error("CachingActive = true with zero TTL")
	}
}

func TestEngineConcurrentLoadsShareOneRead(t *testing.T) {
	dp := testProvider()
	dp.listDelay = 50 * time.Millisecond
	e := newTestEngine(t, DefaultConfig(), dp)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := e.Corpus(context.Background()); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	if calls := dp.listCalls.Load(); calls != 1 {
		t.Errorf("ListMovies calls = %d, want 1", calls)
	}
}

func TestEngineCallerTimeoutDoesNotFailSharedLoad(t *testing.T) {
	dp := testProvider()
	dp.entered = make(chan struct{}, 1)
	dp.gate = make(chan struct{})
	e := newTestEngine(t, DefaultConfig(), dp)

	leaderCtx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	leaderErr := make(chan error, 1)
	go func() {
		_, err := e.Corpus(leaderCtx)
		leaderErr <- err
	}()
	<-dp.entered

	type result struct {
		corpus []MovieRecord
		err    error
	}
	follower := make(chan result, 1)
	go func() {
		corpus, err := e.Corpus(context.Background())
		follower <- result{corpus, err}
	}()

	if err := <-leaderErr; !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("leader error = %v, want context.DeadlineExceeded", err)
	}
	close(dp.gate)

	select {
	case res := <-follower:
		if res.err != nil {
			t.Fatalf("follower error = %v, want nil", res.err)
		}
		if len(res.corpus) != 4 {
			t.Errorf("follower corpus = %d movies, want 4", len(res.corpus))
		}
	case <-time.After(2 * time.Second):
		t.Fatal("follower did not receive the shared load")
	}
	if calls := dp.listCalls.Load(); calls != 1 {
		t.Errorf("ListMovies calls = %d, want 1", calls)
	}
}

func TestEngineInvalidateDuringLoad(t *testing.T) {
	dp := testProvider()
	dp.entered = make(chan struct{}, 1)
	dp.gate = make(chan struct{})
	e := newTestEngine(t, DefaultConfig(), dp)

	done := make(chan error, 1)
	go func() {
		_, err := e.Corpus(context.Background())
		done <- err
	}()
	<-dp.entered

	e.InvalidateCorpus()
	close(dp.gate)
	if err := <-done; err != nil {
		t.Fatalf("Corpus() error = %v", err)
	}

	if _, err := e.Corpus(context.Background()); err != nil {
		t.Fatalf("Corpus() error = %v", err)
	}
	if calls := dp.listCalls.Load(); calls != 2 {
		t.Errorf("ListMovies calls = %d, want 2 (stale load must not be cached)", calls)
	}

	if _, err := e.Corpus(context.Background()); err != nil {
		t.Fatalf("Corpus() error = %v", err)
	}
	if calls := dp.listCalls.Load(); calls != 2 {
		t.Errorf("ListMovies calls = %d, want 2 (fresh load should be cached)", calls)
	}
}

func TestEngineRefresh(t *testing.T) {
	dp := testProvider()
	e := newTestEngine(t, DefaultConfig(), dp)

	n, err := e.Refresh(context.Background())
	if err != nil || n != 4 {
		t.Fatalf("Refresh() = %d, %v; want 4, nil", n, err)
	}

	dp.setMovies(nil)
	n, err = e.Refresh(context.Background())
	if err != nil || n != 0 {
		t.Fatalf("Refresh() = %d, %v; want 0, nil", n, err)
	}
	corpus, _ := e.Corpus(context.Background())
	if len(corpus) != 0 {
		t.Errorf("Refresh should replace the cached corpus, got %d movies", len(corpus))
	}
}

func TestEngineProviderErrors(t *testing.T) {
	storeErr := errors.New("connection refused")

	dp := testProvider()
	dp.moviesErr = storeErr
	e := newTestEngine(t, DefaultConfig(), dp)

	if _, err := e.Similar(context.Background(), 1, 5); !errors.Is(err, storeErr) {
		t.Errorf("Similar() error = %v, want wrapped store error", err)
	}
	if _, err := e.Popular(context.Background(), 0, 5); !errors.Is(err, storeErr) {
		t.Errorf("Popular() error = %v, want wrapped store error", err)
	}

	dp2 := testProvider()
	dp2.historyErr = storeErr
	e2 := newTestEngine(t, DefaultConfig(), dp2)
	if _, err := e2.Recommend(context.Background(), 7, 5); !errors.Is(err, storeErr) {
		t.Errorf("Recommend() error = %v, want wrapped store error", err)
	}
	if _, err := e2.Profile(context.Background(), 7); !errors.Is(err, storeErr) {
		t.Errorf("Profile() error = %v, want wrapped store error", err)
	}

	dp3 := testProvider()
	dp3.ratedErr = storeErr
	e3 := newTestEngine(t, DefaultConfig(), dp3)
	if _, err := e3.Recommend(context.Background(), 7, 5); !errors.Is(err, storeErr) {
		t.Errorf("Recommend() error = %v, want wrapped store error", err)
	}

	if e.Stats().ErrorCount == 0 {
		t.Error("ErrorCount not incremented")
	}
}

func TestEngineSimilar(t *testing.T) {
	e := newTestEngine(t, DefaultConfig(), testProvider())
	ctx := context.Background()

	got, err := e.Similar(ctx, 1, 0)
	if err != nil {
		t.Fatalf("Similar() error = %v", err)
	}
	// Every movie shares the "hindi" language token with movie 1.
	if len(got) != 3 {
		t.Errorf("Similar() = %v, want 3 neighbours", ids(got))
	}
	if got[0].MovieID != 2 && got[0].MovieID != 4 {
		t.Errorf("closest neighbour = %d, want a drama or action title", got[0].MovieID)
	}

	if _, err := e.Similar(ctx, 404, 5); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown id error = %v, want ErrNotFound", err)
	}
}

func TestEnginePopularUsesConfiguredFloor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinVotes = 100
	e := newTestEngine(t, cfg, testProvider())

	res, err := e.Popular(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("Popular() error = %v", err)
	}
	if res.MinVotes != 100 {
		t.Errorf("MinVotes = %d, want configured 100", res.MinVotes)
	}
	if !equalIDs(ids(res.Movies), []int64{3, 1}) {
		t.Errorf("Popular() = %v, want [3 1]", ids(res.Movies))
	}

	res, err = e.Popular(context.Background(), 1_000_000, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !res.FloorDropped || len(res.Movies) != 2 {
		t.Errorf("fallback result = %+v, want floor dropped and 2 movies", res)
	}

	if _, err := e.Popular(context.Background(), -1, 5); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("negative floor error = %v, want ErrInvalidArgument", err)
	}
}

func TestEngineByGenre(t *testing.T) {
	e := newTestEngine(t, DefaultConfig(), testProvider())

	got, err := e.ByGenre(context.Background(), "drama", 7.5, 0)
	if err != nil {
		t.Fatalf("ByGenre() error = %v", err)
	}
	if !equalIDs(ids(got), []int64{1}) {
		t.Errorf("ByGenre() = %v, want [1]", ids(got))
	}
}

func TestEngineRecommend(t *testing.T) {
	e := newTestEngine(t, DefaultConfig(), testProvider())
	ctx := context.Background()

	profile, err := e.Profile(ctx, 7)
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if len(profile) != 2 {
		t.Errorf("Profile() = %+v, want Drama and Action", profile)
	}

	recs, err := e.Recommend(ctx, 7, 10)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	for _, r := range recs {
		if r.MovieID == 1 {
			t.Error("already rated movie recommended")
		}
		if r.MovieID == 3 {
			t.Error("comedy recommended without a comedy affinity")
		}
	}
	if len(recs) != 2 {
		t.Errorf("Recommend() = %v, want movies 2 and 4", ids(recs))
	}

	recs, err = e.Recommend(ctx, 8, 10)
	if err != nil || len(recs) != 0 {
		t.Errorf("user without history: %v, %v; want empty", ids(recs), err)
	}

	if _, err := e.Recommend(ctx, 0, 10); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("userID 0 error = %v, want ErrInvalidArgument", err)
	}
	if _, err := e.Profile(ctx, -1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Profile(-1) error = %v, want ErrInvalidArgument", err)
	}
}

func TestEnginePersonalize(t *testing.T) {
	dp := testProvider()
	e := newTestEngine(t, DefaultConfig(), dp)

	got, err := e.Personalize(context.Background(), 7, 10)
	if err != nil {
		t.Fatalf("Personalize() error = %v", err)
	}
	if calls := dp.histCalls.Load(); calls != 1 {
		t.Errorf("GetRatingHistory calls = %d, want 1", calls)
	}
	if top := got.Profile.TopGenres(TopGenreCount); len(top) != 2 {
		t.Errorf("TopGenres = %v, want Drama and Action", top)
	}
	if !equalIDs(ids(got.Recommendations), ids(mustRecommend(t, e, 7))) {
		t.Errorf("Personalize() = %v, want the same picks as Recommend()", ids(got.Recommendations))
	}

	empty, err := e.Personalize(context.Background(), 8, 10)
	if err != nil {
		t.Fatalf("Personalize(no history) error = %v", err)
	}
	if empty.Profile == nil || len(empty.Profile) != 0 || empty.Recommendations == nil || len(empty.Recommendations) != 0 {
		t.Errorf("Personalize(no history) = %+v, want empty non-nil slices", empty)
	}
}

func mustRecommend(t *testing.T, e *Engine, userID int64) []Recommendation {
	t.Helper()
	recs, err := e.Recommend(context.Background(), userID, 10)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	return recs
}

func TestEngineRequestCount(t *testing.T) {
	e := newTestEngine(t, DefaultConfig(), testProvider())
	ctx := context.Background()

	_, _ = e.Similar(ctx, 1, 5)
	_, _ = e.Popular(ctx, 10, 5)
	_, _ = e.ByGenre(ctx, "drama", 0, 5)

	if got := e.Stats().RequestCount; got != 3 {
		t.Errorf("RequestCount = %d, want 3", got)
	}
}
