// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/anshulrawat2507/CineArchive/internal/auth"
	"github.com/anshulrawat2507/CineArchive/internal/authz"
	"github.com/anshulrawat2507/CineArchive/internal/config"
	"github.com/anshulrawat2507/CineArchive/internal/database"
	"github.com/anshulrawat2507/CineArchive/internal/models"
	"github.com/anshulrawat2507/CineArchive/internal/recommend"
)

const testJWTSecret = "api_test_secret_that_is_long_enough_for_hmac_signing"

// fakeStore is an in-memory Store. Err fields force the matching method
// to fail.
type fakeStore struct {
	mu sync.Mutex

	users      map[string]*models.User // by email
	passwords  map[string]string
	ratings    map[int64][]models.UserRating
	movieIDs   map[int64]bool
	nextUserID int64
	nextMovie  int64

	lastFilter   models.MovieFilter
	lastQuery    string
	lastMaxRows  int
	upserts      []models.RatingRequest
	inserted     []models.AddMovieRequest
	pingErr      error
	snapshotErr  error
	upsertErr    error
	topRatedHits int
	playgroundFn func(query string) (*models.PlaygroundResult, error)
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:      map[string]*models.User{},
		passwords:  map[string]string{},
		ratings:    map[int64][]models.UserRating{},
		movieIDs:   map[int64]bool{1: true, 2: true, 3: true, 4: true},
		nextUserID: 100,
		nextMovie:  1000,
	}
}

func (s *fakeStore) addUser(name, email, password string, admin bool) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextUserID++
	u := &models.User{ID: s.nextUserID, Name: name, Email: email, IsAdmin: admin, CreatedAt: time.Now()}
	s.users[email] = u
	s.passwords[email] = password
	return u
}

func (s *fakeStore) Ping(context.Context) error { return s.pingErr }

func (s *fakeStore) Snapshot(context.Context) (*models.Snapshot, error) {
	if s.snapshotErr != nil {
		return nil, s.snapshotErr
	}
	avg := 7.5
	return &models.Snapshot{MovieCount: int64(len(s.movieIDs)), RatingCount: 2, UserCount: int64(len(s.users)), AverageRating: &avg}, nil
}

func (s *fakeStore) SearchMovies(_ context.Context, filter models.MovieFilter) ([]models.Movie, error) {
	s.mu.Lock()
	s.lastFilter = filter
	s.mu.Unlock()
	return []models.Movie{{ID: 1, Title: "Lagaan", Language: "Hindi"}}, nil
}

func (s *fakeStore) GenreAverages(context.Context, int) ([]models.GenreAverage, error) {
	return nil, nil
}

func (s *fakeStore) TopRated(_ context.Context, _ float64, limit int) ([]models.Movie, error) {
	s.mu.Lock()
	s.topRatedHits++
	s.mu.Unlock()
	movies := make([]models.Movie, 0, limit)
	for i := 0; i < limit && i < 3; i++ {
		movies = append(movies, models.Movie{ID: int64(i + 1)})
	}
	return movies, nil
}

func (s *fakeStore) GetUser(_ context.Context, userID int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *fakeStore) GetUserRatings(_ context.Context, userID int64) ([]models.UserRating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ratings[userID], nil
}

func (s *fakeStore) ExecuteReadOnly(_ context.Context, query string, maxRows int) (*models.PlaygroundResult, error) {
	s.mu.Lock()
	s.lastQuery = query
	s.lastMaxRows = maxRows
	s.mu.Unlock()
	if s.playgroundFn != nil {
		return s.playgroundFn(query)
	}
	return &models.PlaygroundResult{Columns: []string{"n"}, Rows: [][]any{{1}}, RowCount: 1}, nil
}

func (s *fakeStore) StorageReport(context.Context) (*models.StorageReport, error) {
	return &models.StorageReport{Tables: []models.TableStorage{{Table: "movies", EstimatedRows: 4}}}, nil
}

func (s *fakeStore) Authenticate(_ context.Context, email, password string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok || s.passwords[email] != password {
		return nil, database.ErrInvalidCredentials
	}
	return u, nil
}

func (s *fakeStore) RegisterUser(_ context.Context, req *models.RegisterRequest) (*models.User, error) {
	s.mu.Lock()
	_, exists := s.users[req.Email]
	s.mu.Unlock()
	if exists {
		return nil, database.ErrDuplicateEmail
	}
	return s.addUser(req.Name, req.Email, req.Password, false), nil
}

func (s *fakeStore) UpsertRating(_ context.Context, userID, movieID int64, rating float64) error {
	if s.upsertErr != nil {
		return s.upsertErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.movieIDs[movieID] {
		return database.ErrNotFound
	}
	s.upserts = append(s.upserts, models.RatingRequest{MovieID: movieID, Rating: &rating})
	s.ratings[userID] = append(s.ratings[userID], models.UserRating{MovieID: movieID, UserRating: rating})
	return nil
}

func (s *fakeStore) InsertMovie(_ context.Context, req *models.AddMovieRequest) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.inserted {
		if m.IMDbID == req.IMDbID {
			return 0, database.ErrDuplicateIMDbID
		}
	}
	s.nextMovie++
	s.inserted = append(s.inserted, *req)
	s.movieIDs[s.nextMovie] = true
	return s.nextMovie, nil
}

// fakeProvider feeds the recommendation engine.
type fakeProvider struct {
	mu        sync.Mutex
	movies    []recommend.RawMovie
	history   map[int64][]recommend.RatedMovie
	listCalls int
	histCalls int
}

func (p *fakeProvider) ListMovies(context.Context) ([]recommend.RawMovie, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listCalls++
	return p.movies, nil
}

func (p *fakeProvider) GetRatingHistory(_ context.Context, userID int64) ([]recommend.RatedMovie, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.histCalls++
	return p.history[userID], nil
}

func (p *fakeProvider) GetRatedMovieIDs(_ context.Context, userID int64) ([]int64, error) {
	ids := make([]int64, 0, len(p.history[userID]))
	for _, h := range p.history[userID] {
		ids = append(ids, h.MovieID)
	}
	return ids, nil
}

func (p *fakeProvider) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.listCalls
}

func strp(s string) *string { return &s }

func raw(id int64, title, genre, director string, rating float64, votes int64) recommend.RawMovie {
	return recommend.RawMovie{
		MovieID:    id,
		Title:      strp(title),
		Genre:      strp(genre),
		Director:   strp(director),
		Language:   strp("Hindi"),
		IMDbRating: rating,
		Votes:      votes,
	}
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		movies: []recommend.RawMovie{
			raw(1, "Lagaan", "Drama|Sport", "Ashutosh Gowariker", 8.1, 110000),
			raw(2, "Swades", "Drama", "Ashutosh Gowariker", 8.2, 95000),
			raw(3, "Dangal", "Drama|Sport|Biography", "Nitesh Tiwari", 8.3, 200000),
			raw(4, "Andaz Apna Apna", "Comedy", "Rajkumar Santoshi", 8.0, 55000),
		},
		history: map[int64][]recommend.RatedMovie{},
	}
}

type testServer struct {
	handler  http.Handler
	api      *Handler
	store    *fakeStore
	provider *fakeProvider
	jwt      *auth.JWTManager
	viewer   *models.User
	admin    *models.User
}

func testConfig() *config.Config {
	return &config.Config{
		API: config.APIConfig{DefaultPageSize: 20, MaxPageSize: 50},
		Security: config.SecurityConfig{
			JWTSecret:              testJWTSecret,
			SessionTimeout:         time.Hour,
			LoginAttemptsPerMinute: 5,
		},
		Playground: config.PlaygroundConfig{Enabled: true, MaxRows: 25, Timeout: time.Second},
	}
}

func newTestServer(t *testing.T, mutate ...func(*config.Config)) *testServer {
	t.Helper()
	cfg := testConfig()
	for _, m := range mutate {
		m(cfg)
	}

	jm, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}

	provider := newFakeProvider()
	engine, err := recommend.NewEngine(&recommend.Config{
		CorpusCacheTTL: time.Minute,
		DefaultLimit:   10,
		MaxLimit:       50,
		MinVotes:       1000,
	}, provider, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	t.Cleanup(engine.Close)

	enforcerCfg := authz.DefaultEnforcerConfig()
	enforcerCfg.AutoReload = false
	enforcer, err := authz.NewEnforcer(enforcerCfg)
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}
	t.Cleanup(enforcer.Close)

	limiter := auth.NewLoginLimiter(cfg.Security.LoginAttemptsPerMinute)
	store := newFakeStore()
	h := NewHandler(store, engine, cfg, jm, limiter)
	t.Cleanup(h.Close)

	chiCfg := DefaultChiMiddlewareConfig()
	chiCfg.RateLimitDisabled = true
	router := NewRouter(h, auth.NewMiddleware(jm), enforcer, NewChiMiddleware(chiCfg))

	return &testServer{
		handler:  router.Setup(),
		api:      h,
		store:    store,
		provider: provider,
		jwt:      jm,
		viewer:   store.addUser("Viewer", "viewer@example.com", "viewer-pass-1", false),
		admin:    store.addUser("Admin", "admin@example.com", "admin-pass-1", true),
	}
}

func (ts *testServer) token(t *testing.T, user *models.User) string {
	t.Helper()
	token, _, err := ts.jwt.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	return token
}

// do sends a request through the full router. body may be nil, a string
// (sent verbatim) or any value (JSON encoded).
func (ts *testServer) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

// envelope mirrors APIResponse with the payload left raw.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %q)", err, rec.Body.String())
	}
	return env
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	env := decodeEnvelope(t, rec)
	if !env.Success {
		t.Fatalf("expected success, got error %+v", env.Error)
	}
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func assertError(t *testing.T, rec *httptest.ResponseRecorder, wantStatus int, wantCode string) {
	t.Helper()
	if rec.Code != wantStatus {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, wantStatus, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if env.Success || env.Error == nil {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
	if env.Error.Code != wantCode {
		t.Errorf("error code = %s, want %s (message %q)", env.Error.Code, wantCode, env.Error.Message)
	}
}
