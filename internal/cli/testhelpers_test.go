// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/anshulrawat2507/CineArchive/internal/config"
	"github.com/anshulrawat2507/CineArchive/internal/models"
	"github.com/anshulrawat2507/CineArchive/internal/recommend"
)

func ptrF(v float64) *float64 { return &v }
func ptrI(v int64) *int64     { return &v }

type fakeCatalogue struct {
	mu         sync.Mutex
	movies     []models.Movie
	lastFilter models.MovieFilter
	seeded     bool
	upserted   []models.AddMovieRequest
	err        error
}

func newFakeCatalogue() *fakeCatalogue {
	return &fakeCatalogue{
		movies: []models.Movie{
			{ID: 1, Title: "Lagaan", Language: "Hindi", IMDbRating: ptrF(8.1), Votes: ptrI(110000)},
			{ID: 2, Title: "Swades", Language: "Hindi", IMDbRating: ptrF(8.2), Votes: ptrI(95000)},
		},
	}
}

func (f *fakeCatalogue) Snapshot(context.Context) (*models.Snapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Snapshot{MovieCount: 2, RatingCount: 7, UserCount: 3, AverageRating: ptrF(8.15)}, nil
}

func (f *fakeCatalogue) GenreAverages(_ context.Context, limit int) ([]models.GenreAverage, error) {
	avgs := []models.GenreAverage{
		{Genre: "Drama|Sport", AvgRating: 8.1, MovieCount: 1},
		{Genre: "Drama", AvgRating: 8.2, MovieCount: 1},
	}
	if limit < len(avgs) {
		avgs = avgs[:limit]
	}
	return avgs, nil
}

func (f *fakeCatalogue) StorageReport(context.Context) (*models.StorageReport, error) {
	return &models.StorageReport{
		Tables: []models.TableStorage{
			{Schema: "main", Table: "movies", EstimatedRows: 2, ColumnCount: 14, IndexCount: 2},
		},
		DatabaseSize: "1.5 MiB",
		WALSize:      "0 bytes",
		BlockSize:    262144,
		TotalBlocks:  6,
		UsedBlocks:   4,
		GeneratedAt:  time.Now(),
	}, nil
}

func (f *fakeCatalogue) SearchMovies(_ context.Context, filter models.MovieFilter) ([]models.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFilter = filter
	var out []models.Movie
	for _, m := range f.movies {
		if filter.Title == "" || strings.Contains(strings.ToLower(m.Title), strings.ToLower(filter.Title)) {
			out = append(out, m)
		}
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeCatalogue) SeedDemoData(context.Context) (bool, error) {
	return f.seeded, nil
}

func (f *fakeCatalogue) UpsertMovies(_ context.Context, movies []models.AddMovieRequest) (inserted, updated int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserted = append(f.upserted, movies...)
	return len(movies), 0, nil
}

type fakeRecommender struct {
	lastMovieID  int64
	lastMinVotes int64
	floorDropped bool
}

func (f *fakeRecommender) Similar(_ context.Context, movieID int64, _ int) ([]recommend.SimilarMovie, error) {
	f.lastMovieID = movieID
	if movieID != 1 {
		return nil, recommend.ErrNotFound
	}
	return []recommend.SimilarMovie{
		{MovieRecord: recommend.MovieRecord{MovieID: 2, Title: "Swades", Genre: "Drama", IMDbRating: ptrF(8.2)}, Similarity: 0.4},
	}, nil
}

func (f *fakeRecommender) Popular(_ context.Context, minVotes int64, _ int) (recommend.PopularResult, error) {
	f.lastMinVotes = minVotes
	return recommend.PopularResult{
		Movies: []recommend.PopularMovie{
			{MovieRecord: recommend.MovieRecord{MovieID: 1, Title: "Lagaan", IMDbRating: ptrF(8.1), Votes: ptrI(110000)}, PopularityScore: 8.12},
		},
		MinVotes:     minVotes,
		CorpusMean:   8.15,
		FloorDropped: f.floorDropped,
	}, nil
}

func (f *fakeRecommender) ByGenre(_ context.Context, genre string, _ float64, _ int) ([]recommend.MovieRecord, error) {
	if genre != "Drama" {
		return []recommend.MovieRecord{}, nil
	}
	return []recommend.MovieRecord{{MovieID: 2, Title: "Swades", Genre: "Drama", IMDbRating: ptrF(8.2)}}, nil
}

type testEnv struct {
	catalogue   *fakeCatalogue
	recommender *fakeRecommender
	openedPath  string
	closed      bool
}

func newTestEnv() *testEnv {
	return &testEnv{catalogue: newFakeCatalogue(), recommender: &fakeRecommender{}}
}

func (e *testEnv) open(_ context.Context, dbPath string) (*Session, error) {
	e.openedPath = dbPath
	return &Session{
		Config:      &config.Config{Import: config.ImportConfig{BatchSize: 500}},
		Catalogue:   e.catalogue,
		Recommender: e.recommender,
		Close: func() error {
			e.closed = true
			return nil
		},
	}, nil
}

// run executes cinectl with args and returns combined output.
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand(e.open)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}
