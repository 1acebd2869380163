// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package cli

import (
	"context"
	"errors"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/anshulrawat2507/CineArchive/internal/config"
	"github.com/anshulrawat2507/CineArchive/internal/models"
	"github.com/anshulrawat2507/CineArchive/internal/recommend"
)

// Catalogue is the part of the database the commands read and write.
// *database.DB implements it.
type Catalogue interface {
	Snapshot(ctx context.Context) (*models.Snapshot, error)
	GenreAverages(ctx context.Context, limit int) ([]models.GenreAverage, error)
	StorageReport(ctx context.Context) (*models.StorageReport, error)
	SearchMovies(ctx context.Context, filter models.MovieFilter) ([]models.Movie, error)
	SeedDemoData(ctx context.Context) (bool, error)
	UpsertMovies(ctx context.Context, movies []models.AddMovieRequest) (inserted, updated int, err error)
}

// Recommender is the part of the recommendation engine the commands use.
// *recommend.Engine implements it.
type Recommender interface {
	Similar(ctx context.Context, movieID int64, limit int) ([]recommend.SimilarMovie, error)
	Popular(ctx context.Context, minVotes int64, limit int) (recommend.PopularResult, error)
	ByGenre(ctx context.Context, genre string, minRating float64, limit int) ([]recommend.MovieRecord, error)
}

// Session is an open catalogue for the lifetime of one command.
type Session struct {
	Config      *config.Config
	Catalogue   Catalogue
	Recommender Recommender
	Close       func() error
}

// OpenFunc opens a session. dbPath overrides the configured database path
// when non-empty.
type OpenFunc func(ctx context.Context, dbPath string) (*Session, error)

// Options are the persistent flags shared by every command.
type Options struct {
	DBPath string
	JSON   bool
}

type app struct {
	open OpenFunc
	opts Options
}

// NewRootCommand builds the cinectl command tree. open is called lazily by
// commands that need the catalogue, after flags are parsed.
func NewRootCommand(open OpenFunc) *cobra.Command {
	a := &app{open: open}

	root := &cobra.Command{
		Use:   "cinectl",
		Short: "Inspect and maintain a CineArchive catalogue",
		Long: `cinectl works directly on a CineArchive DuckDB file.
It reports catalogue statistics, runs the recommendation rankings and
loads catalogue exports without going through the HTTP API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&a.opts.DBPath, "db", "", "path to the DuckDB file (default: DUCKDB_PATH or config)")
	root.PersistentFlags().BoolVar(&a.opts.JSON, "json", false, "output results as JSON")

	root.AddCommand(
		a.newStatsCmd(),
		a.newStorageCmd(),
		a.newSearchCmd(),
		a.newSeedCmd(),
		a.newSimilarCmd(),
		a.newPopularCmd(),
		a.newGenreCmd(),
		a.newImportCmd(),
		newVersionCmd(),
	)

	return root
}

// withSession opens the catalogue, runs fn and closes it again.
func (a *app) withSession(cmd *cobra.Command, fn func(ctx context.Context, s *Session) error) (err error) {
	if a.open == nil {
		return errors.New("catalogue not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := a.open(ctx, a.opts.DBPath)
	if err != nil {
		return err
	}
	if s.Close != nil {
		defer func() {
			if cerr := s.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
	}
	return fn(ctx, s)
}

func (a *app) printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(data))
	return nil
}
