// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/anshulrawat2507/CineArchive/internal/models"
)

type statsOutput struct {
	Snapshot *models.Snapshot     `json:"snapshot"`
	Genres   []models.GenreAverage `json:"top_genres"`
}

func (a *app) newStatsCmd() *cobra.Command {
	var genres int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show catalogue statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withSession(cmd, func(ctx context.Context, s *Session) error {
				snap, err := s.Catalogue.Snapshot(ctx)
				if err != nil {
					return fmt.Errorf("snapshot failed: %w", err)
				}
				avgs, err := s.Catalogue.GenreAverages(ctx, genres)
				if err != nil {
					return fmt.Errorf("genre averages failed: %w", err)
				}

				if a.opts.JSON {
					return a.printJSON(cmd, statsOutput{Snapshot: snap, Genres: avgs})
				}

				cmd.Println(titleStyle.Render("Catalogue"))
				cmd.Printf("  Movies:         %d\n", snap.MovieCount)
				cmd.Printf("  Ratings:        %d\n", snap.RatingCount)
				cmd.Printf("  Users:          %d\n", snap.UserCount)
				cmd.Printf("  Average rating: %s\n", optFloat(snap.AverageRating))

				if len(avgs) == 0 {
					return nil
				}
				cmd.Println()
				rows := make([][]string, 0, len(avgs))
				for _, g := range avgs {
					rows = append(rows, []string{
						g.Genre,
						strconv.FormatFloat(g.AvgRating, 'f', 2, 64),
						strconv.FormatInt(g.MovieCount, 10),
					})
				}
				cmd.Println(renderTable([]string{"Genre", "Avg rating", "Movies"}, rows))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&genres, "genres", 5, "number of top genres to list")
	return cmd
}

func (a *app) newStorageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "storage",
		Short: "Show database storage usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withSession(cmd, func(ctx context.Context, s *Session) error {
				report, err := s.Catalogue.StorageReport(ctx)
				if err != nil {
					return fmt.Errorf("storage report failed: %w", err)
				}
				if a.opts.JSON {
					return a.printJSON(cmd, report)
				}

				cmd.Println(titleStyle.Render("Storage"))
				cmd.Printf("  Database size: %s\n", report.DatabaseSize)
				cmd.Printf("  WAL size:      %s\n", report.WALSize)
				cmd.Printf("  Blocks:        %d/%d used (%d bytes each)\n", report.UsedBlocks, report.TotalBlocks, report.BlockSize)
				cmd.Println()

				rows := make([][]string, 0, len(report.Tables))
				for _, t := range report.Tables {
					rows = append(rows, []string{
						t.Table,
						strconv.FormatInt(t.EstimatedRows, 10),
						strconv.FormatInt(t.ColumnCount, 10),
						strconv.FormatInt(t.IndexCount, 10),
					})
				}
				cmd.Println(renderTable([]string{"Table", "Rows", "Columns", "Indexes"}, rows))
				return nil
			})
		},
	}
}

func (a *app) newSearchCmd() *cobra.Command {
	var filter models.MovieFilter

	cmd := &cobra.Command{
		Use:   "search [title]",
		Short: "Search the catalogue by title",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				filter.Title = args[0]
			}
			if filter.Limit < 1 {
				return fmt.Errorf("--limit must be at least 1")
			}
			return a.withSession(cmd, func(ctx context.Context, s *Session) error {
				movies, err := s.Catalogue.SearchMovies(ctx, filter)
				if err != nil {
					return fmt.Errorf("search failed: %w", err)
				}
				if a.opts.JSON {
					return a.printJSON(cmd, movies)
				}
				if len(movies) == 0 {
					cmd.Println("No movies found.")
					return nil
				}

				rows := make([][]string, 0, len(movies))
				for i := range movies {
					m := &movies[i]
					rows = append(rows, []string{
						strconv.FormatInt(m.ID, 10),
						m.Title,
						optInt(m.ReleaseYear),
						m.Language,
						optFloat(m.IMDbRating),
						optInt64(m.Votes),
					})
				}
				cmd.Println(renderTable([]string{"ID", "Title", "Year", "Language", "Rating", "Votes"}, rows))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&filter.Language, "language", "", "only movies in this language")
	cmd.Flags().Float64Var(&filter.MinRating, "min-rating", 0, "minimum IMDb rating")
	cmd.Flags().IntVarP(&filter.Limit, "limit", "n", 20, "maximum number of results")
	return cmd
}

func (a *app) newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo catalogue into an empty database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withSession(cmd, func(ctx context.Context, s *Session) error {
				seeded, err := s.Catalogue.SeedDemoData(ctx)
				if err != nil {
					return fmt.Errorf("seed failed: %w", err)
				}
				if a.opts.JSON {
					return a.printJSON(cmd, map[string]bool{"seeded": seeded})
				}
				if seeded {
					cmd.Println(successStyle.Render("Demo catalogue loaded."))
				} else {
					cmd.Println(mutedStyle.Render("Catalogue already has movies; nothing seeded."))
				}
				return nil
			})
		},
	}
}
