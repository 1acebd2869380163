// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/anshulrawat2507/CineArchive/internal/models"
	"github.com/anshulrawat2507/CineArchive/internal/recommend"
)

func (a *app) newSimilarCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "similar [movie-id|title]",
		Short: "List movies similar to a catalogue entry",
		Long: `Ranks the catalogue by token overlap with the given movie.
The movie is identified by ID or, failing that, by the first title match.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd, func(ctx context.Context, s *Session) error {
				movieID, title, err := resolveMovie(ctx, s.Catalogue, args[0])
				if err != nil {
					return err
				}

				similar, err := s.Recommender.Similar(ctx, movieID, limit)
				if errors.Is(err, recommend.ErrNotFound) {
					return fmt.Errorf("movie %d not found", movieID)
				}
				if err != nil {
					return fmt.Errorf("similar failed: %w", err)
				}
				if a.opts.JSON {
					return a.printJSON(cmd, similar)
				}
				if len(similar) == 0 {
					cmd.Println("No similar movies found.")
					return nil
				}

				if title != "" {
					cmd.Println(titleStyle.Render("Similar to " + title))
				}
				rows := make([][]string, 0, len(similar))
				for i := range similar {
					m := &similar[i]
					rows = append(rows, []string{
						strconv.FormatInt(m.MovieID, 10),
						m.Title,
						m.Genre,
						optFloat(m.IMDbRating),
						score(m.Similarity),
					})
				}
				cmd.Println(renderTable([]string{"ID", "Title", "Genre", "Rating", "Similarity"}, rows))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum number of results")
	return cmd
}

// resolveMovie accepts a numeric ID as is and looks anything else up by
// title. The title is returned when a lookup happened.
func resolveMovie(ctx context.Context, c Catalogue, arg string) (int64, string, error) {
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return id, "", nil
	}
	movies, err := c.SearchMovies(ctx, models.MovieFilter{Title: arg, Limit: 1})
	if err != nil {
		return 0, "", fmt.Errorf("title lookup failed: %w", err)
	}
	if len(movies) == 0 {
		return 0, "", fmt.Errorf("no movie matches %q", arg)
	}
	return movies[0].ID, movies[0].Title, nil
}

func (a *app) newPopularCmd() *cobra.Command {
	var (
		minVotes int64
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "popular",
		Short: "Rank movies by vote-weighted rating",
		Long: `Ranks movies by Bayesian average of IMDb rating and vote count.
Movies below --min-votes are excluded unless none reach the floor, in which
case the whole catalogue is ranked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withSession(cmd, func(ctx context.Context, s *Session) error {
				res, err := s.Recommender.Popular(ctx, minVotes, limit)
				if err != nil {
					return fmt.Errorf("popular failed: %w", err)
				}
				if a.opts.JSON {
					return a.printJSON(cmd, res)
				}
				if len(res.Movies) == 0 {
					cmd.Println("No rated movies in the catalogue.")
					return nil
				}

				cmd.Println(mutedStyle.Render(fmt.Sprintf("vote floor %d, catalogue mean %.2f", res.MinVotes, res.CorpusMean)))
				if res.FloorDropped {
					cmd.Println(warningStyle.Render("No movie reached the vote floor; ranking the whole catalogue."))
				}
				rows := make([][]string, 0, len(res.Movies))
				for i := range res.Movies {
					m := &res.Movies[i]
					rows = append(rows, []string{
						strconv.Itoa(i + 1),
						m.Title,
						optFloat(m.IMDbRating),
						optInt64(m.Votes),
						score(m.PopularityScore),
					})
				}
				cmd.Println(renderTable([]string{"#", "Title", "Rating", "Votes", "Score"}, rows))
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&minVotes, "min-votes", 0, "vote floor (default: RECOMMEND_MIN_VOTES)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum number of results")
	return cmd
}

func (a *app) newGenreCmd() *cobra.Command {
	var (
		minRating float64
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "genre [genre]",
		Short: "List the best rated movies of a genre",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd, func(ctx context.Context, s *Session) error {
				movies, err := s.Recommender.ByGenre(ctx, args[0], minRating, limit)
				if err != nil {
					return fmt.Errorf("genre listing failed: %w", err)
				}
				if a.opts.JSON {
					return a.printJSON(cmd, movies)
				}
				if len(movies) == 0 {
					cmd.Printf("No %s movies found.\n", args[0])
					return nil
				}

				rows := make([][]string, 0, len(movies))
				for i := range movies {
					m := &movies[i]
					rows = append(rows, []string{
						strconv.FormatInt(m.MovieID, 10),
						m.Title,
						m.Genre,
						optFloat(m.IMDbRating),
					})
				}
				cmd.Println(renderTable([]string{"ID", "Title", "Genre", "Rating"}, rows))
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&minRating, "min-rating", 0, "minimum IMDb rating")
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum number of results")
	return cmd
}
