// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	catalogimport "github.com/anshulrawat2507/CineArchive/internal/import"
)

// progressSuffix names the resume file written next to the source.
const progressSuffix = ".progress"

func (a *app) newImportCmd() *cobra.Command {
	var (
		dryRun     bool
		batchSize  int
		resumeFrom int64
		fresh      bool
	)

	cmd := &cobra.Command{
		Use:   "import [file.jsonl]",
		Short: "Load a JSON-lines catalogue export",
		Long: `Cleans and upserts every movie of a JSON-lines export, one
transaction per batch. Progress is saved next to the file so an interrupted
import resumes where it stopped; --fresh ignores saved progress.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			return a.withSession(cmd, func(ctx context.Context, s *Session) error {
				importCfg := s.Config.Import
				if cmd.Flags().Changed("dry-run") {
					importCfg.DryRun = dryRun
				}
				if cmd.Flags().Changed("batch-size") {
					if batchSize < 1 || batchSize > 10000 {
						return fmt.Errorf("--batch-size must be between 1 and 10000")
					}
					importCfg.BatchSize = batchSize
				}
				if cmd.Flags().Changed("resume-from") {
					if resumeFrom < 0 {
						return fmt.Errorf("--resume-from must not be negative")
					}
					importCfg.ResumeFromLine = resumeFrom
				}

				reader, err := catalogimport.NewJSONLReader(path)
				if err != nil {
					return err
				}
				defer func() { _ = reader.Close() }()

				progress := catalogimport.NewFileProgress(path + progressSuffix)
				if fresh {
					if err := progress.Clear(ctx); err != nil {
						return fmt.Errorf("clear progress: %w", err)
					}
				}

				importer := catalogimport.NewImporter(&importCfg, s.Catalogue, progress)
				stats, err := importer.Import(ctx, reader)
				if err != nil {
					if stats != nil {
						cmd.PrintErrf("stopped after line %d; rerun to resume\n", stats.LastLine)
					}
					return fmt.Errorf("import failed: %w", err)
				}

				if a.opts.JSON {
					return a.printJSON(cmd, stats.ToSummary(false))
				}

				header := "Import complete"
				if stats.DryRun {
					header = "Dry run complete (nothing written)"
				}
				cmd.Println(successStyle.Render(header))
				cmd.Printf("  Records:  %d\n", stats.TotalRecords)
				cmd.Printf("  Inserted: %d\n", stats.Inserted)
				cmd.Printf("  Updated:  %d\n", stats.Updated)
				cmd.Printf("  Skipped:  %d\n", stats.Skipped)
				if stats.Errors > 0 {
					cmd.Println(warningStyle.Render(fmt.Sprintf("  Errors:   %d", stats.Errors)))
				}
				cmd.Println(mutedStyle.Render(fmt.Sprintf("  took %s (%.0f records/s)", stats.Duration().Round(time.Millisecond), stats.RecordsPerSecond())))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "clean and count records without writing")
	cmd.Flags().IntVar(&batchSize, "batch-size", 500, "records per transaction")
	cmd.Flags().Int64Var(&resumeFrom, "resume-from", 0, "skip source lines up to and including this one")
	cmd.Flags().BoolVar(&fresh, "fresh", false, "discard saved progress and start from the first line")
	return cmd
}
