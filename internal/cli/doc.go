// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

// Package cli implements cinectl, the operator command line for a
// CineArchive catalogue.
//
// Commands open the DuckDB file directly, so they work while the server is
// stopped (DuckDB allows a single writer process). Every command accepts
// --json for machine-readable output; otherwise results are rendered as
// lipgloss tables.
//
//	cinectl stats
//	cinectl similar "Lagaan" -n 5
//	cinectl popular --min-votes 50000
//	cinectl import export.jsonl --dry-run
package cli
