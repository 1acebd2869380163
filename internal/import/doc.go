// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

// Package catalogimport loads movie catalogue exports into the store.
//
// The source is a JSON-lines file, one movie object per line, as produced
// by catalogue exports from other CineArchive instances or scrapers. Values
// arrive loosely typed: numbers may be strings ("142 min", "1,234"), and
// missing values may be null, "" or "-".
//
// # Pipeline
//
//	JSON-lines file
//	       ↓
//	JSONLReader (batches of raw records)
//	       ↓
//	Mapper (cleaning, validation, first-wins dedup by imdb_id)
//	       ↓
//	MovieSink.UpsertMovies (one transaction per batch)
//	       ↓
//	DuckDB (internal/database)
//
// # Cleaning Rules
//
//   - title and imdb_id are required; records without them are skipped
//   - duration keeps its digits only ("142 min" becomes 142)
//   - rating is rounded to one decimal and dropped outside 0..10
//   - votes may contain thousands separators
//   - year must be a plain number within 1900..2100
//   - language is title-cased ("HINDI" becomes "Hindi")
//
// # Resumable Imports
//
// Progress is saved after every batch through a ProgressTracker. FileProgress
// keeps it in a JSON file next to the source, so an interrupted import can
// continue from the last written line.
//
// # Usage
//
//	reader, err := catalogimport.NewJSONLReader(path)
//	...
//	importer := catalogimport.NewImporter(&cfg.Import, db, catalogimport.NewFileProgress(path+".progress"))
//	stats, err := importer.Import(ctx, reader)
package catalogimport
