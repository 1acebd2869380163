// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package catalogimport

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
)

// maxLineBytes bounds a single catalogue line.
const maxLineBytes = 1 << 20

// CatalogueRecord is one raw line of a catalogue export. Values keep the
// type they were encoded with; the Mapper cleans them.
type CatalogueRecord struct {
	IMDbID          any `json:"imdb_id"`
	Title           any `json:"title"`
	Genre           any `json:"genre"`
	Language        any `json:"language"`
	ReleaseYear     any `json:"release_year"`
	DurationMinutes any `json:"duration_minutes"`
	Director        any `json:"director"`
	Actor1          any `json:"actor_1"`
	Actor2          any `json:"actor_2"`
	Actor3          any `json:"actor_3"`
	Actors          any `json:"actors"` // comma-separated cast, used when actor_N are absent
	IMDbRating      any `json:"imdb_rating"`
	Votes           any `json:"votes"`
}

// SourceRecord is a decoded line. Err is set for lines that are not a
// JSON object; Record is nil then.
type SourceRecord struct {
	Line   int64
	Record *CatalogueRecord
	Err    error
}

// RecordSource yields catalogue records in line order.
type RecordSource interface {
	// Count returns the number of non-blank lines after afterLine.
	Count(ctx context.Context, afterLine int64) (int64, error)

	// ReadBatch returns up to size records after afterLine. An empty
	// batch means the source is exhausted.
	ReadBatch(ctx context.Context, afterLine int64, size int) ([]SourceRecord, error)
}

// JSONLReader reads a JSON-lines catalogue file sequentially.
type JSONLReader struct {
	path    string
	file    *os.File
	scanner *bufio.Scanner
	line    int64
}

// NewJSONLReader opens a JSON-lines catalogue file.
func NewJSONLReader(path string) (*JSONLReader, error) {
	//nolint:gosec // G304: path is an operator-supplied import file
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalogue: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		closeQuietly(f)
		return nil, fmt.Errorf("stat catalogue: %w", err)
	}
	if info.IsDir() {
		closeQuietly(f)
		return nil, fmt.Errorf("open catalogue: %s is a directory", path)
	}
	return &JSONLReader{path: path, file: f, scanner: newLineScanner(f)}, nil
}

func newLineScanner(r io.Reader) *bufio.Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), maxLineBytes)
	return s
}

// Path returns the catalogue file path.
func (r *JSONLReader) Path() string {
	return r.path
}

// Count scans the file once, independent of the read position.
func (r *JSONLReader) Count(ctx context.Context, afterLine int64) (int64, error) {
	//nolint:gosec // G304: same operator-supplied file
	f, err := os.Open(r.path)
	if err != nil {
		return 0, fmt.Errorf("open catalogue: %w", err)
	}
	defer closeQuietly(f)

	var line, count int64
	s := newLineScanner(f)
	for s.Scan() {
		line++
		if line%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		if line > afterLine && len(bytes.TrimSpace(s.Bytes())) > 0 {
			count++
		}
	}
	if err := s.Err(); err != nil {
		return 0, fmt.Errorf("scan catalogue: %w", err)
	}
	return count, nil
}

// ReadBatch reads forward from the current position. Lines at or before
// afterLine and blank lines are skipped.
func (r *JSONLReader) ReadBatch(ctx context.Context, afterLine int64, size int) ([]SourceRecord, error) {
	if size <= 0 {
		size = 500
	}
	batch := make([]SourceRecord, 0, size)
	for len(batch) < size {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !r.scanner.Scan() {
			if err := r.scanner.Err(); err != nil {
				return nil, fmt.Errorf("line %d: %w", r.line+1, err)
			}
			break
		}
		r.line++
		raw := bytes.TrimSpace(r.scanner.Bytes())
		if r.line <= afterLine || len(raw) == 0 {
			continue
		}

		rec := &CatalogueRecord{}
		if err := json.Unmarshal(raw, rec); err != nil {
			batch = append(batch, SourceRecord{Line: r.line, Err: fmt.Errorf("line %d: %w", r.line, err)})
			continue
		}
		batch = append(batch, SourceRecord{Line: r.line, Record: rec})
	}
	return batch, nil
}

// Close closes the underlying file.
func (r *JSONLReader) Close() error {
	return r.file.Close()
}

func closeQuietly(c io.Closer) {
	_ = c.Close() //nolint:errcheck // read-only file
}
