// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package models

// PlaygroundRequest is the body of POST /api/v1/playground/query.
type PlaygroundRequest struct {
	Query string `json:"query" validate:"max=10000"`
}

// PlaygroundResult holds the rows of a read-only playground query.
// Rows are positional and align with Columns. Message is set when the
// statement returned nothing to show.
type PlaygroundResult struct {
	Columns   []string `json:"columns"`
	Rows      [][]any  `json:"rows"`
	RowCount  int      `json:"row_count"`
	Truncated bool     `json:"truncated"`
	Message   string   `json:"message,omitempty"`
	Duration  int64    `json:"duration_ms"`
}
