// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package database

import (
	"context"
	"database/sql"
	"strings"
)

// queryBuilder helps construct SQL queries with filters.
// The base query must already contain a WHERE clause.
type queryBuilder struct {
	baseQuery string
	args      []interface{}
	filters   []string
}

// newQueryBuilder creates a new query builder with a base query.
func newQueryBuilder(baseQuery string) *queryBuilder {
	return &queryBuilder{
		baseQuery: baseQuery,
		args:      make([]interface{}, 0, 8),
		filters:   make([]string, 0, 4),
	}
}

// addFilter adds a custom filter condition
func (qb *queryBuilder) addFilter(condition string, args ...interface{}) *queryBuilder {
	qb.filters = append(qb.filters, condition)
	qb.args = append(qb.args, args...)
	return qb
}

// addTitleFilter adds a case-insensitive substring match on title.
func (qb *queryBuilder) addTitleFilter(title string) *queryBuilder {
	title = strings.TrimSpace(title)
	if title == "" {
		return qb
	}
	return qb.addFilter(`title ILIKE ? ESCAPE '\'`, "%"+escapeLike(title)+"%")
}

// addLanguageFilter adds an exact language match. Empty and "All" mean any.
func (qb *queryBuilder) addLanguageFilter(language string) *queryBuilder {
	language = strings.TrimSpace(language)
	if language == "" || strings.EqualFold(language, "all") {
		return qb
	}
	return qb.addFilter("language = ?", language)
}

// addMinRatingFilter keeps movies at or above minRating. Unrated movies
// stay in the result.
func (qb *queryBuilder) addMinRatingFilter(minRating float64) *queryBuilder {
	if minRating <= 0 {
		return qb
	}
	return qb.addFilter("(imdb_rating IS NULL OR imdb_rating >= ?)", minRating)
}

// addLimit adds a LIMIT argument (does not use filters slice)
func (qb *queryBuilder) addLimit(limit int) *queryBuilder {
	qb.args = append(qb.args, limit)
	return qb
}

// build constructs the final query and returns it with args
func (qb *queryBuilder) build(suffix string) (string, []interface{}) {
	query := qb.baseQuery
	if len(qb.filters) > 0 {
		query += " AND " + strings.Join(qb.filters, " AND ")
	}
	if suffix != "" {
		query += " " + suffix
	}
	return query, qb.args
}

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// scanFunc is a function that scans a single row into a result type
type scanFunc[T any] func(*sql.Rows) (T, error)

// queryAndScan executes a query and scans all rows using the provided scan function
func queryAndScan[T any](ctx context.Context, db *sql.DB, query string, args []interface{}, scan scanFunc[T]) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer closeWithLog(rows, "rows")

	results := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
