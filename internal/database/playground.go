// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package database

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"strings"
	"time"

	"github.com/anshulrawat2507/CineArchive/internal/logging"
	"github.com/anshulrawat2507/CineArchive/internal/models"
)

// NoRowsMessage is reported for statements that produce no result set.
const NoRowsMessage = "Query executed but did not return any rows."

// readOnlyPrefixes are the accepted leading keywords, matched as prefixes
// of the first whitespace-separated token.
var readOnlyPrefixes = []string{"select", "with", "show", "describe", "explain", "call"}

// protectedIdentifiers may not appear anywhere in a playground statement.
// query and query_table take a table or statement as a string, which would
// let a caller spell a protected name indirectly.
var protectedIdentifiers = map[string]bool{
	"users":         true,
	"password_hash": true,
	"query":         true,
	"query_table":   true,
}

// CheckReadOnly validates a playground statement without running it and
// returns it with surrounding whitespace and trailing semicolons removed.
func CheckReadOnly(query string) (string, error) {
	stripped := strings.TrimSpace(query)
	stripped = strings.TrimSpace(strings.TrimRight(stripped, "; \t\r\n"))
	if stripped == "" {
		return "", ErrEmptyQuery
	}

	first := strings.ToLower(strings.Fields(stripped)[0])
	allowed := false
	for _, prefix := range readOnlyPrefixes {
		if strings.HasPrefix(first, prefix) {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", ErrReadOnlyQuery
	}

	if hasStatementSeparator(stripped) {
		return "", ErrMultipleStatements
	}
	if referencesProtected(stripped) {
		return "", ErrProtectedObject
	}
	return stripped, nil
}

// referencesProtected reports whether any identifier-like word of q, inside
// quotes or not, names a protected object. Matching is case-insensitive.
func referencesProtected(q string) bool {
	words := strings.FieldsFunc(strings.ToLower(q), func(r rune) bool {
		return (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '_'
	})
	for _, w := range words {
		if protectedIdentifiers[w] {
			return true
		}
	}
	return false
}

// hasStatementSeparator reports whether q contains a semicolon outside
// string literals, quoted identifiers and comments.
func hasStatementSeparator(q string) bool {
	const (
		plain = iota
		single
		double
		line
		block
	)
	state := plain
	for i := 0; i < len(q); i++ {
		c := q[i]
		switch state {
		case plain:
			switch {
			case c == '\'':
				state = single
			case c == '"':
				state = double
			case c == '-' && i+1 < len(q) && q[i+1] == '-':
				state = line
				i++
			case c == '/' && i+1 < len(q) && q[i+1] == '*':
				state = block
				i++
			case c == ';':
				return true
			}
		case single:
			if c == '\'' {
				state = plain
			}
		case double:
			if c == '"' {
				state = plain
			}
		case line:
			if c == '\n' {
				state = plain
			}
		case block:
			if c == '*' && i+1 < len(q) && q[i+1] == '/' {
				state = plain
				i++
			}
		}
	}
	return false
}

// ExecuteReadOnly runs one read-only statement inside a transaction that
// is always rolled back. Statements touching account data are refused. At most maxRows rows are returned; Truncated
// reports whether more were available.
func (db *DB) ExecuteReadOnly(ctx context.Context, query string, maxRows int) (result *models.PlaygroundResult, err error) {
	stmt, err := CheckReadOnly(query)
	if err != nil {
		return nil, err
	}
	if maxRows <= 0 {
		maxRows = 500
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer observe("playground", "query", start, &err)

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil {
			logging.Debug().Err(rbErr).Msg("Playground rollback")
		}
	}()

	rows, err := tx.QueryContext(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer closeWithLog(rows, "playground rows")

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result = &models.PlaygroundResult{
		Columns: columns,
		Rows:    make([][]any, 0),
	}
	if len(columns) == 0 {
		result.Message = NoRowsMessage
		result.Duration = time.Since(start).Milliseconds()
		return result, nil
	}

	for rows.Next() {
		if len(result.Rows) >= maxRows {
			result.Truncated = true
			break
		}
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err = rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range values {
			values[i] = jsonSafeValue(v)
		}
		result.Rows = append(result.Rows, values)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	result.RowCount = len(result.Rows)
	result.Duration = time.Since(start).Milliseconds()
	return result, nil
}

// jsonSafeValue converts driver values that do not encode cleanly to JSON.
func jsonSafeValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case []byte:
		return string(val)
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return fmt.Sprint(val)
		}
		return val
	case float32:
		f := float64(val)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Sprint(f)
		}
		return val
	case *big.Int:
		return val.String()
	case time.Time, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return val
	}
}
