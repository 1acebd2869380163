// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package database

import (
	"errors"
	"io"

	"github.com/anshulrawat2507/CineArchive/internal/logging"
)

// Sentinel errors returned by the store. Messages are user facing.
//
//nolint:staticcheck // ST1005: messages are shown to users verbatim
var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateEmail     = errors.New("Email already registered")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrInvalidRating      = errors.New("Rating must be between 0 and 10")
	ErrDuplicateIMDbID    = errors.New("Movie with this IMDb ID already exists")
	ErrEmptyQuery         = errors.New("Please enter a SQL statement.")
	ErrReadOnlyQuery      = errors.New("Only read-only queries (SELECT/SHOW/DESCRIBE/CALL/EXPLAIN) are allowed in the playground.")
	ErrMultipleStatements = errors.New("Only a single statement can be executed at a time.")
	ErrProtectedObject    = errors.New("Account data cannot be queried from the playground.")
)

// closeWithLog closes a resource and logs any error
// Use this for cleanup operations where errors should be acknowledged but not fail the operation
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource and explicitly ignores any error
// Use this for cleanup operations in error paths where Close() errors are not actionable
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close() // Explicitly ignore error - cleanup is best-effort
	}
}
