// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package recommend

import "errors"

var (
	// ErrNotFound is returned when a referenced movie is not in the corpus.
	ErrNotFound = errors.New("recommend: not found")

	// ErrInvalidArgument is returned for caller contract violations such as
	// a negative limit or a vote floor below one.
	ErrInvalidArgument = errors.New("recommend: invalid argument")

	// ErrNoDataProvider is returned by Engine methods when no provider is set.
	ErrNoDataProvider = errors.New("recommend: data provider not configured")
)
