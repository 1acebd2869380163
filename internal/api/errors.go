// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package api

import (
	"context"
	"errors"
	"strings"

	"github.com/sony/gobreaker/v2"

	"github.com/anshulrawat2507/CineArchive/internal/database"
	"github.com/anshulrawat2507/CineArchive/internal/recommend"
)

var (
	// ErrInvalidMovieID is returned for a movie id that is not a positive integer.
	ErrInvalidMovieID = errors.New("movie id must be a positive integer")

	// ErrPlaygroundDisabled is returned when the SQL playground is switched off.
	ErrPlaygroundDisabled = errors.New("the SQL playground is disabled")
)

// respondError maps store and engine errors onto the response envelope.
// Contract violations become 4xx responses; anything unrecognised is a
// database error whose cause is logged, never returned.
func respondError(rw *ResponseWriter, err error) {
	switch {
	case errors.Is(err, recommend.ErrNotFound):
		rw.NotFound("Movie not found")
	case errors.Is(err, database.ErrNotFound):
		rw.NotFound(err.Error())
	case errors.Is(err, recommend.ErrInvalidArgument):
		rw.BadRequest(strings.TrimPrefix(err.Error(), recommend.ErrInvalidArgument.Error()+": "))
	case errors.Is(err, database.ErrDuplicateEmail), errors.Is(err, database.ErrDuplicateIMDbID):
		rw.Conflict(rootMessage(err))
	case errors.Is(err, database.ErrInvalidCredentials):
		rw.Unauthorized(database.ErrInvalidCredentials.Error())
	case errors.Is(err, database.ErrInvalidRating),
		errors.Is(err, database.ErrEmptyQuery),
		errors.Is(err, database.ErrReadOnlyQuery),
		errors.Is(err, database.ErrMultipleStatements),
		errors.Is(err, database.ErrProtectedObject):
		rw.BadRequest(rootMessage(err))
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		rw.ServiceUnavailable("Recommendations are temporarily unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		rw.ServiceUnavailable("The request timed out")
	default:
		rw.DatabaseError(err)
	}
}

// rootMessage returns the message of the store sentinel wrapped in err,
// without the context prefixes added on the way up.
func rootMessage(err error) string {
	for _, sentinel := range []error{
		database.ErrDuplicateEmail,
		database.ErrDuplicateIMDbID,
		database.ErrInvalidRating,
		database.ErrEmptyQuery,
		database.ErrReadOnlyQuery,
		database.ErrMultipleStatements,
		database.ErrProtectedObject,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}
