// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

/*
Package validation provides struct validation using go-playground/validator v10.

Request models declare their rules in validate tags:

	type RatingRequest struct {
	    MovieID int64    `json:"movie_id" validate:"required,gt=0"`
	    Rating  *float64 `json:"rating" validate:"required,min=0,max=10"`
	}

ValidateStruct returns nil or a *RequestValidationError. ToAPIError turns it
into the VALIDATION_ERROR payload of the API envelope; field names in the
messages are the json names the client used.

The validator is a process-wide singleton (it caches struct metadata) and is
safe for concurrent use. Besides the built-in tags it registers notblank,
which rejects strings made only of whitespace.
*/
package validation
