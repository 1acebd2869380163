// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/anshulrawat2507/CineArchive/internal/auth"
	"github.com/anshulrawat2507/CineArchive/internal/database"
	"github.com/anshulrawat2507/CineArchive/internal/logging"
	"github.com/anshulrawat2507/CineArchive/internal/metrics"
	"github.com/anshulrawat2507/CineArchive/internal/models"
)

// PlaygroundQuery handles POST /api/v1/playground/query.
//
// Administrators only. A single read-only statement is accepted (select,
// with, show, describe, explain, call) and account data is off limits. It runs in a transaction that is always rolled
// back, with the row count and run time bounded by the playground config.
func (h *Handler) PlaygroundQuery(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	pg := h.config.Playground
	if !pg.Enabled {
		rw.Forbidden(ErrPlaygroundDisabled.Error())
		return
	}

	var req models.PlaygroundRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if !validateRequest(rw, &req) {
		return
	}

	timeout := pg.Timeout
	if timeout <= 0 {
		timeout = handlerTimeout
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	result, err := h.store.ExecuteReadOnly(ctx, req.Query, pg.MaxRows)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrEmptyQuery):
			metrics.RecordPlaygroundQuery("empty")
		case errors.Is(err, database.ErrReadOnlyQuery),
			errors.Is(err, database.ErrMultipleStatements),
			errors.Is(err, database.ErrProtectedObject):
			metrics.RecordPlaygroundQuery("rejected")
			var userID int64
			if claims := auth.GetClaims(r.Context()); claims != nil {
				userID = claims.UserID
			}
			h.securityLog.LogPlaygroundBlocked(userID, err.Error())
		default:
			metrics.RecordPlaygroundQuery("error")
			// Anything else from DuckDB is a mistake in the submitted SQL.
			if !errors.Is(err, context.DeadlineExceeded) {
				logging.Ctx(r.Context()).Debug().Err(err).Msg("Playground query failed")
				rw.BadRequest("Query failed: " + sanitizeLogValue(err.Error()))
				return
			}
		}
		respondError(rw, err)
		return
	}

	metrics.RecordPlaygroundQuery("ok")
	rw.Success(result)
}
