// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/anshulrawat2507/CineArchive/internal/models"
)

// Version is reported by the health endpoint. Set at build time with
// -ldflags "-X github.com/anshulrawat2507/CineArchive/internal/api.Version=...".
var Version = "dev"

// healthCheckTimeout bounds the database ping of health probes.
const healthCheckTimeout = 2 * time.Second

func (h *Handler) databaseConnected(ctx context.Context) bool {
	if h.store == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()
	return h.store.Ping(ctx) == nil
}

// Health handles GET /api/v1/health.
// The status is "degraded" when the database does not answer a ping.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	dbConnected := h.databaseConnected(r.Context())

	status := "healthy"
	if !dbConnected {
		status = "degraded"
	}

	corpusSize := 0
	if h.engine != nil {
		corpusSize = h.engine.Stats().CorpusSize
	}

	NewResponseWriter(w, r).Success(models.HealthStatus{
		Status:            status,
		Version:           Version,
		DatabaseConnected: dbConnected,
		CorpusSize:        corpusSize,
		Uptime:            time.Since(h.startTime).Seconds(),
	})
}

// HealthLive handles liveness probe requests.
// Returns 200 OK if the process is alive, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests.
// Returns 503 until the database answers.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.databaseConnected(r.Context()) {
		rw.ServiceUnavailable("Database is not reachable")
		return
	}
	rw.Success(map[string]interface{}{
		"ready":    true,
		"database": "connected",
	})
}
