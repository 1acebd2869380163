// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

/*
Package middleware provides the HTTP infrastructure middleware shared by the
API router.

All middleware has the chi signature func(http.Handler) http.Handler:

  - RequestID: accepts or generates X-Request-ID and seeds the logging context
  - AccessLog: one zerolog line per request, level chosen by status and latency
  - PrometheusMetrics: request count, duration and in-flight gauge labelled by route pattern
  - Compression: gzip for clients that accept it
  - PerformanceMonitor.Middleware: ring buffer of recent requests for the admin latency report

Typical stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)
	r.Use(perfMon.Middleware)
	r.Use(middleware.Compression)

Metric and log labels use the chi route pattern rather than the raw URL so
movie ids do not create new series.
*/
package middleware
