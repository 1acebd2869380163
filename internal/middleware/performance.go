// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package middleware

import (
	"net/http"
	"sort"
	"sync"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// RequestMetrics is one observed request.
type RequestMetrics struct {
	Route      string
	Method     string
	DurationMS int64
	StatusCode int
	Timestamp  time.Time
}

// EndpointStats contains aggregated latency for one method and route.
type EndpointStats struct {
	Endpoint     string  `json:"endpoint"`
	RequestCount int64   `json:"request_count"`
	ErrorCount   int64   `json:"error_count"`
	AvgDuration  float64 `json:"avg_duration_ms"`
	P50Duration  int64   `json:"p50_duration_ms"`
	P95Duration  int64   `json:"p95_duration_ms"`
	P99Duration  int64   `json:"p99_duration_ms"`
	MaxDuration  int64   `json:"max_duration_ms"`
}

// PerformanceMonitor keeps the most recent requests in a ring buffer and
// computes per-endpoint percentiles on demand for the admin report.
type PerformanceMonitor struct {
	mu      sync.RWMutex
	window  []RequestMetrics
	next    int
	full    bool
	started time.Time
}

// DefaultPerformanceWindow is the number of requests kept when
// NewPerformanceMonitor gets a non-positive size.
const DefaultPerformanceWindow = 1000

// NewPerformanceMonitor creates a monitor remembering the last size requests.
func NewPerformanceMonitor(size int) *PerformanceMonitor {
	if size <= 0 {
		size = DefaultPerformanceWindow
	}
	return &PerformanceMonitor{
		window:  make([]RequestMetrics, size),
		started: time.Now(),
	}
}

// RecordRequest adds a request metric, evicting the oldest when full.
func (pm *PerformanceMonitor) RecordRequest(metric *RequestMetrics) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.window[pm.next] = *metric
	pm.next = (pm.next + 1) % len(pm.window)
	if pm.next == 0 {
		pm.full = true
	}
}

// recorded returns the buffered metrics in arrival order. Caller holds mu.
func (pm *PerformanceMonitor) recorded() []RequestMetrics {
	if !pm.full {
		return pm.window[:pm.next]
	}
	out := make([]RequestMetrics, 0, len(pm.window))
	out = append(out, pm.window[pm.next:]...)
	return append(out, pm.window[:pm.next]...)
}

// GetStats returns statistics per endpoint, busiest first.
func (pm *PerformanceMonitor) GetStats() []EndpointStats {
	pm.mu.RLock()
	grouped := make(map[string][]int64)
	errCounts := make(map[string]int64)
	for _, m := range pm.recorded() {
		key := m.Method + " " + m.Route
		grouped[key] = append(grouped[key], m.DurationMS)
		if m.StatusCode >= http.StatusInternalServerError {
			errCounts[key]++
		}
	}
	pm.mu.RUnlock()

	stats := make([]EndpointStats, 0, len(grouped))
	for endpoint, durations := range grouped {
		sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })

		var sum int64
		for _, d := range durations {
			sum += d
		}
		stats = append(stats, EndpointStats{
			Endpoint:     endpoint,
			RequestCount: int64(len(durations)),
			ErrorCount:   errCounts[endpoint],
			AvgDuration:  float64(sum) / float64(len(durations)),
			P50Duration:  percentile(durations, 0.50),
			P95Duration:  percentile(durations, 0.95),
			P99Duration:  percentile(durations, 0.99),
			MaxDuration:  durations[len(durations)-1],
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].RequestCount != stats[j].RequestCount {
			return stats[i].RequestCount > stats[j].RequestCount
		}
		return stats[i].Endpoint < stats[j].Endpoint
	})
	return stats
}

// GetRecentMetrics returns the most recent n metrics, oldest first.
func (pm *PerformanceMonitor) GetRecentMetrics(n int) []RequestMetrics {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	all := pm.recorded()
	if n > len(all) {
		n = len(all)
	}
	recent := make([]RequestMetrics, n)
	copy(recent, all[len(all)-n:])
	return recent
}

// Since returns when the monitor started collecting.
func (pm *PerformanceMonitor) Since() time.Time {
	return pm.started
}

// Middleware records every request passing through it.
func (pm *PerformanceMonitor) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		pm.RecordRequest(&RequestMetrics{
			Route:      RoutePattern(r),
			Method:     r.Method,
			DurationMS: time.Since(start).Milliseconds(),
			StatusCode: status,
			Timestamp:  start,
		})
	})
}

// percentile calculates the percentile value from a sorted slice
func percentile(sorted []int64, p float64) int64 {
	if len(sorted) == 0 {
		return 0
	}
	index := int(float64(len(sorted)-1) * p)
	return sorted[index]
}
