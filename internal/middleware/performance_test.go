// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPerformanceMonitor_Stats(t *testing.T) {
	pm := NewPerformanceMonitor(100)
	for i := int64(1); i <= 10; i++ {
		pm.RecordRequest(&RequestMetrics{Route: "/api/v1/stats", Method: http.MethodGet, DurationMS: i * 10, StatusCode: http.StatusOK})
	}
	pm.RecordRequest(&RequestMetrics{Route: "/api/v1/ratings", Method: http.MethodPut, DurationMS: 5, StatusCode: http.StatusInternalServerError})

	stats := pm.GetStats()
	if len(stats) != 2 {
		t.Fatalf("GetStats() returned %d endpoints, want 2", len(stats))
	}

	top := stats[0]
	if top.Endpoint != "GET /api/v1/stats" || top.RequestCount != 10 {
		t.Errorf("busiest endpoint = %+v", top)
	}
	if top.AvgDuration != 55 || top.P50Duration != 50 || top.P95Duration != 90 || top.MaxDuration != 100 {
		t.Errorf("latency stats = %+v", top)
	}
	if stats[1].ErrorCount != 1 {
		t.Errorf("ErrorCount = %d, want 1", stats[1].ErrorCount)
	}
}

func TestPerformanceMonitor_RingBuffer(t *testing.T) {
	pm := NewPerformanceMonitor(3)
	for i := int64(1); i <= 5; i++ {
		pm.RecordRequest(&RequestMetrics{Route: "/r", Method: http.MethodGet, DurationMS: i})
	}

	recent := pm.GetRecentMetrics(10)
	if len(recent) != 3 {
		t.Fatalf("GetRecentMetrics() len = %d, want 3", len(recent))
	}
	for i, want := range []int64{3, 4, 5} {
		if recent[i].DurationMS != want {
			t.Errorf("recent[%d] = %d, want %d", i, recent[i].DurationMS, want)
		}
	}

	last := pm.GetRecentMetrics(1)
	if len(last) != 1 || last[0].DurationMS != 5 {
		t.Errorf("GetRecentMetrics(1) = %+v", last)
	}
}

func TestPerformanceMonitor_DefaultSize(t *testing.T) {
	pm := NewPerformanceMonitor(0)
	if len(pm.window) != DefaultPerformanceWindow {
		t.Errorf("window = %d, want %d", len(pm.window), DefaultPerformanceWindow)
	}
	if pm.Since().IsZero() {
		t.Error("Since() should be set")
	}
	if len(pm.GetStats()) != 0 || len(pm.GetRecentMetrics(5)) != 0 {
		t.Error("empty monitor should report nothing")
	}
}

func TestPerformanceMonitor_Middleware(t *testing.T) {
	pm := NewPerformanceMonitor(10)
	router := newTestRouter(pm.Middleware)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/recommendations/similar/7", nil))

	recent := pm.GetRecentMetrics(1)
	if len(recent) != 1 {
		t.Fatal("request was not recorded")
	}
	if recent[0].Route != "/api/v1/recommendations/similar/{movieID}" || recent[0].StatusCode != http.StatusOK {
		t.Errorf("recorded = %+v", recent[0])
	}
}

func TestPercentile(t *testing.T) {
	if percentile(nil, 0.5) != 0 {
		t.Error("percentile of empty slice should be 0")
	}
	sorted := []int64{1, 2, 3, 4}
	if got := percentile(sorted, 0.99); got != 3 {
		t.Errorf("p99 = %d, want 3", got)
	}
	if got := percentile(sorted, 1); got != 4 {
		t.Errorf("p100 = %d, want 4", got)
	}
}
