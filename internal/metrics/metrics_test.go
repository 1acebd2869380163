// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		table     string
		err       error
		errType   string
	}{
		{"successful select", "select", "movies", nil, ""},
		{"timeout", "select", "ratings", context.DeadlineExceeded, "timeout"},
		{"constraint", "insert", "users", errors.New("Constraint Error: duplicate key"), "constraint"},
		{"wrapped syntax", "playground", "query", fmt.Errorf("exec: %w", errors.New("Parser Error: syntax error at or near")), "syntax"},
		{"unknown", "update", "users", errors.New("disk full"), "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var before float64
			if tt.errType != "" {
				before = testutil.ToFloat64(DBQueryErrors.WithLabelValues(tt.operation, tt.table, tt.errType))
			}

			RecordDBQuery(tt.operation, tt.table, 5*time.Millisecond, tt.err)

			if tt.errType == "" {
				return
			}
			after := testutil.ToFloat64(DBQueryErrors.WithLabelValues(tt.operation, tt.table, tt.errType))
			if after != before+1 {
				t.Errorf("duckdb_query_errors_total{%s} = %v, want %v", tt.errType, after, before+1)
			}
		})
	}
}

func TestRecordAPIRequest(t *testing.T) {
	counter := APIRequestsTotal.WithLabelValues("GET", "/api/v1/stats", "200")
	before := testutil.ToFloat64(counter)

	RecordAPIRequest("GET", "/api/v1/stats", "200", 12*time.Millisecond)
	RecordAPIRequest("GET", "/api/v1/stats", "200", 3*time.Millisecond)

	if got := testutil.ToFloat64(counter); got != before+2 {
		t.Errorf("api_requests_total = %v, want %v", got, before+2)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("api_active_requests after inc = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("api_active_requests after dec = %v, want %v", got, before)
	}
}

func TestRecordRecommendation(t *testing.T) {
	ok := RecommendRequests.WithLabelValues("similar", "success")
	failed := RecommendRequests.WithLabelValues("similar", "error")
	okBefore, failedBefore := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	RecordRecommendation("similar", time.Millisecond, nil)
	RecordRecommendation("similar", time.Millisecond, errors.New("not found"))

	if got := testutil.ToFloat64(ok); got != okBefore+1 {
		t.Errorf("success count = %v, want %v", got, okBefore+1)
	}
	if got := testutil.ToFloat64(failed); got != failedBefore+1 {
		t.Errorf("error count = %v, want %v", got, failedBefore+1)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hits := CacheHits.WithLabelValues("corpus")
	misses := CacheMisses.WithLabelValues("corpus")
	hitsBefore, missesBefore := testutil.ToFloat64(hits), testutil.ToFloat64(misses)

	RecordCacheLookup("corpus", true)
	RecordCacheLookup("corpus", true)
	RecordCacheLookup("corpus", false)

	if got := testutil.ToFloat64(hits); got != hitsBefore+2 {
		t.Errorf("hits = %v, want %v", got, hitsBefore+2)
	}
	if got := testutil.ToFloat64(misses); got != missesBefore+1 {
		t.Errorf("misses = %v, want %v", got, missesBefore+1)
	}
}

func TestRecordAuthAndPlayground(t *testing.T) {
	auth := AuthAttempts.WithLabelValues("login", "throttled")
	play := PlaygroundQueries.WithLabelValues("rejected")
	authBefore, playBefore := testutil.ToFloat64(auth), testutil.ToFloat64(play)

	RecordAuthAttempt("login", "throttled")
	RecordPlaygroundQuery("rejected")

	if got := testutil.ToFloat64(auth); got != authBefore+1 {
		t.Errorf("auth_attempts_total = %v, want %v", got, authBefore+1)
	}
	if got := testutil.ToFloat64(play); got != playBefore+1 {
		t.Errorf("playground_queries_total = %v, want %v", got, playBefore+1)
	}
}

func TestSetAppInfo(t *testing.T) {
	SetAppInfo("test")
	if n := testutil.CollectAndCount(AppInfo); n < 1 {
		t.Errorf("app_info series = %d, want >= 1", n)
	}
}

func TestAppUptime(t *testing.T) {
	first := testutil.ToFloat64(AppUptime)
	if first <= 0 {
		t.Fatalf("app_uptime_seconds = %v, want > 0", first)
	}
	if second := testutil.ToFloat64(AppUptime); second < first {
		t.Errorf("app_uptime_seconds went backwards: %v then %v", first, second)
	}
}

func TestRecordAuthzDecision(t *testing.T) {
	denied := AuthzDecisions.WithLabelValues("viewer", "denied")
	allowed := AuthzDecisions.WithLabelValues("admin", "allowed")
	deniedBefore, allowedBefore := testutil.ToFloat64(denied), testutil.ToFloat64(allowed)

	RecordAuthzDecision("viewer", false)
	RecordAuthzDecision("admin", true)

	if got := testutil.ToFloat64(denied); got != deniedBefore+1 {
		t.Errorf("denied = %v, want %v", got, deniedBefore+1)
	}
	if got := testutil.ToFloat64(allowed); got != allowedBefore+1 {
		t.Errorf("allowed = %v, want %v", got, allowedBefore+1)
	}
}
