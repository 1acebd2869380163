// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/anshulrawat2507/CineArchive/internal/logging"
)

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	previous := logging.Logger()
	logging.SetLogger(logging.NewTestLogger(&buf).Level(zerolog.DebugLevel))
	t.Cleanup(func() { logging.SetLogger(previous) })

	router := newTestRouter(RequestID, AccessLog)

	tests := []struct {
		name      string
		method    string
		path      string
		wantLevel string
	}{
		{"success logs at debug", http.MethodGet, "/api/v1/recommendations/similar/9", `"level":"debug"`},
		{"server error logs at error", http.MethodPost, "/api/v1/admin/movies", `"level":"error"`},
		{"not found logs at warn", http.MethodGet, "/missing", `"level":"warn"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(tt.method, tt.path, nil))

			line := buf.String()
			if !strings.Contains(line, tt.wantLevel) {
				t.Errorf("log line %s missing %s", line, tt.wantLevel)
			}
			for _, field := range []string{`"route":`, `"status":`, `"request_id":`, `"duration":`} {
				if !strings.Contains(line, field) {
					t.Errorf("log line missing %s: %s", field, line)
				}
			}
		})
	}
}
