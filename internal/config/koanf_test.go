// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testSecret = "a-very-long-random-jwt-signing-secret-0123456789"

// isolateConfigEnv points CONFIG_PATH at a missing file and runs the test
// from an empty directory so no stray config.yaml is picked up.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv(ConfigPathEnvVar, filepath.Join(dir, "missing.yaml"))
	t.Setenv("JWT_SECRET", testSecret)
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Database.Path != "/data/cinearchive.duckdb" {
		t.Errorf("Database.Path = %q, want /data/cinearchive.duckdb", cfg.Database.Path)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Security.SessionTimeout != 24*time.Hour {
		t.Errorf("Security.SessionTimeout = %v, want 24h", cfg.Security.SessionTimeout)
	}
	if cfg.Security.LoginAttemptsPerMinute != 5 {
		t.Errorf("Security.LoginAttemptsPerMinute = %d, want 5", cfg.Security.LoginAttemptsPerMinute)
	}
	if cfg.Recommend.CorpusCacheTTL != 5*time.Minute {
		t.Errorf("Recommend.CorpusCacheTTL = %v, want 5m", cfg.Recommend.CorpusCacheTTL)
	}
	if cfg.Recommend.MinVotes != 1000 {
		t.Errorf("Recommend.MinVotes = %d, want 1000", cfg.Recommend.MinVotes)
	}
	if cfg.Recommend.DefaultLimit != 10 || cfg.Recommend.MaxLimit != 100 {
		t.Errorf("Recommend limits = %d/%d, want 10/100", cfg.Recommend.DefaultLimit, cfg.Recommend.MaxLimit)
	}
	if cfg.Playground.MaxRows != 500 {
		t.Errorf("Playground.MaxRows = %d, want 500", cfg.Playground.MaxRows)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"DUCKDB_PATH", "database.path"},
		{"DUCKDB_THREADS", "database.threads"},
		{"SEED_DEMO_DATA", "database.seed_demo_data"},
		{"HTTP_PORT", "server.port"},
		{"ENVIRONMENT", "server.environment"},
		{"JWT_SECRET", "security.jwt_secret"},
		{"RATE_LIMIT_REQUESTS", "security.rate_limit_reqs"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},
		{"LOGIN_ATTEMPTS_PER_MINUTE", "security.login_attempts_per_minute"},
		{"LOG_LEVEL", "logging.level"},
		{"RECOMMEND_MIN_VOTES", "recommend.min_votes"},
		{"PLAYGROUND_MAX_ROWS", "playground.max_rows"},
		{"IMPORT_BATCH_SIZE", "import.batch_size"},
		{"PATH", ""},
		{"HOME", ""},
		{"RANDOM_UNMAPPED", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := envTransformFunc(tt.input); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9000\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(ConfigPathEnvVar, path)
	if got := findConfigFile(); got != path {
		t.Errorf("findConfigFile() = %q, want %q", got, path)
	}
}

func TestLoadWithKoanfEnvVars(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("DUCKDB_PATH", "/tmp/test.duckdb")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SESSION_TIMEOUT", "2h")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("RECOMMEND_MIN_VOTES", "50")
	t.Setenv("RECOMMEND_CORPUS_CACHE_TTL", "30s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Database.Path != "/tmp/test.duckdb" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Security.SessionTimeout != 2*time.Hour {
		t.Errorf("Security.SessionTimeout = %v, want 2h", cfg.Security.SessionTimeout)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "https://b.example.com" {
		t.Errorf("Security.CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	if cfg.Recommend.MinVotes != 50 {
		t.Errorf("Recommend.MinVotes = %d, want 50", cfg.Recommend.MinVotes)
	}
	if cfg.Recommend.CorpusCacheTTL != 30*time.Second {
		t.Errorf("Recommend.CorpusCacheTTL = %v, want 30s", cfg.Recommend.CorpusCacheTTL)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadWithKoanfConfigFile(t *testing.T) {
	isolateConfigEnv(t)

	content := `
database:
  path: /srv/catalogue.duckdb
server:
  port: 7000
recommend:
  default_limit: 5
  max_limit: 25
security:
  cors_origins:
    - https://cine.example.com
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Database.Path != "/srv/catalogue.duckdb" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want 7000", cfg.Server.Port)
	}
	if cfg.Recommend.DefaultLimit != 5 || cfg.Recommend.MaxLimit != 25 {
		t.Errorf("Recommend limits = %d/%d, want 5/25", cfg.Recommend.DefaultLimit, cfg.Recommend.MaxLimit)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "https://cine.example.com" {
		t.Errorf("Security.CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	// Unset values keep their defaults.
	if cfg.Playground.MaxRows != 500 {
		t.Errorf("Playground.MaxRows = %d, want 500", cfg.Playground.MaxRows)
	}
}

func TestLoadWithKoanfEnvOverridesFile(t *testing.T) {
	isolateConfigEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 7000\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "7100")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 7100 {
		t.Errorf("Server.Port = %d, want 7100 (env wins over file)", cfg.Server.Port)
	}
}

func TestLoadWithKoanfValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing jwt secret",
			env:     map[string]string{"JWT_SECRET": ""},
			wantErr: "JWT_SECRET is required",
		},
		{
			name:    "short jwt secret",
			env:     map[string]string{"JWT_SECRET": "short"},
			wantErr: "JWT_SECRET must be at least 32 characters",
		},
		{
			name:    "invalid port",
			env:     map[string]string{"HTTP_PORT": "70000"},
			wantErr: "HTTP_PORT must be between 1 and 65535",
		},
		{
			name:    "invalid log level",
			env:     map[string]string{"LOG_LEVEL": "verbose"},
			wantErr: "LOG_LEVEL must be one of",
		},
		{
			name:    "wildcard cors in production",
			env:     map[string]string{"ENVIRONMENT": "production", "CORS_ORIGINS": "*"},
			wantErr: "CORS_ORIGINS=* (wildcard) is not allowed in production",
		},
		{
			name:    "max limit below default",
			env:     map[string]string{"RECOMMEND_DEFAULT_LIMIT": "20", "RECOMMEND_MAX_LIMIT": "10"},
			wantErr: "RECOMMEND_MAX_LIMIT must be >= RECOMMEND_DEFAULT_LIMIT",
		},
		{
			name:    "zero min votes",
			env:     map[string]string{"RECOMMEND_MIN_VOTES": "0"},
			wantErr: "RECOMMEND_MIN_VOTES must be at least 1",
		},
		{
			name:    "admin password without email",
			env:     map[string]string{"ADMIN_PASSWORD": "Str0ng!Passphrase"},
			wantErr: "ADMIN_EMAIL is required",
		},
		{
			name:    "rate limit window too long",
			env:     map[string]string{"RATE_LIMIT_WINDOW": "2h"},
			wantErr: "RATE_LIMIT_WINDOW must be between",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfigEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadWithKoanf()
			if err == nil {
				t.Fatalf("LoadWithKoanf() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoadWithKoanfDisabledRateLimitSkipsBounds(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("DISABLE_RATE_LIMIT", "true")
	t.Setenv("RATE_LIMIT_REQUESTS", "0")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if !cfg.Security.RateLimitDisabled {
		t.Error("Security.RateLimitDisabled = false, want true")
	}
}

func TestLoadOfflineIgnoresServerSettings(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("JWT_SECRET", "")
	t.Setenv("HTTP_PORT", "70000")
	t.Setenv("DUCKDB_PATH", "/tmp/cli.duckdb")

	cfg, err := LoadOffline()
	if err != nil {
		t.Fatalf("LoadOffline() error = %v", err)
	}
	if cfg.Database.Path != "/tmp/cli.duckdb" {
		t.Errorf("Database.Path = %q, want /tmp/cli.duckdb", cfg.Database.Path)
	}

	if _, err := LoadWithKoanf(); err == nil {
		t.Error("LoadWithKoanf() expected error without JWT_SECRET")
	}
}

func TestLoadOfflineStillValidatesRecommend(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("RECOMMEND_MIN_VOTES", "0")

	_, err := LoadOffline()
	if err == nil || !strings.Contains(err.Error(), "RECOMMEND_MIN_VOTES must be at least 1") {
		t.Errorf("LoadOffline() error = %v, want min votes error", err)
	}
}
