// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/anshulrawat2507/CineArchive/internal/config"
	"github.com/anshulrawat2507/CineArchive/internal/models"
)

const testSecret = "this_is_a_very_long_secret_key_for_testing_purposes_12345"

func newTestManager(t *testing.T) *JWTManager {
	t.Helper()
	manager, err := NewJWTManager(&config.SecurityConfig{
		JWTSecret:      testSecret,
		SessionTimeout: time.Hour,
	})
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	return manager
}

func TestNewJWTManager(t *testing.T) {
	tests := []struct {
		name        string
		cfg         *config.SecurityConfig
		wantErr     bool
		wantTimeout time.Duration
	}{
		{
			name:        "valid secret",
			cfg:         &config.SecurityConfig{JWTSecret: testSecret, SessionTimeout: 2 * time.Hour},
			wantTimeout: 2 * time.Hour,
		},
		{
			name:        "default timeout",
			cfg:         &config.SecurityConfig{JWTSecret: testSecret},
			wantTimeout: 24 * time.Hour,
		},
		{
			name:    "empty secret",
			cfg:     &config.SecurityConfig{SessionTimeout: time.Hour},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager, err := NewJWTManager(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Error("NewJWTManager() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewJWTManager() unexpected error = %v", err)
			}
			if manager.Timeout() != tt.wantTimeout {
				t.Errorf("Timeout() = %v, want %v", manager.Timeout(), tt.wantTimeout)
			}
		})
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	manager := newTestManager(t)

	tests := []struct {
		name     string
		user     *models.User
		wantRole string
	}{
		{"viewer", &models.User{ID: 7, Name: "Asha", Email: "asha@example.com"}, models.RoleViewer},
		{"admin", &models.User{ID: 1, Name: "Administrator", Email: "admin@example.com", IsAdmin: true}, models.RoleAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := time.Now()
			token, expiresAt, err := manager.GenerateToken(tt.user)
			if err != nil {
				t.Fatalf("GenerateToken() error = %v", err)
			}
			if token == "" {
				t.Fatal("GenerateToken() returned empty token")
			}
			if expiresAt.Before(before.Add(time.Hour - time.Second)) {
				t.Errorf("expiresAt = %v, want about one hour from now", expiresAt)
			}

			claims, err := manager.ValidateToken(token)
			if err != nil {
				t.Fatalf("ValidateToken() error = %v", err)
			}
			if claims.UserID != tt.user.ID || claims.Email != tt.user.Email || claims.Name != tt.user.Name {
				t.Errorf("claims = %+v", claims)
			}
			if claims.Role != tt.wantRole {
				t.Errorf("Role = %q, want %q", claims.Role, tt.wantRole)
			}
			if claims.IsAdmin() != tt.user.IsAdmin {
				t.Errorf("IsAdmin() = %v", claims.IsAdmin())
			}
			if claims.Issuer != "cinearchive" || claims.Subject == "" {
				t.Errorf("registered claims = %+v", claims.RegisteredClaims)
			}
		})
	}
}

func signClaims(t *testing.T, method jwt.SigningMethod, key interface{}, claims *Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}
	return token
}

func TestValidateToken_Rejects(t *testing.T) {
	manager := newTestManager(t)
	now := time.Now()

	valid := func() *Claims {
		return &Claims{
			UserID: 3,
			Email:  "ravi@example.com",
			Role:   models.RoleViewer,
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "cinearchive",
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
				IssuedAt:  jwt.NewNumericDate(now),
			},
		}
	}

	expired := valid()
	expired.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Minute))

	noExpiry := valid()
	noExpiry.ExpiresAt = nil

	wrongIssuer := valid()
	wrongIssuer.Issuer = "someone-else"

	noUser := valid()
	noUser.UserID = 0

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.token"},
		{"empty", ""},
		{"wrong secret", signClaims(t, jwt.SigningMethodHS256, []byte("another_secret_that_is_long_enough_1234"), valid())},
		{"none algorithm", signClaims(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, valid())},
		{"expired", signClaims(t, jwt.SigningMethodHS256, []byte(testSecret), expired)},
		{"missing expiry", signClaims(t, jwt.SigningMethodHS256, []byte(testSecret), noExpiry)},
		{"wrong issuer", signClaims(t, jwt.SigningMethodHS256, []byte(testSecret), wrongIssuer)},
		{"missing user id", signClaims(t, jwt.SigningMethodHS256, []byte(testSecret), noUser)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := manager.ValidateToken(tt.token); err == nil {
				t.Error("ValidateToken() expected error, got nil")
			}
		})
	}

	t.Run("hs512 with same secret accepted", func(t *testing.T) {
		token := signClaims(t, jwt.SigningMethodHS512, []byte(testSecret), valid())
		if _, err := manager.ValidateToken(token); err != nil {
			t.Errorf("ValidateToken() error = %v", err)
		}
	})

	t.Run("tampered payload", func(t *testing.T) {
		token, _, err := manager.GenerateToken(&models.User{ID: 9, Email: "x@example.com"})
		if err != nil {
			t.Fatal(err)
		}
		parts := strings.Split(token, ".")
		parts[1] = strings.ToUpper(parts[1])
		if _, err := manager.ValidateToken(strings.Join(parts, ".")); err == nil {
			t.Error("tampered token should fail validation")
		}
	})
}
