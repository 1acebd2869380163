// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/anshulrawat2507/CineArchive/internal/auth"
	"github.com/anshulrawat2507/CineArchive/internal/config"
	"github.com/anshulrawat2507/CineArchive/internal/database"
	"github.com/anshulrawat2507/CineArchive/internal/logging"
	"github.com/anshulrawat2507/CineArchive/internal/metrics"
	"github.com/anshulrawat2507/CineArchive/internal/models"
)

// RegisterResponse is the new account plus feedback on the chosen
// password. Warnings are advisory; the password already passed policy.
type RegisterResponse struct {
	*models.User
	PasswordStrength string   `json:"password_strength"`
	PasswordWarnings []string `json:"password_warnings,omitempty"`
}

// Register handles POST /api/v1/auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req models.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if !validateRequest(rw, &req) {
		metrics.RecordAuthAttempt("register", "invalid")
		return
	}
	result := config.RelaxedPasswordPolicy().Validate(req.Password, req.Email)
	if !result.Valid {
		metrics.RecordAuthAttempt("register", "invalid")
		rw.ValidationError(result.Errors[0], map[string]interface{}{"password": result.Errors})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	user, err := h.store.RegisterUser(ctx, &req)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			metrics.RecordAuthAttempt("register", "duplicate")
		} else {
			metrics.RecordAuthAttempt("register", "error")
		}
		respondError(rw, err)
		return
	}

	metrics.RecordAuthAttempt("register", "success")
	h.securityLog.LogRegistration(user.ID, user.Email, clientIP(r))
	rw.Created(RegisterResponse{
		User:             user,
		PasswordStrength: result.Strength.String(),
		PasswordWarnings: result.Warnings,
	})
}

// Login handles POST /api/v1/auth/login.
//
// Attempts are throttled per account before the password is checked. On
// success the token is returned in the body and set as an HttpOnly cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req models.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if !validateRequest(rw, &req) {
		return
	}

	ip := clientIP(r)
	account := strings.ToLower(strings.TrimSpace(req.Email))
	if !h.limiter.Allow(account) {
		metrics.RecordAuthAttempt("login", "throttled")
		h.securityLog.LogLoginThrottled(account, ip)
		rw.TooManyRequests("Too many login attempts, please wait a minute")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	user, err := h.store.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, database.ErrInvalidCredentials) {
			metrics.RecordAuthAttempt("login", "failure")
			h.securityLog.LogLoginFailure(account, ip, r.UserAgent(), "invalid credentials")
		} else {
			metrics.RecordAuthAttempt("login", "error")
		}
		respondError(rw, err)
		return
	}

	token, expiresAt, err := h.jwtManager.GenerateToken(user)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Int64("user_id", user.ID).Msg("Failed to issue token")
		rw.InternalError("Failed to issue token")
		return
	}

	h.limiter.Reset(account)
	metrics.RecordAuthAttempt("login", "success")
	h.securityLog.LogLoginSuccess(user.ID, user.Email, user.Role(), ip, r.UserAgent())

	http.SetCookie(w, &http.Cookie{
		Name:     auth.TokenCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https",
		SameSite: http.SameSiteStrictMode,
	})
	rw.Success(models.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	})
}

// Me handles GET /api/v1/auth/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	claims := auth.GetClaims(r.Context())
	if claims == nil {
		rw.Unauthorized("Authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	user, err := h.store.GetUser(ctx, claims.UserID)
	if err != nil {
		respondError(rw, err)
		return
	}
	rw.Success(user)
}
