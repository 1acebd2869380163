// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package authz

import (
	"net"
	"net/http"
	"strconv"

	"github.com/anshulrawat2507/CineArchive/internal/auth"
	"github.com/anshulrawat2507/CineArchive/internal/logging"
	"github.com/anshulrawat2507/CineArchive/internal/metrics"
)

// ErrorWriter writes an error response. api.WriteError has this shape.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, statusCode int, code, message string)

// Middleware provides authorization middleware using Casbin.
type Middleware struct {
	enforcer    *Enforcer
	writeError  ErrorWriter
	securityLog *logging.SecurityLogger
}

// NewMiddleware creates a new authorization middleware. A nil writeError
// falls back to plain-text http.Error responses.
func NewMiddleware(enforcer *Enforcer, writeError ErrorWriter) *Middleware {
	if writeError == nil {
		writeError = func(w http.ResponseWriter, _ *http.Request, statusCode int, _, message string) {
			http.Error(w, message, statusCode)
		}
	}
	return &Middleware{
		enforcer:    enforcer,
		writeError:  writeError,
		securityLog: logging.NewSecurityLogger(),
	}
}

// AuthorizeRequest maps the HTTP method to an action and authorizes the
// request path for the authenticated user. It must run after
// auth.Middleware.Authenticate.
func (m *Middleware) AuthorizeRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetClaims(r.Context())
		if claims == nil {
			m.writeError(w, r, http.StatusForbidden, "FORBIDDEN", "Forbidden: no authentication context")
			return
		}

		subject := "user:" + strconv.FormatInt(claims.UserID, 10)
		object := r.URL.Path
		action := methodToAction(r.Method)

		allowed, err := m.enforcer.EnforceWithRoles(subject, []string{claims.Role}, object, action)
		if err != nil {
			logging.Ctx(r.Context()).Error().Err(err).Msg("Authorization error")
			m.writeError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
			return
		}
		metrics.RecordAuthzDecision(claims.Role, allowed)

		if !allowed {
			m.securityLog.LogAccessDenied(claims.UserID, claims.Role, r.Method, object, clientIP(r))
			m.writeError(w, r, http.StatusForbidden, "FORBIDDEN", "Forbidden: insufficient permissions")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// methodToAction maps HTTP methods to Casbin actions.
func methodToAction(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return "read"
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return "write"
	case http.MethodDelete:
		return "delete"
	default:
		return "read"
	}
}

// clientIP returns the host part of RemoteAddr. chi's RealIP middleware
// has already applied X-Forwarded-For when the router trusts it.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
