// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

/*
Package auth provides password hashing, JWT session tokens and the HTTP
middleware that authenticates API requests.

# Passwords

Passwords are hashed with bcrypt (cost 12). Inputs longer than 72 bytes
are rejected rather than silently truncated. Logins for unknown emails
still spend one bcrypt comparison through BurnPasswordCheck, so response
time does not reveal which emails are registered.

# Tokens

JWTManager issues HS256 tokens carrying the user id, email, name and role
(viewer or admin). Tokens expire after SESSION_TIMEOUT (default 24h).
Only HMAC signing methods are accepted on validation.

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	token, expiresAt, err := jwtManager.GenerateToken(user)
	claims, err := jwtManager.ValidateToken(token)

# Middleware

Middleware.Authenticate reads the token from the Authorization header
("Bearer <token>") or, failing that, the "token" cookie, and stores the
validated Claims in the request context:

	r.Group(func(r chi.Router) {
	    r.Use(authMiddleware.Authenticate)
	    r.Get("/api/v1/auth/me", h.Me)
	})

	claims := auth.GetClaims(r.Context())

Role checks live in internal/authz.

# Login Throttling

LoginLimiter applies a per-account token bucket (golang.org/x/time/rate)
to login attempts, complementing the per-IP limit applied by the router.
*/
package auth
