// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/anshulrawat2507/CineArchive/internal/auth"
	"github.com/anshulrawat2507/CineArchive/internal/authz"
	"github.com/anshulrawat2507/CineArchive/internal/middleware"
)

// Router wires handlers, authentication and authorization into a chi mux.
type Router struct {
	handler       *Handler
	authn         *auth.Middleware
	authz         *authz.Middleware
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil chiMiddleware uses the defaults.
func NewRouter(handler *Handler, authn *auth.Middleware, enforcer *authz.Enforcer, chiMW *ChiMiddleware) *Router {
	if chiMW == nil {
		chiMW = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		authn:         authn,
		authz:         authz.NewMiddleware(enforcer, WriteError),
		chiMiddleware: chiMW,
	}
}

// Setup configures all HTTP routes.
//
// Every /api/v1 route except health, register and login requires a JWT
// (bearer header or token cookie) and passes the casbin policy check.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight
	r.Use(middleware.PrometheusMetrics)
	r.Use(router.handler.perfMon.Middleware)
	r.Use(auth.SecurityHeaders)

	// Set before any Route call so subrouters inherit them.
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		NewResponseWriter(w, req).NotFound("Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		NewResponseWriter(w, req).Error(http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed")
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// ========================
		// Health Endpoints
		// ========================
		r.Route("/health", func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitHealth())
			r.Get("/", router.handler.Health)
			r.Get("/live", router.handler.HealthLive)
			r.Get("/ready", router.handler.HealthReady)
		})

		// ========================
		// Authentication Endpoints
		// ========================
		r.Route("/auth", func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitAuth())
			r.Post("/register", router.handler.Register)
			r.Post("/login", router.handler.Login)
			r.With(router.authn.Authenticate, router.authz.AuthorizeRequest).Get("/me", router.handler.Me)
		})

		// ========================
		// Authenticated Endpoints
		// ========================
		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())
			r.Use(middleware.Compression)
			r.Use(router.authn.Authenticate)
			r.Use(router.authz.AuthorizeRequest)

			r.Get("/stats", router.handler.Stats)

			r.Route("/movies", func(r chi.Router) {
				r.Get("/search", router.handler.SearchMovies)
				r.Get("/genres/averages", router.handler.GenreAverages)
				r.Get("/top-rated", router.handler.TopRated)
				r.Get("/by-genre", router.handler.MoviesByGenre)
			})

			r.Route("/recommendations", func(r chi.Router) {
				r.Get("/similar/{movieID}", router.handler.Similar)
				r.Get("/popular", router.handler.Popular)
				r.Get("/me", router.handler.ForMe)
				r.Get("/profile", router.handler.Profile)
			})

			r.Get("/ratings", router.handler.ListRatings)
			r.Put("/ratings", router.handler.UpsertRating)

			// Admin only through the policy, like /admin/*.
			r.With(router.chiMiddleware.RateLimitPlayground()).Post("/playground/query", router.handler.PlaygroundQuery)

			// Admin only: the policy grants /api/v1/admin/* to the admin role.
			r.Route("/admin", func(r chi.Router) {
				r.Post("/movies", router.handler.AddMovie)
				r.Get("/storage", router.handler.Storage)
				r.Post("/cache/invalidate", router.handler.InvalidateCache)
				r.Get("/performance", router.handler.Performance)
			})
		})
	})

	return r
}
