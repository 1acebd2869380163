// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

// Package authz provides role-based authorization using Casbin.
//
// Requests pass authentication first, then authorization:
//
//	Request -> auth.Middleware.Authenticate -> authz.Middleware.AuthorizeRequest -> Handler
//
// # Model
//
// The embedded model matches request paths with keyMatch2 and compares
// actions exactly. Roles inherit through g rules:
//
//	m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && r.act == p.act
//
// # Policy
//
// Two roles exist. viewer covers every signed-in account: catalogue
// reads, recommendations and the caller's own ratings. admin inherits
// viewer and adds /api/v1/admin/* and the SQL playground.
//
//	p, viewer, /api/v1/movies/*, read
//	p, admin, /api/v1/admin/*, write
//	g, admin, viewer
//
// HTTP methods map to actions: GET/HEAD/OPTIONS are read, POST/PUT/PATCH
// are write and DELETE is delete.
//
// A policy file can replace the embedded policy through
// EnforcerConfig.PolicyPath; it is then reloaded every ReloadInterval.
//
// # Caching
//
// Decisions are cached per (subject, object, action) for CacheTTL.
// Policy changes made through the Enforcer clear the cache.
package authz
