// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

// Package logging provides centralized zerolog-based logging for CineArchive.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Msg("Server starting")
//	logging.Error().Err(err).Msg("Operation failed")
//
//	// Request-scoped fields (request_id, correlation_id)
//	logging.Ctx(ctx).Info().Int64("user_id", uid).Msg("Rating saved")
//
// # Configuration
//
// Environment Variables (read by internal/config):
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false, include caller info (default: false)
//
// # Components
//
// Long-lived components take a child logger from WithComponent so that every
// line carries a component field:
//
//	recommend, database, api, auth, supervisor, cli
//
// # slog bridge
//
// Libraries that log through log/slog (the suture supervisor via sutureslog)
// get a *slog.Logger from NewSlogLogger, which writes into the same zerolog
// sink.
//
// # Security events
//
// SecurityLogger records authentication and authorization outcomes with
// emails and tokens masked.
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
package logging
