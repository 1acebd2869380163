// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

// Package cache provides a thread-safe in-memory TTL cache.
//
// It backs the normalized movie corpus held by the recommendation engine
// and short-lived API read caches (catalogue stats, genre averages). Keys
// for parameterized reads are built with GenerateKey.
package cache
