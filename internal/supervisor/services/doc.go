// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

/*
Package services provides suture.Service wrappers for CineArchive components.

Each wrapper turns a component's own lifecycle into suture's
Serve(ctx) error contract:

  - HTTPServerService: ListenAndServe until canceled, then graceful Shutdown.
  - CorpusRefreshService: reloads the recommendation corpus on a ticker and
    publishes its size and outcome as metrics.
  - LimiterSweepService: evicts idle per-account login throttle buckets.

Services return ctx.Err() on cancellation. Only HTTPServerService returns
other errors, so a port conflict is retried with the supervisor's backoff.
*/
package services
