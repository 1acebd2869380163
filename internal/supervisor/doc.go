// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

/*
Package supervisor runs the long-lived parts of CineArchive under a suture v4
supervisor tree.

# Overview

Services are grouped into three layers so a failure in one does not take
down the others:

	RootSupervisor ("cinearchive")
	├── DataSupervisor ("data-layer")
	│   └── CorpusRefreshService   (recommendation corpus reload)
	├── BackgroundSupervisor ("background-layer")
	│   └── LimiterSweepService    (idle login throttle buckets)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A crashed service is restarted with backoff. When the failure threshold of
a layer is exceeded that layer backs off for FailureBackoff while the rest
of the tree keeps serving.

# Events

Supervisor events are logged through sutureslog into the zerolog logger
(see logging.NewSlogLogger) and counted in the
supervisor_service_events_total metric, labelled by supervisor and event
(terminate, panic, stop_timeout, backoff, resume).

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewCorpusRefreshService(engine, refreshCfg, logger))
	tree.AddBackgroundService(services.NewLimiterSweepService(limiter, time.Minute, auth.IdleBucketTTL))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

The concrete services live in the services subpackage.
*/
package supervisor
