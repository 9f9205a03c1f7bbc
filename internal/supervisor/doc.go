// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package supervisor provides process supervision for Marquee using suture v4.

Long-running services live in a two-layer tree:

	RootSupervisor ("marquee")
	├── DataSupervisor ("data-layer")
	│   └── CacheMaintenanceService (badger or memory cache only)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Each layer counts failures independently, so a crashing maintenance loop
backs off on its own while the HTTP server keeps serving.

# Usage

	tree := supervisor.New(logger, supervisor.DefaultTreeConfig())
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second, logger))
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

# Failure Handling

Each failure increments a counter that decays over FailureDecay seconds.
Past FailureThreshold, restarts wait FailureBackoff. A service that returns
nil is not restarted; one that returns an error is.

The catalog and the metadata client are not supervised: they hold no
goroutines of their own.

If services do not stop within ShutdownTimeout, UnstoppedServiceReport lists
them.
*/
package supervisor
