// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

/*
Package supervisor provides process supervision for Nutriscope using suture v4.

This package implements a hierarchical supervisor tree that manages the lifecycle
of all long-running services in the application. It provides Erlang/OTP-style
supervision with automatic restart, failure isolation, and graceful shutdown.

# Overview

The supervisor tree organizes services into two layers for failure isolation:

	RootSupervisor ("nutriscope")
	├── StoreSupervisor ("store-layer")
	│   ├── BadgerGCService (badger backend only)
	│   └── PruneService (health retention)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

This hierarchy ensures that:
  - A crash in store maintenance doesn't affect API availability
  - The HTTP server can restart without disturbing background pruning
  - Each layer has independent failure counting

# Key Features

Automatic Restart:
  - Crashed services are automatically restarted
  - Exponential backoff prevents restart storms
  - Configurable failure thresholds and decay rates

Graceful Shutdown:
  - Context cancellation triggers orderly shutdown
  - Configurable shutdown timeout per service
  - UnstoppedServiceReport for debugging hangs

Structured Logging:
  - Integration with slog for structured events
  - Logs service starts, stops, failures, and restarts
  - Event hooks via the sutureslog adapter; internal/logging's
    SlogHandler routes those events into the global zerolog stream

# Usage Example

Basic setup in main.go:

	slogger := slog.New(logging.NewSlogHandler())
	tree, err := supervisor.NewSupervisorTree(slogger, supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}

	tree.AddStoreService(health.NewPruneService(agg, time.Hour, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	if err := tree.Serve(ctx); err != nil {
	    return err
	}

Services implement suture.Service: a Serve(ctx) method that blocks until
the context is canceled or the service fails, plus fmt.Stringer for log
identification. The services subpackage wraps components that don't
natively follow this shape.
*/
package supervisor
