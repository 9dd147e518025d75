// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

/*
Package services provides suture.Service wrappers for Nutriscope components.

This package adapts application components to the suture v4 supervision
model, translating their native lifecycle patterns (ListenAndServe,
tick loops) into suture's context-aware Serve pattern.

# Overview

Each wrapper implements the suture.Service interface:

	type Service interface {
	    Serve(ctx context.Context) error
	}

The wrappers handle:
  - Lifecycle translation into the Serve pattern
  - Graceful shutdown via context cancellation
  - Error propagation for supervisor restart decisions
  - Service identification via fmt.Stringer

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - Converts ListenAndServe pattern to Serve
  - Configurable shutdown timeout for draining connections

Badger GC (BadgerGCService):
  - Runs value-log garbage collection on an interval
  - Badger backend only; the memory store needs no maintenance
  - GC errors are logged and retried on the next tick

Retention pruning lives in the health package (health.PruneService)
since it operates through the Aggregator; it implements suture.Service
directly and is added to the store layer without a wrapper here.

# Design Notes

Services return ctx.Err() on graceful shutdown so suture can tell
normal termination from failure. A service that returns a non-context
error is restarted with exponential backoff by its supervisor.
*/
package services
