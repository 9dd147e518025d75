// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

// Package logging is the zerolog-backed logging layer shared by every
// Nutriscope component.
//
// main initializes the global logger from configuration once, before
// anything else logs:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
// Packages either log through the package-level event starters or
// derive a component logger to pass around:
//
//	logging.Info().Str("backend", backend).Msg("Starting Nutriscope")
//	logger := logging.With().Str("component", "health").Logger()
//
// The API layer stores request and correlation IDs in the request
// context (ContextWithRequestID, ContextWithNewCorrelationID); CtxWith
// stamps whatever IDs the context carries onto a derived logger so a
// request's log lines correlate:
//
//	logger := logging.CtxWith(r.Context()).Str("component", "api").Logger()
//
// Always terminate event chains with Msg or Send; an unterminated
// chain emits nothing.
//
// SlogHandler adapts the global logger to slog.Handler for the one
// slog-only consumer, sutureslog, so supervisor lifecycle events land
// in the same stream as engine and API logs.
//
// Tests that need a component's log output (or need it silenced) use
// NewTestLogger with their own writer instead of touching the global
// configuration.
package logging
