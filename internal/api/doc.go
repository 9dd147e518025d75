// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

// Package api exposes the nutrition engine over a thin JSON boundary
// for the presentation collaborator.
//
// # Endpoints
//
// The surface is deliberately small. Five domain endpoints cover the
// engine's operations, plus ops endpoints for probes and metrics:
//
//	POST /api/v1/recommendations            target + candidates + pantry → ranked list
//	POST /api/v1/meals/score                nutrient vector (+ target, profile) → score + advisories
//	POST /api/v1/meals                      meal log append → updated health snapshot
//	GET  /api/v1/users/{userID}/health      rolling health snapshot
//	GET  /api/v1/users/{userID}/meals/recent recent scored meals
//	GET  /api/v1/health/live                liveness probe
//	GET  /api/v1/health/ready               readiness probe (store reachable)
//	GET  /metrics                           Prometheus metrics
//
// There is no auth, no sessions, and no raw-record CRUD; those concerns
// live with external collaborators.
//
// # Request handling
//
// Bodies are decoded with goccy/go-json and validated twice: structural
// constraints through internal/validation (go-playground/validator tags
// on the request DTOs), then domain constraints through the nutrition
// constructors (nutrition.NewTarget, nutrition.NewVector). Both map to
// a 400 response with the VALIDATION_ERROR code. Data-quality warnings
// never fail a request; they ride along in the 200 payload.
//
// # Middleware
//
// Chi's middleware stack applies to every route: request ID generation
// with logging context, real IP extraction, panic recovery, and CORS.
// API routes additionally carry httprate rate limiting and Prometheus
// request instrumentation keyed by chi route pattern (never by raw URL,
// keeping metric cardinality bounded).
package api
