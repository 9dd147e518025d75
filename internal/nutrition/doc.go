// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

// Package nutrition defines the core domain types shared by the engine:
// nutrient vectors, user targets, recipes, pantries and meal logs.
//
// # Data Model
//
// All nutrient data flows through these types:
//
//   - Vector: immutable per-serving mapping of nutrient key to amount
//   - Target: user-owned desired ranges per nutrient key
//   - Recipe: ingredient list plus derived per-serving Vector
//   - Pantry: ingredient identifiers currently on hand
//   - MealLog: one logged meal with its Vector and provenance
//
// # Closed Key Schema
//
// Nutrient keys form a closed enumeration (see Key). Unknown keys are
// rejected or dropped at the boundary rather than carried as free-form
// dictionary entries, so every downstream computation operates on a
// known schema.
//
// # Error Taxonomy
//
// Three outcome classes are distinguished throughout the engine:
//
//   - ValidationError: malformed input, rejected before any computation
//   - Warning: data-quality degradation, recorded on the result while
//     computation proceeds over the available subset
//   - degenerate results: defined non-error outcomes (empty candidate
//     sets, zero-ingredient recipes) carrying explicit flags
//
// Results computed from degraded input always carry ConfidencePartial so
// callers can distinguish them from fully grounded numbers.
package nutrition
