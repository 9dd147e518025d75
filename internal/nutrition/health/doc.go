// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

// Package health folds a stream of per-meal quality scores into a
// per-user rolling health score with a trend summary, the number the
// homepage reads.
//
// # Rolling Score
//
// The rolling score is an exponentially time-decayed weighted average
// over the retained meal-score history: a meal logged d days ago
// weighs decayFactor^d, with decayFactor derived from the configured
// half-life (0.5 raised to 1/halfLifeDays). Every append recomputes
// the full decayed sum over the retained window rather than updating
// incrementally, so backfilled meals with older timestamps produce
// exactly the score a fully ordered history would, a deliberate
// consistency-over-performance choice at these data volumes.
//
// # State And Trend
//
// A user with no logged meals is Uninitialized and has a nil rolling
// score, distinguishing "no data" from "poor score". The trend
// compares the current rolling score against the score recomputed as
// of the configured horizon and reports improving, stable or declining
// behind a minimum-delta guard against noise-driven flip-flopping.
//
// # Concurrency
//
// The aggregator is the one stateful component of the engine. A
// striped per-user mutex table serializes same-user appends (one
// logical writer per user); appends for different users proceed
// independently. Two Store implementations back the history: an
// in-memory store for tests and embedded use, and a Badger-backed
// store for persistence across restarts.
package health
