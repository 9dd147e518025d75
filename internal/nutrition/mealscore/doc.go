// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

// Package mealscore turns one logged meal's nutrient vector into a
// single quality score in [0,100] plus a per-nutrient breakdown.
//
// The score reuses the ranking engine's deviation function on a 0-100
// scale: 100 times one minus the weighted mean deviation from the
// user's target, clamped. Calories exceeding the configured upper
// bound by more than the overeat threshold apply a multiplicative
// penalty, so overeating can depress the score but never push it
// negative.
//
// Users without a configured target score against an explicit built-in
// balanced-macro reference profile (DefaultReference), never a silent
// approximation. Meals with missing nutrient data (a vision estimate
// that returned only calories, say) score over the available subset
// and carry ConfidencePartial so callers can tell a degraded score
// from a full one.
package mealscore
