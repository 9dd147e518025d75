// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

// Package advice evaluates condition-aware advisory rules over a
// meal's nutrient vector: a user with hypertension logging a
// high-sodium meal gets a High-severity advisory, a high-fiber meal
// gets a positive note, and each advisory carries an optional score
// adjustment.
//
// Rules are data, not code branches: the built-in set (DefaultRules)
// can be replaced or extended through configuration, and every rule
// names the nutrient it watches, the threshold, the condition that
// gates it (empty means it applies to everyone) and the adjustment it
// suggests. Applying adjustments is the scorer's choice; Apply clamps
// the adjusted score to [0,100].
package advice
