// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

// Package rank implements the target matching and ranking engine: it
// scores candidate recipes against a user's nutrient target, optionally
// blends in a pantry-coverage score, and returns a fully ordered,
// reproducible recommendation list.
//
// # Scoring
//
// Each targeted nutrient contributes a normalized deviation in [0,1]:
// zero inside the desired range, otherwise the distance from the
// nearest bound divided by the range width. The nutrient score is one
// minus the weighted mean deviation. The combined score blends nutrient
// fit with pantry convenience:
//
//	combined = alpha*nutrientScore + (1-alpha)*ingredientScore
//
// When no pantry match is supplied the ingredient score defaults to
// 1.0, yielding pure nutrient-based recommendation.
//
// # Ordering
//
// Recipes order by combined score descending. Scores equal within a
// small epsilon break ties by fewer missing ingredients, then by recipe
// identifier, so repeated calls over identical inputs always produce
// the identical sequence.
//
// # Diversity
//
// TopN optionally applies a greedy maximal-marginal-relevance pass that
// trades a little score for ingredient-set diversity among the selected
// recipes. Lambda 1 disables the pass.
//
// The Ranker holds no per-call state and is safe for concurrent use.
package rank
