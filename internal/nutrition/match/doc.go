// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

// Package match scores pantry-to-recipe ingredient coverage.
//
// Exact pantry hits count fully. A configurable substitution table may
// count a substitute as a partial match instead of a hard miss; the
// relation is symmetric and resolved one hop only, never chained. The
// score is the matched weight divided by the number of required
// ingredients, in [0, 1], and every result carries the exact set of
// missing ingredient identifiers.
//
// Recipes with no required ingredients are degenerate: they score 0
// with an explicit flag rather than dividing by zero.
package match
