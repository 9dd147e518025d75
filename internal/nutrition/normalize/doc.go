// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

// Package normalize converts heterogeneous per-ingredient nutrient
// records into canonical per-serving nutrient vectors.
//
// Each ingredient quantity is converted to the unit basis of its
// nutrient source before scaling. Conversion failures and missing
// sources exclude the ingredient with a recorded warning instead of
// failing the recipe: a partially known recipe still yields a partial
// vector flagged with ConfidencePartial.
//
// Normalization is deterministic: ingredients are processed in recipe
// order, no randomness is involved, and nutrient sources are
// pre-fetched inputs rather than live lookups.
//
// The package also parses free-text ingredient lines ("2 cups flour")
// from the recipe-generation collaborator into structured ingredients
// so generated recipes run through the same pipeline as catalog ones.
package normalize
