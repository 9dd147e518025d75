// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

// Package validation checks API request bodies against their
// go-playground/validator v10 struct tags and renders failures in the
// boundary's VALIDATION_ERROR shape.
//
// The validator instance is built lazily once and reused; validator
// caches struct metadata, so the singleton also keeps reflection cost
// off the request path.
//
// Validation at this layer is structural only: field presence, length
// caps, numeric bounds. Domain rules (recognized nutrient keys,
// target-range consistency) belong to the nutrition constructors,
// which return their own ValidationError.
//
//	var req AppendMealRequest
//	if err := decodeJSON(r, &req); err != nil { ... }
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    respondAPIError(w, http.StatusBadRequest, verr.ToAPIError())
//	    return
//	}
//
// ToAPIError keeps per-field detail: a single failure carries field,
// tag, and value; multiple failures carry a field list plus a joined
// message.
package validation
