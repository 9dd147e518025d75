// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

package nutrition

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed or out-of-range input. Requests
// failing validation are rejected immediately and never partially
// processed.
type ValidationError struct {
	// Field is the input field that failed validation.
	Field string `json:"field"`

	// Message describes the failure.
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidationError reports whether err wraps a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// WarningCode classifies data-quality warnings.
type WarningCode string

// Warning codes emitted by the engine.
const (
	// WarnUnitUnconvertible marks an ingredient whose quantity could not
	// be converted to its nutrient source's unit basis.
	WarnUnitUnconvertible WarningCode = "unit_unconvertible"

	// WarnSourceMissing marks an ingredient with no nutrient source.
	WarnSourceMissing WarningCode = "source_missing"

	// WarnUnparseableLine marks a free-text ingredient line that could
	// not be parsed.
	WarnUnparseableLine WarningCode = "unparseable_line"

	// WarnUnknownKey marks a nutrient key dropped at the boundary.
	WarnUnknownKey WarningCode = "unknown_nutrient_key"

	// WarnMissingNutrient marks a required target nutrient absent from
	// the scored vector, counted as maximal deviation.
	WarnMissingNutrient WarningCode = "missing_nutrient"

	// WarnNutrientUnavailable marks an optional target nutrient absent
	// from the scored vector, skipped rather than penalized.
	WarnNutrientUnavailable WarningCode = "nutrient_unavailable"

	// WarnNoScorableNutrients marks a score computed over zero
	// nutrients; the neutral midpoint value is reported instead.
	WarnNoScorableNutrients WarningCode = "no_scorable_nutrients"

	// WarnZeroIngredients marks a degenerate recipe with no required
	// ingredients.
	WarnZeroIngredients WarningCode = "zero_ingredients"

	// WarnNoTargetSignal marks a ranking computed without any
	// recognized target nutrient, ordered by ingredient score alone.
	WarnNoTargetSignal WarningCode = "no_target_signal"
)

// Warning is a structured data-quality warning. Warnings annotate
// results and flip their confidence to ConfidencePartial; they never
// abort a computation.
type Warning struct {
	// Code classifies the warning.
	Code WarningCode `json:"code"`

	// Message is a human-readable description.
	Message string `json:"message"`

	// Ingredient names the affected ingredient, when applicable.
	Ingredient string `json:"ingredient,omitempty"`

	// Key names the affected nutrient, when applicable.
	Key Key `json:"key,omitempty"`
}

// Warningf builds a Warning with a formatted message.
func Warningf(code WarningCode, format string, args ...any) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ConfidenceFor derives the confidence level implied by a warning list.
func ConfidenceFor(warnings []Warning) Confidence {
	if len(warnings) > 0 {
		return ConfidencePartial
	}
	return ConfidenceFull
}
