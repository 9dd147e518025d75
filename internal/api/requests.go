// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

package api

import (
	"time"

	"github.com/tomtom215/nutriscope/internal/nutrition"
	"github.com/tomtom215/nutriscope/internal/nutrition/advice"
	"github.com/tomtom215/nutriscope/internal/nutrition/health"
	"github.com/tomtom215/nutriscope/internal/nutrition/mealscore"
	"github.com/tomtom215/nutriscope/internal/nutrition/normalize"
	"github.com/tomtom215/nutriscope/internal/nutrition/rank"
)

// RecommendRequest asks for a ranked recipe list against a nutrient
// target. Candidates arrive raw and are normalized server-side; the
// caller resolves nutrient sources before submitting.
type RecommendRequest struct {
	// Target maps nutrient keys to desired ranges. Unknown keys are
	// rejected with a validation error.
	Target map[string]nutrition.TargetRange `json:"target"`

	// Candidates are the recipes to rank.
	Candidates []normalize.RecipeInput `json:"candidates" validate:"max=500"`

	// Sources holds the pre-fetched nutrient sources the candidates
	// reference.
	Sources normalize.SourceSet `json:"sources"`

	// Pantry lists ingredient identifiers on hand. Empty means rank
	// by nutrient fit alone.
	Pantry []string `json:"pantry,omitempty" validate:"max=1000"`

	// Limit caps the ranking length. Zero returns the full ranking.
	Limit int `json:"limit,omitempty" validate:"min=0,max=100"`
}

// RecommendResponse is the ranked list with candidate-level
// normalization warnings.
type RecommendResponse struct {
	// Ranking is the ordered result, best first.
	Ranking rank.Result `json:"ranking"`

	// Warnings aggregates data-quality issues raised while
	// normalizing the candidates.
	Warnings []nutrition.Warning `json:"warnings,omitempty"`
}

// ScoreMealRequest asks for a quality score for one meal's nutrient
// vector. Target and profile are optional; a missing target scores the
// meal against the built-in reference profile.
type ScoreMealRequest struct {
	// Nutrients is the meal's nutrient vector by key.
	Nutrients map[string]float64 `json:"nutrients" validate:"required"`

	// Target optionally overrides the reference profile.
	Target map[string]nutrition.TargetRange `json:"target,omitempty"`

	// Profile gates condition-specific advisory rules.
	Profile advice.Profile `json:"profile,omitempty"`
}

// ScoreMealResponse is a scored meal with any fired advisories.
type ScoreMealResponse struct {
	// Score is the deviation-based quality score and breakdown.
	Score mealscore.Result `json:"score"`

	// Advisories lists the fired advisory rules, severity descending.
	Advisories []advice.Advisory `json:"advisories,omitempty"`

	// AdjustedValue is the score after folding in advisory
	// adjustments, present only when adjustment application is
	// enabled in configuration.
	AdjustedValue *float64 `json:"adjusted_value,omitempty"`
}

// AppendMealRequest logs one scored meal into a user's health history.
type AppendMealRequest struct {
	// UserID owns the meal log.
	UserID string `json:"user_id" validate:"required,max=128"`

	// MealID references the meal-log entry.
	MealID string `json:"meal_id" validate:"required,max=128"`

	// Timestamp is when the meal was eaten. Zero means now.
	Timestamp time.Time `json:"timestamp,omitempty"`

	// Score is the meal quality score in [0,100].
	Score float64 `json:"score" validate:"gte=0,lte=100"`
}

// RecentMealsResponse lists a user's recent scored meals, newest first.
type RecentMealsResponse struct {
	// UserID owns the records.
	UserID string `json:"user_id"`

	// Meals is the record list, newest first.
	Meals []health.Record `json:"meals"`
}
