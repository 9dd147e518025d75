// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

package mealscore

import (
	"fmt"

	"github.com/tomtom215/nutriscope/internal/metrics"
	"github.com/tomtom215/nutriscope/internal/nutrition"
	"github.com/tomtom215/nutriscope/internal/nutrition/rank"
)

// Defaults applied by DefaultConfig and for zero-valued fields.
const (
	// DefaultCalorieBound is the per-meal calorie ceiling before the
	// overeating penalty arms, matching the reference profile maximum.
	DefaultCalorieBound = 800.0

	// DefaultOvereatThreshold is the fraction above the bound that
	// triggers the penalty.
	DefaultOvereatThreshold = 0.15

	// DefaultOvereatPenalty is the multiplicative penalty factor.
	DefaultOvereatPenalty = 0.6
)

// Config holds meal scorer settings.
type Config struct {
	// CalorieBound is the per-meal calorie ceiling. Zero selects
	// DefaultCalorieBound.
	CalorieBound float64 `json:"calorie_bound" koanf:"calorie_bound"`

	// OvereatThreshold is the fraction above CalorieBound at which the
	// penalty applies: calories > bound*(1+threshold).
	OvereatThreshold float64 `json:"overeat_threshold" koanf:"overeat_threshold"`

	// OvereatPenalty multiplies the final score when the threshold is
	// exceeded. Must be in (0,1].
	OvereatPenalty float64 `json:"overeat_penalty" koanf:"overeat_penalty"`

	// ApplyAdjustments folds advisory rule adjustments into the final
	// score. Off by default so the pure deviation score stays exact;
	// consumed by the scoring service, not the scorer itself.
	ApplyAdjustments bool `json:"apply_adjustments" koanf:"apply_adjustments"`

	// Reference overrides the built-in default reference profile used
	// for users without a target. Nil keeps DefaultReference.
	Reference *nutrition.Target `json:"-" koanf:"-"`
}

// DefaultConfig returns production-ready defaults.
func DefaultConfig() Config {
	return Config{
		CalorieBound:     DefaultCalorieBound,
		OvereatThreshold: DefaultOvereatThreshold,
		OvereatPenalty:   DefaultOvereatPenalty,
	}
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	if c.CalorieBound < 0 {
		return fmt.Errorf("calorie_bound must be non-negative, got %f", c.CalorieBound)
	}
	if c.OvereatThreshold < 0 {
		return fmt.Errorf("overeat_threshold must be non-negative, got %f", c.OvereatThreshold)
	}
	if c.OvereatPenalty < 0 || c.OvereatPenalty > 1 {
		return fmt.Errorf("overeat_penalty must be in (0,1], got %f", c.OvereatPenalty)
	}
	if c.Reference != nil {
		if err := c.Reference.Validate(); err != nil {
			return fmt.Errorf("reference profile: %w", err)
		}
	}
	return nil
}

// Result is a scored meal.
type Result struct {
	// Value is the quality score in [0,100].
	Value float64 `json:"value"`

	// Breakdown details each targeted nutrient's deviation, in
	// deterministic key order.
	Breakdown []rank.NutrientDeviation `json:"breakdown,omitempty"`

	// Penalized marks scores reduced by the overeating penalty.
	Penalized bool `json:"penalized,omitempty"`

	// DefaultReference marks scores computed against the built-in
	// reference profile rather than a user target.
	DefaultReference bool `json:"default_reference,omitempty"`

	// Warnings lists data-quality issues encountered.
	Warnings []nutrition.Warning `json:"warnings,omitempty"`

	// Confidence is partial when the score was computed from an
	// incomplete nutrient vector.
	Confidence nutrition.Confidence `json:"confidence"`
}

// Scorer scores logged meals. It is stateless after construction and
// safe for concurrent use.
type Scorer struct {
	cfg Config
}

// NewScorer creates a Scorer with the given configuration.
func NewScorer(cfg Config) (*Scorer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scorer config: %w", err)
	}
	if cfg.CalorieBound == 0 {
		cfg.CalorieBound = DefaultCalorieBound
	}
	if cfg.OvereatPenalty == 0 {
		cfg.OvereatPenalty = DefaultOvereatPenalty
	}
	return &Scorer{cfg: cfg}, nil
}

// Score computes the quality score for one meal vector against the
// user's target, or against the built-in reference profile when target
// is nil.
func (s *Scorer) Score(meal nutrition.Vector, target *nutrition.Target) Result {
	defer metrics.MealsScored.Inc()

	usedDefault := false
	effective := nutrition.Target{}
	switch {
	case target != nil:
		effective = *target
	case s.cfg.Reference != nil:
		effective = *s.cfg.Reference
		usedDefault = true
	default:
		effective = DefaultReference()
		usedDefault = true
	}

	var warnings []nutrition.Warning

	if effective.IsEmpty() || meal.IsEmpty() {
		// Nothing to score against or nothing scorable: report the
		// neutral midpoint rather than inventing confidence.
		warnings = append(warnings, nutrition.Warningf(nutrition.WarnNoScorableNutrients,
			"no scorable nutrients; reporting neutral midpoint score"))
		return Result{
			Value:            50,
			DefaultReference: usedDefault,
			Warnings:         warnings,
			Confidence:       nutrition.ConfidencePartial,
		}
	}

	nutrientScore, breakdown, partial := rank.ScoreAgainstTarget(meal, effective)
	if partial {
		for _, d := range breakdown {
			switch {
			case d.Missing && d.Required:
				warnings = append(warnings, nutrition.Warning{
					Code:    nutrition.WarnMissingNutrient,
					Message: fmt.Sprintf("required nutrient %s missing from meal data", d.Key),
					Key:     d.Key,
				})
			case d.Missing:
				warnings = append(warnings, nutrition.Warning{
					Code:    nutrition.WarnNutrientUnavailable,
					Message: fmt.Sprintf("nutrient %s unavailable in meal data, skipped", d.Key),
					Key:     d.Key,
				})
			}
		}
	}

	value := 100 * nutrientScore

	penalized := false
	if calories, ok := meal.Get(nutrition.KeyCalories); ok {
		if calories > s.cfg.CalorieBound*(1+s.cfg.OvereatThreshold) {
			value *= s.cfg.OvereatPenalty
			penalized = true
		}
	}

	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	metrics.MealScoreDistribution.Observe(value)

	return Result{
		Value:            value,
		Breakdown:        breakdown,
		Penalized:        penalized,
		DefaultReference: usedDefault,
		Warnings:         warnings,
		Confidence:       nutrition.ConfidenceFor(warnings),
	}
}
