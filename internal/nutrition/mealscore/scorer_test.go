// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

package mealscore

import (
	"math"
	"testing"

	"github.com/tomtom215/nutriscope/internal/nutrition"
)

func newTestScorer(t *testing.T, cfg Config) *Scorer {
	t.Helper()
	s, err := NewScorer(cfg)
	if err != nil {
		t.Fatalf("NewScorer() error = %v", err)
	}
	return s
}

func mealTarget(t *testing.T) nutrition.Target {
	t.Helper()
	target, err := nutrition.NewTarget(map[nutrition.Key]nutrition.TargetRange{
		nutrition.KeyProtein:  {Mode: nutrition.RangeMinMax, Min: 40, Max: 60, Required: true},
		nutrition.KeyCalories: {Mode: nutrition.RangeMinMax, Min: 500, Max: 700, Required: true},
	})
	if err != nil {
		t.Fatalf("NewTarget() error = %v", err)
	}
	return target
}

func TestScorePerfectMeal(t *testing.T) {
	s := newTestScorer(t, DefaultConfig())
	target := mealTarget(t)

	meal := nutrition.MustVector(map[nutrition.Key]float64{
		nutrition.KeyProtein:  50,
		nutrition.KeyCalories: 600,
	})

	res := s.Score(meal, &target)
	if res.Value != 100 {
		t.Errorf("Value = %v, want 100", res.Value)
	}
	if res.Confidence != nutrition.ConfidenceFull {
		t.Errorf("Confidence = %v, want full", res.Confidence)
	}
	if res.Penalized || res.DefaultReference {
		t.Errorf("Penalized = %v, DefaultReference = %v, want both false", res.Penalized, res.DefaultReference)
	}
	if len(res.Breakdown) != 2 {
		t.Errorf("len(Breakdown) = %d, want 2", len(res.Breakdown))
	}
}

func TestScoreMonotonicUnderAlignment(t *testing.T) {
	s := newTestScorer(t, DefaultConfig())
	target := mealTarget(t)

	// Protein moves stepwise closer to the [40,60] range; each step
	// must never decrease the score.
	prev := -1.0
	for _, protein := range []float64{10, 20, 30, 40, 50} {
		meal := nutrition.MustVector(map[nutrition.Key]float64{
			nutrition.KeyProtein:  protein,
			nutrition.KeyCalories: 600,
		})
		res := s.Score(meal, &target)
		if res.Value < prev {
			t.Errorf("score at protein=%v dropped to %v from %v", protein, res.Value, prev)
		}
		prev = res.Value
	}
}

func TestScoreOvereatingPenaltyMultiplicative(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CalorieBound = 700
	cfg.OvereatThreshold = 0.1
	cfg.OvereatPenalty = 0.6
	s := newTestScorer(t, cfg)

	target, err := nutrition.NewTarget(map[nutrition.Key]nutrition.TargetRange{
		nutrition.KeyProtein: {Mode: nutrition.RangeMinMax, Min: 40, Max: 60, Required: true},
	})
	if err != nil {
		t.Fatalf("NewTarget() error = %v", err)
	}

	// Protein is perfect; only calories trip the penalty.
	meal := nutrition.MustVector(map[nutrition.Key]float64{
		nutrition.KeyProtein:  50,
		nutrition.KeyCalories: 1000,
	})

	res := s.Score(meal, &target)
	if !res.Penalized {
		t.Fatal("Penalized = false, want true")
	}
	if math.Abs(res.Value-60) > 1e-9 {
		t.Errorf("Value = %v, want 60 (100 * 0.6)", res.Value)
	}
	if res.Value < 0 {
		t.Errorf("Value = %v, penalty must never go negative", res.Value)
	}

	// Just inside the threshold: no penalty.
	within := nutrition.MustVector(map[nutrition.Key]float64{
		nutrition.KeyProtein:  50,
		nutrition.KeyCalories: 760,
	})
	if res := s.Score(within, &target); res.Penalized {
		t.Error("Penalized = true below threshold, want false")
	}
}

func TestScoreNilTargetUsesDefaultReference(t *testing.T) {
	s := newTestScorer(t, DefaultConfig())

	meal := nutrition.MustVector(map[nutrition.Key]float64{
		nutrition.KeyCalories: 600,
		nutrition.KeyProtein:  30,
		nutrition.KeyCarbs:    70,
		nutrition.KeyFat:      20,
		nutrition.KeySodium:   400,
	})

	res := s.Score(meal, nil)
	if !res.DefaultReference {
		t.Error("DefaultReference = false, want true")
	}
	if res.Value != 100 {
		t.Errorf("Value = %v, want 100 for a balanced meal", res.Value)
	}
}

func TestScoreReferenceOverride(t *testing.T) {
	override, err := nutrition.NewTarget(map[nutrition.Key]nutrition.TargetRange{
		nutrition.KeyCalories: {Mode: nutrition.RangeMinMax, Min: 100, Max: 200, Required: true},
	})
	if err != nil {
		t.Fatalf("NewTarget() error = %v", err)
	}
	cfg := DefaultConfig()
	cfg.Reference = &override
	s := newTestScorer(t, cfg)

	meal := nutrition.MustVector(map[nutrition.Key]float64{nutrition.KeyCalories: 150})
	res := s.Score(meal, nil)
	if !res.DefaultReference {
		t.Error("DefaultReference = false, want true")
	}
	if res.Value != 100 {
		t.Errorf("Value = %v, want 100 against the override profile", res.Value)
	}
}

func TestScorePartialVectorDegradesGracefully(t *testing.T) {
	s := newTestScorer(t, DefaultConfig())
	target := mealTarget(t)

	// Vision service returned only calories; required protein missing.
	meal := nutrition.MustVector(map[nutrition.Key]float64{nutrition.KeyCalories: 600})

	res := s.Score(meal, &target)
	if res.Confidence != nutrition.ConfidencePartial {
		t.Errorf("Confidence = %v, want partial", res.Confidence)
	}
	if math.Abs(res.Value-50) > 1e-9 {
		t.Errorf("Value = %v, want 50 (calories perfect, protein missing)", res.Value)
	}
	found := false
	for _, w := range res.Warnings {
		if w.Code == nutrition.WarnMissingNutrient && w.Key == nutrition.KeyProtein {
			found = true
		}
	}
	if !found {
		t.Errorf("Warnings = %v, want missing_nutrient for protein", res.Warnings)
	}
}

func TestScoreCaloriesOnlyVectorIsPartial(t *testing.T) {
	s := newTestScorer(t, DefaultConfig())

	// Vision service returned only calories. The reference profile's
	// macros are optional, so the value stays unpenalized, but the
	// caller must still see that most of the profile went unchecked.
	meal := nutrition.MustVector(map[nutrition.Key]float64{nutrition.KeyCalories: 600})

	res := s.Score(meal, nil)
	if !res.DefaultReference {
		t.Error("DefaultReference = false, want true")
	}
	if res.Value != 100 {
		t.Errorf("Value = %v, want 100 (calories in range, optional macros skipped)", res.Value)
	}
	if res.Confidence != nutrition.ConfidencePartial {
		t.Errorf("Confidence = %v, want partial for a calories-only vector", res.Confidence)
	}

	unavailable := map[nutrition.Key]bool{}
	for _, w := range res.Warnings {
		if w.Code == nutrition.WarnMissingNutrient {
			t.Errorf("unexpected missing_nutrient warning for optional %s", w.Key)
		}
		if w.Code == nutrition.WarnNutrientUnavailable {
			unavailable[w.Key] = true
		}
	}
	for _, key := range []nutrition.Key{nutrition.KeyProtein, nutrition.KeyCarbs, nutrition.KeyFat, nutrition.KeySodium} {
		if !unavailable[key] {
			t.Errorf("Warnings = %v, want nutrient_unavailable for %s", res.Warnings, key)
		}
	}
}

func TestScoreEmptyMealNeutralMidpoint(t *testing.T) {
	s := newTestScorer(t, DefaultConfig())
	target := mealTarget(t)

	res := s.Score(nutrition.Vector{}, &target)
	if res.Value != 50 {
		t.Errorf("Value = %v, want neutral midpoint 50", res.Value)
	}
	if res.Confidence != nutrition.ConfidencePartial {
		t.Errorf("Confidence = %v, want partial", res.Confidence)
	}
	if len(res.Warnings) == 0 || res.Warnings[0].Code != nutrition.WarnNoScorableNutrients {
		t.Errorf("Warnings = %v, want no_scorable_nutrients", res.Warnings)
	}
}

func TestScorerConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "defaults", cfg: DefaultConfig(), wantErr: false},
		{name: "negative bound", cfg: Config{CalorieBound: -1}, wantErr: true},
		{name: "negative threshold", cfg: Config{OvereatThreshold: -0.1}, wantErr: true},
		{name: "penalty above one", cfg: Config{OvereatPenalty: 1.5}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
