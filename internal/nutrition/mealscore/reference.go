// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

package mealscore

import "github.com/tomtom215/nutriscope/internal/nutrition"

// DefaultReference returns the built-in balanced-macro reference
// profile used when a user has no configured target.
//
// Ranges describe one meal, roughly one third of a 2000 kcal reference
// day with macro bands inside the Dietary Guidelines AMDR splits
// (carbohydrate 45-65%, protein 10-35%, fat 20-35% of calories) plus a
// sodium guard. Macros are optional so a partial vector degrades
// gracefully instead of scoring phantom deviations.
func DefaultReference() nutrition.Target {
	return nutrition.Target{Ranges: map[nutrition.Key]nutrition.TargetRange{
		nutrition.KeyCalories: {Mode: nutrition.RangeMinMax, Min: 400, Max: 800, Required: true},
		nutrition.KeyProtein:  {Mode: nutrition.RangeMinMax, Min: 15, Max: 55},
		nutrition.KeyCarbs:    {Mode: nutrition.RangeMinMax, Min: 45, Max: 110},
		nutrition.KeyFat:      {Mode: nutrition.RangeMinMax, Min: 15, Max: 30},
		nutrition.KeySodium:   {Mode: nutrition.RangeMinMax, Min: 0, Max: 800},
	}}
}
