// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

package normalize

import (
	"math"
	"testing"

	"github.com/tomtom215/nutriscope/internal/nutrition"
)

func TestParseIngredientLines(t *testing.T) {
	text := `
- 2 cups flour
* 150 g chicken breast
1 1/2 tbsp olive oil
1/2 cup of milk
3 eggs
salt
`

	ingredients, warnings := ParseIngredientLines(text)
	if len(warnings) != 0 {
		t.Fatalf("warnings = %v, want none", warnings)
	}

	want := []nutrition.Ingredient{
		{ID: "flour", Name: "flour", Quantity: 2, Unit: "cups"},
		{ID: "chicken_breast", Name: "chicken breast", Quantity: 150, Unit: "g"},
		{ID: "olive_oil", Name: "olive oil", Quantity: 1.5, Unit: "tbsp"},
		{ID: "milk", Name: "milk", Quantity: 0.5, Unit: "cup"},
		{ID: "eggs", Name: "eggs", Quantity: 3, Unit: "count"},
		{ID: "salt", Name: "salt", Quantity: 1, Unit: "count"},
	}

	if len(ingredients) != len(want) {
		t.Fatalf("parsed %d ingredients, want %d: %+v", len(ingredients), len(want), ingredients)
	}
	for i, w := range want {
		got := ingredients[i]
		if got.ID != w.ID || got.Name != w.Name || got.Unit != w.Unit {
			t.Errorf("ingredient[%d] = %+v, want %+v", i, got, w)
		}
		if math.Abs(got.Quantity-w.Quantity) > 1e-12 {
			t.Errorf("ingredient[%d] quantity = %v, want %v", i, got.Quantity, w.Quantity)
		}
	}
}

func TestParseIngredientLinesWarnings(t *testing.T) {
	text := "2\n- 100 g flour"

	ingredients, warnings := ParseIngredientLines(text)
	if len(ingredients) != 1 || ingredients[0].ID != "flour" {
		t.Fatalf("ingredients = %+v, want only flour", ingredients)
	}
	if len(warnings) != 1 || warnings[0].Code != nutrition.WarnUnparseableLine {
		t.Fatalf("warnings = %v, want one unparseable_line", warnings)
	}
}

func TestParseQuantityForms(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		want  float64
		unit  string
		ingID string
	}{
		{name: "decimal", line: "1.5 cups sugar", want: 1.5, unit: "cups", ingID: "sugar"},
		{name: "comma decimal", line: "1,5 l water", want: 1.5, unit: "l", ingID: "water"},
		{name: "plain fraction", line: "3/4 cup oats", want: 0.75, unit: "cup", ingID: "oats"},
		{name: "mixed number", line: "2 1/4 tsp yeast", want: 2.25, unit: "tsp", ingID: "yeast"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ings, warns := ParseIngredientLines(tt.line)
			if len(warns) != 0 {
				t.Fatalf("warnings = %v, want none", warns)
			}
			if len(ings) != 1 {
				t.Fatalf("parsed %d ingredients, want 1", len(ings))
			}
			got := ings[0]
			if math.Abs(got.Quantity-tt.want) > 1e-12 {
				t.Errorf("quantity = %v, want %v", got.Quantity, tt.want)
			}
			if got.Unit != tt.unit {
				t.Errorf("unit = %q, want %q", got.Unit, tt.unit)
			}
			if got.ID != tt.ingID {
				t.Errorf("id = %q, want %q", got.ID, tt.ingID)
			}
		})
	}
}
