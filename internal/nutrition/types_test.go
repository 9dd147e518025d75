// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

package nutrition

import (
	"math"
	"testing"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Key
		wantErr bool
	}{
		{name: "calories", input: "calories", want: KeyCalories},
		{name: "protein", input: "protein_g", want: KeyProtein},
		{name: "micronutrient", input: "vitamin_c_mg", want: KeyVitaminC},
		{name: "unknown key", input: "unobtainium_g", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "wrong unit suffix", input: "protein_mg", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				if !IsValidationError(err) {
					t.Errorf("ParseKey(%q) error = %v, want ValidationError", tt.input, err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseKey(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewVector(t *testing.T) {
	tests := []struct {
		name    string
		amounts map[Key]float64
		wantErr bool
	}{
		{
			name:    "valid macros",
			amounts: map[Key]float64{KeyCalories: 600, KeyProtein: 40},
		},
		{
			name:    "zero amount is valid",
			amounts: map[Key]float64{KeySugar: 0},
		},
		{
			name:    "negative amount rejected",
			amounts: map[Key]float64{KeyProtein: -1},
			wantErr: true,
		},
		{
			name:    "unknown key rejected",
			amounts: map[Key]float64{Key("caffeine_mg"): 80},
			wantErr: true,
		},
		{
			name:    "nil map yields empty vector",
			amounts: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := NewVector(tt.amounts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewVector() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if v.Len() != len(tt.amounts) {
				t.Errorf("Len() = %d, want %d", v.Len(), len(tt.amounts))
			}
		})
	}
}

func TestVectorImmutability(t *testing.T) {
	src := map[Key]float64{KeyCalories: 500}
	v := MustVector(src)

	// Mutating the source map must not affect the vector.
	src[KeyCalories] = 9000
	if got, _ := v.Get(KeyCalories); got != 500 {
		t.Errorf("Get(calories) = %v after source mutation, want 500", got)
	}

	// Mutating the exported copy must not affect the vector either.
	copied := v.Amounts()
	copied[KeyCalories] = 1
	if got, _ := v.Get(KeyCalories); got != 500 {
		t.Errorf("Get(calories) = %v after copy mutation, want 500", got)
	}
}

func TestVectorScaleAndAdd(t *testing.T) {
	v := MustVector(map[Key]float64{KeyCalories: 200, KeyProtein: 10})

	scaled := v.Scale(0.5)
	if got, _ := scaled.Get(KeyCalories); got != 100 {
		t.Errorf("Scale(0.5) calories = %v, want 100", got)
	}

	sum := v.Add(MustVector(map[Key]float64{KeyProtein: 5, KeyFiber: 3}))
	if got, _ := sum.Get(KeyProtein); got != 15 {
		t.Errorf("Add() protein = %v, want 15", got)
	}
	if got, _ := sum.Get(KeyFiber); got != 3 {
		t.Errorf("Add() fiber = %v, want 3", got)
	}
	// Original untouched.
	if got, _ := v.Get(KeyProtein); got != 10 {
		t.Errorf("original protein = %v after Add, want 10", got)
	}
}

func TestVectorKeysDeterministic(t *testing.T) {
	v := MustVector(map[Key]float64{KeySodium: 1, KeyCalories: 2, KeyProtein: 3})
	first := v.Keys()
	for i := 0; i < 10; i++ {
		again := v.Keys()
		if len(again) != len(first) {
			t.Fatalf("Keys() length changed between calls")
		}
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("Keys() order changed between calls: %v vs %v", first, again)
			}
		}
	}
}

func TestTargetRangeDeviation(t *testing.T) {
	minMax := TargetRange{Mode: RangeMinMax, Min: 40, Max: 60}
	around := TargetRange{Mode: RangeTolerance, Target: 600, Tolerance: 100}
	point := TargetRange{Mode: RangeMinMax, Min: 50, Max: 50}

	tests := []struct {
		name   string
		r      TargetRange
		amount float64
		want   float64
	}{
		{name: "inside min max", r: minMax, amount: 50, want: 0},
		{name: "at lower bound", r: minMax, amount: 40, want: 0},
		{name: "at upper bound", r: minMax, amount: 60, want: 0},
		{name: "below by half width", r: minMax, amount: 30, want: 0.5},
		{name: "above by full width", r: minMax, amount: 80, want: 1},
		{name: "far below caps at one", r: minMax, amount: 0, want: 1},
		{name: "inside tolerance", r: around, amount: 650, want: 0},
		{name: "above tolerance", r: around, amount: 750, want: 0.25},
		{name: "zero width outside", r: point, amount: 51, want: 1},
		{name: "zero width inside", r: point, amount: 50, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.r.Deviation(tt.amount)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Deviation(%v) = %v, want %v", tt.amount, got, tt.want)
			}
		})
	}
}

func TestTargetRangeValidate(t *testing.T) {
	tests := []struct {
		name    string
		r       TargetRange
		wantErr bool
	}{
		{name: "valid min max", r: TargetRange{Mode: RangeMinMax, Min: 10, Max: 20}},
		{name: "valid tolerance", r: TargetRange{Mode: RangeTolerance, Target: 50, Tolerance: 5}},
		{name: "max below min", r: TargetRange{Mode: RangeMinMax, Min: 20, Max: 10}, wantErr: true},
		{name: "negative min", r: TargetRange{Mode: RangeMinMax, Min: -1, Max: 10}, wantErr: true},
		{name: "negative tolerance", r: TargetRange{Mode: RangeTolerance, Target: 50, Tolerance: -1}, wantErr: true},
		{name: "negative weight", r: TargetRange{Mode: RangeMinMax, Min: 0, Max: 1, Weight: -2}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewTarget(t *testing.T) {
	_, err := NewTarget(map[Key]TargetRange{
		KeyProtein:  {Mode: RangeMinMax, Min: 40, Max: 60, Required: true},
		KeyCalories: {Mode: RangeMinMax, Min: 500, Max: 700, Required: true},
	})
	if err != nil {
		t.Fatalf("NewTarget() error = %v", err)
	}

	_, err = NewTarget(map[Key]TargetRange{
		KeyProtein: {Mode: RangeMinMax, Min: 60, Max: 40},
	})
	if err == nil {
		t.Fatal("NewTarget() with inverted bounds: expected error")
	}
}

func TestPantry(t *testing.T) {
	p := NewPantry("egg", "flour", "egg", "")

	if p.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (duplicates and empties dropped)", p.Len())
	}
	if !p.Has("egg") {
		t.Error("Has(egg) = false, want true")
	}
	if p.Has("milk") {
		t.Error("Has(milk) = true, want false")
	}

	items := p.Items()
	if len(items) != 2 || items[0] != "egg" || items[1] != "flour" {
		t.Errorf("Items() = %v, want [egg flour]", items)
	}
}

func TestConfidenceFor(t *testing.T) {
	if got := ConfidenceFor(nil); got != ConfidenceFull {
		t.Errorf("ConfidenceFor(nil) = %v, want full", got)
	}
	warn := []Warning{{Code: WarnUnitUnconvertible, Message: "x"}}
	if got := ConfidenceFor(warn); got != ConfidencePartial {
		t.Errorf("ConfidenceFor(warnings) = %v, want partial", got)
	}
}

func TestRecipeRequiredIngredients(t *testing.T) {
	r := Recipe{
		ID: "r1",
		Ingredients: []Ingredient{
			{ID: "egg", Quantity: 2, Unit: "count"},
			{ID: "parsley", Quantity: 1, Unit: "tbsp", Optional: true},
			{ID: "flour", Quantity: 200, Unit: "g"},
		},
	}
	req := r.RequiredIngredients()
	if len(req) != 2 {
		t.Fatalf("RequiredIngredients() len = %d, want 2", len(req))
	}
	if req[0].ID != "egg" || req[1].ID != "flour" {
		t.Errorf("RequiredIngredients() = %v, want egg then flour", req)
	}
}
