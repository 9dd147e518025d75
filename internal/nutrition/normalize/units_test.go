// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

package normalize

import (
	"math"
	"testing"
)

func TestConvertAmount(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		from    string
		to      string
		density float64
		want    float64
		wantErr bool
	}{
		{name: "grams to grams", value: 100, from: "g", to: "g", want: 100},
		{name: "kg to grams", value: 1.5, from: "kg", to: "g", want: 1500},
		{name: "mg to grams", value: 500, from: "mg", to: "g", want: 0.5},
		{name: "oz to grams", value: 1, from: "oz", to: "g", want: 28.349523125},
		{name: "pounds alias", value: 1, from: "lbs", to: "g", want: 453.59237},
		{name: "cup to ml", value: 1, from: "cup", to: "ml", want: 236.5882365},
		{name: "tbsp to tsp", value: 1, from: "tbsp", to: "tsp", want: 3},
		{name: "liter to cups", value: 1, from: "l", to: "cup", want: 1000 / 236.5882365},
		{name: "dozen to count", value: 1, from: "dozen", to: "count", want: 12},
		{name: "case insensitive", value: 2, from: "Cups", to: "ML", want: 473.176473},
		{name: "ml to g with density", value: 100, from: "ml", to: "g", density: 1.03, want: 103},
		{name: "g to ml with density", value: 103, from: "g", to: "ml", density: 1.03, want: 100},
		{name: "mass volume without density", value: 100, from: "ml", to: "g", wantErr: true},
		{name: "count to mass", value: 2, from: "count", to: "g", wantErr: true},
		{name: "unknown source unit", value: 1, from: "pinch", to: "g", wantErr: true},
		{name: "unknown target unit", value: 1, from: "g", to: "handful", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConvertAmount(tt.value, tt.from, tt.to, tt.density)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ConvertAmount() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ConvertAmount(%v %s -> %s) = %v, want %v", tt.value, tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestKnownUnit(t *testing.T) {
	for _, u := range []string{"g", "cups", "tablespoon", "count", ""} {
		if !KnownUnit(u) {
			t.Errorf("KnownUnit(%q) = false, want true", u)
		}
	}
	for _, u := range []string{"pinch", "handful", "smidgen"} {
		if KnownUnit(u) {
			t.Errorf("KnownUnit(%q) = true, want false", u)
		}
	}
}
