// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

package match

import (
	"math"
	"testing"

	"github.com/tomtom215/nutriscope/internal/nutrition"
)

func recipeWith(ids ...string) nutrition.Recipe {
	r := nutrition.Recipe{ID: "r"}
	for _, id := range ids {
		r.Ingredients = append(r.Ingredients, nutrition.Ingredient{ID: id, Quantity: 1, Unit: "count"})
	}
	return r
}

func TestMatchBasicCoverage(t *testing.T) {
	m, err := NewMatcher(DefaultConfig())
	if err != nil {
		t.Fatalf("NewMatcher() error = %v", err)
	}

	// pantry {egg, flour} against recipe {egg, flour, milk}
	res := m.Match(recipeWith("egg", "flour", "milk"), nutrition.NewPantry("egg", "flour"))

	if math.Abs(res.Score-2.0/3.0) > 1e-12 {
		t.Errorf("Score = %v, want 2/3", res.Score)
	}
	if len(res.Missing) != 1 || res.Missing[0] != "milk" {
		t.Errorf("Missing = %v, want [milk]", res.Missing)
	}
	if len(res.Matched) != 2 {
		t.Errorf("Matched = %v, want [egg flour]", res.Matched)
	}
	if res.Degenerate {
		t.Error("Degenerate = true, want false")
	}
}

func TestMatchFullAndEmptyPantry(t *testing.T) {
	m, _ := NewMatcher(DefaultConfig())
	recipe := recipeWith("egg", "flour")

	full := m.Match(recipe, nutrition.NewPantry("egg", "flour", "sugar"))
	if full.Score != 1 {
		t.Errorf("full pantry Score = %v, want 1", full.Score)
	}
	if len(full.Missing) != 0 {
		t.Errorf("full pantry Missing = %v, want empty", full.Missing)
	}

	empty := m.Match(recipe, nutrition.NewPantry())
	if empty.Score != 0 {
		t.Errorf("empty pantry Score = %v, want 0", empty.Score)
	}
	if len(empty.Missing) != 2 {
		t.Errorf("empty pantry Missing = %v, want both ingredients", empty.Missing)
	}
}

func TestMatchZeroRequiredIngredients(t *testing.T) {
	m, _ := NewMatcher(DefaultConfig())

	tests := []struct {
		name   string
		recipe nutrition.Recipe
	}{
		{name: "no ingredients", recipe: nutrition.Recipe{ID: "empty"}},
		{
			name: "only optional ingredients",
			recipe: nutrition.Recipe{ID: "opt", Ingredients: []nutrition.Ingredient{
				{ID: "parsley", Optional: true},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := m.Match(tt.recipe, nutrition.NewPantry("egg"))
			if res.Score != 0 {
				t.Errorf("Score = %v, want 0", res.Score)
			}
			if !res.Degenerate {
				t.Error("Degenerate = false, want true")
			}
			if res.Missing == nil || len(res.Missing) != 0 {
				t.Errorf("Missing = %v, want empty non-nil", res.Missing)
			}
		})
	}
}

func TestMatchSubstitution(t *testing.T) {
	cfg := Config{
		SubstitutionWeight: 0.5,
		Substitutions: []Pair{
			{A: "butter", B: "margarine"},
			{A: "margarine", B: "shortening"},
		},
	}
	m, err := NewMatcher(cfg)
	if err != nil {
		t.Fatalf("NewMatcher() error = %v", err)
	}

	t.Run("substitute credits partial weight", func(t *testing.T) {
		res := m.Match(recipeWith("butter", "flour"), nutrition.NewPantry("margarine", "flour"))
		if math.Abs(res.Score-0.75) > 1e-12 {
			t.Errorf("Score = %v, want 0.75", res.Score)
		}
		if len(res.Substituted) != 1 || res.Substituted[0].Substitute != "margarine" {
			t.Errorf("Substituted = %v, want margarine for butter", res.Substituted)
		}
		if len(res.Missing) != 0 {
			t.Errorf("Missing = %v, want empty", res.Missing)
		}
	})

	t.Run("symmetric lookup", func(t *testing.T) {
		res := m.Match(recipeWith("margarine"), nutrition.NewPantry("butter"))
		if math.Abs(res.Score-0.5) > 1e-12 {
			t.Errorf("Score = %v, want 0.5", res.Score)
		}
	})

	t.Run("one hop only, never chained", func(t *testing.T) {
		// butter~margarine and margarine~shortening do not imply
		// butter~shortening.
		res := m.Match(recipeWith("butter"), nutrition.NewPantry("shortening"))
		if res.Score != 0 {
			t.Errorf("Score = %v, want 0 (no transitive substitution)", res.Score)
		}
		if len(res.Missing) != 1 || res.Missing[0] != "butter" {
			t.Errorf("Missing = %v, want [butter]", res.Missing)
		}
	})

	t.Run("exact match preferred over substitute", func(t *testing.T) {
		res := m.Match(recipeWith("butter"), nutrition.NewPantry("butter", "margarine"))
		if res.Score != 1 {
			t.Errorf("Score = %v, want 1", res.Score)
		}
		if len(res.Substituted) != 0 {
			t.Errorf("Substituted = %v, want none", res.Substituted)
		}
	})
}

func TestMatchPantrySupersetInvariance(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Substitutions = []Pair{{A: "butter", B: "margarine"}}
	m, _ := NewMatcher(cfg)

	recipe := recipeWith("egg", "flour", "butter", "milk")
	base := nutrition.NewPantry("egg")
	baseScore := m.Match(recipe, base).Score

	supersets := [][]string{
		{"egg", "tofu"},
		{"egg", "tofu", "margarine"},
		{"egg", "tofu", "margarine", "flour", "milk"},
		{"egg", "kale", "quinoa", "lentils", "rice", "beans"},
	}

	prev := baseScore
	for _, items := range supersets {
		score := m.Match(recipe, nutrition.NewPantry(items...)).Score
		if score < baseScore {
			t.Errorf("pantry %v: score %v < base %v (superset decreased score)", items, score, baseScore)
		}
		_ = prev
		prev = score
	}
}

func TestMatchCanonicalization(t *testing.T) {
	m, _ := NewMatcher(DefaultConfig())

	recipe := nutrition.Recipe{ID: "r", Ingredients: []nutrition.Ingredient{
		{Name: "Chicken Breast", Quantity: 1, Unit: "count"},
	}}
	res := m.Match(recipe, nutrition.NewPantry("chicken breast"))
	if res.Score != 1 {
		t.Errorf("Score = %v, want 1 (names canonicalized)", res.Score)
	}
}

func TestNewMatcherValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "defaults", cfg: DefaultConfig()},
		{name: "weight one rejected", cfg: Config{SubstitutionWeight: 1}, wantErr: true},
		{name: "negative weight rejected", cfg: Config{SubstitutionWeight: -0.5}, wantErr: true},
		{name: "self pair rejected", cfg: Config{Substitutions: []Pair{{A: "egg", B: "Egg"}}}, wantErr: true},
		{name: "empty id rejected", cfg: Config{Substitutions: []Pair{{A: "", B: "egg"}}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMatcher(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewMatcher() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSubstitutionTableDeterministicOrder(t *testing.T) {
	table, err := NewSubstitutionTable([]Pair{
		{A: "milk", B: "soy milk"},
		{A: "milk", B: "almond milk"},
		{A: "milk", B: "oat milk"},
	})
	if err != nil {
		t.Fatalf("NewSubstitutionTable() error = %v", err)
	}

	want := []string{"almond_milk", "oat_milk", "soy_milk"}
	for i := 0; i < 10; i++ {
		got := table.Substitutes("milk")
		if len(got) != len(want) {
			t.Fatalf("Substitutes(milk) = %v, want %v", got, want)
		}
		for j := range want {
			if got[j] != want[j] {
				t.Fatalf("Substitutes(milk) = %v, want %v", got, want)
			}
		}
	}
}
