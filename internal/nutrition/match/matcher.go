// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

package match

import (
	"fmt"
	"sort"

	"github.com/tomtom215/nutriscope/internal/metrics"
	"github.com/tomtom215/nutriscope/internal/nutrition"
)

// DefaultSubstitutionWeight is the partial-match weight applied when a
// substitute, rather than the ingredient itself, is on hand.
const DefaultSubstitutionWeight = 0.5

// Config holds matcher settings.
type Config struct {
	// SubstitutionWeight is the weight in (0,1) credited for a
	// substitute hit. Zero selects DefaultSubstitutionWeight.
	SubstitutionWeight float64 `json:"substitution_weight" koanf:"substitution_weight"`

	// Substitutions lists the symmetric substitute pairs.
	Substitutions []Pair `json:"substitutions,omitempty" koanf:"substitutions"`
}

// DefaultConfig returns production-ready defaults.
func DefaultConfig() Config {
	return Config{SubstitutionWeight: DefaultSubstitutionWeight}
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	w := c.SubstitutionWeight
	if w != 0 && (w <= 0 || w >= 1) {
		return fmt.Errorf("substitution_weight must be in (0,1), got %f", w)
	}
	return nil
}

// Substitution records one substitute hit in a match result.
type Substitution struct {
	// Ingredient is the required ingredient that was not on hand.
	Ingredient string `json:"ingredient"`

	// Substitute is the pantry ingredient credited in its place.
	Substitute string `json:"substitute"`
}

// Result is the outcome of matching one recipe against a pantry.
type Result struct {
	// Score is the pantry coverage in [0,1].
	Score float64 `json:"score"`

	// Missing lists the required ingredients not covered, sorted.
	// This is a required output, consumed directly for display.
	Missing []string `json:"missing"`

	// Matched lists the required ingredients found on hand, sorted.
	Matched []string `json:"matched,omitempty"`

	// Substituted lists partial matches via the substitution table.
	Substituted []Substitution `json:"substituted,omitempty"`

	// Degenerate marks recipes with zero required ingredients.
	Degenerate bool `json:"degenerate,omitempty"`
}

// Matcher scores recipes against pantries. It is stateless after
// construction and safe for concurrent use.
type Matcher struct {
	weight float64
	table  *SubstitutionTable
}

// NewMatcher creates a Matcher from the given configuration.
func NewMatcher(cfg Config) (*Matcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid matcher config: %w", err)
	}
	table, err := NewSubstitutionTable(cfg.Substitutions)
	if err != nil {
		return nil, fmt.Errorf("invalid substitution table: %w", err)
	}
	weight := cfg.SubstitutionWeight
	if weight == 0 {
		weight = DefaultSubstitutionWeight
	}
	return &Matcher{weight: weight, table: table}, nil
}

// Match scores the recipe's required ingredients against the pantry.
//
// Optional ingredients never count against the score. Exact hits weigh
// 1.0; a one-hop substitute hit weighs the configured partial weight.
// Score = matched weight / required count.
func (m *Matcher) Match(recipe nutrition.Recipe, pantry nutrition.Pantry) Result {
	onHand := make(map[string]struct{}, pantry.Len())
	for _, id := range pantry.Items() {
		onHand[nutrition.CanonicalIngredientID(id)] = struct{}{}
	}

	required := recipe.RequiredIngredients()
	if len(required) == 0 {
		return Result{Score: 0, Missing: []string{}, Degenerate: true}
	}

	var (
		matchedWeight float64
		matched       []string
		missing       []string
		substituted   []Substitution
	)

	for _, ing := range required {
		id := ingredientID(ing)
		if _, ok := onHand[id]; ok {
			matchedWeight++
			matched = append(matched, id)
			metrics.RecordMatch("exact")
			continue
		}

		sub, ok := m.findSubstitute(id, onHand)
		if ok {
			matchedWeight += m.weight
			substituted = append(substituted, Substitution{Ingredient: id, Substitute: sub})
			metrics.RecordMatch("substitution")
			continue
		}

		missing = append(missing, id)
		metrics.RecordMatch("unmatched")
	}

	sort.Strings(matched)
	sort.Strings(missing)
	if missing == nil {
		missing = []string{}
	}

	return Result{
		Score:       matchedWeight / float64(len(required)),
		Missing:     missing,
		Matched:     matched,
		Substituted: substituted,
	}
}

// findSubstitute returns the first on-hand substitute in deterministic
// order, resolving exactly one hop.
func (m *Matcher) findSubstitute(id string, onHand map[string]struct{}) (string, bool) {
	for _, sub := range m.table.Substitutes(id) {
		if _, ok := onHand[sub]; ok {
			return sub, true
		}
	}
	return "", false
}

// ingredientID resolves the canonical identifier for an ingredient,
// falling back to the display name when no ID is set.
func ingredientID(ing nutrition.Ingredient) string {
	if id := nutrition.CanonicalIngredientID(ing.ID); id != "" {
		return id
	}
	return nutrition.CanonicalIngredientID(ing.Name)
}
