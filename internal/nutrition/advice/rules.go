// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

package advice

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tomtom215/nutriscope/internal/nutrition"
)

// Severity grades an advisory.
type Severity int

const (
	// SeverityInfo marks neutral or positive notes.
	SeverityInfo Severity = iota
	// SeverityCaution marks mild concerns.
	SeverityCaution
	// SeverityHigh marks advisories that warrant attention.
	SeverityHigh
)

// String returns a human-readable name for the severity.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityCaution:
		return "caution"
	case SeverityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Condition names a health condition gating a rule.
type Condition string

// Health conditions recognized by the built-in rule set.
const (
	ConditionDiabetes     Condition = "diabetes"
	ConditionHypertension Condition = "hypertension"
)

// Profile carries the user attributes the rule engine consults.
type Profile struct {
	// AgeYears is the user's age; zero means unknown.
	AgeYears int `json:"age_years,omitempty"`

	// Conditions lists the user's health conditions.
	Conditions []Condition `json:"conditions,omitempty"`
}

// Has reports whether the profile declares the condition.
func (p Profile) Has(c Condition) bool {
	for _, pc := range p.Conditions {
		if pc == c {
			return true
		}
	}
	return false
}

// Direction selects which side of the threshold fires a rule.
type Direction int

const (
	// Above fires when the amount exceeds the threshold.
	Above Direction = iota
	// Below fires when the amount falls under the threshold.
	Below
)

// Rule is one advisory rule. Rules are plain data so the set can be
// replaced through configuration.
type Rule struct {
	// Code identifies the rule in advisories.
	Code string `json:"code" koanf:"code"`

	// Key is the nutrient the rule watches.
	Key nutrition.Key `json:"key" koanf:"key"`

	// Threshold is the per-meal amount compared against.
	Threshold float64 `json:"threshold" koanf:"threshold"`

	// Direction selects the firing side of the threshold.
	Direction Direction `json:"direction" koanf:"direction"`

	// Condition gates the rule to users with the condition.
	// Empty applies the rule to everyone.
	Condition Condition `json:"condition,omitempty" koanf:"condition"`

	// Severity grades the resulting advisory.
	Severity Severity `json:"severity" koanf:"severity"`

	// Message is the advisory text shown to the user.
	Message string `json:"message" koanf:"message"`

	// Adjustment is the suggested score delta, positive or negative.
	Adjustment float64 `json:"adjustment" koanf:"adjustment"`
}

// Validate checks the rule for structural problems.
func (r Rule) Validate() error {
	if strings.TrimSpace(r.Code) == "" {
		return fmt.Errorf("rule has no code")
	}
	if !r.Key.Valid() {
		return fmt.Errorf("rule %s: unsupported nutrient key %q", r.Code, r.Key)
	}
	if r.Threshold < 0 {
		return fmt.Errorf("rule %s: threshold must be non-negative, got %f", r.Code, r.Threshold)
	}
	return nil
}

// Advisory is one fired rule with its meal context.
type Advisory struct {
	// Code identifies the rule that fired.
	Code string `json:"code"`

	// Severity grades the advisory.
	Severity Severity `json:"severity"`

	// Message is the advisory text.
	Message string `json:"message"`

	// Key is the nutrient the advisory concerns.
	Key nutrition.Key `json:"key"`

	// Value is the meal's amount for the nutrient.
	Value float64 `json:"value"`

	// Limit is the threshold the rule compared against.
	Limit float64 `json:"limit"`

	// Adjustment is the suggested score delta.
	Adjustment float64 `json:"adjustment"`
}

// DefaultRules returns the built-in advisory rule set.
func DefaultRules() []Rule {
	return []Rule{
		{
			Code: "sugar_diabetes", Key: nutrition.KeySugar, Threshold: 25, Direction: Above,
			Condition: ConditionDiabetes, Severity: SeverityHigh,
			Message: "High sugar content; take extra care with blood glucose", Adjustment: -10,
		},
		{
			Code: "sodium_hypertension", Key: nutrition.KeySodium, Threshold: 800, Direction: Above,
			Condition: ConditionHypertension, Severity: SeverityHigh,
			Message: "High sodium content; consider a lower-salt alternative", Adjustment: -10,
		},
		{
			Code: "high_fat", Key: nutrition.KeyFat, Threshold: 35, Direction: Above,
			Severity: SeverityCaution,
			Message:  "High total fat for a single meal", Adjustment: -5,
		},
		{
			Code: "good_fiber", Key: nutrition.KeyFiber, Threshold: 7, Direction: Above,
			Severity: SeverityInfo,
			Message:  "Good fiber content", Adjustment: 5,
		},
		{
			Code: "good_protein", Key: nutrition.KeyProtein, Threshold: 30, Direction: Above,
			Severity: SeverityInfo,
			Message:  "Good protein content", Adjustment: 5,
		},
	}
}

// Engine evaluates advisory rules. It is stateless after construction
// and safe for concurrent use.
type Engine struct {
	rules []Rule
}

// NewEngine creates an Engine from the given rules. An empty rule list
// selects DefaultRules.
func NewEngine(rules []Rule) (*Engine, error) {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	for _, r := range rules {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("invalid advisory rule: %w", err)
		}
	}
	return &Engine{rules: rules}, nil
}

// Evaluate fires every applicable rule against the meal vector and
// returns the advisories in deterministic order (severity descending,
// then code).
func (e *Engine) Evaluate(meal nutrition.Vector, profile Profile) []Advisory {
	var advisories []Advisory

	for _, rule := range e.rules {
		if rule.Condition != "" && !profile.Has(rule.Condition) {
			continue
		}
		amount, ok := meal.Get(rule.Key)
		if !ok {
			continue
		}

		fired := false
		switch rule.Direction {
		case Above:
			fired = amount > rule.Threshold
		case Below:
			fired = amount < rule.Threshold
		}
		if !fired {
			continue
		}

		advisories = append(advisories, Advisory{
			Code:       rule.Code,
			Severity:   rule.Severity,
			Message:    rule.Message,
			Key:        rule.Key,
			Value:      amount,
			Limit:      rule.Threshold,
			Adjustment: rule.Adjustment,
		})
	}

	sort.SliceStable(advisories, func(i, j int) bool {
		if advisories[i].Severity != advisories[j].Severity {
			return advisories[i].Severity > advisories[j].Severity
		}
		return advisories[i].Code < advisories[j].Code
	})

	return advisories
}

// Apply folds advisory adjustments into a score and clamps the result
// to [0,100].
func Apply(score float64, advisories []Advisory) float64 {
	for _, a := range advisories {
		score += a.Adjustment
	}
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
