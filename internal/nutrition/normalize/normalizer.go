// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

package normalize

import (
	"fmt"
	"time"

	"github.com/tomtom215/nutriscope/internal/metrics"
	"github.com/tomtom215/nutriscope/internal/nutrition"
)

// Source is one pre-fetched nutrient source: the nutrients contained in
// a reference quantity of an ingredient (for example per 100 g).
type Source struct {
	// Nutrients holds the nutrient amounts in Quantity of Unit.
	Nutrients nutrition.Vector `json:"nutrients"`

	// Quantity is the reference quantity the nutrients describe.
	Quantity float64 `json:"quantity"`

	// Unit is the reference unit of the quantity.
	Unit string `json:"unit"`

	// DensityGML optionally supplies the ingredient's density in g/ml
	// for mass/volume conversions.
	DensityGML float64 `json:"density_g_ml,omitempty"`
}

// SourceSet maps nutrient-source identifiers to their records.
// Sources are resolved by the storage collaborator before
// normalization; the engine never fetches them itself.
type SourceSet map[string]Source

// RecipeInput is a recipe awaiting normalization.
type RecipeInput struct {
	// ID identifies the recipe.
	ID string `json:"id"`

	// Title is the display title.
	Title string `json:"title"`

	// Ingredients is the ordered ingredient list.
	Ingredients []nutrition.Ingredient `json:"ingredients"`

	// Servings is the serving count to normalize to. Must be positive.
	Servings float64 `json:"servings"`

	// Generated marks recipes from the generation collaborator.
	Generated bool `json:"generated,omitempty"`
}

// Contribution records one ingredient's per-serving nutrient share.
type Contribution struct {
	// IngredientID is the contributing ingredient.
	IngredientID string `json:"ingredient_id"`

	// PerServing is the ingredient's per-serving nutrient vector.
	PerServing nutrition.Vector `json:"per_serving"`
}

// Result is the outcome of normalizing one recipe.
type Result struct {
	// Recipe is the immutable normalized recipe with its derived
	// per-serving vector.
	Recipe nutrition.Recipe `json:"recipe"`

	// Contributions breaks the vector down by ingredient, in recipe
	// order, excluded ingredients omitted.
	Contributions []Contribution `json:"contributions"`

	// Warnings lists the data-quality issues encountered.
	Warnings []nutrition.Warning `json:"warnings,omitempty"`

	// Excluded lists ingredients dropped from the vector.
	Excluded []string `json:"excluded,omitempty"`

	// Confidence is partial when any ingredient was excluded.
	Confidence nutrition.Confidence `json:"confidence"`
}

// Config holds normalizer settings.
type Config struct {
	// Densities overrides ingredient densities (g/ml) by ingredient ID,
	// taking precedence over source-supplied densities.
	Densities map[string]float64 `json:"densities,omitempty" koanf:"densities"`
}

// DefaultConfig returns production-ready defaults.
func DefaultConfig() Config {
	return Config{}
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	for id, d := range c.Densities {
		if d <= 0 {
			return fmt.Errorf("density for %q must be positive, got %f", id, d)
		}
	}
	return nil
}

// Normalizer converts recipes into per-serving nutrient vectors.
// It is stateless and safe for concurrent use.
type Normalizer struct {
	cfg Config
}

// NewNormalizer creates a Normalizer with the given configuration.
func NewNormalizer(cfg Config) (*Normalizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid normalizer config: %w", err)
	}
	return &Normalizer{cfg: cfg}, nil
}

// Normalize produces the per-serving nutrient vector for a recipe.
//
// A non-positive serving count is a validation error. Ingredients whose
// quantity cannot be converted to their source's unit basis, or whose
// source is missing, are excluded with a recorded warning; the
// remaining ingredients still yield a (partial) vector.
func (n *Normalizer) Normalize(in RecipeInput, sources SourceSet) (Result, error) {
	start := time.Now()
	if in.Servings <= 0 {
		return Result{}, &nutrition.ValidationError{
			Field:   "servings",
			Message: fmt.Sprintf("must be positive, got %f", in.Servings),
		}
	}

	var (
		total         nutrition.Vector
		warnings      []nutrition.Warning
		excluded      []string
		contributions []Contribution
	)

	perServingFactor := 1.0 / in.Servings

	for _, ing := range in.Ingredients {
		src, ok := sources[ing.Source()]
		if !ok {
			warnings = append(warnings, nutrition.Warning{
				Code:       nutrition.WarnSourceMissing,
				Message:    fmt.Sprintf("no nutrient source for %q", ing.Source()),
				Ingredient: ing.ID,
			})
			excluded = append(excluded, ing.ID)
			continue
		}
		if src.Quantity <= 0 {
			warnings = append(warnings, nutrition.Warning{
				Code:       nutrition.WarnSourceMissing,
				Message:    fmt.Sprintf("nutrient source for %q has non-positive reference quantity", ing.Source()),
				Ingredient: ing.ID,
			})
			excluded = append(excluded, ing.ID)
			continue
		}

		converted, err := ConvertAmount(ing.Quantity, ing.Unit, src.Unit, n.density(ing, src))
		if err != nil {
			warnings = append(warnings, nutrition.Warning{
				Code:       nutrition.WarnUnitUnconvertible,
				Message:    fmt.Sprintf("cannot convert %g %s of %q to %s: %v", ing.Quantity, ing.Unit, ing.ID, src.Unit, err),
				Ingredient: ing.ID,
			})
			excluded = append(excluded, ing.ID)
			continue
		}

		share := src.Nutrients.Scale(converted / src.Quantity)
		total = total.Add(share)
		contributions = append(contributions, Contribution{
			IngredientID: ing.ID,
			PerServing:   share.Scale(perServingFactor),
		})
	}

	perServing := total.Scale(perServingFactor)

	codes := make([]string, len(warnings))
	for i, w := range warnings {
		codes[i] = string(w.Code)
	}
	metrics.RecordNormalize(time.Since(start), codes)

	return Result{
		Recipe: nutrition.Recipe{
			ID:          in.ID,
			Title:       in.Title,
			Ingredients: in.Ingredients,
			Servings:    in.Servings,
			PerServing:  perServing,
			Generated:   in.Generated,
		},
		Contributions: contributions,
		Warnings:      warnings,
		Excluded:      excluded,
		Confidence:    nutrition.ConfidenceFor(warnings),
	}, nil
}

// density resolves the effective density for an ingredient: the
// configured override wins over the source-supplied value.
func (n *Normalizer) density(ing nutrition.Ingredient, src Source) float64 {
	if d, ok := n.cfg.Densities[ing.ID]; ok {
		return d
	}
	return src.DensityGML
}
