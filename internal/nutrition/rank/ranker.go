// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

package rank

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/nutriscope/internal/metrics"
	"github.com/tomtom215/nutriscope/internal/nutrition"
	"github.com/tomtom215/nutriscope/internal/nutrition/match"
)

// Defaults applied by DefaultConfig and for zero-valued fields.
const (
	// DefaultAlpha weights nutrient fit over pantry convenience.
	DefaultAlpha = 0.7

	// DefaultTieEpsilon bounds the score difference treated as a tie.
	DefaultTieEpsilon = 1e-9

	// DefaultDiversityLambda disables the diversity pass.
	DefaultDiversityLambda = 1.0
)

// Config holds ranking engine settings.
type Config struct {
	// Alpha blends nutrient score against ingredient score in [0,1].
	// 1 ranks on nutrient fit alone; 0 on pantry coverage alone.
	Alpha float64 `json:"alpha" koanf:"alpha"`

	// TieEpsilon is the score difference below which two recipes are
	// considered tied and ordered by the deterministic tie-break chain.
	TieEpsilon float64 `json:"tie_epsilon" koanf:"tie_epsilon"`

	// DiversityLambda balances relevance against ingredient-set
	// diversity in TopN. 1 disables diversity; 0 is pure diversity.
	DiversityLambda float64 `json:"diversity_lambda" koanf:"diversity_lambda"`

	// MaxResults caps the ranked list length. Zero means unlimited.
	MaxResults int `json:"max_results" koanf:"max_results"`
}

// DefaultConfig returns production-ready defaults.
func DefaultConfig() Config {
	return Config{
		Alpha:           DefaultAlpha,
		TieEpsilon:      DefaultTieEpsilon,
		DiversityLambda: DefaultDiversityLambda,
	}
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	if c.Alpha < 0 || c.Alpha > 1 {
		return fmt.Errorf("alpha must be in [0,1], got %f", c.Alpha)
	}
	if c.TieEpsilon < 0 {
		return fmt.Errorf("tie_epsilon must be non-negative, got %f", c.TieEpsilon)
	}
	if c.DiversityLambda < 0 || c.DiversityLambda > 1 {
		return fmt.Errorf("diversity_lambda must be in [0,1], got %f", c.DiversityLambda)
	}
	if c.MaxResults < 0 {
		return fmt.Errorf("max_results must be non-negative, got %d", c.MaxResults)
	}
	return nil
}

// Candidate pairs a recipe with its optional pantry-match result.
type Candidate struct {
	// Recipe is the normalized candidate recipe.
	Recipe nutrition.Recipe `json:"recipe"`

	// Match is the pantry-coverage result, if a pantry was supplied.
	Match *match.Result `json:"match,omitempty"`
}

// NutrientDeviation records one nutrient's contribution to a score.
type NutrientDeviation struct {
	// Key is the targeted nutrient.
	Key nutrition.Key `json:"key"`

	// Amount is the recipe's per-serving amount; zero when Missing.
	Amount float64 `json:"amount"`

	// Deviation is the normalized deviation in [0,1].
	Deviation float64 `json:"deviation"`

	// Weight is the effective weight applied to the deviation.
	Weight float64 `json:"weight"`

	// Missing marks a targeted nutrient absent from the vector. A
	// required one counts at maximal deviation; an optional one is
	// excluded from the weighted sum.
	Missing bool `json:"missing,omitempty"`

	// Required reports, for missing nutrients, whether the target
	// marked them required.
	Required bool `json:"required,omitempty"`
}

// RankedRecipe is one entry of a ranking result, best first.
type RankedRecipe struct {
	// Recipe is the candidate recipe.
	Recipe nutrition.Recipe `json:"recipe"`

	// Combined is the blended score used for ordering, in [0,1].
	Combined float64 `json:"combined"`

	// NutrientScore is the target-fit component in [0,1].
	NutrientScore float64 `json:"nutrient_score"`

	// IngredientScore is the pantry-coverage component in [0,1].
	IngredientScore float64 `json:"ingredient_score"`

	// MissingIngredients counts ingredients not covered by the pantry.
	MissingIngredients int `json:"missing_ingredients"`

	// Deviations breaks the nutrient score down per target key,
	// in deterministic key order.
	Deviations []NutrientDeviation `json:"deviations,omitempty"`

	// Confidence is partial when any targeted nutrient was missing
	// from the recipe's vector.
	Confidence nutrition.Confidence `json:"confidence"`
}

// Result is an ordered ranking, best first.
type Result struct {
	// Recipes is the ordered sequence.
	Recipes []RankedRecipe `json:"recipes"`

	// IngredientOnly marks rankings computed without any recognized
	// target nutrient, ordered by ingredient score alone.
	IngredientOnly bool `json:"ingredient_only,omitempty"`

	// Warnings lists data-quality issues encountered.
	Warnings []nutrition.Warning `json:"warnings,omitempty"`

	// Confidence is partial when any ranked recipe scored with
	// partial confidence.
	Confidence nutrition.Confidence `json:"confidence"`
}

// Ranker orders candidate recipes against a nutrient target. It holds
// no per-call state: every Rank call is a pure function of its inputs,
// safe for concurrent use and restartable with updated targets.
type Ranker struct {
	cfg    Config
	logger zerolog.Logger
}

// NewRanker creates a Ranker with the given configuration.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRanker(cfg Config, logger zerolog.Logger) (*Ranker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ranker config: %w", err)
	}
	if cfg.TieEpsilon == 0 {
		cfg.TieEpsilon = DefaultTieEpsilon
	}
	return &Ranker{
		cfg:    cfg,
		logger: logger.With().Str("component", "rank").Logger(),
	}, nil
}

// Rank scores and orders the candidates against the target, best
// first. An empty candidate set yields an empty result, not an error.
// A target with no recognized nutrient keys orders candidates by
// ingredient score alone and flags the result.
func (r *Ranker) Rank(target nutrition.Target, candidates []Candidate) Result {
	start := time.Now()
	defer func() {
		metrics.RankDuration.Observe(time.Since(start).Seconds())
		metrics.RankRequests.Inc()
		metrics.RankCandidates.Observe(float64(len(candidates)))
	}()

	if len(candidates) == 0 {
		return Result{Recipes: []RankedRecipe{}, Confidence: nutrition.ConfidenceFull}
	}

	var warnings []nutrition.Warning
	ingredientOnly := target.IsEmpty()
	if ingredientOnly {
		warnings = append(warnings, nutrition.Warningf(nutrition.WarnNoTargetSignal,
			"target has no recognized nutrient keys; ordering by ingredient score alone"))
	}

	ranked := make([]RankedRecipe, 0, len(candidates))
	confidence := nutrition.ConfidenceFull
	for _, c := range candidates {
		entry := r.scoreCandidate(target, c, ingredientOnly)
		if entry.Confidence == nutrition.ConfidencePartial {
			confidence = nutrition.ConfidencePartial
		}
		ranked = append(ranked, entry)
	}

	r.sortRanked(ranked)

	if r.cfg.MaxResults > 0 && len(ranked) > r.cfg.MaxResults {
		ranked = ranked[:r.cfg.MaxResults]
	}

	r.logger.Debug().
		Int("candidates", len(candidates)).
		Int("returned", len(ranked)).
		Bool("ingredient_only", ingredientOnly).
		Msg("ranking complete")

	return Result{
		Recipes:        ranked,
		IngredientOnly: ingredientOnly,
		Warnings:       warnings,
		Confidence:     confidence,
	}
}

// TopN ranks the candidates and returns the first n entries, applying
// the greedy diversity pass when DiversityLambda is below 1.
func (r *Ranker) TopN(target nutrition.Target, candidates []Candidate, n int) Result {
	res := r.Rank(target, candidates)
	if n <= 0 {
		res.Recipes = []RankedRecipe{}
		return res
	}
	if r.cfg.DiversityLambda < 1 {
		res.Recipes = diversify(res.Recipes, n, r.cfg.DiversityLambda)
		return res
	}
	if len(res.Recipes) > n {
		res.Recipes = res.Recipes[:n]
	}
	return res
}

// scoreCandidate computes one candidate's scores and breakdown.
func (r *Ranker) scoreCandidate(target nutrition.Target, c Candidate, ingredientOnly bool) RankedRecipe {
	ingredientScore := 1.0
	missingIngredients := 0
	if c.Match != nil {
		ingredientScore = c.Match.Score
		missingIngredients = len(c.Match.Missing)
	}

	entry := RankedRecipe{
		Recipe:             c.Recipe,
		IngredientScore:    ingredientScore,
		MissingIngredients: missingIngredients,
		Confidence:         nutrition.ConfidenceFull,
	}

	if ingredientOnly {
		entry.NutrientScore = 0
		entry.Combined = ingredientScore
		return entry
	}

	nutrientScore, deviations, partial := ScoreAgainstTarget(c.Recipe.PerServing, target)
	entry.NutrientScore = nutrientScore
	entry.Deviations = deviations
	if partial {
		entry.Confidence = nutrition.ConfidencePartial
	}

	alpha := r.cfg.Alpha
	entry.Combined = clamp01(alpha*nutrientScore + (1-alpha)*ingredientScore)
	return entry
}

// sortRanked applies the deterministic total order: combined score
// descending, ties within epsilon broken by fewer missing ingredients,
// then by recipe identifier ascending.
func (r *Ranker) sortRanked(ranked []RankedRecipe) {
	eps := r.cfg.TieEpsilon
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if math.Abs(a.Combined-b.Combined) > eps {
			return a.Combined > b.Combined
		}
		if a.MissingIngredients != b.MissingIngredients {
			return a.MissingIngredients < b.MissingIngredients
		}
		return a.Recipe.ID < b.Recipe.ID
	})
}

// ScoreAgainstTarget computes the aggregate nutrient score for a vector
// in [0,1], the per-nutrient breakdown in deterministic key order, and
// whether any targeted nutrient was missing from the vector. An absent
// required nutrient scores maximal deviation; an absent optional one
// leaves the score untouched but still flips the partial flag, so a
// score over incomplete data is distinguishable from a full one.
//
// Shared with the meal scorer so both surfaces agree on deviation
// semantics.
func ScoreAgainstTarget(v nutrition.Vector, target nutrition.Target) (float64, []NutrientDeviation, bool) {
	var (
		deviations  []NutrientDeviation
		weightedSum float64
		weightTotal float64
		partial     bool
	)

	for _, key := range target.Keys() {
		tr, _ := target.Range(key)
		weight := tr.Weight
		if weight == 0 {
			weight = 1
		}

		amount, present := v.Get(key)
		if !present {
			partial = true
			if !tr.Required {
				deviations = append(deviations, NutrientDeviation{
					Key: key, Missing: true,
				})
				continue
			}
			deviations = append(deviations, NutrientDeviation{
				Key: key, Deviation: 1, Weight: weight, Missing: true, Required: true,
			})
			weightedSum += weight
			weightTotal += weight
			continue
		}

		dev := tr.Deviation(amount)
		deviations = append(deviations, NutrientDeviation{
			Key: key, Amount: amount, Deviation: dev, Weight: weight,
		})
		weightedSum += weight * dev
		weightTotal += weight
	}

	if weightTotal == 0 {
		// Every targeted nutrient was optional and absent: no signal
		// either way, so report the neutral midpoint.
		return 0.5, deviations, partial
	}

	return clamp01(1 - weightedSum/weightTotal), deviations, partial
}

// clamp01 clamps v to [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
