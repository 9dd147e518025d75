// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

package rank

import "github.com/tomtom215/nutriscope/internal/nutrition"

// maxDiversifySize bounds slice allocations; k is also bounded by the
// candidate count.
const maxDiversifySize = 10000

// diversify applies greedy maximal-marginal-relevance selection over an
// already ranked list: each step picks the remaining recipe maximizing
//
//	lambda*score - (1-lambda)*maxSim
//
// where maxSim is the highest ingredient-set Jaccard similarity to any
// recipe already selected. Lambda 1 reduces to plain truncation.
func diversify(ranked []RankedRecipe, k int, lambda float64) []RankedRecipe {
	if len(ranked) == 0 || k <= 0 {
		return []RankedRecipe{}
	}
	if k > maxDiversifySize {
		k = maxDiversifySize
	}
	if k > len(ranked) {
		k = len(ranked)
	}
	if lambda >= 1 {
		return ranked[:k]
	}

	sets := make([]map[string]struct{}, len(ranked))
	for i := range ranked {
		sets[i] = ingredientSet(ranked[i].Recipe.Ingredients)
	}

	selected := make([]RankedRecipe, 0, k)
	selectedIdx := make([]int, 0, k)
	used := make(map[int]struct{}, k)

	for len(selected) < k {
		bestIdx := -1
		bestScore := 0.0

		for i := range ranked {
			if _, ok := used[i]; ok {
				continue
			}

			maxSim := 0.0
			for _, j := range selectedIdx {
				if sim := jaccard(sets[i], sets[j]); sim > maxSim {
					maxSim = sim
				}
			}

			score := lambda*ranked[i].Combined - (1-lambda)*maxSim
			if bestIdx < 0 || score > bestScore {
				bestIdx = i
				bestScore = score
			}
		}

		if bestIdx < 0 {
			break
		}
		used[bestIdx] = struct{}{}
		selectedIdx = append(selectedIdx, bestIdx)
		selected = append(selected, ranked[bestIdx])
	}

	return selected
}

// ingredientSet collects a recipe's canonical ingredient identifiers.
func ingredientSet(ingredients []nutrition.Ingredient) map[string]struct{} {
	set := make(map[string]struct{}, len(ingredients))
	for _, ing := range ingredients {
		id := nutrition.CanonicalIngredientID(ing.ID)
		if id == "" {
			id = nutrition.CanonicalIngredientID(ing.Name)
		}
		if id != "" {
			set[id] = struct{}{}
		}
	}
	return set
}

// jaccard computes intersection over union; two empty sets are fully
// similar.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for id := range a {
		if _, ok := b[id]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}
