// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tomtom215/nutriscope/internal/nutrition"
)

var (
	bulletPrefix = regexp.MustCompile(`^[\s]*[-*•]+[\s]*`)

	// quantityPattern matches "1 1/2", "3/4", "2", "1.5" and "1,5"
	// at the start of an ingredient line.
	quantityPattern = regexp.MustCompile(`^(\d+\s+\d+/\d+|\d+/\d+|\d+(?:[.,]\d+)?)\s*(.*)$`)
)

// ParseIngredientLines parses free-text ingredient lines from the
// recipe-generation collaborator into structured ingredients.
//
// Accepted shapes include "2 cups flour", "- 150 g chicken breast",
// "1 1/2 tbsp olive oil" and bare names like "salt". Lines that cannot
// be parsed are skipped with a recorded warning so one malformed line
// never discards a whole generated recipe.
func ParseIngredientLines(text string) ([]nutrition.Ingredient, []nutrition.Warning) {
	var (
		ingredients []nutrition.Ingredient
		warnings    []nutrition.Warning
	)

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(bulletPrefix.ReplaceAllString(raw, ""))
		if line == "" {
			continue
		}

		ing, err := parseIngredientLine(line)
		if err != nil {
			warnings = append(warnings, nutrition.Warning{
				Code:    nutrition.WarnUnparseableLine,
				Message: fmt.Sprintf("skipping ingredient line %q: %v", line, err),
			})
			continue
		}
		ingredients = append(ingredients, ing)
	}

	return ingredients, warnings
}

// parseIngredientLine parses a single cleaned ingredient line.
func parseIngredientLine(line string) (nutrition.Ingredient, error) {
	quantity := 1.0
	unit := "count"
	rest := line

	if m := quantityPattern.FindStringSubmatch(line); m != nil {
		q, err := parseQuantity(m[1])
		if err != nil {
			return nutrition.Ingredient{}, err
		}
		quantity = q
		rest = strings.TrimSpace(m[2])

		// The token after the quantity may be a unit; otherwise the
		// quantity is a bare count ("2 eggs").
		if fields := strings.Fields(rest); len(fields) > 0 && KnownUnit(fields[0]) {
			unit = strings.ToLower(fields[0])
			rest = strings.TrimSpace(strings.TrimPrefix(rest, fields[0]))
		}
	}

	// Drop a connecting "of" ("2 cups of flour").
	if fields := strings.Fields(rest); len(fields) > 0 && strings.EqualFold(fields[0], "of") {
		rest = strings.TrimSpace(rest[len(fields[0]):])
	}

	name := strings.TrimSpace(rest)
	if name == "" {
		return nutrition.Ingredient{}, fmt.Errorf("no ingredient name")
	}

	id := nutrition.CanonicalIngredientID(name)
	if id == "" {
		return nutrition.Ingredient{}, fmt.Errorf("name %q reduces to an empty identifier", name)
	}

	return nutrition.Ingredient{
		ID:       id,
		Name:     name,
		Quantity: quantity,
		Unit:     unit,
	}, nil
}

// parseQuantity parses whole, decimal, fractional and mixed quantities.
func parseQuantity(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))

	// Mixed number: "1 1/2".
	if fields := strings.Fields(s); len(fields) == 2 {
		whole, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid quantity %q", s)
		}
		frac, err := parseFraction(fields[1])
		if err != nil {
			return 0, err
		}
		return whole + frac, nil
	}

	if strings.Contains(s, "/") {
		return parseFraction(s)
	}

	q, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q", s)
	}
	return q, nil
}

// parseFraction parses "a/b" into a float.
func parseFraction(s string) (float64, error) {
	parts := strings.SplitN(s, "/", 2)
	num, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid fraction %q", s)
	}
	den, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || den == 0 {
		return 0, fmt.Errorf("invalid fraction %q", s)
	}
	return num / den, nil
}
