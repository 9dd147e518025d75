// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

package match

import (
	"fmt"
	"sort"

	"github.com/tomtom215/nutriscope/internal/nutrition"
)

// Pair declares two ingredients as mutual substitutes.
type Pair struct {
	// A and B are canonical ingredient identifiers.
	A string `json:"a" koanf:"a"`
	B string `json:"b" koanf:"b"`
}

// SubstitutionTable is an explicit symmetric substitution relation.
// Lookups resolve exactly one hop: if a~b and b~c, a never substitutes
// for c.
type SubstitutionTable struct {
	subs map[string]map[string]struct{}
}

// NewSubstitutionTable builds a table from substitute pairs.
// Identifiers are canonicalized; self-pairs and empty identifiers are
// rejected.
func NewSubstitutionTable(pairs []Pair) (*SubstitutionTable, error) {
	t := &SubstitutionTable{subs: make(map[string]map[string]struct{}, len(pairs)*2)}
	for _, p := range pairs {
		a := nutrition.CanonicalIngredientID(p.A)
		b := nutrition.CanonicalIngredientID(p.B)
		if a == "" || b == "" {
			return nil, fmt.Errorf("substitution pair %q/%q has an empty identifier", p.A, p.B)
		}
		if a == b {
			return nil, fmt.Errorf("substitution pair %q/%q maps an ingredient to itself", p.A, p.B)
		}
		t.add(a, b)
		t.add(b, a)
	}
	return t, nil
}

func (t *SubstitutionTable) add(from, to string) {
	if t.subs[from] == nil {
		t.subs[from] = make(map[string]struct{})
	}
	t.subs[from][to] = struct{}{}
}

// Substitutes returns the direct substitutes for an ingredient in
// deterministic sorted order.
func (t *SubstitutionTable) Substitutes(id string) []string {
	set := t.subs[id]
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// CanSubstitute reports whether a and b are direct substitutes.
func (t *SubstitutionTable) CanSubstitute(a, b string) bool {
	_, ok := t.subs[a][b]
	return ok
}

// Len returns the number of ingredients with at least one substitute.
func (t *SubstitutionTable) Len() int {
	return len(t.subs)
}
