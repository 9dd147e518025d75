// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

package nutrition

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// CanonicalIngredientID reduces an ingredient name to the canonical
// identifier used for pantry and substitution matching: lowercased,
// punctuation collapsed to single underscores, leading and trailing
// separators stripped.
func CanonicalIngredientID(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" {
		return ""
	}
	s = nonAlnum.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}
