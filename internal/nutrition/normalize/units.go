// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

package normalize

import (
	"fmt"
	"strings"
)

// unitKind partitions units into convertibility classes.
type unitKind int

const (
	unitKindMass unitKind = iota
	unitKindVolume
	unitKindCount
)

// String returns a human-readable name for the unit kind.
func (k unitKind) String() string {
	switch k {
	case unitKindMass:
		return "mass"
	case unitKindVolume:
		return "volume"
	case unitKindCount:
		return "count"
	default:
		return "unknown"
	}
}

// unitDef describes one unit: its kind and the factor to the kind's
// base unit (g for mass, ml for volume, piece for count).
type unitDef struct {
	kind       unitKind
	toBaseUnit float64
}

// unitTable maps accepted unit spellings to their definitions.
var unitTable = map[string]unitDef{
	// mass (base = g)
	"mg":     {kind: unitKindMass, toBaseUnit: 0.001},
	"g":      {kind: unitKindMass, toBaseUnit: 1},
	"gram":   {kind: unitKindMass, toBaseUnit: 1},
	"grams":  {kind: unitKindMass, toBaseUnit: 1},
	"kg":     {kind: unitKindMass, toBaseUnit: 1000},
	"oz":     {kind: unitKindMass, toBaseUnit: 28.349523125},
	"ounce":  {kind: unitKindMass, toBaseUnit: 28.349523125},
	"ounces": {kind: unitKindMass, toBaseUnit: 28.349523125},
	"lb":     {kind: unitKindMass, toBaseUnit: 453.59237},
	"lbs":    {kind: unitKindMass, toBaseUnit: 453.59237},
	"pound":  {kind: unitKindMass, toBaseUnit: 453.59237},
	"pounds": {kind: unitKindMass, toBaseUnit: 453.59237},

	// volume (base = ml)
	"ml":          {kind: unitKindVolume, toBaseUnit: 1},
	"milliliter":  {kind: unitKindVolume, toBaseUnit: 1},
	"milliliters": {kind: unitKindVolume, toBaseUnit: 1},
	"l":           {kind: unitKindVolume, toBaseUnit: 1000},
	"liter":       {kind: unitKindVolume, toBaseUnit: 1000},
	"liters":      {kind: unitKindVolume, toBaseUnit: 1000},
	"tsp":         {kind: unitKindVolume, toBaseUnit: 4.92892159375},
	"teaspoon":    {kind: unitKindVolume, toBaseUnit: 4.92892159375},
	"teaspoons":   {kind: unitKindVolume, toBaseUnit: 4.92892159375},
	"tbsp":        {kind: unitKindVolume, toBaseUnit: 14.78676478125},
	"tablespoon":  {kind: unitKindVolume, toBaseUnit: 14.78676478125},
	"tablespoons": {kind: unitKindVolume, toBaseUnit: 14.78676478125},
	"cup":         {kind: unitKindVolume, toBaseUnit: 236.5882365},
	"cups":        {kind: unitKindVolume, toBaseUnit: 236.5882365},
	"fl-oz":       {kind: unitKindVolume, toBaseUnit: 29.5735295625},
	"floz":        {kind: unitKindVolume, toBaseUnit: 29.5735295625},

	// count (base = piece); the empty unit means a bare count
	"":       {kind: unitKindCount, toBaseUnit: 1},
	"count":  {kind: unitKindCount, toBaseUnit: 1},
	"piece":  {kind: unitKindCount, toBaseUnit: 1},
	"pieces": {kind: unitKindCount, toBaseUnit: 1},
	"unit":   {kind: unitKindCount, toBaseUnit: 1},
	"units":  {kind: unitKindCount, toBaseUnit: 1},
	"whole":  {kind: unitKindCount, toBaseUnit: 1},
	"dozen":  {kind: unitKindCount, toBaseUnit: 12},
}

// resolveUnit looks up a unit spelling, tolerating case and whitespace.
func resolveUnit(unit string) (unitDef, bool) {
	u := strings.ToLower(strings.TrimSpace(unit))
	def, ok := unitTable[u]
	return def, ok
}

// KnownUnit reports whether the spelling resolves to a supported unit.
func KnownUnit(unit string) bool {
	_, ok := resolveUnit(unit)
	return ok
}

// ConvertAmount converts a quantity between units. Mass and volume
// convert through their base units; crossing mass<->volume requires a
// positive density in g/ml. Count units convert only among themselves.
func ConvertAmount(value float64, fromUnit, toUnit string, densityGML float64) (float64, error) {
	from, ok := resolveUnit(fromUnit)
	if !ok {
		return 0, fmt.Errorf("unsupported unit %q", fromUnit)
	}
	to, ok := resolveUnit(toUnit)
	if !ok {
		return 0, fmt.Errorf("unsupported unit %q", toUnit)
	}

	if from.kind == to.kind {
		base := value * from.toBaseUnit
		return base / to.toBaseUnit, nil
	}

	// Count quantities carry no physical dimension to convert through.
	if from.kind == unitKindCount || to.kind == unitKindCount {
		return 0, fmt.Errorf("cannot convert %s to %s", from.kind, to.kind)
	}

	if densityGML <= 0 {
		return 0, fmt.Errorf("density required to convert %s to %s", from.kind, to.kind)
	}

	var grams float64
	switch from.kind {
	case unitKindMass:
		grams = value * from.toBaseUnit
	case unitKindVolume:
		grams = value * from.toBaseUnit * densityGML
	}

	switch to.kind {
	case unitKindMass:
		return grams / to.toBaseUnit, nil
	default:
		return grams / densityGML / to.toBaseUnit, nil
	}
}
