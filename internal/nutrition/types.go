// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

package nutrition

import (
	"fmt"
	"sort"
	"time"

	json "github.com/goccy/go-json"
)

// Key identifies a supported nutrient. Keys follow the
// <nutrient>_<unit> convention (grams, milligrams, micrograms);
// calories are kcal and carry no unit suffix.
type Key string

// Supported nutrient keys. The set is closed: vectors and targets
// never carry keys outside this enumeration.
const (
	KeyCalories     Key = "calories"
	KeyProtein      Key = "protein_g"
	KeyCarbs        Key = "carbs_g"
	KeyFat          Key = "fat_g"
	KeySaturatedFat Key = "saturated_fat_g"
	KeyTransFat     Key = "trans_fat_g"
	KeyFiber        Key = "fiber_g"
	KeySugar        Key = "sugar_g"
	KeySodium       Key = "sodium_mg"
	KeyPotassium    Key = "potassium_mg"
	KeyCholesterol  Key = "cholesterol_mg"
	KeyCalcium      Key = "calcium_mg"
	KeyIron         Key = "iron_mg"
	KeyVitaminA     Key = "vitamin_a_ug"
	KeyVitaminC     Key = "vitamin_c_mg"
	KeyVitaminD     Key = "vitamin_d_ug"
)

// supportedKeys is the authoritative membership set for ParseKey.
var supportedKeys = map[Key]struct{}{
	KeyCalories:     {},
	KeyProtein:      {},
	KeyCarbs:        {},
	KeyFat:          {},
	KeySaturatedFat: {},
	KeyTransFat:     {},
	KeyFiber:        {},
	KeySugar:        {},
	KeySodium:       {},
	KeyPotassium:    {},
	KeyCholesterol:  {},
	KeyCalcium:      {},
	KeyIron:         {},
	KeyVitaminA:     {},
	KeyVitaminC:     {},
	KeyVitaminD:     {},
}

// String returns the wire form of the key.
func (k Key) String() string {
	return string(k)
}

// Valid reports whether the key belongs to the supported enumeration.
func (k Key) Valid() bool {
	_, ok := supportedKeys[k]
	return ok
}

// ParseKey converts a wire-form nutrient name into a Key.
// Unknown names are rejected so unconstrained dictionaries never enter
// the engine.
func ParseKey(s string) (Key, error) {
	k := Key(s)
	if !k.Valid() {
		return "", &ValidationError{Field: "nutrient", Message: fmt.Sprintf("unsupported nutrient key %q", s)}
	}
	return k, nil
}

// SupportedKeys returns all supported keys in deterministic order.
func SupportedKeys() []Key {
	keys := make([]Key, 0, len(supportedKeys))
	for k := range supportedKeys {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Vector is an immutable per-serving mapping of nutrient key to a
// non-negative amount. Absent keys mean "unknown", never zero.
// The zero value is an empty vector.
type Vector struct {
	amounts map[Key]float64
}

// NewVector validates and copies the given amounts into a Vector.
// Unknown keys and negative amounts are rejected.
func NewVector(amounts map[Key]float64) (Vector, error) {
	out := make(map[Key]float64, len(amounts))
	for k, v := range amounts {
		if !k.Valid() {
			return Vector{}, &ValidationError{Field: "nutrient", Message: fmt.Sprintf("unsupported nutrient key %q", k)}
		}
		if v < 0 {
			return Vector{}, &ValidationError{Field: string(k), Message: fmt.Sprintf("amount must be non-negative, got %f", v)}
		}
		out[k] = v
	}
	return Vector{amounts: out}, nil
}

// MustVector is a test and fixture helper that panics on invalid input.
func MustVector(amounts map[Key]float64) Vector {
	v, err := NewVector(amounts)
	if err != nil {
		panic(err)
	}
	return v
}

// Get returns the amount for a key and whether the key is present.
func (v Vector) Get(k Key) (float64, bool) {
	amt, ok := v.amounts[k]
	return amt, ok
}

// Has reports whether the key is present.
func (v Vector) Has(k Key) bool {
	_, ok := v.amounts[k]
	return ok
}

// Len returns the number of declared nutrient keys.
func (v Vector) Len() int {
	return len(v.amounts)
}

// IsEmpty reports whether the vector declares no nutrients.
func (v Vector) IsEmpty() bool {
	return len(v.amounts) == 0
}

// Keys returns the declared keys in deterministic sorted order.
func (v Vector) Keys() []Key {
	keys := make([]Key, 0, len(v.amounts))
	for k := range v.amounts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Scale returns a new vector with every amount multiplied by factor.
// Factor must be non-negative to preserve the vector invariant.
func (v Vector) Scale(factor float64) Vector {
	if factor < 0 {
		factor = 0
	}
	out := make(map[Key]float64, len(v.amounts))
	for k, amt := range v.amounts {
		out[k] = amt * factor
	}
	return Vector{amounts: out}
}

// Add returns a new vector holding the key-wise sum of v and other.
// Keys present in either operand are present in the result.
func (v Vector) Add(other Vector) Vector {
	out := make(map[Key]float64, len(v.amounts)+len(other.amounts))
	for k, amt := range v.amounts {
		out[k] = amt
	}
	for k, amt := range other.amounts {
		out[k] += amt
	}
	return Vector{amounts: out}
}

// Amounts returns a defensive copy of the underlying mapping.
func (v Vector) Amounts() map[Key]float64 {
	out := make(map[Key]float64, len(v.amounts))
	for k, amt := range v.amounts {
		out[k] = amt
	}
	return out
}

// MarshalJSON encodes the vector as a flat key/amount object.
func (v Vector) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.amounts)
}

// UnmarshalJSON decodes and validates a flat key/amount object.
func (v *Vector) UnmarshalJSON(data []byte) error {
	var raw map[Key]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewVector(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// RangeMode selects how a TargetRange expresses its desired interval.
type RangeMode int

const (
	// RangeMinMax expresses the range as explicit [Min, Max] bounds.
	RangeMinMax RangeMode = iota
	// RangeTolerance expresses the range as Target +/- Tolerance.
	RangeTolerance
)

// String returns a human-readable name for the range mode.
func (m RangeMode) String() string {
	switch m {
	case RangeMinMax:
		return "min_max"
	case RangeTolerance:
		return "tolerance"
	default:
		return "unknown"
	}
}

// TargetRange is one nutrient's desired range inside a Target.
type TargetRange struct {
	// Mode selects which pair of fields expresses the range.
	Mode RangeMode `json:"mode"`

	// Min and Max bound the desired interval when Mode is RangeMinMax.
	Min float64 `json:"min,omitempty"`
	Max float64 `json:"max,omitempty"`

	// Target and Tolerance express the interval when Mode is RangeTolerance.
	Target    float64 `json:"target,omitempty"`
	Tolerance float64 `json:"tolerance,omitempty"`

	// Required marks nutrients that must be present in a scored vector.
	// Absent required nutrients count as maximal deviation; absent
	// optional nutrients are skipped.
	Required bool `json:"required"`

	// Weight is the relative weight in aggregate scoring.
	// Zero means equal weighting.
	Weight float64 `json:"weight,omitempty"`
}

// Bounds returns the inclusive [lo, hi] interval for the range.
func (r TargetRange) Bounds() (lo, hi float64) {
	switch r.Mode {
	case RangeTolerance:
		return r.Target - r.Tolerance, r.Target + r.Tolerance
	default:
		return r.Min, r.Max
	}
}

// Width returns the tolerance width of the range.
func (r TargetRange) Width() float64 {
	lo, hi := r.Bounds()
	return hi - lo
}

// Contains reports whether the amount lies inside the range.
func (r TargetRange) Contains(amount float64) bool {
	lo, hi := r.Bounds()
	return amount >= lo && amount <= hi
}

// Deviation returns the normalized deviation of an amount from the
// range: 0 inside the bounds, otherwise the distance from the nearest
// bound divided by the tolerance width, capped at 1. A zero-width range
// treats any outside amount as maximal deviation.
func (r TargetRange) Deviation(amount float64) float64 {
	lo, hi := r.Bounds()
	if amount >= lo && amount <= hi {
		return 0
	}
	width := hi - lo
	if width <= 0 {
		return 1
	}
	var dist float64
	if amount < lo {
		dist = lo - amount
	} else {
		dist = amount - hi
	}
	dev := dist / width
	if dev > 1 {
		return 1
	}
	return dev
}

// Validate checks the range for structural problems.
func (r TargetRange) Validate() error {
	switch r.Mode {
	case RangeMinMax:
		if r.Min < 0 {
			return &ValidationError{Field: "min", Message: fmt.Sprintf("must be non-negative, got %f", r.Min)}
		}
		if r.Max < r.Min {
			return &ValidationError{Field: "max", Message: fmt.Sprintf("must be >= min (%f), got %f", r.Min, r.Max)}
		}
	case RangeTolerance:
		if r.Target < 0 {
			return &ValidationError{Field: "target", Message: fmt.Sprintf("must be non-negative, got %f", r.Target)}
		}
		if r.Tolerance < 0 {
			return &ValidationError{Field: "tolerance", Message: fmt.Sprintf("must be non-negative, got %f", r.Tolerance)}
		}
	default:
		return &ValidationError{Field: "mode", Message: fmt.Sprintf("unknown range mode %d", r.Mode)}
	}
	if r.Weight < 0 {
		return &ValidationError{Field: "weight", Message: fmt.Sprintf("must be non-negative, got %f", r.Weight)}
	}
	return nil
}

// Target is a user-owned set of desired nutrient ranges.
// The engine treats targets as read-only input.
type Target struct {
	// Ranges maps nutrient keys to their desired ranges.
	Ranges map[Key]TargetRange `json:"ranges"`
}

// NewTarget validates the given ranges and returns a Target.
func NewTarget(ranges map[Key]TargetRange) (Target, error) {
	t := Target{Ranges: make(map[Key]TargetRange, len(ranges))}
	for k, r := range ranges {
		if !k.Valid() {
			return Target{}, &ValidationError{Field: "nutrient", Message: fmt.Sprintf("unsupported nutrient key %q", k)}
		}
		if err := r.Validate(); err != nil {
			return Target{}, fmt.Errorf("range for %s: %w", k, err)
		}
		t.Ranges[k] = r
	}
	return t, nil
}

// Range returns the range for a key and whether the key is targeted.
func (t Target) Range(k Key) (TargetRange, bool) {
	r, ok := t.Ranges[k]
	return r, ok
}

// Keys returns the targeted keys in deterministic sorted order.
func (t Target) Keys() []Key {
	keys := make([]Key, 0, len(t.Ranges))
	for k := range t.Ranges {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// IsEmpty reports whether the target declares no ranges.
func (t Target) IsEmpty() bool {
	return len(t.Ranges) == 0
}

// Validate checks every range in the target.
func (t Target) Validate() error {
	for k, r := range t.Ranges {
		if !k.Valid() {
			return &ValidationError{Field: "nutrient", Message: fmt.Sprintf("unsupported nutrient key %q", k)}
		}
		if err := r.Validate(); err != nil {
			return fmt.Errorf("range for %s: %w", k, err)
		}
	}
	return nil
}

// Ingredient is one entry in a recipe's ingredient list.
type Ingredient struct {
	// ID is the canonical ingredient identifier used for pantry and
	// substitution matching.
	ID string `json:"id"`

	// Name is the display name as written in the recipe.
	Name string `json:"name"`

	// Quantity is the amount of the ingredient, in Unit.
	Quantity float64 `json:"quantity"`

	// Unit is the measurement unit (g, ml, cup, count, ...).
	Unit string `json:"unit"`

	// Optional ingredients never count against pantry matching.
	Optional bool `json:"optional,omitempty"`

	// SourceID references the nutrient source for this ingredient.
	// Empty means the ingredient ID doubles as the source ID.
	SourceID string `json:"source_id,omitempty"`
}

// Source returns the nutrient-source identifier for the ingredient.
func (i Ingredient) Source() string {
	if i.SourceID != "" {
		return i.SourceID
	}
	return i.ID
}

// Recipe is an immutable candidate meal. Re-normalization produces a
// new Recipe value rather than mutating ingredients in place.
type Recipe struct {
	// ID uniquely identifies the recipe and provides the final
	// ranking tie-break.
	ID string `json:"id"`

	// Title is the display title.
	Title string `json:"title"`

	// Ingredients is the ordered ingredient list.
	Ingredients []Ingredient `json:"ingredients"`

	// Servings is the serving count the recipe yields.
	Servings float64 `json:"servings"`

	// PerServing is the derived per-serving nutrient vector.
	PerServing Vector `json:"per_serving"`

	// Generated marks recipes originating from the free-text or voice
	// generation collaborator rather than the catalog.
	Generated bool `json:"generated,omitempty"`
}

// RequiredIngredients returns the non-optional ingredients.
func (r Recipe) RequiredIngredients() []Ingredient {
	out := make([]Ingredient, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		if !ing.Optional {
			out = append(out, ing)
		}
	}
	return out
}

// Pantry is a set of ingredient identifiers currently on hand.
// Presence is all that matters; quantities are not tracked.
type Pantry struct {
	items map[string]struct{}
}

// NewPantry builds a pantry from ingredient identifiers.
func NewPantry(ids ...string) Pantry {
	items := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		items[id] = struct{}{}
	}
	return Pantry{items: items}
}

// Has reports whether the ingredient identifier is on hand.
func (p Pantry) Has(id string) bool {
	_, ok := p.items[id]
	return ok
}

// Len returns the number of distinct ingredients on hand.
func (p Pantry) Len() int {
	return len(p.items)
}

// IsEmpty reports whether the pantry is empty or unset.
func (p Pantry) IsEmpty() bool {
	return len(p.items) == 0
}

// Items returns the identifiers in deterministic sorted order.
func (p Pantry) Items() []string {
	out := make([]string, 0, len(p.items))
	for id := range p.items {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// MealSource records where a logged meal's nutrient data came from.
type MealSource int

const (
	// SourceManual indicates user-entered nutrient data.
	SourceManual MealSource = iota
	// SourceVision indicates data estimated by the vision collaborator.
	SourceVision
	// SourceRecipe indicates data derived from a normalized recipe.
	SourceRecipe
)

// String returns a human-readable name for the meal source.
func (s MealSource) String() string {
	switch s {
	case SourceManual:
		return "manual"
	case SourceVision:
		return "vision"
	case SourceRecipe:
		return "recipe"
	default:
		return "unknown"
	}
}

// MealLog is one logged meal. Entries are append-only; corrections
// create a superseding entry referencing the original.
type MealLog struct {
	// ID uniquely identifies the entry.
	ID string `json:"id"`

	// UserID owns the entry.
	UserID string `json:"user_id"`

	// Name is the display name of the meal.
	Name string `json:"name,omitempty"`

	// Timestamp is when the meal was eaten.
	Timestamp time.Time `json:"timestamp"`

	// Nutrients is the meal's (possibly partial) nutrient vector.
	Nutrients Vector `json:"nutrients"`

	// Source records the provenance of the nutrient data.
	Source MealSource `json:"source"`

	// Confidence is the confidence attached to the nutrient data.
	Confidence Confidence `json:"confidence"`

	// Supersedes references the entry this one corrects, if any.
	Supersedes string `json:"supersedes,omitempty"`
}

// Confidence marks whether a result was computed from complete input.
type Confidence int

const (
	// ConfidenceFull indicates a result computed from complete data.
	ConfidenceFull Confidence = iota
	// ConfidencePartial indicates degraded input: at least one
	// data-quality warning applied to the computation.
	ConfidencePartial
)

// String returns a human-readable name for the confidence level.
func (c Confidence) String() string {
	switch c {
	case ConfidenceFull:
		return "full"
	case ConfidencePartial:
		return "partial"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the confidence as its string form.
func (c Confidence) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes the string form of a confidence level.
func (c *Confidence) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "full":
		*c = ConfidenceFull
	case "partial":
		*c = ConfidencePartial
	default:
		return fmt.Errorf("unknown confidence %q", s)
	}
	return nil
}
