// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

package health

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/nutriscope/internal/metrics"
	"github.com/tomtom215/nutriscope/internal/nutrition"
)

// Defaults applied by DefaultConfig and for zero-valued fields.
const (
	// DefaultHalfLifeDays halves a meal's influence roughly weekly.
	DefaultHalfLifeDays = 7.0

	// DefaultTrendHorizonDays is how far back the trend comparison
	// reaches.
	DefaultTrendHorizonDays = 7.0

	// DefaultTrendMinDelta is the minimum score movement reported as a
	// trend rather than noise.
	DefaultTrendMinDelta = 2.0

	// DefaultRetentionDays bounds the recompute window.
	DefaultRetentionDays = 90

	// DefaultMaxHistory caps the records recomputed per user.
	DefaultMaxHistory = 1000

	// lockStripes sizes the per-user mutex table.
	lockStripes = 64
)

// Config holds aggregator settings.
type Config struct {
	// HalfLifeDays is the number of days after which a meal's weight
	// halves. The decay factor is derived as 0.5^(1/HalfLifeDays).
	HalfLifeDays float64 `json:"half_life_days" koanf:"half_life_days"`

	// TrendHorizonDays is the look-back horizon for trend comparison.
	TrendHorizonDays float64 `json:"trend_horizon_days" koanf:"trend_horizon_days"`

	// TrendMinDelta is the minimum rolling-score delta reported as
	// improving or declining.
	TrendMinDelta float64 `json:"trend_min_delta" koanf:"trend_min_delta"`

	// RetentionDays is the history window retained and recomputed
	// over. Older records are pruned.
	RetentionDays int `json:"retention_days" koanf:"retention_days"`

	// MaxHistory caps the number of records recomputed over per user;
	// the most recent records win when the cap is exceeded.
	MaxHistory int `json:"max_history" koanf:"max_history"`
}

// DefaultConfig returns production-ready defaults.
func DefaultConfig() Config {
	return Config{
		HalfLifeDays:     DefaultHalfLifeDays,
		TrendHorizonDays: DefaultTrendHorizonDays,
		TrendMinDelta:    DefaultTrendMinDelta,
		RetentionDays:    DefaultRetentionDays,
		MaxHistory:       DefaultMaxHistory,
	}
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	if c.HalfLifeDays <= 0 {
		return fmt.Errorf("half_life_days must be positive, got %f", c.HalfLifeDays)
	}
	if c.TrendHorizonDays <= 0 {
		return fmt.Errorf("trend_horizon_days must be positive, got %f", c.TrendHorizonDays)
	}
	if c.TrendMinDelta < 0 {
		return fmt.Errorf("trend_min_delta must be non-negative, got %f", c.TrendMinDelta)
	}
	if c.RetentionDays <= 0 {
		return fmt.Errorf("retention_days must be positive, got %d", c.RetentionDays)
	}
	if c.MaxHistory < 0 {
		return fmt.Errorf("max_history must be non-negative, got %d", c.MaxHistory)
	}
	return nil
}

// DecayFactor returns the derived per-day weight multiplier.
func (c Config) DecayFactor() float64 {
	return math.Pow(0.5, 1/c.HalfLifeDays)
}

// MealScore is one scored meal submitted to the aggregator.
type MealScore struct {
	// ID references the meal-log entry.
	ID string `json:"id"`

	// Timestamp is when the meal was eaten.
	Timestamp time.Time `json:"timestamp"`

	// Score is the meal quality score in [0,100].
	Score float64 `json:"score"`
}

// State is the per-user aggregator state.
type State int

const (
	// Uninitialized means no meals have been logged; the rolling score
	// is nil, never 0, so "no data" is distinguishable from a poor
	// score.
	Uninitialized State = iota
	// Active means at least one meal has been logged.
	Active
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Active:
		return "active"
	default:
		return "unknown"
	}
}

// Trend summarizes the rolling score's direction.
type Trend int

const (
	// TrendStable means the score moved less than the minimum delta.
	TrendStable Trend = iota
	// TrendImproving means the score rose beyond the minimum delta.
	TrendImproving
	// TrendDeclining means the score fell beyond the minimum delta.
	TrendDeclining
)

// String returns a human-readable name for the trend.
func (t Trend) String() string {
	switch t {
	case TrendStable:
		return "stable"
	case TrendImproving:
		return "improving"
	case TrendDeclining:
		return "declining"
	default:
		return "unknown"
	}
}

// Snapshot is the homepage view of one user's health score.
type Snapshot struct {
	// UserID owns the snapshot.
	UserID string `json:"user_id"`

	// State is Uninitialized until the first meal is logged.
	State State `json:"state"`

	// RollingScore is the decayed rolling score; nil when
	// Uninitialized.
	RollingScore *float64 `json:"rolling_score"`

	// Trend is the direction of the rolling score.
	Trend Trend `json:"trend"`

	// MealCount is the number of retained meal records.
	MealCount int `json:"meal_count"`

	// LastMealAt is the most recent retained meal timestamp.
	LastMealAt time.Time `json:"last_meal_at"`
}

// Aggregator folds meal scores into per-user rolling health scores.
// Same-user appends are serialized through a striped mutex table;
// different users never contend on the same stripe beyond hash
// collisions.
type Aggregator struct {
	cfg    Config
	store  Store
	logger zerolog.Logger
	decay  float64

	locks [lockStripes]sync.Mutex

	// now is swappable for deterministic tests.
	now func() time.Time
}

// NewAggregator creates an Aggregator over the given store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewAggregator(cfg Config, store Store, logger zerolog.Logger) (*Aggregator, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid aggregator config: %w", err)
	}
	return &Aggregator{
		cfg:    cfg,
		store:  store,
		logger: logger.With().Str("component", "health").Logger(),
		decay:  cfg.DecayFactor(),
		now:    time.Now,
	}, nil
}

// userLock returns the mutex stripe for a user.
func (a *Aggregator) userLock(userID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(userID)) //nolint:errcheck // fnv writes never fail
	return &a.locks[h.Sum32()%lockStripes]
}

// Append records one meal score for a user and returns the updated
// snapshot. The rolling score is recomputed over the full retained
// window, so backfilled meals with out-of-order timestamps yield the
// same result a fully ordered history would. Validation failures
// never touch stored state.
func (a *Aggregator) Append(ctx context.Context, userID string, meal MealScore) (Snapshot, error) {
	start := time.Now()
	if err := a.validateAppend(userID, meal); err != nil {
		var verr *nutrition.ValidationError
		if errors.As(err, &verr) {
			metrics.HealthAppendRejections.WithLabelValues(verr.Field).Inc()
		}
		return Snapshot{}, err
	}

	lock := a.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	now := a.now()
	since := now.AddDate(0, 0, -a.cfg.RetentionDays)

	records, err := a.store.Records(ctx, userID, since)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load history for %s: %w", userID, err)
	}

	rec := Record{
		UserID:    userID,
		MealID:    meal.ID,
		Timestamp: meal.Timestamp,
		MealScore: meal.Score,
	}
	records = append(records, rec)
	sortRecords(records)
	records = a.window(records)

	rolling := a.rollingAt(records, now)
	rec.RollingScore = rolling

	if err := a.store.AppendRecord(ctx, rec); err != nil {
		return Snapshot{}, fmt.Errorf("append record for %s: %w", userID, err)
	}

	metrics.HealthAppends.Inc()
	metrics.HealthAppendDuration.Observe(time.Since(start).Seconds())

	snap := a.snapshotFromRecords(userID, records, rolling, now)
	a.logger.Debug().
		Str("user", userID).
		Float64("meal_score", meal.Score).
		Float64("rolling", rolling).
		Str("trend", snap.Trend.String()).
		Msg("meal score appended")

	return snap, nil
}

// Snapshot returns the current rolling score and trend for a user.
// Users with no logged meals get an Uninitialized snapshot with a nil
// rolling score; that is a defined outcome, not an error.
func (a *Aggregator) Snapshot(ctx context.Context, userID string) (Snapshot, error) {
	if strings.TrimSpace(userID) == "" {
		return Snapshot{}, &nutrition.ValidationError{Field: "user_id", Message: "must not be empty"}
	}

	now := a.now()
	since := now.AddDate(0, 0, -a.cfg.RetentionDays)

	records, err := a.store.Records(ctx, userID, since)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load history for %s: %w", userID, err)
	}
	if len(records) == 0 {
		return Snapshot{UserID: userID, State: Uninitialized}, nil
	}
	records = a.window(records)

	rolling := a.rollingAt(records, now)
	return a.snapshotFromRecords(userID, records, rolling, now), nil
}

// RecentMeals returns a user's most recently logged scored meals,
// newest first.
func (a *Aggregator) RecentMeals(ctx context.Context, userID string, limit int) ([]Record, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, &nutrition.ValidationError{Field: "user_id", Message: "must not be empty"}
	}
	if limit <= 0 {
		limit = 5
	}
	return a.store.RecentRecords(ctx, userID, limit)
}

// WellRated returns a user's recent meals scoring at or above
// minScore, newest first. The generation collaborator seeds
// history-based suggestions from this list.
func (a *Aggregator) WellRated(ctx context.Context, userID string, limit int, minScore float64) ([]Record, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, &nutrition.ValidationError{Field: "user_id", Message: "must not be empty"}
	}
	if limit <= 0 {
		limit = 5
	}

	now := a.now()
	since := now.AddDate(0, 0, -a.cfg.RetentionDays)
	records, err := a.store.Records(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("load history for %s: %w", userID, err)
	}

	var out []Record
	for i := len(records) - 1; i >= 0 && len(out) < limit; i-- {
		if records[i].MealScore >= minScore {
			out = append(out, records[i])
		}
	}
	return out, nil
}

// Prune removes a user's records older than the retention window.
func (a *Aggregator) Prune(ctx context.Context, userID string) (int, error) {
	lock := a.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	cutoff := a.now().AddDate(0, 0, -a.cfg.RetentionDays)
	n, err := a.store.DeleteOlderThan(ctx, userID, cutoff)
	if err != nil {
		return 0, err
	}
	metrics.HealthRecordsPruned.Add(float64(n))
	return n, nil
}

// validateAppend rejects malformed append requests before any state
// is touched.
func (a *Aggregator) validateAppend(userID string, meal MealScore) error {
	if strings.TrimSpace(userID) == "" {
		return &nutrition.ValidationError{Field: "user_id", Message: "must not be empty"}
	}
	if strings.Contains(userID, ":") {
		return &nutrition.ValidationError{Field: "user_id", Message: "must not contain ':'"}
	}
	if strings.TrimSpace(meal.ID) == "" {
		return &nutrition.ValidationError{Field: "meal_id", Message: "must not be empty"}
	}
	if meal.Timestamp.IsZero() {
		return &nutrition.ValidationError{Field: "timestamp", Message: "must be set"}
	}
	if meal.Timestamp.After(a.now().Add(time.Minute)) {
		return &nutrition.ValidationError{Field: "timestamp", Message: "must not be in the future"}
	}
	// A record older than the cutoff would count once and then vanish
	// from every later recompute; reject it outright.
	if meal.Timestamp.Before(a.now().AddDate(0, 0, -a.cfg.RetentionDays)) {
		return &nutrition.ValidationError{
			Field:   "timestamp",
			Message: fmt.Sprintf("older than the %d-day retention window", a.cfg.RetentionDays),
		}
	}
	if meal.Score < 0 || meal.Score > 100 {
		return &nutrition.ValidationError{Field: "score", Message: fmt.Sprintf("must be in [0,100], got %f", meal.Score)}
	}
	return nil
}

// window applies the MaxHistory cap, keeping the most recent records.
// Zero disables the cap.
func (a *Aggregator) window(records []Record) []Record {
	if a.cfg.MaxHistory > 0 && len(records) > a.cfg.MaxHistory {
		return records[len(records)-a.cfg.MaxHistory:]
	}
	return records
}

// rollingAt computes the decayed weighted average of the records as of
// asOf, skipping records newer than asOf. Weight of a meal logged d
// days before asOf is decayFactor^d.
func (a *Aggregator) rollingAt(records []Record, asOf time.Time) float64 {
	var weightedSum, weightTotal float64
	for _, rec := range records {
		if rec.Timestamp.After(asOf) {
			continue
		}
		days := asOf.Sub(rec.Timestamp).Hours() / 24
		w := math.Pow(a.decay, days)
		weightedSum += w * rec.MealScore
		weightTotal += w
	}
	if weightTotal == 0 {
		return 0
	}
	return weightedSum / weightTotal
}

// snapshotFromRecords assembles the snapshot for a non-empty history.
func (a *Aggregator) snapshotFromRecords(userID string, records []Record, rolling float64, now time.Time) Snapshot {
	score := rolling
	return Snapshot{
		UserID:       userID,
		State:        Active,
		RollingScore: &score,
		Trend:        a.trend(records, rolling, now),
		MealCount:    len(records),
		LastMealAt:   records[len(records)-1].Timestamp,
	}
}

// trend compares the current rolling score against the score
// recomputed as of the trend horizon. When the whole history is
// younger than the horizon, the earliest record's timestamp stands in,
// so new users see movement as soon as two meals diverge.
func (a *Aggregator) trend(records []Record, current float64, now time.Time) Trend {
	horizon := now.Add(-time.Duration(a.cfg.TrendHorizonDays * 24 * float64(time.Hour)))

	asOf := horizon
	hasPrior := false
	for _, rec := range records {
		if !rec.Timestamp.After(horizon) {
			hasPrior = true
			break
		}
	}
	if !hasPrior {
		asOf = records[0].Timestamp
	}

	delta := current - a.rollingAt(records, asOf)
	switch {
	case delta >= a.cfg.TrendMinDelta:
		return TrendImproving
	case delta <= -a.cfg.TrendMinDelta:
		return TrendDeclining
	default:
		return TrendStable
	}
}
