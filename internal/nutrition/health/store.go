// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

package health

import (
	"context"
	"errors"
	"time"
)

// ErrStoreClosed is returned by store operations after Close.
var ErrStoreClosed = errors.New("health store is closed")

// Record is one appended meal score with its rolling aggregate at
// append time. Records are append-only; the aggregator owns all
// writes.
type Record struct {
	// UserID owns the record.
	UserID string `json:"user_id"`

	// MealID references the scored meal-log entry.
	MealID string `json:"meal_id"`

	// Timestamp is when the meal was eaten.
	Timestamp time.Time `json:"timestamp"`

	// MealScore is the meal's quality score in [0,100].
	MealScore float64 `json:"meal_score"`

	// RollingScore is the decayed rolling score after this append.
	RollingScore float64 `json:"rolling_score"`
}

// Store persists per-user health score records. Implementations must
// be safe for concurrent use; ordering guarantees within one user are
// provided by the aggregator's per-user serialization, not the store.
type Store interface {
	// AppendRecord persists one record.
	AppendRecord(ctx context.Context, rec Record) error

	// Records returns a user's records at or after since, ordered by
	// timestamp ascending (ties broken by meal ID for determinism).
	Records(ctx context.Context, userID string, since time.Time) ([]Record, error)

	// RecentRecords returns up to limit records, newest first.
	RecentRecords(ctx context.Context, userID string, limit int) ([]Record, error)

	// DeleteOlderThan removes a user's records strictly before cutoff
	// and returns the number removed.
	DeleteOlderThan(ctx context.Context, userID string, cutoff time.Time) (int, error)

	// Users returns the identifiers of all users with records, sorted.
	Users(ctx context.Context) ([]string, error)

	// Close releases store resources.
	Close() error
}
