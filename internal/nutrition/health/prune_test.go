// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

package health

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/nutriscope/internal/logging"
)

func TestPruneAllRemovesExpiredRecords(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RetentionDays = 30
	agg, store := newTestAggregator(t, cfg)
	fixTime(agg, baseTime)
	ctx := context.Background()

	// One record inside the window, one far outside it. The stale one
	// is injected directly; Append would reject nothing here, but the
	// retention boundary is the store's concern.
	stale := Record{UserID: "alice", MealID: "old", Timestamp: baseTime.AddDate(0, 0, -60), MealScore: 50}
	fresh := Record{UserID: "alice", MealID: "new", Timestamp: baseTime.AddDate(0, 0, -1), MealScore: 80}
	for _, rec := range []Record{stale, fresh} {
		if err := store.AppendRecord(ctx, rec); err != nil {
			t.Fatalf("AppendRecord(%s) error = %v", rec.MealID, err)
		}
	}

	svc := NewPruneService(agg, time.Hour, logging.NewTestLogger(testWriter{}))
	svc.pruneAll(ctx)

	recs, err := store.Records(ctx, "alice", time.Time{})
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	if len(recs) != 1 || recs[0].MealID != "new" {
		t.Errorf("recs = %+v, want only the fresh record", recs)
	}
}

func TestPruneServiceStopsOnContextCancel(t *testing.T) {
	agg, _ := newTestAggregator(t, DefaultConfig())
	svc := NewPruneService(agg, 10*time.Millisecond, logging.NewTestLogger(testWriter{}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Serve() error = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Serve() did not stop after context cancellation")
	}
}
