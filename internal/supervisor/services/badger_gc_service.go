// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// gcDiscardRatio is the value-log rewrite threshold passed to Badger.
// 0.5 rewrites files whose reclaimable space exceeds half their size.
const gcDiscardRatio = 0.5

// GCRunner matches the garbage collection surface of the Badger-backed
// health store. Satisfied by *health.BadgerStore.
type GCRunner interface {
	RunGC(discardRatio float64) error
}

// BadgerGCService runs Badger value-log garbage collection on a fixed
// interval as a supervised service. Badger never garbage-collects on
// its own; without this worker the value log grows unboundedly under
// sustained meal appends.
type BadgerGCService struct {
	store    GCRunner
	interval time.Duration
	logger   zerolog.Logger
}

// NewBadgerGCService creates a GC worker for the given store. A
// non-positive interval falls back to 10 minutes.
func NewBadgerGCService(store GCRunner, interval time.Duration, logger zerolog.Logger) *BadgerGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &BadgerGCService{
		store:    store,
		interval: interval,
		logger:   logger,
	}
}

// Serve implements suture.Service. One GC pass runs per tick; Badger
// reports ErrNoRewrite when nothing was reclaimed, which the store
// wrapper already swallows. Any other error is logged and the loop
// continues, leaving restart decisions to data-corruption surfacing
// elsewhere.
func (s *BadgerGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.store.RunGC(gcDiscardRatio); err != nil {
				s.logger.Warn().Err(err).Msg("Badger GC pass failed")
				continue
			}
			s.logger.Debug().Msg("Badger GC pass completed")
		}
	}
}

// String implements fmt.Stringer for supervisor logging.
func (s *BadgerGCService) String() string {
	return "badger-gc"
}
