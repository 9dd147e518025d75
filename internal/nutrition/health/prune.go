// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

package health

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultPruneInterval is how often retention pruning runs.
const DefaultPruneInterval = 6 * time.Hour

// PruneService applies the retention window to every user's history on
// an interval. It implements suture.Service and is meant to run under
// the application supervisor tree.
type PruneService struct {
	agg      *Aggregator
	interval time.Duration
	logger   zerolog.Logger
}

// NewPruneService creates a PruneService. A non-positive interval
// selects DefaultPruneInterval.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPruneService(agg *Aggregator, interval time.Duration, logger zerolog.Logger) *PruneService {
	if interval <= 0 {
		interval = DefaultPruneInterval
	}
	return &PruneService{
		agg:      agg,
		interval: interval,
		logger:   logger.With().Str("component", "health-prune").Logger(),
	}
}

// Serve runs the pruning loop until the context is canceled.
func (s *PruneService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.pruneAll(ctx)
		}
	}
}

// pruneAll prunes every known user, logging failures and moving on.
func (s *PruneService) pruneAll(ctx context.Context) {
	users, err := s.agg.store.Users(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("list users for pruning")
		return
	}

	total := 0
	for _, userID := range users {
		n, err := s.agg.Prune(ctx, userID)
		if err != nil {
			s.logger.Error().Err(err).Str("user", userID).Msg("prune user history")
			continue
		}
		total += n
	}

	if total > 0 {
		s.logger.Info().Int("removed", total).Int("users", len(users)).Msg("retention pruning complete")
	}
}

// String names the service in supervisor logs.
func (s *PruneService) String() string {
	return "health-prune"
}
