// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

package health

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store for tests and embedded use.
// Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]Record
	closed  bool
}

// compile-time interface check
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string][]Record)}
}

// AppendRecord persists one record.
func (s *MemoryStore) AppendRecord(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}

	recs := append(s.records[rec.UserID], rec)
	sortRecords(recs)
	s.records[rec.UserID] = recs
	return nil
}

// Records returns a user's records at or after since, oldest first.
func (s *MemoryStore) Records(_ context.Context, userID string, since time.Time) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrStoreClosed
	}

	var out []Record
	for _, rec := range s.records[userID] {
		if rec.Timestamp.Before(since) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// RecentRecords returns up to limit records, newest first.
func (s *MemoryStore) RecentRecords(_ context.Context, userID string, limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrStoreClosed
	}
	if limit <= 0 {
		return nil, nil
	}

	recs := s.records[userID]
	out := make([]Record, 0, limit)
	for i := len(recs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, recs[i])
	}
	return out, nil
}

// DeleteOlderThan removes records strictly before cutoff.
func (s *MemoryStore) DeleteOlderThan(_ context.Context, userID string, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrStoreClosed
	}

	recs := s.records[userID]
	kept := recs[:0]
	removed := 0
	for _, rec := range recs {
		if rec.Timestamp.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	if len(kept) == 0 {
		delete(s.records, userID)
	} else {
		s.records[userID] = kept
	}
	return removed, nil
}

// Users returns all user identifiers with records, sorted.
func (s *MemoryStore) Users(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrStoreClosed
	}

	out := make([]string, 0, len(s.records))
	for userID := range s.records {
		out = append(out, userID)
	}
	sort.Strings(out)
	return out, nil
}

// Close marks the store closed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// sortRecords orders records by timestamp ascending, ties by meal ID.
func sortRecords(recs []Record) {
	sort.SliceStable(recs, func(i, j int) bool {
		if !recs[i].Timestamp.Equal(recs[j].Timestamp) {
			return recs[i].Timestamp.Before(recs[j].Timestamp)
		}
		return recs[i].MealID < recs[j].MealID
	})
}
