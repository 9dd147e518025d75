// Nutriscope - Nutrition Recommendation and Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriscope

package health

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	json "github.com/goccy/go-json"
)

// recordKeyPrefix namespaces health records in the shared Badger DB.
const recordKeyPrefix = "health:"

// BadgerStore persists health records in BadgerDB, keyed
// health:<user>:<timestamp-nanos>:<meal-id> so prefix iteration over
// one user yields records in timestamp order.
type BadgerStore struct {
	db *badger.DB
}

// compile-time interface check
var _ Store = (*BadgerStore)(nil)

// NewBadgerStore wraps an open Badger DB. The caller owns the DB
// lifecycle when sharing it; Close closes the DB.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// OpenBadgerStore opens (or creates) a Badger DB at path and wraps it.
func OpenBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", path, err)
	}
	return &BadgerStore{db: db}, nil
}

// DB exposes the underlying Badger DB for value-log GC scheduling.
func (s *BadgerStore) DB() *badger.DB {
	return s.db
}

// recordKey builds the storage key for a record.
func recordKey(userID string, ts time.Time, mealID string) []byte {
	// Fixed-width nanos keep lexical and chronological order aligned.
	return []byte(fmt.Sprintf("%s%s:%020d:%s", recordKeyPrefix, userID, ts.UnixNano(), mealID))
}

// userPrefix is the iteration prefix for one user's records.
func userPrefix(userID string) []byte {
	return []byte(recordKeyPrefix + userID + ":")
}

// AppendRecord persists one record.
func (s *BadgerStore) AppendRecord(_ context.Context, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(recordKey(rec.UserID, rec.Timestamp, rec.MealID), data)
	})
}

// Records returns a user's records at or after since, oldest first.
func (s *BadgerStore) Records(_ context.Context, userID string, since time.Time) ([]Record, error) {
	var out []Record

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := userPrefix(userID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec Record
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return fmt.Errorf("unmarshal record %s: %w", it.Item().Key(), err)
			}
			if rec.Timestamp.Before(since) {
				continue
			}
			out = append(out, rec)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan records for %s: %w", userID, err)
	}

	// Keys order by nanos; equal-nanos ties still need the meal ID
	// ordering the Store contract promises.
	sortRecords(out)
	return out, nil
}

// RecentRecords returns up to limit records, newest first.
func (s *BadgerStore) RecentRecords(_ context.Context, userID string, limit int) ([]Record, error) {
	if limit <= 0 {
		return nil, nil
	}

	var out []Record
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := userPrefix(userID)
		// Reverse iteration seeks to the last key under the prefix.
		seek := append(append([]byte{}, prefix...), 0xff)
		for it.Seek(seek); it.ValidForPrefix(prefix) && len(out) < limit; it.Next() {
			var rec Record
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return fmt.Errorf("unmarshal record %s: %w", it.Item().Key(), err)
			}
			out = append(out, rec)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan recent records for %s: %w", userID, err)
	}
	return out, nil
}

// DeleteOlderThan removes records strictly before cutoff.
func (s *BadgerStore) DeleteOlderThan(_ context.Context, userID string, cutoff time.Time) (int, error) {
	var stale [][]byte

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := userPrefix(userID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec Record
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return fmt.Errorf("unmarshal record %s: %w", it.Item().Key(), err)
			}
			if rec.Timestamp.Before(cutoff) {
				stale = append(stale, it.Item().KeyCopy(nil))
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("scan stale records for %s: %w", userID, err)
	}

	count := 0
	for _, key := range stale {
		err := s.db.Update(func(txn *badger.Txn) error {
			return txn.Delete(key)
		})
		if err != nil {
			return count, fmt.Errorf("delete record %s: %w", key, err)
		}
		count++
	}
	return count, nil
}

// Users returns all user identifiers with records, sorted.
func (s *BadgerStore) Users(_ context.Context) ([]string, error) {
	seen := make(map[string]struct{})

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(recordKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			rest := strings.TrimPrefix(key, recordKeyPrefix)
			if idx := strings.IndexByte(rest, ':'); idx > 0 {
				seen[rest[:idx]] = struct{}{}
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan users: %w", err)
	}

	out := make([]string, 0, len(seen))
	for userID := range seen {
		out = append(out, userID)
	}
	sort.Strings(out)
	return out, nil
}

// Close closes the underlying Badger DB.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// RunGC runs one round of Badger value-log garbage collection.
// badger.ErrNoRewrite (nothing to collect) is not an error.
func (s *BadgerStore) RunGC(discardRatio float64) error {
	err := s.db.RunValueLogGC(discardRatio)
	if err != nil && !errors.Is(err, badger.ErrNoRewrite) {
		return fmt.Errorf("badger value log gc: %w", err)
	}
	return nil
}
