// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package cache

import (
	"context"
	"time"

	"github.com/tomtom215/marquee/internal/metrics"
)

// instrumented records hit, miss, and error metrics for a Store.
type instrumented struct {
	Store
}

// Instrument wraps store with Prometheus accounting. Wrapping twice is a no-op.
func Instrument(store Store) Store {
	if _, ok := store.(*instrumented); ok {
		return store
	}
	return &instrumented{Store: store}
}

func (s *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, found, err := s.Store.Get(ctx, key)
	if err != nil {
		metrics.RecordCacheError(s.Name(), "get")
		return nil, false, err
	}
	metrics.RecordCacheLookup(s.Name(), found)
	return val, found, nil
}

func (s *instrumented) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.Store.Set(ctx, key, value, ttl); err != nil {
		metrics.RecordCacheError(s.Name(), "set")
		return err
	}
	return nil
}

// Unwrap returns the underlying backend.
func (s *instrumented) Unwrap() Store {
	return s.Store
}
