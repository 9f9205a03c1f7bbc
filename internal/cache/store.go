// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package cache provides the key/value stores used to cache movie metadata.
//
// Four backends implement Store:
//   - LRU: in-process, capacity-bounded, lazy TTL expiry
//   - Badger: persistent on-disk store with per-entry TTL
//   - Redis: shared store for multiple replicas
//   - Noop: caching disabled
//
// Open selects a backend from config and wraps it so every lookup is
// recorded in the cache metrics.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/marquee/internal/config"
)

// Store is a byte-oriented key/value cache with per-entry TTL.
type Store interface {
	// Get returns the value for key. A missing or expired key is reported
	// as found=false with a nil error.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set stores value under key. A non-positive ttl uses the backend default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error

	// Name identifies the backend in logs and metrics.
	Name() string

	Close() error
}

// Open builds the Store selected by cfg.Backend.
func Open(ctx context.Context, cfg config.CacheConfig) (Store, error) {
	var (
		store Store
		err   error
	)

	switch cfg.Backend {
	case config.CacheBackendMemory, "":
		store = NewLRU(cfg.Capacity, cfg.TTL)
	case config.CacheBackendBadger:
		store, err = OpenBadger(cfg.BadgerPath, cfg.TTL)
	case config.CacheBackendRedis:
		store, err = NewRedis(ctx, RedisOptions{
			Addr:       cfg.RedisAddr,
			Password:   cfg.RedisPassword,
			DB:         cfg.RedisDB,
			DefaultTTL: cfg.TTL,
		})
	case config.CacheBackendNone:
		store = Noop{}
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s cache: %w", cfg.Backend, err)
	}

	return Instrument(store), nil
}

// Maintainer is implemented by stores that need periodic housekeeping.
type Maintainer interface {
	Maintain() error
}

// AsMaintainer looks through instrumentation for a Maintainer.
func AsMaintainer(s Store) (Maintainer, bool) {
	if u, ok := s.(interface{ Unwrap() Store }); ok {
		s = u.Unwrap()
	}
	m, ok := s.(Maintainer)
	return m, ok
}
