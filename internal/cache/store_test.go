// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package cache

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/metrics"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.CacheConfig
		wantName string
		wantErr  bool
	}{
		{
			name:     "memory",
			cfg:      config.CacheConfig{Backend: config.CacheBackendMemory, Capacity: 10, TTL: time.Minute},
			wantName: "memory",
		},
		{
			name:     "empty backend defaults to memory",
			cfg:      config.CacheConfig{Capacity: 10, TTL: time.Minute},
			wantName: "memory",
		},
		{
			name:     "badger",
			cfg:      config.CacheConfig{Backend: config.CacheBackendBadger, BadgerPath: filepath.Join(t.TempDir(), "cache"), TTL: time.Minute},
			wantName: "badger",
		},
		{
			name:     "none",
			cfg:      config.CacheConfig{Backend: config.CacheBackendNone},
			wantName: "none",
		},
		{
			name:    "unknown",
			cfg:     config.CacheConfig{Backend: "memcached"},
			wantErr: true,
		},
		{
			name:    "redis unreachable",
			cfg:     config.CacheConfig{Backend: config.CacheBackendRedis, RedisAddr: "127.0.0.1:1"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Open(context.Background(), tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			defer store.Close()

			if store.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", store.Name(), tt.wantName)
			}
			if err := store.Ping(context.Background()); err != nil {
				t.Errorf("Ping() = %v", err)
			}
		})
	}
}

func TestNoop(t *testing.T) {
	var s Store = Noop{}
	mustSet(t, s, "k", "v", time.Minute)
	if _, found := mustGet(t, s, "k"); found {
		t.Error("Noop should never report a hit")
	}
}

// failingStore errors on every call.
type failingStore struct{ Noop }

var errBackend = errors.New("backend down")

func (failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errBackend
}

func (failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return errBackend
}

func (failingStore) Name() string { return "failing" }

func TestInstrument(t *testing.T) {
	t.Run("hits and misses", func(t *testing.T) {
		store := Instrument(NewLRU(10, time.Minute))
		hits := testutil.ToFloat64(metrics.CacheHits.WithLabelValues("memory"))
		misses := testutil.ToFloat64(metrics.CacheMisses.WithLabelValues("memory"))

		mustGet(t, store, "k")
		mustSet(t, store, "k", "v", 0)
		mustGet(t, store, "k")

		if got := testutil.ToFloat64(metrics.CacheHits.WithLabelValues("memory")) - hits; got != 1 {
			t.Errorf("hits delta = %v, want 1", got)
		}
		if got := testutil.ToFloat64(metrics.CacheMisses.WithLabelValues("memory")) - misses; got != 1 {
			t.Errorf("misses delta = %v, want 1", got)
		}
	})

	t.Run("errors", func(t *testing.T) {
		store := Instrument(failingStore{})
		before := testutil.ToFloat64(metrics.CacheErrors.WithLabelValues("failing", "get"))

		if _, _, err := store.Get(context.Background(), "k"); !errors.Is(err, errBackend) {
			t.Errorf("Get error = %v, want errBackend", err)
		}
		if err := store.Set(context.Background(), "k", nil, 0); !errors.Is(err, errBackend) {
			t.Errorf("Set error = %v, want errBackend", err)
		}

		if got := testutil.ToFloat64(metrics.CacheErrors.WithLabelValues("failing", "get")) - before; got != 1 {
			t.Errorf("get errors delta = %v, want 1", got)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		inner := NewLRU(1, time.Minute)
		once := Instrument(inner)
		twice := Instrument(once)
		if once != twice {
			t.Error("Instrument should not double wrap")
		}
		if once.(interface{ Unwrap() Store }).Unwrap() != Store(inner) {
			t.Error("Unwrap should return the backend")
		}
	})
}

func TestAsMaintainer(t *testing.T) {
	t.Parallel()

	lru := NewLRU(4, time.Minute)
	if m, ok := AsMaintainer(Instrument(lru)); !ok || m != Maintainer(lru) {
		t.Errorf("AsMaintainer(instrumented LRU) = %v, %v", m, ok)
	}

	if _, ok := AsMaintainer(Instrument(Noop{})); ok {
		t.Error("Noop needs no maintenance")
	}

	db, err := OpenBadger("", time.Minute)
	if err != nil {
		t.Fatalf("OpenBadger: %v", err)
	}
	defer db.Close()
	m, ok := AsMaintainer(db)
	if !ok {
		t.Fatal("Badger should be a Maintainer")
	}
	if err := m.Maintain(); err != nil {
		t.Errorf("Maintain() on in-memory badger = %v", err)
	}
}
