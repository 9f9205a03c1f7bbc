// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// defaultGCRatio is the discard ratio passed to RunValueLogGC.
const defaultGCRatio = 0.5

// ErrCacheClosed is returned by operations on a closed Badger store.
var ErrCacheClosed = errors.New("cache is closed")

// Badger is a persistent Store backed by BadgerDB. Expiry is enforced by
// Badger's per-entry TTL; reclaiming disk space requires periodic RunGC.
type Badger struct {
	db  *badger.DB
	ttl time.Duration
}

// OpenBadger opens (or creates) a Badger database at path. An empty path
// opens an in-memory database.
func OpenBadger(path string, ttl time.Duration) (*Badger, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}
	return NewBadger(db, ttl), nil
}

// NewBadger wraps an already opened database.
func NewBadger(db *badger.DB, ttl time.Duration) *Badger {
	if ttl <= 0 {
		ttl = defaultLRUTTL
	}
	return &Badger{db: db, ttl: ttl}
}

func (b *Badger) Get(_ context.Context, key string) ([]byte, bool, error) {
	if b.db.IsClosed() {
		return nil, false, ErrCacheClosed
	}

	var val []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("badger get %s: %w", key, err)
	}
	return val, true, nil
}

func (b *Badger) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if b.db.IsClosed() {
		return ErrCacheClosed
	}
	if ttl <= 0 {
		ttl = b.ttl
	}

	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry([]byte(key), value).WithTTL(ttl))
	})
	if err != nil {
		return fmt.Errorf("badger set %s: %w", key, err)
	}
	return nil
}

// RunGC runs value-log garbage collection until nothing is left to rewrite.
func (b *Badger) RunGC() error {
	if b.db.IsClosed() {
		return ErrCacheClosed
	}

	for {
		err := b.db.RunValueLogGC(defaultGCRatio)
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrGCInMemoryMode) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run GC: %w", err)
		}
	}
}

// Maintain implements Maintainer.
func (b *Badger) Maintain() error {
	return b.RunGC()
}

func (b *Badger) Ping(context.Context) error {
	if b.db.IsClosed() {
		return ErrCacheClosed
	}
	return nil
}

func (b *Badger) Name() string { return "badger" }

func (b *Badger) Close() error {
	if b.db.IsClosed() {
		return nil
	}
	return b.db.Close()
}

var _ Store = (*Badger)(nil)
