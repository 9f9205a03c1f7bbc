// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeClock lets TTL tests advance time without sleeping.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func newTestLRU(capacity int, ttl time.Duration) (*LRU, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewLRU(capacity, ttl)
	c.now = clock.Now
	return c, clock
}

func mustGet(t *testing.T, s Store, key string) ([]byte, bool) {
	t.Helper()
	val, found, err := s.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("Get(%q) error: %v", key, err)
	}
	return val, found
}

func mustSet(t *testing.T, s Store, key, value string, ttl time.Duration) {
	t.Helper()
	if err := s.Set(context.Background(), key, []byte(value), ttl); err != nil {
		t.Fatalf("Set(%q) error: %v", key, err)
	}
}

func TestLRU_BasicOperations(t *testing.T) {
	c, _ := newTestLRU(3, time.Minute)

	mustSet(t, c, "a", "1", 0)
	mustSet(t, c, "b", "2", 0)
	mustSet(t, c, "c", "3", 0)

	for key, want := range map[string]string{"a": "1", "b": "2", "c": "3"} {
		got, found := mustGet(t, c, key)
		if !found || string(got) != want {
			t.Errorf("Get(%q) = %q, %v; want %q, true", key, got, found, want)
		}
	}

	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
}

func TestLRU_Eviction(t *testing.T) {
	c, _ := newTestLRU(3, time.Minute)

	mustSet(t, c, "a", "1", 0)
	mustSet(t, c, "b", "2", 0)
	mustSet(t, c, "c", "3", 0)

	// Touch 'a' so 'b' becomes least recently used
	mustGet(t, c, "a")
	mustSet(t, c, "d", "4", 0)

	if _, found := mustGet(t, c, "b"); found {
		t.Error("expected 'b' to be evicted")
	}
	for _, key := range []string{"a", "c", "d"} {
		if _, found := mustGet(t, c, key); !found {
			t.Errorf("expected %q to be present", key)
		}
	}
}

func TestLRU_TTLExpiration(t *testing.T) {
	tests := []struct {
		name    string
		ttl     time.Duration
		advance time.Duration
		found   bool
	}{
		{name: "default ttl fresh", ttl: 0, advance: 30 * time.Second, found: true},
		{name: "default ttl expired", ttl: 0, advance: 2 * time.Minute, found: false},
		{name: "per entry ttl fresh", ttl: time.Hour, advance: 30 * time.Minute, found: true},
		{name: "per entry ttl expired", ttl: time.Second, advance: 2 * time.Second, found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, clock := newTestLRU(10, time.Minute)
			mustSet(t, c, "k", "v", tt.ttl)

			clock.Advance(tt.advance)

			if _, found := mustGet(t, c, "k"); found != tt.found {
				t.Errorf("found = %v, want %v", found, tt.found)
			}
		})
	}
}

func TestLRU_ValuesAreCopied(t *testing.T) {
	c, _ := newTestLRU(10, time.Minute)

	in := []byte("poster")
	if err := c.Set(context.Background(), "k", in, 0); err != nil {
		t.Fatal(err)
	}
	in[0] = 'X'

	out, _ := mustGet(t, c, "k")
	if string(out) != "poster" {
		t.Errorf("stored value mutated through input slice: %q", out)
	}
	out[0] = 'Y'

	again, _ := mustGet(t, c, "k")
	if string(again) != "poster" {
		t.Errorf("stored value mutated through output slice: %q", again)
	}
}

func TestLRU_Remove(t *testing.T) {
	c, _ := newTestLRU(10, time.Minute)

	mustSet(t, c, "a", "1", 0)
	mustSet(t, c, "b", "2", 0)

	if !c.Remove("a") {
		t.Error("Remove should return true for existing key")
	}
	if c.Remove("a") {
		t.Error("Remove should return false for missing key")
	}
	if _, found := mustGet(t, c, "b"); !found {
		t.Error("expected 'b' to still be present")
	}
}

func TestLRU_CleanupExpired(t *testing.T) {
	c, clock := newTestLRU(10, time.Minute)

	mustSet(t, c, "a", "1", 0)
	mustSet(t, c, "b", "2", 0)
	mustSet(t, c, "c", "3", 0)

	clock.Advance(2 * time.Minute)
	mustSet(t, c, "d", "4", 0)

	if removed := c.CleanupExpired(); removed != 3 {
		t.Errorf("CleanupExpired() = %d, want 3", removed)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestLRU_Stats(t *testing.T) {
	c, _ := newTestLRU(10, time.Minute)

	mustSet(t, c, "a", "1", 0)
	mustGet(t, c, "a")
	mustGet(t, c, "a")
	mustGet(t, c, "missing")

	hits, misses, size := c.Stats()
	if hits != 2 || misses != 1 || size != 1 {
		t.Errorf("Stats() = %d, %d, %d; want 2, 1, 1", hits, misses, size)
	}
}

func TestLRU_Close(t *testing.T) {
	c, _ := newTestLRU(10, time.Minute)
	mustSet(t, c, "a", "1", 0)

	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() after Close = %d, want 0", c.Len())
	}
}

func TestLRU_Concurrent(t *testing.T) {
	c := NewLRU(1000, time.Minute)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("tmdb:movie:%d", (id+j)%26)
				_ = c.Set(ctx, key, []byte("v"), 0)
				_, _, _ = c.Get(ctx, key)
			}
		}(i)
	}
	wg.Wait()

	mustSet(t, c, "test", "ok", 0)
	if _, found := mustGet(t, c, "test"); !found {
		t.Error("cache should still work after concurrent access")
	}
}

func BenchmarkLRU_Set(b *testing.B) {
	c := NewLRU(10000, time.Minute)
	ctx := context.Background()
	val := []byte("value")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.Set(ctx, string(rune('a'+i%26)), val, 0)
	}
}

func BenchmarkLRU_Eviction(b *testing.B) {
	c := NewLRU(100, time.Minute)
	ctx := context.Background()
	val := []byte("value")

	for i := 0; i < 100; i++ {
		_ = c.Set(ctx, string(rune(i)), val, 0)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.Set(ctx, string(rune(1000+i)), val, 0)
	}
}
