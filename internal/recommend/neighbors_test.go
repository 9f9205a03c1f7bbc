// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"math"
	"math/rand"
	"reflect"
	"sort"
	"testing"
)

func TestNearestNeighbors(t *testing.T) {
	t.Parallel()

	nan := math.NaN()

	tests := []struct {
		name string
		row  []float64
		self int
		k    int
		want []int
	}{
		{
			name: "descending score",
			row:  []float64{1, 0.2, 0.9, 0.5},
			self: 0,
			k:    2,
			want: []int{2, 3},
		},
		{
			name: "ties break by ascending position",
			row:  []float64{0.5, 0.5, 1, 0.5},
			self: 2,
			k:    2,
			want: []int{0, 1},
		},
		{
			name: "self excluded even when another column ties with it",
			row:  []float64{1, 1, 0.3},
			self: 1,
			k:    1,
			want: []int{0},
		},
		{
			name: "self excluded when it is not the maximum",
			row:  []float64{0.9, 0.1, 0.5},
			self: 1,
			k:    3,
			want: []int{0, 2},
		},
		{
			name: "NaN ranks last",
			row:  []float64{nan, 1, 0.1, nan, -0.5},
			self: 1,
			k:    4,
			want: []int{2, 4, 0, 3},
		},
		{
			name: "k larger than row",
			row:  []float64{1, 0.4, 0.6},
			self: 0,
			k:    5,
			want: []int{2, 1},
		},
		{
			name: "single movie has no neighbours",
			row:  []float64{1},
			self: 0,
			k:    5,
			want: nil,
		},
		{
			name: "zero k",
			row:  []float64{1, 0.5},
			self: 0,
			k:    0,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := nearestNeighbors(tt.row, tt.self, tt.k)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("nearestNeighbors() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestNearestNeighbors_MatchesFullSort checks the windowed selection against
// a stable sort of every column.
func TestNearestNeighbors_MatchesFullSort(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(99))
	for trial := 0; trial < 200; trial++ {
		n := 1 + rng.Intn(30)
		row := make([]float64, n)
		for i := range row {
			row[i] = float64(rng.Intn(6)) / 5
		}
		self := rng.Intn(n)
		k := rng.Intn(n + 2)

		cols := make([]int, 0, n)
		for i := 0; i < n; i++ {
			if i != self {
				cols = append(cols, i)
			}
		}
		sort.SliceStable(cols, func(a, b int) bool { return row[cols[a]] > row[cols[b]] })
		if k < len(cols) {
			cols = cols[:k]
		}
		if len(cols) == 0 {
			cols = nil
		}

		if got := nearestNeighbors(row, self, k); !reflect.DeepEqual(got, cols) {
			t.Fatalf("trial %d: row=%v self=%d k=%d: got %v, want %v", trial, row, self, k, got, cols)
		}
	}
}

func TestOrderedSet(t *testing.T) {
	t.Parallel()

	s := newOrderedSet(4)
	for _, p := range []int{7, 3, 7, 9, 3, 1} {
		s.add(p)
	}

	if s.len() != 4 {
		t.Errorf("len() = %d, want 4", s.len())
	}
	if got := s.firstN(10); !reflect.DeepEqual(got, []int{7, 3, 9, 1}) {
		t.Errorf("firstN(10) = %v, want [7 3 9 1]", got)
	}
	if got := s.firstN(2); !reflect.DeepEqual(got, []int{7, 3}) {
		t.Errorf("firstN(2) = %v, want [7 3]", got)
	}
	if s.add(9) {
		t.Error("add of an existing member should report false")
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", DefaultConfig(), false},
		{"zero neighbours allowed", Config{MaxResults: 1}, false},
		{"negative title neighbours", Config{TitleNeighbors: -1, MaxResults: 10}, true},
		{"negative keyword matches", Config{KeywordMatches: -1, MaxResults: 10}, true},
		{"negative keyword neighbours", Config{KeywordNeighbors: -2, MaxResults: 10}, true},
		{"zero max results", Config{TitleNeighbors: 5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
