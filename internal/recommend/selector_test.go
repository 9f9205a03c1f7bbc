// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"github.com/tomtom215/marquee/internal/catalog"
)

func newTestCatalog(t *testing.T, movies []catalog.Movie, rows [][]float64) *catalog.Catalog {
	t.Helper()
	sim, err := catalog.SimilarityFromRows(rows)
	if err != nil {
		t.Fatalf("SimilarityFromRows: %v", err)
	}
	cat, err := catalog.New(movies, sim)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return cat
}

func newTestSelector(t *testing.T, cat *catalog.Catalog) *Selector {
	t.Helper()
	s, err := NewSelector(cat, DefaultConfig())
	if err != nil {
		t.Fatalf("NewSelector: %v", err)
	}
	return s
}

// sixMovies has Inception at position 2.
func sixMovies(t *testing.T) *catalog.Catalog {
	movies := []catalog.Movie{
		{ID: 100, Title: "Interstellar", Tags: "space time nolan"},
		{ID: 101, Title: "Memento", Tags: "memory thriller nolan"},
		{ID: 102, Title: "Inception", Tags: "dream heist nolan"},
		{ID: 103, Title: "The Prestige", Tags: "magic rivalry nolan"},
		{ID: 104, Title: "Tenet", Tags: "time heist nolan"},
		{ID: 105, Title: "Paprika", Tags: "dream anime"},
	}
	rows := [][]float64{
		{1.0, 0.3, 0.5, 0.2, 0.6, 0.1},
		{0.3, 1.0, 0.4, 0.5, 0.2, 0.1},
		{0.5, 0.4, 1.0, 0.3, 0.8, 0.7},
		{0.2, 0.5, 0.3, 1.0, 0.3, 0.1},
		{0.6, 0.2, 0.8, 0.3, 1.0, 0.2},
		{0.1, 0.1, 0.7, 0.1, 0.2, 1.0},
	}
	return newTestCatalog(t, movies, rows)
}

func TestSelect_ScenarioA_SingleMovie(t *testing.T) {
	t.Parallel()

	cat := newTestCatalog(t,
		[]catalog.Movie{{ID: 1, Title: "Avatar", Tags: "scifi action"}},
		[][]float64{{1.0}},
	)
	got := newTestSelector(t, cat).Select("avatar")

	if got.Path != PathTitle {
		t.Errorf("Path = %v, want title", got.Path)
	}
	if !reflect.DeepEqual(got.Positions, []int{0}) {
		t.Errorf("Positions = %v, want [0]", got.Positions)
	}
}

func TestSelect_ScenarioB_TitleMatch(t *testing.T) {
	t.Parallel()

	s := newTestSelector(t, sixMovies(t))
	got := s.Select("Inception")

	// Row 2 ranked without self: Tenet 0.8, Paprika 0.7, Interstellar 0.5,
	// Memento 0.4, The Prestige 0.3.
	want := []int{2, 4, 5, 0, 1, 3}
	if !reflect.DeepEqual(got.Positions, want) {
		t.Errorf("Positions = %v, want %v", got.Positions, want)
	}
	if got.Path != PathTitle || got.Matched != 1 {
		t.Errorf("Path = %v, Matched = %d", got.Path, got.Matched)
	}

	recs := s.Resolve(got)
	if recs[0].MovieID != 102 || recs[0].Title != "Inception" {
		t.Errorf("first recommendation = %+v, want Inception", recs[0])
	}
	if recs[1].Title != "Tenet" {
		t.Errorf("second recommendation = %+v, want Tenet", recs[1])
	}
}

func TestSelect_TitleCaseInsensitive(t *testing.T) {
	t.Parallel()

	s := newTestSelector(t, sixMovies(t))
	for _, q := range []string{"inception", "INCEPTION", "InCePtIoN"} {
		if got := s.Select(q); got.Path != PathTitle || got.Positions[0] != 2 {
			t.Errorf("Select(%q) = %+v", q, got)
		}
	}
}

func TestSelect_PaddedQueryIsNotATitle(t *testing.T) {
	t.Parallel()

	s := newTestSelector(t, sixMovies(t))
	for _, q := range []string{"Inception ", " inception"} {
		if got := s.Select(q); got.Path == PathTitle {
			t.Errorf("Select(%q) took the title path: %+v", q, got)
		}
	}
	// " heist" still appears inside "dream heist nolan" and "time heist nolan".
	if got := s.Select(" heist"); got.Path != PathKeyword || got.Matched != 2 {
		t.Errorf("Select(\" heist\") = %+v, want keyword path with 2 matches", got)
	}
}

func TestSelect_NearEqualScoresKeepFullPrecision(t *testing.T) {
	t.Parallel()

	movies := []catalog.Movie{
		{ID: 1, Title: "A", Tags: "x"},
		{ID: 2, Title: "B", Tags: "y"},
		{ID: 3, Title: "C", Tags: "z"},
	}
	// 0.300000001 and 0.300000002 collapse to the same float32.
	rows := [][]float64{
		{1, 0.300000001, 0.300000002},
		{0.300000001, 1, 0.5},
		{0.300000002, 0.5, 1},
	}
	cfg := DefaultConfig()
	cfg.TitleNeighbors = 1
	s, err := NewSelector(newTestCatalog(t, movies, rows), cfg)
	if err != nil {
		t.Fatalf("NewSelector: %v", err)
	}

	got := s.Select("a")
	if want := []int{0, 2}; !reflect.DeepEqual(got.Positions, want) {
		t.Errorf("Positions = %v, want %v", got.Positions, want)
	}
}

func TestSelect_ScenarioC_KeywordPath(t *testing.T) {
	t.Parallel()

	movies := make([]catalog.Movie, 12)
	for i := range movies {
		movies[i] = catalog.Movie{ID: 500 + i, Title: fmt.Sprintf("Movie %d", i), Tags: "drama"}
	}
	for _, pos := range []int{1, 4, 6, 9, 11} {
		movies[pos].Tags = "Romance drama"
	}

	rng := rand.New(rand.NewSource(7))
	rows := make([][]float64, 12)
	for i := range rows {
		rows[i] = make([]float64, 12)
		for j := range rows[i] {
			rows[i][j] = rng.Float64()
		}
		rows[i][i] = 1
	}

	cat := newTestCatalog(t, movies, rows)
	s := newTestSelector(t, cat)
	got := s.Select("romance")

	if got.Path != PathKeyword {
		t.Fatalf("Path = %v, want keyword", got.Path)
	}
	if got.Matched != 5 {
		t.Errorf("Matched = %d, want 5", got.Matched)
	}
	if len(got.Positions) > 10 {
		t.Errorf("len(Positions) = %d, want <= 10", len(got.Positions))
	}

	// The first three tag matches in table order lead their groups.
	want := newOrderedSet(12)
	for _, pos := range []int{1, 4, 6} {
		want.add(pos)
		for _, n := range nearestNeighbors(cat.Similarity().Row(pos), pos, 3) {
			want.add(n)
		}
	}
	if !reflect.DeepEqual(got.Positions, want.firstN(10)) {
		t.Errorf("Positions = %v, want %v", got.Positions, want.firstN(10))
	}
	for _, unused := range []int{9, 11} {
		if got.Positions[0] == unused {
			t.Errorf("match %d beyond the first three must not lead the result", unused)
		}
	}
}

func TestSelect_KeywordDeduplicates(t *testing.T) {
	t.Parallel()

	// "dream" matches Inception (2) and Paprika (5), which are each other's
	// neighbours, so the second group adds fewer new positions.
	s := newTestSelector(t, sixMovies(t))
	got := s.Select("dream")

	if got.Path != PathKeyword {
		t.Fatalf("Path = %v, want keyword", got.Path)
	}
	// Group 2 adds 4, 5, 0. Group 5 adds nothing new: its neighbours are
	// 2 (0.7), 4 (0.2) and 0, which wins the 0.1 tie with 1 and 3.
	want := []int{2, 4, 5, 0}
	if !reflect.DeepEqual(got.Positions, want) {
		t.Errorf("Positions = %v, want %v", got.Positions, want)
	}
}

func TestSelect_TitleTakesPrecedenceOverTags(t *testing.T) {
	t.Parallel()

	movies := []catalog.Movie{
		{ID: 1, Title: "Heist", Tags: "crime"},
		{ID: 2, Title: "Inside Man", Tags: "heist crime"},
		{ID: 3, Title: "Ronin", Tags: "heist action"},
	}
	rows := [][]float64{{1, 0.1, 0.2}, {0.1, 1, 0.3}, {0.2, 0.3, 1}}
	got := newTestSelector(t, newTestCatalog(t, movies, rows)).Select("heist")

	if got.Path != PathTitle || got.Positions[0] != 0 {
		t.Errorf("Select(heist) = %+v, want title path led by position 0", got)
	}
}

func TestSelect_ScenarioD_NoMatch(t *testing.T) {
	t.Parallel()

	got := newTestSelector(t, sixMovies(t)).Select("xyz123")
	if got.Path != PathNone || !got.Empty() || got.Matched != 0 {
		t.Errorf("Select(xyz123) = %+v, want empty PathNone", got)
	}
}

func TestSelect_BlankQuery(t *testing.T) {
	t.Parallel()

	s := newTestSelector(t, sixMovies(t))
	for _, q := range []string{"", "   ", "\t\n"} {
		if got := s.Select(q); !got.Empty() || got.Path != PathNone {
			t.Errorf("Select(%q) = %+v, want empty", q, got)
		}
	}
}

func TestSelect_SubstringIsNotATitleMatch(t *testing.T) {
	t.Parallel()

	// "memen" is neither a full title nor in any tag.
	if got := newTestSelector(t, sixMovies(t)).Select("memen"); !got.Empty() {
		t.Errorf("Select(memen) = %+v, want empty", got)
	}
}

func TestSelect_Properties(t *testing.T) {
	t.Parallel()

	const n = 40
	rng := rand.New(rand.NewSource(42))
	words := []string{"action", "romance", "space", "crime", "comedy", "war"}

	movies := make([]catalog.Movie, n)
	for i := range movies {
		movies[i] = catalog.Movie{
			ID:    1000 + i,
			Title: fmt.Sprintf("Title %d", i),
			Tags:  words[rng.Intn(len(words))] + " " + words[rng.Intn(len(words))],
		}
	}
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		for j := range rows[i] {
			// Coarse scores force plenty of ties.
			rows[i][j] = float64(rng.Intn(5)) / 4
		}
	}
	s := newTestSelector(t, newTestCatalog(t, movies, rows))

	for i := 0; i < n; i++ {
		q := fmt.Sprintf("title %d", i)
		got := s.Select(q)
		if got.Path != PathTitle || got.Positions[0] != i {
			t.Fatalf("Select(%q): matched movie must come first, got %+v", q, got)
		}
		if len(got.Positions) > 1+5 {
			t.Errorf("Select(%q): %d positions, want at most 6", q, len(got.Positions))
		}
		assertUnique(t, got.Positions)
		if again := s.Select(q); !reflect.DeepEqual(again, got) {
			t.Errorf("Select(%q) is not deterministic", q)
		}
	}

	for _, w := range words {
		got := s.Select(w)
		if got.Path == PathTitle {
			t.Fatalf("Select(%q) took the title path", w)
		}
		if len(got.Positions) > 10 {
			t.Errorf("Select(%q): %d positions, want at most 10", w, len(got.Positions))
		}
		assertUnique(t, got.Positions)

		direct := 0
		for _, pos := range got.Positions {
			if containsWord(movies[pos].Tags, w) {
				direct++
			}
		}
		if got.Matched > 0 && direct == 0 {
			t.Errorf("Select(%q): no direct tag match in result", w)
		}
	}
}

func assertUnique(t *testing.T, positions []int) {
	t.Helper()
	seen := make(map[int]bool, len(positions))
	for _, p := range positions {
		if seen[p] {
			t.Errorf("duplicate position %d in %v", p, positions)
		}
		seen[p] = true
	}
}

func containsWord(tags, word string) bool {
	return len(tags) >= len(word) && (tags[:len(word)] == word || tags[len(tags)-len(word):] == word)
}

func TestNewSelector_Validation(t *testing.T) {
	t.Parallel()

	if _, err := NewSelector(nil, DefaultConfig()); err == nil {
		t.Error("expected error for nil catalog")
	}
	if _, err := NewSelector(sixMovies(t), Config{MaxResults: 0}); err == nil {
		t.Error("expected error for zero MaxResults")
	}
}

func TestSelect_CustomLimits(t *testing.T) {
	t.Parallel()

	s, err := NewSelector(sixMovies(t), Config{TitleNeighbors: 5, KeywordMatches: 3, KeywordNeighbors: 3, MaxResults: 3})
	if err != nil {
		t.Fatal(err)
	}
	got := s.Select("inception")
	if !reflect.DeepEqual(got.Positions, []int{2, 4, 5}) {
		t.Errorf("Positions = %v, want first-inserted [2 4 5]", got.Positions)
	}
}
