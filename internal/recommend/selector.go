// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"errors"
	"strings"

	"github.com/tomtom215/marquee/internal/catalog"
)

// Selector applies the selection rule to a catalog. It performs no I/O.
type Selector struct {
	catalog *catalog.Catalog
	config  Config
}

// NewSelector creates a Selector over cat.
func NewSelector(cat *catalog.Catalog, cfg Config) (*Selector, error) {
	if cat == nil {
		return nil, errors.New("recommend: nil catalog")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Selector{catalog: cat, config: cfg}, nil
}

// Catalog returns the catalog the selector reads from.
func (s *Selector) Catalog() *catalog.Catalog {
	return s.catalog
}

// Select returns the positions to display for query. The query is only
// lower-cased, so surrounding whitespace is part of it. A blank query or one
// that matches nothing yields an empty Result with PathNone; that is not an
// error.
func (s *Selector) Select(query string) Result {
	q := strings.ToLower(query)
	if strings.TrimSpace(q) == "" {
		return Result{Query: q, Path: PathNone}
	}

	if pos, ok := s.catalog.LookupTitle(q); ok {
		return s.selectByTitle(q, pos)
	}
	return s.selectByKeyword(q)
}

func (s *Selector) selectByTitle(q string, pos int) Result {
	set := newOrderedSet(1 + s.config.TitleNeighbors)
	set.add(pos)
	for _, n := range s.neighbors(pos, s.config.TitleNeighbors) {
		set.add(n)
	}

	return Result{
		Query:     q,
		Path:      PathTitle,
		Matched:   1,
		Positions: set.firstN(s.config.MaxResults),
	}
}

func (s *Selector) selectByKeyword(q string) Result {
	var matches []int
	total := 0
	for pos := 0; pos < s.catalog.Len(); pos++ {
		if !strings.Contains(s.catalog.LowerTags(pos), q) {
			continue
		}
		total++
		if len(matches) < s.config.KeywordMatches {
			matches = append(matches, pos)
		}
	}
	if total == 0 {
		return Result{Query: q, Path: PathNone}
	}

	set := newOrderedSet(len(matches) * (1 + s.config.KeywordNeighbors))
	for _, pos := range matches {
		set.add(pos)
		for _, n := range s.neighbors(pos, s.config.KeywordNeighbors) {
			set.add(n)
		}
	}

	return Result{
		Query:     q,
		Path:      PathKeyword,
		Matched:   total,
		Positions: set.firstN(s.config.MaxResults),
	}
}

func (s *Selector) neighbors(pos, k int) []int {
	return nearestNeighbors(s.catalog.Similarity().Row(pos), pos, k)
}

// Resolve maps a Result's positions to movie IDs and titles, in order.
func (s *Selector) Resolve(r Result) []Recommendation {
	recs := make([]Recommendation, 0, len(r.Positions))
	for _, pos := range r.Positions {
		m := s.catalog.Movie(pos)
		recs = append(recs, Recommendation{Position: pos, MovieID: m.ID, Title: m.Title})
	}
	return recs
}
