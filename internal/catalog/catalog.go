// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package catalog holds the movie table and the precomputed item-by-item
// similarity matrix that recommendations are selected from.
//
// A Catalog is built once at startup from a Source (artifact files or MongoDB)
// and is read-only afterwards, so a single instance is shared by every
// request without locking. Movie positions 0..N-1 are assigned in table order
// and double as row and column indices into the similarity matrix.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMisaligned is returned when the movie table and the similarity
	// matrix do not describe the same set of positions.
	ErrMisaligned = errors.New("catalog: movie table and similarity matrix are misaligned")

	// ErrMalformedMatrix is returned when a similarity artifact cannot form
	// a square matrix.
	ErrMalformedMatrix = errors.New("catalog: malformed similarity matrix")

	// ErrEmpty is returned when a source yields no movies.
	ErrEmpty = errors.New("catalog: no movies")
)

// Movie is one row of the movie table.
type Movie struct {
	ID    int    `json:"movie_id" bson:"movie_id"`
	Title string `json:"title" bson:"title"`
	Tags  string `json:"tags" bson:"tags"`
}

// Catalog is the immutable handle over the loaded movie table and matrix.
type Catalog struct {
	movies     []Movie
	lowerTags  []string
	titleIndex map[string]int
	sim        *SimilarityMatrix
}

// New builds a Catalog. The movies slice is copied; the matrix is shared and
// must not be modified by the caller afterwards.
func New(movies []Movie, sim *SimilarityMatrix) (*Catalog, error) {
	if len(movies) == 0 {
		return nil, ErrEmpty
	}
	if sim == nil || sim.Size() != len(movies) {
		size := 0
		if sim != nil {
			size = sim.Size()
		}
		return nil, fmt.Errorf("%w: %d movies, %dx%d matrix", ErrMisaligned, len(movies), size, size)
	}

	c := &Catalog{
		movies:     make([]Movie, len(movies)),
		lowerTags:  make([]string, len(movies)),
		titleIndex: make(map[string]int, len(movies)),
		sim:        sim,
	}
	copy(c.movies, movies)

	for pos, m := range c.movies {
		title := strings.ToLower(m.Title)
		c.lowerTags[pos] = strings.ToLower(m.Tags)
		// First movie in table order wins for duplicate titles.
		if _, exists := c.titleIndex[title]; !exists {
			c.titleIndex[title] = pos
		}
	}

	return c, nil
}

// Len returns the number of movies.
func (c *Catalog) Len() int {
	return len(c.movies)
}

// Movie returns the movie at pos. It panics if pos is out of range.
func (c *Catalog) Movie(pos int) Movie {
	return c.movies[pos]
}

// MovieAt returns the movie at pos and whether pos is in range.
func (c *Catalog) MovieAt(pos int) (Movie, bool) {
	if pos < 0 || pos >= len(c.movies) {
		return Movie{}, false
	}
	return c.movies[pos], true
}

// Movies returns a copy of the movie table in position order.
func (c *Catalog) Movies() []Movie {
	out := make([]Movie, len(c.movies))
	copy(out, c.movies)
	return out
}

// Similarity returns the similarity matrix.
func (c *Catalog) Similarity() *SimilarityMatrix {
	return c.sim
}

// LookupTitle returns the position of the first movie whose lower-cased
// title equals lowerTitle.
func (c *Catalog) LookupTitle(lowerTitle string) (int, bool) {
	pos, ok := c.titleIndex[lowerTitle]
	return pos, ok
}

// LowerTags returns the lower-cased tag text of the movie at pos.
func (c *Catalog) LowerTags(pos int) string {
	return c.lowerTags[pos]
}
