// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import "fmt"

// SimilarityMatrix is an N×N matrix of similarity scores stored row-major.
// At(i, j) is the similarity of the movie at position i to the movie at
// position j. The matrix need not be symmetric.
type SimilarityMatrix struct {
	n      int
	scores []float64
}

// NewSimilarityMatrix wraps a flat row-major score slice of length n*n.
func NewSimilarityMatrix(n int, scores []float64) (*SimilarityMatrix, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: size %d", ErrMalformedMatrix, n)
	}
	if len(scores) != n*n {
		return nil, fmt.Errorf("%w: %d scores for a %dx%d matrix", ErrMalformedMatrix, len(scores), n, n)
	}
	return &SimilarityMatrix{n: n, scores: scores}, nil
}

// SimilarityFromRows builds a matrix from nested rows. Every row must have
// exactly len(rows) columns.
func SimilarityFromRows(rows [][]float64) (*SimilarityMatrix, error) {
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMalformedMatrix)
	}
	scores := make([]float64, 0, n*n)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrMalformedMatrix, i, len(row), n)
		}
		scores = append(scores, row...)
	}
	return NewSimilarityMatrix(n, scores)
}

// Size returns N, the number of rows and columns.
func (m *SimilarityMatrix) Size() int {
	return m.n
}

// Row returns row i. The returned slice aliases the matrix and must not be modified.
func (m *SimilarityMatrix) Row(i int) []float64 {
	return m.scores[i*m.n : (i+1)*m.n : (i+1)*m.n]
}

// At returns the score at row i, column j.
func (m *SimilarityMatrix) At(i, j int) float64 {
	return m.scores[i*m.n+j]
}
