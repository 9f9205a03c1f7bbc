// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"math"
	"sort"
)

// ranksBefore reports whether column a ranks ahead of column b in row:
// higher score first, NaN after every number, lower position on ties.
func ranksBefore(row []float64, a, b int) bool {
	sa, sb := row[a], row[b]
	aNaN, bNaN := math.IsNaN(sa), math.IsNaN(sb)
	switch {
	case aNaN != bNaN:
		return bNaN
	case !aNaN && sa != sb:
		return sa > sb
	}
	return a < b
}

// nearestNeighbors returns the k best-ranked columns of row other than self.
// It is equivalent to sorting every column by ranksBefore and slicing, but
// keeps only a k-sized window so a row is scanned once.
func nearestNeighbors(row []float64, self, k int) []int {
	if k <= 0 {
		return nil
	}
	if limit := len(row) - 1; k > limit {
		k = limit
		if k <= 0 {
			return nil
		}
	}

	best := make([]int, 0, k+1)
	for col := range row {
		if col == self {
			continue
		}
		if len(best) == k && !ranksBefore(row, col, best[k-1]) {
			continue
		}
		i := sort.Search(len(best), func(i int) bool {
			return ranksBefore(row, col, best[i])
		})
		best = append(best, 0)
		copy(best[i+1:], best[i:])
		best[i] = col
		if len(best) > k {
			best = best[:k]
		}
	}
	return best
}
