// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

// orderedSet is an insertion-ordered set of positions. Re-adding a member
// keeps its original place.
type orderedSet struct {
	order []int
	seen  map[int]struct{}
}

func newOrderedSet(capacity int) *orderedSet {
	return &orderedSet{
		order: make([]int, 0, capacity),
		seen:  make(map[int]struct{}, capacity),
	}
}

// add inserts pos and reports whether it was new.
func (s *orderedSet) add(pos int) bool {
	if _, ok := s.seen[pos]; ok {
		return false
	}
	s.seen[pos] = struct{}{}
	s.order = append(s.order, pos)
	return true
}

func (s *orderedSet) len() int {
	return len(s.order)
}

// firstN returns the first n members in insertion order.
func (s *orderedSet) firstN(n int) []int {
	if n > len(s.order) {
		n = len(s.order)
	}
	out := make([]int, n)
	copy(out, s.order[:n])
	return out
}
