// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import "fmt"

// Config holds the selection limits.
type Config struct {
	// TitleNeighbors is the number of neighbours added after an exact title match.
	TitleNeighbors int `json:"title_neighbors"`

	// KeywordMatches is the maximum number of tag matches used on the keyword path.
	KeywordMatches int `json:"keyword_matches"`

	// KeywordNeighbors is the number of neighbours added after each tag match.
	KeywordNeighbors int `json:"keyword_neighbors"`

	// MaxResults caps the number of selected positions.
	MaxResults int `json:"max_results"`
}

// DefaultConfig returns the standard limits: 5 title neighbours, 3 keyword
// matches with 3 neighbours each, at most 10 results.
func DefaultConfig() Config {
	return Config{
		TitleNeighbors:   5,
		KeywordMatches:   3,
		KeywordNeighbors: 3,
		MaxResults:       10,
	}
}

// Validate checks the limits.
func (c Config) Validate() error {
	if c.TitleNeighbors < 0 {
		return fmt.Errorf("title_neighbors must be non-negative, got %d", c.TitleNeighbors)
	}
	if c.KeywordMatches < 0 {
		return fmt.Errorf("keyword_matches must be non-negative, got %d", c.KeywordMatches)
	}
	if c.KeywordNeighbors < 0 {
		return fmt.Errorf("keyword_neighbors must be non-negative, got %d", c.KeywordNeighbors)
	}
	if c.MaxResults < 1 {
		return fmt.Errorf("max_results must be positive, got %d", c.MaxResults)
	}
	return nil
}
