// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

// MatchPath identifies which branch of the selection rule produced a result.
type MatchPath int

const (
	// PathNone means the query matched no title and no tag.
	PathNone MatchPath = iota
	// PathTitle means the query equalled a movie title.
	PathTitle
	// PathKeyword means the query was found in tag text.
	PathKeyword
)

// String returns the lower-case name used in logs, metrics and JSON.
func (p MatchPath) String() string {
	switch p {
	case PathTitle:
		return "title"
	case PathKeyword:
		return "keyword"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p MatchPath) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Result is the outcome of a selection: catalog positions in display order.
type Result struct {
	// Query is the normalised (trimmed, lower-cased) query.
	Query string

	Path MatchPath

	// Matched is the number of movies that matched the query directly: 1 on
	// the title path, the total tag match count on the keyword path.
	Matched int

	Positions []int
}

// Empty reports whether nothing was selected.
func (r Result) Empty() bool {
	return len(r.Positions) == 0
}

// Recommendation is a selected position resolved against the catalog.
type Recommendation struct {
	Position int    `json:"position"`
	MovieID  int    `json:"movie_id"`
	Title    string `json:"title"`
}

// Card is a recommendation enriched with display metadata.
type Card struct {
	Position    int    `json:"position"`
	MovieID     int    `json:"movie_id"`
	Title       string `json:"title"`
	PosterURL   string `json:"poster_url"`
	Description string `json:"description"`
}

// CardsPerRow is the number of cards shown side by side.
const CardsPerRow = 5

// Response is what a caller renders.
type Response struct {
	Query   string    `json:"query"`
	Path    MatchPath `json:"path"`
	Matched int       `json:"matched"`
	Cards   []Card    `json:"items"`
}

// Columns returns the titles, posters and descriptions as three parallel
// collections of equal length.
func (r *Response) Columns() (titles, posters, descriptions []string) {
	titles = make([]string, len(r.Cards))
	posters = make([]string, len(r.Cards))
	descriptions = make([]string, len(r.Cards))
	for i, c := range r.Cards {
		titles[i] = c.Title
		posters[i] = c.PosterURL
		descriptions[i] = c.Description
	}
	return titles, posters, descriptions
}

// Rows splits the cards into consecutive rows of at most perRow cards, the
// layout used by both the page and the terminal renderer.
func (r *Response) Rows(perRow int) [][]Card {
	if perRow < 1 || len(r.Cards) == 0 {
		return nil
	}
	rows := make([][]Card, 0, (len(r.Cards)+perRow-1)/perRow)
	for start := 0; start < len(r.Cards); start += perRow {
		end := min(start+perRow, len(r.Cards))
		rows = append(rows, r.Cards[start:end])
	}
	return rows
}
