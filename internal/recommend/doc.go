// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package recommend selects similar movies for a free-text query.
//
// # Selection Rule
//
// The Selector works over a read-only catalog.Catalog:
//
//  1. The query is lower-cased. A blank query selects nothing.
//  2. Exact-title path: if a movie's title equals the query, that movie is
//     added first, followed by its TitleNeighbors nearest neighbours.
//  3. Keyword path (only without a title match): movies whose tag text
//     contains the query. The first KeywordMatches of them in table order
//     are added, each followed by its KeywordNeighbors nearest neighbours.
//  4. Positions accumulate in insertion order with duplicates dropped, and
//     the first MaxResults are kept.
//
// Nearest neighbours are the other positions of a similarity row ordered by
// score descending, ties broken by ascending position, NaN scores last. A
// movie is never its own neighbour.
//
// # Service
//
// Service pairs the Selector with a MetadataFetcher to produce display
// cards. Metadata failures degrade a single card to placeholder values and
// never fail the request.
//
// # Thread Safety
//
// Selector and Service hold no mutable state and are safe for concurrent use.
package recommend
