// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

// MetadataFetcher supplies display metadata for a movie. Implementations
// return a placeholder instead of failing.
type MetadataFetcher interface {
	FetchPoster(ctx context.Context, movieID int) string
	FetchDescription(ctx context.Context, movieID int) string
}

// Service turns a query into display cards.
type Service struct {
	selector *Selector
	metadata MetadataFetcher
	logger   zerolog.Logger
}

// NewService creates a Service.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewService(selector *Selector, metadata MetadataFetcher, logger zerolog.Logger) *Service {
	return &Service{
		selector: selector,
		metadata: metadata,
		logger:   logger.With().Str("component", "recommend").Logger(),
	}
}

// Selector returns the underlying selector.
func (s *Service) Selector() *Selector {
	return s.selector
}

// Recommend selects movies for query and fetches poster and description for
// each, one card at a time. It never returns an error: no match yields an
// empty Response, and metadata failures yield placeholder values.
func (s *Service) Recommend(ctx context.Context, query string) *Response {
	start := time.Now()

	result := s.selector.Select(query)
	recs := s.selector.Resolve(result)

	cards := make([]Card, 0, len(recs))
	for _, rec := range recs {
		cards = append(cards, s.enrich(ctx, rec))
	}

	duration := time.Since(start)
	metrics.RecordRecommendation(result.Path.String(), len(cards), duration)

	s.logger.Debug().
		Str("request_id", logging.RequestIDFromContext(ctx)).
		Str("query", result.Query).
		Stringer("path", result.Path).
		Int("matched", result.Matched).
		Int("results", len(cards)).
		Dur("duration", duration).
		Msg("Recommendations selected")

	return &Response{
		Query:   result.Query,
		Path:    result.Path,
		Matched: result.Matched,
		Cards:   cards,
	}
}

// Card resolves one catalog position into a display card. It reports false
// when pos is outside the catalog.
func (s *Service) Card(ctx context.Context, pos int) (Card, bool) {
	m, ok := s.selector.Catalog().MovieAt(pos)
	if !ok {
		return Card{}, false
	}
	return s.enrich(ctx, Recommendation{Position: pos, MovieID: m.ID, Title: m.Title}), true
}

func (s *Service) enrich(ctx context.Context, rec Recommendation) Card {
	return Card{
		Position:    rec.Position,
		MovieID:     rec.MovieID,
		Title:       rec.Title,
		PosterURL:   s.metadata.FetchPoster(ctx, rec.MovieID),
		Description: s.metadata.FetchDescription(ctx, rec.MovieID),
	}
}
