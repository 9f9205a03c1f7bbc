// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/tomtom215/marquee/internal/cache"
	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/recommend"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// defaultMaxQueryLength applies when Dependencies.MaxQueryLength is unset.
const defaultMaxQueryLength = 200

// Recommender turns a query into display cards.
type Recommender interface {
	Recommend(ctx context.Context, query string) *recommend.Response
	Card(ctx context.Context, pos int) (recommend.Card, bool)
}

// BreakerReporter exposes the metadata circuit breaker state.
type BreakerReporter interface {
	BreakerState() string
}

// Dependencies holds everything the handlers need.
type Dependencies struct {
	Recommender Recommender
	Catalog     *catalog.Catalog

	// Cache and Metadata feed the readiness probe. Both are optional.
	Cache    cache.Store
	Metadata BreakerReporter

	MaxQueryLength int
}

// Handler handles all HTTP requests.
type Handler struct {
	recommender Recommender
	catalog     *catalog.Catalog
	cache       cache.Store
	metadata    BreakerReporter

	queryRule string
	page      *template.Template
	startTime time.Time

	// hostStats is replaceable in tests.
	hostStats func(ctx context.Context) *HostStats
}

// NewHandler creates a new handler.
func NewHandler(deps Dependencies) (*Handler, error) {
	if deps.Recommender == nil {
		return nil, fmt.Errorf("recommender is required")
	}
	if deps.Catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}

	page, err := template.ParseFS(templateFS, "templates/index.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}

	maxLen := deps.MaxQueryLength
	if maxLen <= 0 {
		maxLen = defaultMaxQueryLength
	}

	return &Handler{
		recommender: deps.Recommender,
		catalog:     deps.Catalog,
		cache:       deps.Cache,
		metadata:    deps.Metadata,
		queryRule:   fmt.Sprintf("notblank,max=%d", maxLen),
		page:        page,
		startTime:   time.Now(),
		hostStats:   collectHostStats,
	}, nil
}
