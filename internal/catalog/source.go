// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"fmt"
)

// Source loads a Catalog.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
	Name() string
}

// FileSource loads the catalog from the two artifact files.
type FileSource struct {
	MoviesPath     string
	SimilarityPath string
}

// Name implements Source.
func (s FileSource) Name() string {
	return "file"
}

// Load implements Source.
func (s FileSource) Load(ctx context.Context) (*Catalog, error) {
	movies, err := LoadMoviesFile(s.MoviesPath)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sim, err := LoadSimilarityFile(s.SimilarityPath)
	if err != nil {
		return nil, err
	}

	cat, err := New(movies, sim)
	if err != nil {
		return nil, fmt.Errorf("%s + %s: %w", s.MoviesPath, s.SimilarityPath, err)
	}
	return cat, nil
}
