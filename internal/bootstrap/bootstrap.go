// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package bootstrap wires the catalog, cache, metadata client and
// recommendation service from configuration. The server and the CLI start
// the same way through Build.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/cache"
	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/metadata"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/recommend"
)

// Components holds the wired runtime objects.
type Components struct {
	Catalog  *catalog.Catalog
	Cache    cache.Store
	Metadata *metadata.Client
	Service  *recommend.Service
}

// Build loads the catalog and wires everything that depends on it. The
// caller must Close the result.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Build(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Components, error) {
	cat, err := LoadCatalog(ctx, &cfg.Catalog, logger)
	if err != nil {
		return nil, err
	}

	selector, err := recommend.NewSelector(cat, RecommendConfig(cfg.Recommend))
	if err != nil {
		return nil, fmt.Errorf("recommend config: %w", err)
	}

	store, err := cache.Open(ctx, cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("open %s cache: %w", cfg.Cache.Backend, err)
	}

	if cfg.Metadata.APIKey == "" {
		logger.Warn().Msg("TMDB_API_KEY is not set; cards will show placeholders")
	}
	client := metadata.NewClient(&cfg.Metadata, store, logger)

	return &Components{
		Catalog:  cat,
		Cache:    store,
		Metadata: client,
		Service:  recommend.NewService(selector, client, logger),
	}, nil
}

// Close releases the cache backend.
func (c *Components) Close() error {
	if c.Cache == nil {
		return nil
	}
	return c.Cache.Close()
}

// RecommendConfig maps the recommend settings onto selector limits.
func RecommendConfig(cfg config.RecommendConfig) recommend.Config {
	return recommend.Config{
		TitleNeighbors:   cfg.TitleNeighbors,
		KeywordMatches:   cfg.KeywordMatches,
		KeywordNeighbors: cfg.KeywordNeighbors,
		MaxResults:       cfg.MaxResults,
	}
}

// LoadCatalog loads the catalog from the configured source and records its
// size. The file source downloads missing artifacts first when an archive
// URL is configured.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func LoadCatalog(ctx context.Context, cfg *config.CatalogConfig, logger zerolog.Logger) (*catalog.Catalog, error) {
	start := time.Now()

	var (
		cat *catalog.Catalog
		err error
	)
	switch cfg.Source {
	case config.CatalogSourceFile, "":
		cat, err = loadFromFiles(ctx, cfg, logger)
	case config.CatalogSourceMongo:
		cat, err = loadFromMongo(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
	}
	if err != nil {
		return nil, err
	}

	duration := time.Since(start)
	metrics.RecordCatalogLoad(cat.Len(), duration)
	logger.Info().
		Str("source", sourceName(cfg.Source)).
		Int("movies", cat.Len()).
		Dur("duration", duration).
		Msg("Catalog loaded")
	return cat, nil
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func loadFromFiles(ctx context.Context, cfg *config.CatalogConfig, logger zerolog.Logger) (*catalog.Catalog, error) {
	_, err := catalog.EnsureArtifacts(ctx, catalog.FetchConfig{
		Dir:        cfg.Dir,
		Files:      []string{cfg.MoviesFile, cfg.SimilarityFile},
		ArchiveURL: cfg.ArchiveURL,
		Timeout:    cfg.DownloadTimeout,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("catalog artifacts: %w", err)
	}

	src := catalog.FileSource{MoviesPath: cfg.MoviesPath(), SimilarityPath: cfg.SimilarityPath()}
	cat, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}

func loadFromMongo(ctx context.Context, cfg *config.CatalogConfig) (cat *catalog.Catalog, err error) {
	if cfg.MongoTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.MongoTimeout)
		defer cancel()
	}

	src, err := catalog.ConnectMongo(ctx, MongoConfig(cfg))
	if err != nil {
		return nil, err
	}
	defer func() {
		err = errors.Join(err, src.Close(context.WithoutCancel(ctx)))
	}()

	cat, err = src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog from mongo: %w", err)
	}
	return cat, nil
}

// MongoConfig maps the catalog settings onto a Mongo source config.
func MongoConfig(cfg *config.CatalogConfig) catalog.MongoConfig {
	return catalog.MongoConfig{
		URI:                  cfg.MongoURI,
		Database:             cfg.MongoDatabase,
		MoviesCollection:     cfg.MongoMoviesCollection,
		SimilarityCollection: cfg.MongoSimilarityCollection,
	}
}

func sourceName(source string) string {
	if source == "" {
		return config.CatalogSourceFile
	}
	return source
}
