// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"time"
)

// Validate checks that the configuration is complete and within bounds.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateCatalog,
		c.validateRecommend,
		c.validateMetadata,
		c.validateCache,
		c.validateRateLimits,
		c.validateLogging,
	}

	for _, validator := range validators {
		if err := validator(); err != nil {
			return err
		}
	}
	return nil
}

// validateServer validates HTTP server settings
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

// validateCatalog validates the artifact source settings
func (c *Config) validateCatalog() error {
	switch c.Catalog.Source {
	case CatalogSourceFile:
		if c.Catalog.MoviesFile == "" || c.Catalog.SimilarityFile == "" {
			return fmt.Errorf("CATALOG_MOVIES_FILE and CATALOG_SIMILARITY_FILE are required when CATALOG_SOURCE=file")
		}
		if c.Catalog.ArchiveURL != "" {
			if err := validateHTTPURL(c.Catalog.ArchiveURL, "CATALOG_ARCHIVE_URL"); err != nil {
				return err
			}
		}
	case CatalogSourceMongo:
		if c.Catalog.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required when CATALOG_SOURCE=mongo")
		}
		if c.Catalog.MongoDatabase == "" {
			return fmt.Errorf("MONGO_DATABASE is required when CATALOG_SOURCE=mongo")
		}
	default:
		return fmt.Errorf("CATALOG_SOURCE must be one of: file, mongo")
	}
	return nil
}

// validateRecommend validates the selection limits
func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.TitleNeighbors < 0 || r.KeywordMatches < 0 || r.KeywordNeighbors < 0 {
		return fmt.Errorf("recommend neighbor and match counts must not be negative")
	}
	if r.MaxResults < 1 {
		return fmt.Errorf("RECOMMEND_MAX_RESULTS must be at least 1")
	}
	if r.MaxQueryLength < 1 {
		return fmt.Errorf("RECOMMEND_MAX_QUERY_LENGTH must be at least 1")
	}
	return nil
}

// validateMetadata validates the TMDB client settings
func (c *Config) validateMetadata() error {
	m := c.Metadata
	if err := validateBaseURL(m.BaseURL, "TMDB_BASE_URL"); err != nil {
		return err
	}
	if err := validateBaseURL(m.ImageBaseURL, "TMDB_IMAGE_BASE_URL"); err != nil {
		return err
	}
	if m.MaxAttempts < 1 || m.MaxAttempts > 10 {
		return fmt.Errorf("TMDB_MAX_ATTEMPTS must be between 1 and 10")
	}
	if m.AttemptTimeout < 100*time.Millisecond || m.AttemptTimeout > time.Minute {
		return fmt.Errorf("TMDB_ATTEMPT_TIMEOUT must be between 100ms and 1m")
	}
	if m.RetryDelay < 0 {
		return fmt.Errorf("TMDB_RETRY_DELAY must not be negative")
	}
	if m.RateLimit < 0 {
		return fmt.Errorf("TMDB_RATE_LIMIT must not be negative")
	}
	if m.RateLimit > 0 && m.RateBurst < 1 {
		return fmt.Errorf("TMDB_RATE_BURST must be at least 1 when rate limiting is enabled")
	}
	if m.CircuitBreakerEnabled && m.CircuitBreakerThreshold == 0 {
		return fmt.Errorf("TMDB_CIRCUIT_BREAKER_THRESHOLD must be at least 1")
	}
	return nil
}

// validateCache validates the metadata cache backend
func (c *Config) validateCache() error {
	switch c.Cache.Backend {
	case CacheBackendNone:
		return nil
	case CacheBackendMemory:
		if c.Cache.Capacity < 1 {
			return fmt.Errorf("METADATA_CACHE_CAPACITY must be at least 1")
		}
	case CacheBackendBadger:
		if c.Cache.BadgerPath == "" {
			return fmt.Errorf("METADATA_CACHE_BADGER_PATH is required when METADATA_CACHE_BACKEND=badger")
		}
	case CacheBackendRedis:
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required when METADATA_CACHE_BACKEND=redis")
		}
	default:
		return fmt.Errorf("METADATA_CACHE_BACKEND must be one of: memory, badger, redis, none")
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("METADATA_CACHE_TTL must be positive")
	}
	return nil
}

// Rate limit bounds
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

// validateRateLimits validates rate limiting configuration bounds
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
