// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package config loads Marquee's configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in defaults for every setting
//  2. .env file: optional dotenv file merged into the process environment
//  3. Config File: optional YAML config file (config.yaml)
//  4. Environment Variables: override any setting
//
// Config is immutable after LoadWithKoanf() and safe for concurrent reads.
package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Recommend RecommendConfig `koanf:"recommend"`
	Metadata  MetadataConfig  `koanf:"metadata"`
	Cache     CacheConfig     `koanf:"cache"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Catalog source backends.
const (
	CatalogSourceFile  = "file"
	CatalogSourceMongo = "mongo"
)

// CatalogConfig describes where the movie table and similarity matrix come from.
type CatalogConfig struct {
	// Source selects the backend: "file" (default) or "mongo".
	Source string `koanf:"source"`

	// Dir is the directory holding the artifact files.
	Dir            string `koanf:"dir"`
	MoviesFile     string `koanf:"movies_file"`
	SimilarityFile string `koanf:"similarity_file"`

	// ArchiveURL is a zip archive containing both artifacts, downloaded into
	// Dir on first start when the files are absent. Empty disables download.
	ArchiveURL      string        `koanf:"archive_url"`
	DownloadTimeout time.Duration `koanf:"download_timeout"`

	MongoURI                  string        `koanf:"mongo_uri"`
	MongoDatabase             string        `koanf:"mongo_database"`
	MongoMoviesCollection     string        `koanf:"mongo_movies_collection"`
	MongoSimilarityCollection string        `koanf:"mongo_similarity_collection"`
	MongoTimeout              time.Duration `koanf:"mongo_timeout"`
}

// MoviesPath returns the full path of the movie table artifact.
func (c CatalogConfig) MoviesPath() string {
	return filepath.Join(c.Dir, c.MoviesFile)
}

// SimilarityPath returns the full path of the similarity matrix artifact.
func (c CatalogConfig) SimilarityPath() string {
	return filepath.Join(c.Dir, c.SimilarityFile)
}

// RecommendConfig holds the selection limits.
type RecommendConfig struct {
	TitleNeighbors   int `koanf:"title_neighbors"`
	KeywordMatches   int `koanf:"keyword_matches"`
	KeywordNeighbors int `koanf:"keyword_neighbors"`
	MaxResults       int `koanf:"max_results"`
	MaxQueryLength   int `koanf:"max_query_length"`
}

// MetadataConfig holds TMDB client settings.
type MetadataConfig struct {
	APIKey       string `koanf:"api_key"`
	BaseURL      string `koanf:"base_url"`
	ImageBaseURL string `koanf:"image_base_url"`
	PosterSize   string `koanf:"poster_size"`
	Language     string `koanf:"language"`

	MaxAttempts    int           `koanf:"max_attempts"`
	AttemptTimeout time.Duration `koanf:"attempt_timeout"`
	RetryDelay     time.Duration `koanf:"retry_delay"`

	// RateLimit is the sustained outbound request rate per second. 0 disables limiting.
	RateLimit float64 `koanf:"rate_limit"`
	RateBurst int     `koanf:"rate_burst"`

	CircuitBreakerEnabled   bool          `koanf:"circuit_breaker_enabled"`
	CircuitBreakerThreshold uint32        `koanf:"circuit_breaker_threshold"`
	CircuitBreakerTimeout   time.Duration `koanf:"circuit_breaker_timeout"`
}

// Cache backends.
const (
	CacheBackendMemory = "memory"
	CacheBackendBadger = "badger"
	CacheBackendRedis  = "redis"
	CacheBackendNone   = "none"
)

// CacheConfig holds metadata cache settings.
type CacheConfig struct {
	Backend  string        `koanf:"backend"`
	TTL      time.Duration `koanf:"ttl"`
	Capacity int           `koanf:"capacity"`

	BadgerPath       string        `koanf:"badger_path"`
	BadgerGCInterval time.Duration `koanf:"badger_gc_interval"`

	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}
