// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/marquee/config.yaml",
	"/etc/marquee/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotEnvPathEnvVar overrides the location of the optional .env file.
const DotEnvPathEnvVar = "DOTENV_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8501,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Catalog: CatalogConfig{
			Source:                    CatalogSourceFile,
			Dir:                       "data",
			MoviesFile:                "movies.json",
			SimilarityFile:            "similarity.bin",
			ArchiveURL:                "",
			DownloadTimeout:           10 * time.Minute,
			MongoURI:                  "",
			MongoDatabase:             "marquee",
			MongoMoviesCollection:     "movies",
			MongoSimilarityCollection: "similarity",
			MongoTimeout:              30 * time.Second,
		},
		Recommend: RecommendConfig{
			TitleNeighbors:   5,
			KeywordMatches:   3,
			KeywordNeighbors: 3,
			MaxResults:       10,
			MaxQueryLength:   200,
		},
		Metadata: MetadataConfig{
			APIKey:                  "",
			BaseURL:                 "https://api.themoviedb.org/3",
			ImageBaseURL:            "https://image.tmdb.org/t/p",
			PosterSize:              "w500",
			Language:                "en-US",
			MaxAttempts:             3,
			AttemptTimeout:          5 * time.Second,
			RetryDelay:              200 * time.Millisecond,
			RateLimit:               40,
			RateBurst:               10,
			CircuitBreakerEnabled:   true,
			CircuitBreakerThreshold: 5,
			CircuitBreakerTimeout:   30 * time.Second,
		},
		Cache: CacheConfig{
			Backend:          CacheBackendMemory,
			TTL:              24 * time.Hour,
			Capacity:         4096,
			BadgerPath:       "data/metadata-cache",
			BadgerGCInterval: 10 * time.Minute,
			RedisAddr:        "localhost:6379",
			RedisPassword:    "",
			RedisDB:          0,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: built-in defaults
//  2. .env file merged into the environment (existing variables win)
//  3. Config File: optional YAML config file (if exists)
//  4. Environment Variables: override any setting
func LoadWithKoanf() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// TMDB_API_KEY -> metadata.api_key, HTTP_PORT -> server.port
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadDotEnv merges an optional dotenv file into the process environment.
// Variables that are already set are left untouched.
func loadDotEnv() error {
	path := os.Getenv(DotEnvPathEnvVar)
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",

	// Catalog artifacts
	"catalog_source":                    "catalog.source",
	"catalog_dir":                       "catalog.dir",
	"catalog_movies_file":               "catalog.movies_file",
	"catalog_similarity_file":           "catalog.similarity_file",
	"catalog_archive_url":               "catalog.archive_url",
	"catalog_download_timeout":          "catalog.download_timeout",
	"mongo_uri":                         "catalog.mongo_uri",
	"mongo_database":                    "catalog.mongo_database",
	"mongo_movies_collection":           "catalog.mongo_movies_collection",
	"mongo_similarity_collection":       "catalog.mongo_similarity_collection",
	"mongo_timeout":                     "catalog.mongo_timeout",
	"recommend_title_neighbors":         "recommend.title_neighbors",
	"recommend_keyword_matches":         "recommend.keyword_matches",
	"recommend_keyword_neighbors":       "recommend.keyword_neighbors",
	"recommend_max_results":             "recommend.max_results",
	"recommend_max_query_length":        "recommend.max_query_length",
	"tmdb_api_key":                      "metadata.api_key",
	"tmdb_base_url":                     "metadata.base_url",
	"tmdb_image_base_url":               "metadata.image_base_url",
	"tmdb_poster_size":                  "metadata.poster_size",
	"tmdb_language":                     "metadata.language",
	"tmdb_max_attempts":                 "metadata.max_attempts",
	"tmdb_attempt_timeout":              "metadata.attempt_timeout",
	"tmdb_retry_delay":                  "metadata.retry_delay",
	"tmdb_rate_limit":                   "metadata.rate_limit",
	"tmdb_rate_burst":                   "metadata.rate_burst",
	"tmdb_circuit_breaker_enabled":      "metadata.circuit_breaker_enabled",
	"tmdb_circuit_breaker_threshold":    "metadata.circuit_breaker_threshold",
	"tmdb_circuit_breaker_timeout":      "metadata.circuit_breaker_timeout",
	"metadata_cache_backend":            "cache.backend",
	"metadata_cache_ttl":                "cache.ttl",
	"metadata_cache_capacity":           "cache.capacity",
	"metadata_cache_badger_path":        "cache.badger_path",
	"metadata_cache_badger_gc_interval": "cache.badger_gc_interval",
	"redis_addr":                        "cache.redis_addr",
	"redis_password":                    "cache.redis_password",
	"redis_db":                          "cache.redis_db",
	"rate_limit_requests":               "security.rate_limit_reqs",
	"rate_limit_window":                 "security.rate_limit_window",
	"disable_rate_limit":                "security.rate_limit_disabled",
	"cors_origins":                      "security.cors_origins",
	"log_level":                         "logging.level",
	"log_format":                        "logging.format",
	"log_caller":                        "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped variables return an empty key and are skipped, so unrelated
// environment variables never pollute the configuration.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
