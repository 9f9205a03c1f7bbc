// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package metadata fetches poster and synopsis data for movies from TMDB.
//
// Callers of FetchPoster and FetchDescription never see an error: any
// failure (exhausted retries, non-success status, open circuit) resolves to
// a placeholder so that one bad lookup degrades one card only. Details is
// the error-returning primitive behind both.
//
// Request pipeline for one logical lookup:
//
//	cache -> circuit breaker -> retry loop -> rate limiter -> HTTP GET
//
// Successful lookups are cached under "tmdb:movie:{id}", so poster and
// description for the same movie share a single upstream call when a cache
// backend is enabled.
package metadata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/marquee/internal/cache"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/retry"
)

// Placeholders returned when metadata cannot be obtained.
const (
	PlaceholderPosterURL   = "https://via.placeholder.com/500x750?text=No+Image"
	PlaceholderDescription = "No description available."
)

const (
	userAgent      = "Mozilla/5.0"
	cacheKeyPrefix = "tmdb:movie:"

	// maxBodySize caps how much of a response body is read.
	maxBodySize = 1 << 20
)

var (
	// ErrNotFound is returned when TMDB has no entry for the movie id.
	ErrNotFound = errors.New("movie not found")

	// ErrUpstream is returned for any other unsuccessful upstream status.
	ErrUpstream = errors.New("metadata upstream error")
)

// Details is the subset of a TMDB movie record used for display.
type Details struct {
	PosterPath string `json:"poster_path"`
	Overview   string `json:"overview"`
}

// Client is a TMDB movie metadata client. It is safe for concurrent use.
type Client struct {
	baseURL      string
	imageBaseURL string
	posterSize   string
	apiKey       string
	language     string

	http    *http.Client
	policy  retry.Policy
	limiter *rate.Limiter
	breaker *breaker
	cache   cache.Store
	logger  zerolog.Logger
}

// NewClient creates a Client. A nil store disables caching.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewClient(cfg *config.MetadataConfig, store cache.Store, logger zerolog.Logger) *Client {
	if store == nil {
		store = cache.Noop{}
	}

	c := &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		imageBaseURL: strings.TrimRight(cfg.ImageBaseURL, "/"),
		posterSize:   strings.Trim(cfg.PosterSize, "/"),
		apiKey:       cfg.APIKey,
		language:     cfg.Language,
		http:         &http.Client{},
		policy: retry.Policy{
			Attempts:       cfg.MaxAttempts,
			AttemptTimeout: cfg.AttemptTimeout,
			Delay:          cfg.RetryDelay,
		},
		cache:  store,
		logger: logger.With().Str("component", "metadata").Logger(),
	}

	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	}
	if cfg.CircuitBreakerEnabled {
		c.breaker = newBreaker(cfg.CircuitBreakerThreshold, cfg.CircuitBreakerTimeout)
	}

	return c
}

// FetchPoster returns the full poster URL for movieID, or
// PlaceholderPosterURL when it cannot be determined.
func (c *Client) FetchPoster(ctx context.Context, movieID int) string {
	d, err := c.Details(ctx, movieID)
	if err != nil {
		c.logFailure(ctx, movieID, "poster", err)
		return PlaceholderPosterURL
	}
	return c.PosterURL(d.PosterPath)
}

// FetchDescription returns the overview for movieID, or
// PlaceholderDescription when it cannot be determined.
func (c *Client) FetchDescription(ctx context.Context, movieID int) string {
	d, err := c.Details(ctx, movieID)
	if err != nil {
		c.logFailure(ctx, movieID, "description", err)
		return PlaceholderDescription
	}
	if strings.TrimSpace(d.Overview) == "" {
		return PlaceholderDescription
	}
	return d.Overview
}

// PosterURL joins a TMDB poster path onto the image host and size segment.
// An empty path yields PlaceholderPosterURL.
func (c *Client) PosterURL(posterPath string) string {
	p := strings.TrimLeft(strings.TrimSpace(posterPath), "/")
	if p == "" {
		return PlaceholderPosterURL
	}
	return c.imageBaseURL + "/" + c.posterSize + "/" + p
}

// Details looks up movieID, consulting the cache first.
func (c *Client) Details(ctx context.Context, movieID int) (*Details, error) {
	start := time.Now()
	key := cacheKey(movieID)

	if d, ok := c.cached(ctx, key); ok {
		metrics.RecordMetadataFetch("cache_hit", time.Since(start))
		return d, nil
	}

	var (
		d   *Details
		err error
	)
	if c.breaker != nil {
		d, err = c.breaker.execute(func() (*Details, error) {
			return c.fetch(ctx, movieID)
		})
	} else {
		d, err = c.fetch(ctx, movieID)
	}
	if err != nil {
		metrics.RecordMetadataFetch(failureOutcome(err), time.Since(start))
		return nil, err
	}

	c.store(ctx, key, d)
	metrics.RecordMetadataFetch("success", time.Since(start))
	return d, nil
}

// BreakerState reports the circuit breaker state, or "disabled".
func (c *Client) BreakerState() string {
	if c.breaker == nil {
		return "disabled"
	}
	return c.breaker.State()
}

// fetch performs the retried upstream lookup.
func (c *Client) fetch(ctx context.Context, movieID int) (*Details, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	reqURL := fmt.Sprintf("%s/movie/%d?%s", c.baseURL, movieID, params.Encode())

	policy := c.policy
	policy.OnRetry = func(attempt int, err error, wait time.Duration) {
		c.logger.Warn().
			Str("request_id", logging.RequestIDFromContext(ctx)).
			Int("movie_id", movieID).
			Int("attempt", attempt).
			Int("max_attempts", policy.Attempts).
			Dur("wait", wait).
			Err(err).
			Msg("Retrying metadata fetch")
	}

	return retry.Do(ctx, policy, func(attemptCtx context.Context) (*Details, error) {
		return c.attempt(attemptCtx, reqURL)
	})
}

// attempt performs one HTTP request. Errors wrapped with retry.Permanent
// end the retry loop.
func (c *Client) attempt(ctx context.Context, reqURL string) (*Details, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, retry.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordMetadataAttempt("transport_error")
		return nil, fmt.Errorf("metadata request: %w", redactURL(err))
	}
	defer resp.Body.Close()

	metrics.RecordMetadataAttempt(strconv.Itoa(resp.StatusCode))

	switch {
	case resp.StatusCode == http.StatusOK:
		var d Details
		if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&d); err != nil {
			return nil, fmt.Errorf("decode metadata response: %w", err)
		}
		return &d, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, retry.Permanent(ErrNotFound)
	case retryableStatus(resp.StatusCode):
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	default:
		return nil, retry.Permanent(fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode))
	}
}

func (c *Client) cached(ctx context.Context, key string) (*Details, bool) {
	raw, found, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Debug().Err(err).Str("key", key).Msg("Metadata cache read failed")
		return nil, false
	}
	if !found {
		return nil, false
	}

	var d Details
	if err := json.Unmarshal(raw, &d); err != nil {
		c.logger.Debug().Err(err).Str("key", key).Msg("Discarding unreadable cache entry")
		return nil, false
	}
	return &d, true
}

func (c *Client) store(ctx context.Context, key string, d *Details) {
	raw, err := json.Marshal(d)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, raw, 0); err != nil {
		c.logger.Debug().Err(err).Str("key", key).Msg("Metadata cache write failed")
	}
}

func (c *Client) logFailure(ctx context.Context, movieID int, field string, err error) {
	var event *zerolog.Event
	switch {
	case errors.Is(err, ErrNotFound), isRejected(err):
		event = c.logger.Debug()
	default:
		event = c.logger.Warn()
	}
	event.
		Str("request_id", logging.RequestIDFromContext(ctx)).
		Int("movie_id", movieID).
		Str("field", field).
		Err(err).
		Msg("Metadata unavailable, using placeholder")
}

func cacheKey(movieID int) string {
	return cacheKeyPrefix + strconv.Itoa(movieID)
}

// retryableStatus reports whether an HTTP status is worth retrying.
func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func failureOutcome(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case isRejected(err):
		return "rejected"
	default:
		return "error"
	}
}

// redactURL strips the request URL, which carries the API key, from
// transport errors.
func redactURL(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%s: %w", uerr.Op, uerr.Err)
	}
	return err
}
