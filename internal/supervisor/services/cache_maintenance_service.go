// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

const defaultMaintenanceInterval = 10 * time.Minute

// CacheMaintainer performs one round of cache housekeeping.
type CacheMaintainer interface {
	Maintain() error
}

// CacheMaintenanceService runs cache housekeeping on a fixed interval.
type CacheMaintenanceService struct {
	cache    CacheMaintainer
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewCacheMaintenanceService creates the service. Non-positive interval
// means 10 minutes.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCacheMaintenanceService(cache CacheMaintainer, interval time.Duration, logger zerolog.Logger) *CacheMaintenanceService {
	if interval <= 0 {
		interval = defaultMaintenanceInterval
	}
	return &CacheMaintenanceService{
		cache:    cache,
		interval: interval,
		logger:   logger.With().Str("service", "cache-maintenance").Logger(),
		name:     "cache-maintenance",
	}
}

// Serve implements suture.Service. Housekeeping failures are logged and
// retried on the next tick rather than restarting the service.
func (s *CacheMaintenanceService) Serve(ctx context.Context) error {
	s.logger.Debug().Dur("interval", s.interval).Msg("cache maintenance starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			start := time.Now()
			if err := s.cache.Maintain(); err != nil {
				s.logger.Warn().Err(err).Msg("cache maintenance failed")
				continue
			}
			s.logger.Debug().Dur("duration", time.Since(start)).Msg("cache maintenance complete")
		}
	}
}

func (s *CacheMaintenanceService) String() string {
	return s.name
}
