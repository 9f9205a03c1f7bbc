// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/tomtom215/marquee/internal/logging"
)

const (
	cacheProbeTimeout = 2 * time.Second
	hostProbeTimeout  = time.Second
)

// Readiness states.
const (
	StatusReady    = "ready"
	StatusDegraded = "degraded"
	StatusNotReady = "not_ready"
)

// HostStats is a snapshot of host resource usage.
type HostStats struct {
	MemoryTotalBytes  uint64  `json:"memory_total_bytes,omitempty"`
	MemoryUsedPercent float64 `json:"memory_used_percent,omitempty"`
	CPUPercent        float64 `json:"cpu_percent,omitempty"`
	Goroutines        int     `json:"goroutines"`
}

// ReadinessStatus is the readiness probe body.
type ReadinessStatus struct {
	Status        string            `json:"status"`
	CatalogMovies int               `json:"catalog_movies"`
	Checks        map[string]string `json:"checks"`
	UptimeSeconds float64           `json:"uptime_seconds"`
	Host          *HostStats        `json:"host,omitempty"`
}

// Live handles GET /api/v1/health/live
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]string{"status": "alive"})
}

// Ready handles GET /api/v1/health/ready
//
// An empty catalog is not ready (503). A failing cache or an open metadata
// breaker only degrades the service: recommendations still render with
// placeholders, so the probe stays 200.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status := ReadinessStatus{
		Status:        StatusReady,
		CatalogMovies: h.catalog.Len(),
		Checks:        make(map[string]string, 3),
		UptimeSeconds: time.Since(h.startTime).Seconds(),
		Host:          h.hostStats(ctx),
	}

	if status.CatalogMovies == 0 {
		status.Checks["catalog"] = "empty"
		status.Status = StatusNotReady
	} else {
		status.Checks["catalog"] = "ok"
	}

	if h.cache != nil {
		pingCtx, cancel := context.WithTimeout(ctx, cacheProbeTimeout)
		err := h.cache.Ping(pingCtx)
		cancel()
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("backend", h.cache.Name()).Msg("Cache ping failed")
			status.Checks["cache"] = "error"
			status.degrade()
		} else {
			status.Checks["cache"] = "ok"
		}
	}

	if h.metadata != nil {
		state := h.metadata.BreakerState()
		status.Checks["metadata_breaker"] = state
		if state == "open" {
			status.degrade()
		}
	}

	code := http.StatusOK
	if status.Status == StatusNotReady {
		code = http.StatusServiceUnavailable
	}
	NewResponseWriter(w, r).WithStatus(code, status)
}

func (s *ReadinessStatus) degrade() {
	if s.Status == StatusReady {
		s.Status = StatusDegraded
	}
}

// collectHostStats samples memory and CPU usage. Sampling errors leave the
// corresponding fields zero.
func collectHostStats(ctx context.Context) *HostStats {
	ctx, cancel := context.WithTimeout(ctx, hostProbeTimeout)
	defer cancel()

	stats := &HostStats{Goroutines: runtime.NumGoroutine()}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		stats.MemoryTotalBytes = vm.Total
		stats.MemoryUsedPercent = vm.UsedPercent
	}

	// Interval 0 compares against the previous call, so this never blocks.
	if pct, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pct) > 0 {
		stats.CPUPercent = pct[0]
	}

	return stats
}
