// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package api provides Marquee's HTTP surface using the chi router.

Routes:

	GET /                               single page: search form and card grid
	GET /api/v1/recommendations?q=...   recommendations as JSON
	GET /api/v1/movies/{position}       one catalog entry
	GET /api/v1/health/live             liveness probe
	GET /api/v1/health/ready            readiness probe
	GET /metrics                        Prometheus metrics

JSON endpoints share one envelope:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "..."}}
	{"success": false, "error": {"code": "VALIDATION_ERROR", "message": "..."}, "meta": {...}}

Handlers are split by concern:
  - handlers.go: Handler struct and constructor
  - handlers_recommend.go: recommendation and movie lookup endpoints
  - handlers_health.go: liveness and readiness probes
  - handlers_page.go: server-rendered page
*/
package api
