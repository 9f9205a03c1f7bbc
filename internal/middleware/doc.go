// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package middleware provides HTTP middleware components for the Marquee server.

All middleware uses the standard func(http.Handler) http.Handler shape so it
plugs directly into chi's r.Use().

Key Components:

  - RequestID: UUID-based request tracking, propagated into the logging context
  - PrometheusMetrics: request count, latency, and in-flight instrumentation
  - AccessLog: one structured zerolog line per request

Middleware Stack:

	r.Use(middleware.RequestID)         // Layer 1: request tracking
	r.Use(chimiddleware.RealIP)         // Layer 2: client address
	r.Use(middleware.AccessLog)         // Layer 3: access log
	r.Use(chimiddleware.Recoverer)      // Layer 4: panic recovery
	r.Use(middleware.PrometheusMetrics) // Layer 5: metrics

Metric labels use the matched chi route pattern (for example
"/api/v1/movies/{position}") rather than the raw path, which keeps label
cardinality bounded.
*/
package middleware
