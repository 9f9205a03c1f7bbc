// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package main is the entry point for the Marquee server.

Marquee answers "what should I watch next?": given a movie title or a keyword
it returns up to ten similar movies, each with a TMDB poster and synopsis,
as a web page and as JSON.

# Application Architecture

	RootSupervisor ("marquee")
	├── DataSupervisor ("data-layer")
	│   └── Cache maintenance (badger value-log GC, LRU expiry)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Startup order:

 1. Configuration: Koanf v2 (defaults, .env, config.yaml, environment)
 2. Logging: zerolog, JSON or console
 3. Catalog: movie table and similarity matrix from files (downloaded on
    first start when CATALOG_ARCHIVE_URL is set) or MongoDB
 4. Cache: memory, badger, redis or none
 5. Metadata: TMDB client with retry, rate limit and circuit breaker
 6. HTTP server under the supervisor tree

A catalog that cannot be loaded is fatal. Everything after it degrades: an
unreachable TMDB yields placeholder cards, not errors.

# Example Usage

	export TMDB_API_KEY=your-tmdb-key
	export CATALOG_ARCHIVE_URL=https://example.com/marquee-artifacts.zip
	./marquee-server

	curl 'http://localhost:8501/api/v1/recommendations?q=Inception'

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains in-flight
requests for SERVER_SHUTDOWN_TIMEOUT before the cache is closed.
*/
package main
