// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package services provides suture.Service wrappers for Marquee components.

Each wrapper translates a component's lifecycle into suture's context-aware
Serve pattern and implements fmt.Stringer so suture can name it in logs.

HTTP Server (HTTPServerService):
  - Wraps *http.Server; ListenAndServe runs until the context is canceled
  - Shutdown drains connections within a configurable timeout

Cache Maintenance (CacheMaintenanceService):
  - Runs cache housekeeping on a ticker: value-log GC for badger, expired
    entry cleanup for the in-memory LRU
  - Failures are logged and retried on the next tick
*/
package services
