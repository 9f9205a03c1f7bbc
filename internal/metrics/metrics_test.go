// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func histogramSnapshot(t *testing.T, h prometheus.Histogram) (uint64, float64) {
	t.Helper()
	var m dto.Metric
	if err := h.Write(&m); err != nil {
		t.Fatalf("write histogram: %v", err)
	}
	return m.GetHistogram().GetSampleCount(), m.GetHistogram().GetSampleSum()
}

func TestRecordRecommendationHistograms(t *testing.T) {
	beforeCount, beforeSum := histogramSnapshot(t, RecommendResults)
	beforeRequests := testutil.ToFloat64(RecommendRequests.WithLabelValues("keyword"))

	RecordRecommendation("keyword", 7, 20*time.Millisecond)

	count, sum := histogramSnapshot(t, RecommendResults)
	if count != beforeCount+1 {
		t.Errorf("recommend_results count = %d, want %d", count, beforeCount+1)
	}
	if sum != beforeSum+7 {
		t.Errorf("recommend_results sum = %v, want %v", sum, beforeSum+7)
	}
	if got := testutil.ToFloat64(RecommendRequests.WithLabelValues("keyword")); got != beforeRequests+1 {
		t.Errorf("recommend_requests_total{path=keyword} = %v, want %v", got, beforeRequests+1)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/recommendations", "200"))

	RecordAPIRequest("GET", "/api/v1/recommendations", "200", 15*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/recommendations", "200"))
	if after != before+1 {
		t.Errorf("api_requests_total = %v, want %v", after, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("after inc: got %v, want %v", got, before+1)
	}

	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("after dec: got %v, want %v", got, before)
	}
}

func TestRecordCatalogLoad(t *testing.T) {
	RecordCatalogLoad(4806, 2*time.Second)

	if got := testutil.ToFloat64(CatalogMovies); got != 4806 {
		t.Errorf("catalog_movies = %v, want 4806", got)
	}
	if got := testutil.ToFloat64(CatalogLoadDuration); got != 2 {
		t.Errorf("catalog_load_duration_seconds = %v, want 2", got)
	}
}

func TestRecordRecommendation(t *testing.T) {
	tests := []struct {
		path    string
		results int
	}{
		{"title", 6},
		{"keyword", 10},
		{"none", 0},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			before := testutil.ToFloat64(RecommendRequests.WithLabelValues(tt.path))
			RecordRecommendation(tt.path, tt.results, time.Millisecond)
			if got := testutil.ToFloat64(RecommendRequests.WithLabelValues(tt.path)); got != before+1 {
				t.Errorf("recommend_requests_total{path=%q} = %v, want %v", tt.path, got, before+1)
			}
		})
	}
}

func TestRecordMetadata(t *testing.T) {
	beforeFetch := testutil.ToFloat64(MetadataFetches.WithLabelValues("error"))
	beforeAttempt := testutil.ToFloat64(MetadataAttempts.WithLabelValues("500"))

	RecordMetadataAttempt("500")
	RecordMetadataAttempt("500")
	RecordMetadataFetch("error", 30*time.Millisecond)

	if got := testutil.ToFloat64(MetadataAttempts.WithLabelValues("500")); got != beforeAttempt+2 {
		t.Errorf("metadata_http_attempts_total{status=500} = %v, want %v", got, beforeAttempt+2)
	}
	if got := testutil.ToFloat64(MetadataFetches.WithLabelValues("error")); got != beforeFetch+1 {
		t.Errorf("metadata_fetches_total{outcome=error} = %v, want %v", got, beforeFetch+1)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(CacheHits.WithLabelValues("memory"))
	misses := testutil.ToFloat64(CacheMisses.WithLabelValues("memory"))

	RecordCacheLookup("memory", true)
	RecordCacheLookup("memory", false)
	RecordCacheLookup("memory", false)

	if got := testutil.ToFloat64(CacheHits.WithLabelValues("memory")); got != hits+1 {
		t.Errorf("hits = %v, want %v", got, hits+1)
	}
	if got := testutil.ToFloat64(CacheMisses.WithLabelValues("memory")); got != misses+2 {
		t.Errorf("misses = %v, want %v", got, misses+2)
	}
}
