// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func TestPage(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, Dependencies{MaxQueryLength: 20}, nil)

	tests := []struct {
		name        string
		target      string
		wantRows    int
		wantCards   int
		wantMessage string
		wantText    []string
	}{
		{
			name:     "bare form",
			target:   "/",
			wantText: []string{`name="q"`, "Show Recommendation"},
		},
		{
			name:        "empty query",
			target:      "/?q=",
			wantMessage: MessageEmptyQuery,
		},
		{
			name:        "blank query",
			target:      "/?q=+++",
			wantMessage: MessageEmptyQuery,
		},
		{
			name:        "no match",
			target:      "/?q=xyz123",
			wantMessage: MessageNoResults,
			wantText:    []string{`value="xyz123"`},
		},
		{
			name:        "oversized query",
			target:      "/?q=" + strings.Repeat("a", 21),
			wantMessage: "q",
		},
		{
			name:      "title match wraps after five cards",
			target:    "/?q=Inception",
			wantRows:  2,
			wantCards: 6,
			wantText:  []string{"Inception", "https://image.tmdb.org/t/p/w500/102.jpg", "Overview of 102"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(router, tt.target)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
				t.Errorf("Content-Type = %q", ct)
			}
			if rec.Header().Get("Content-Security-Policy") == "" {
				t.Error("page should carry a content security policy")
			}

			body := rec.Body.String()
			if got := strings.Count(body, `<div class="row">`); got != tt.wantRows {
				t.Errorf("rows = %d, want %d", got, tt.wantRows)
			}
			if got := strings.Count(body, `<div class="card">`); got != tt.wantCards {
				t.Errorf("cards = %d, want %d", got, tt.wantCards)
			}
			hasMessage := strings.Contains(body, `class="message"`)
			if hasMessage != (tt.wantMessage != "") {
				t.Errorf("message shown = %v, want %v", hasMessage, tt.wantMessage != "")
			}
			if tt.wantMessage != "" && !strings.Contains(body, tt.wantMessage) {
				t.Errorf("body missing message %q", tt.wantMessage)
			}
			for _, s := range tt.wantText {
				if !strings.Contains(body, s) {
					t.Errorf("body missing %q", s)
				}
			}
		})
	}
}

func TestPage_EscapesQuery(t *testing.T) {
	t.Parallel()

	rec := serve(newTestRouter(t, Dependencies{}, nil), "/?q="+url.QueryEscape(`<script>alert(1)</script>`))
	body := rec.Body.String()
	if strings.Contains(body, "<script>alert(1)</script>") {
		t.Error("query was rendered unescaped")
	}
	if !strings.Contains(body, MessageNoResults) {
		t.Errorf("body missing %q", MessageNoResults)
	}
}
