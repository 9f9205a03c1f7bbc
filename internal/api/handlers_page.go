// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/validation"
)

// Messages shown on the page instead of a grid.
const (
	MessageEmptyQuery = "Please enter a movie name or genre."
	MessageNoResults  = "No recommendations found for that input."
)

type pageData struct {
	Query   string
	Message string
	Rows    [][]recommend.Card
	Matched int
}

// Page handles GET /. Without a q parameter it renders the bare form; with
// one it renders the recommendation grid or a message.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	data := pageData{}

	if r.URL.Query().Has("q") {
		data.Query = r.URL.Query().Get("q")

		switch verr := validation.ValidateVar("q", data.Query, h.queryRule); {
		case strings.TrimSpace(data.Query) == "":
			data.Message = MessageEmptyQuery
		case verr != nil:
			data.Message = verr.ToAPIError().Message
		default:
			resp := h.recommender.Recommend(r.Context(), data.Query)
			if len(resp.Cards) == 0 {
				data.Message = MessageNoResults
			} else {
				data.Rows = resp.Rows(recommend.CardsPerRow)
				data.Matched = resp.Matched
			}
		}
	}

	var buf bytes.Buffer
	if err := h.page.Execute(&buf, data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to render page")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
