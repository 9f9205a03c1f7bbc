// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/validation"
)

// MovieResponse is a single catalog entry with its display metadata.
type MovieResponse struct {
	recommend.Card
	Tags string `json:"tags"`
}

// Recommendations handles GET /api/v1/recommendations?q=...
//
// A query that matches nothing is not an error: it returns 200 with an empty
// item list and path "none".
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	query := r.URL.Query().Get("q")

	if verr := validation.ValidateVar("q", query, h.queryRule); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	resp := h.recommender.Recommend(r.Context(), query)
	if resp.Cards == nil {
		resp.Cards = []recommend.Card{}
	}
	rw.Success(resp)
}

// Movie handles GET /api/v1/movies/{position}
func (h *Handler) Movie(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	pos, err := strconv.Atoi(chi.URLParam(r, "position"))
	if err != nil {
		rw.BadRequest("position must be an integer")
		return
	}

	card, ok := h.recommender.Card(r.Context(), pos)
	if !ok {
		logging.Ctx(r.Context()).Debug().Int("position", pos).Msg("Movie position out of range")
		rw.NotFound("No movie at position " + strconv.Itoa(pos))
		return
	}

	movie, _ := h.catalog.MovieAt(pos)
	rw.Success(MovieResponse{Card: card, Tags: movie.Tags})
}
