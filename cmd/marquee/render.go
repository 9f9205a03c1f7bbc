// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomtom215/marquee/internal/recommend"
)

const (
	defaultCardWidth = 28
	minCardWidth     = 12

	// maxDescriptionRunes clamps synopses the way the page clamps them with CSS.
	maxDescriptionRunes = 160

	noResultsMessage = "No recommendations found for that input."
)

type renderer struct {
	card        lipgloss.Style
	title       lipgloss.Style
	description lipgloss.Style
	poster      lipgloss.Style
	header      lipgloss.Style
	message     lipgloss.Style
}

func newRenderer(width int) *renderer {
	if width < minCardWidth {
		width = minCardWidth
	}
	return &renderer{
		card: lipgloss.NewStyle().
			Width(width).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			MarginRight(1),
		title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#6EC4F4")),
		description: lipgloss.NewStyle().Foreground(lipgloss.Color("#BBBBBB")),
		poster:      lipgloss.NewStyle().Faint(true),
		header:      lipgloss.NewStyle().Bold(true).MarginBottom(1),
		message:     lipgloss.NewStyle().Foreground(lipgloss.Color("#F45E6E")),
	}
}

// Render lays the cards out in rows of recommend.CardsPerRow.
func (r *renderer) Render(resp *recommend.Response) string {
	if len(resp.Cards) == 0 {
		return r.message.Render(noResultsMessage)
	}

	blocks := []string{r.header.Render(fmt.Sprintf("%d recommendations for %q (%s match)", len(resp.Cards), resp.Query, resp.Path))}
	for _, row := range resp.Rows(recommend.CardsPerRow) {
		cards := make([]string, len(row))
		for i, c := range row {
			cards[i] = r.renderCard(c)
		}
		blocks = append(blocks, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func (r *renderer) renderCard(c recommend.Card) string {
	return r.card.Render(lipgloss.JoinVertical(lipgloss.Left,
		r.title.Render(c.Title),
		r.description.Render(truncate(c.Description, maxDescriptionRunes)),
		"",
		r.poster.Render(c.PosterURL),
	))
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
