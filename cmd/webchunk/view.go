package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fwojciec/webchunk"
)

// Result layouts.
const (
	viewCards = "cards"
	viewTable = "table"
)

const (
	cardWidth         = 78
	tableContentWidth = 52
	shortHashLen      = 8
)

var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorDim     = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorBorder  = lipgloss.AdaptiveColor{Light: "#DBDBDB", Dark: "#383838"}
	colorGreen   = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"}
)

// renderResult writes the chunks returned for url to w in the given layout.
func renderResult(w io.Writer, view, url string, resp *webchunk.ScrapeResponse) {
	r := lipgloss.NewRenderer(w)
	title := r.NewStyle().Bold(true).Foreground(colorPrimary)
	dim := r.NewStyle().Foreground(colorDim)

	fmt.Fprintln(w, title.Render(url)+" "+dim.Render(countLabel(len(resp.Chunks))))
	if len(resp.Chunks) == 0 {
		fmt.Fprintln(w, dim.Render("No chunks found."))
		return
	}

	switch view {
	case viewTable:
		fmt.Fprintln(w, renderTable(r, resp.Chunks))
	default:
		fmt.Fprintln(w, renderCards(r, resp.Chunks))
	}
}

func renderCards(r *lipgloss.Renderer, chunks []webchunk.ContentChunk) string {
	box := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Width(cardWidth)
	id := r.NewStyle().Bold(true).Foreground(colorPrimary)
	score := r.NewStyle().Foreground(colorGreen)
	dim := r.NewStyle().Foreground(colorDim)

	cards := make([]string, len(chunks))
	for i, c := range chunks {
		header := id.Render("#"+strconv.Itoa(c.ID)) + "  " + score.Render("score "+formatScore(c.Score)) + "  " + dim.Render(shortHash(c))
		cards[i] = box.Render(lipgloss.JoinVertical(lipgloss.Left, header, c.Content))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func renderTable(r *lipgloss.Renderer, chunks []webchunk.ContentChunk) string {
	header := r.NewStyle().Bold(true).Foreground(colorPrimary).Padding(0, 1)
	cell := r.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle().Foreground(colorBorder)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		Headers("ID", "SCORE", "HASH", "CONTENT")
	for _, c := range chunks {
		t.Row(strconv.Itoa(c.ID), formatScore(c.Score), shortHash(c), truncate(strings.Join(strings.Fields(c.Content), " "), tableContentWidth))
	}
	return t.String()
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 4, 64)
}

// shortHash returns the leading digits of the chunk's content hash,
// computing it when the chunk carries none.
func shortHash(c webchunk.ContentChunk) string {
	h := c.Hash
	if h == "" {
		h = webchunk.HashContent(c.Content)
	}
	if len(h) > shortHashLen {
		h = h[:shortHashLen]
	}
	return h
}

func countLabel(n int) string {
	if n == 1 {
		return "(1 chunk)"
	}
	return fmt.Sprintf("(%d chunks)", n)
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
