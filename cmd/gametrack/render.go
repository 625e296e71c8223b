package main

import (
	"strconv"
	"strings"

	"gametrack/internal/dashboard"
	"gametrack/internal/domain"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle  = lipgloss.NewStyle().
			Padding(0, 1).
			Width(22).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Bold(true)
)

var toneColors = map[dashboard.Tone]lipgloss.Color{
	dashboard.ToneBlue:   lipgloss.Color("#3B82F6"),
	dashboard.ToneGreen:  lipgloss.Color("#10B981"),
	dashboard.ToneRed:    lipgloss.Color("#EF4444"),
	dashboard.TonePurple: lipgloss.Color("#8B5CF6"),
	dashboard.ToneOrange: lipgloss.Color("#F59E0B"),
}

const cardsPerRow = 5

func renderReport(h *domain.PlayerMatchHistory) string {
	header := titleStyle.Render(h.Player.RiotID()) + " " +
		mutedStyle.Render(humanize.Comma(int64(h.TotalMatches))+" matches")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		renderCards(dashboard.SummaryCards(&h.Summary)),
		"",
		titleStyle.Render("Performance Trend"),
		renderTrend(dashboard.MapTrend(h.Matches, dashboard.NewSelection())),
	)
}

func renderCards(cards []dashboard.Card) string {
	var rows []string
	for start := 0; start < len(cards); start += cardsPerRow {
		end := min(start+cardsPerRow, len(cards))
		rendered := make([]string, 0, end-start)
		for _, c := range cards[start:end] {
			rendered = append(rendered, metricCard(c))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func metricCard(c dashboard.Card) string {
	value := cardValueStyle.Foreground(toneColors[c.Tone]).Render(c.Value)
	lines := []string{cardTitleStyle.Render(c.Label), value}
	if c.SubValue != "" {
		lines = append(lines, mutedStyle.Render(c.SubValue))
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

// trendRows lays the trend out as a header plus one row per match.
func trendRows(t dashboard.Trend) []string {
	header := []string{"Match", "Champion"}
	for _, s := range t.Series {
		header = append(header, s.Label)
	}
	header = append(header, "Result")

	rows := [][]string{header}
	for _, p := range t.Points {
		row := []string{p.Label, p.Champion}
		for _, s := range t.Series {
			row = append(row, strconv.FormatFloat(p.Values[s.Key], 'f', -1, 64))
		}
		result := "L"
		if p.Values[dashboard.StatWin] == 1 {
			result = "W"
		}
		row = append(row, result)
		rows = append(rows, row)
	}

	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = strings.Join(r, "\t")
	}
	return out
}

func renderTrend(t dashboard.Trend) string {
	if t.Placeholder() || len(t.Points) == 0 {
		return mutedStyle.Render(dashboard.TrendPlaceholder)
	}

	lines := trendRows(t)
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(strings.Split(lines[0], "\t")...)
	for _, line := range lines[1:] {
		tbl.Row(strings.Split(line, "\t")...)
	}
	return tbl.Render()
}
