package web

import (
	"bytes"
	"errors"
	"html/template"

	"gametrack/internal/dashboard"
	"gametrack/internal/domain"

	"github.com/rs/zerolog"
)

// dashboardView is what GET /api/dashboard returns.
type dashboardView struct {
	Status            dashboard.Status      `json:"status"`
	Error             string                `json:"error,omitempty"`
	GameName          string                `json:"game_name,omitempty"`
	TagLine           string                `json:"tag_line,omitempty"`
	Selection         []string              `json:"selection"`
	Player            *domain.Player        `json:"player,omitempty"`
	Summary           *domain.Summary       `json:"summary,omitempty"`
	Cards             []dashboard.Card      `json:"cards,omitempty"`
	Trend             *dashboard.Trend      `json:"trend,omitempty"`
	TrendPlaceholder  string                `json:"trend_placeholder,omitempty"`
	Comparison        *dashboard.Comparison `json:"comparison,omitempty"`
	ComparisonVisible bool                  `json:"comparison_visible"`
}

func newDashboardView(snap dashboard.Snapshot) dashboardView {
	v := dashboardView{
		Status:    snap.Status,
		Error:     snap.Error,
		GameName:  snap.GameName,
		TagLine:   snap.TagLine,
		Selection: snap.Selection.Keys(),
	}
	if snap.Result == nil {
		return v
	}

	v.Player = &snap.Result.Player
	v.Summary = &snap.Result.Summary
	v.Cards = snap.Cards()

	trend := snap.Trend()
	v.Trend = &trend
	if trend.Placeholder() {
		v.TrendPlaceholder = dashboard.TrendPlaceholder
	}

	cmp := snap.Comparison()
	v.Comparison = &cmp
	v.ComparisonVisible = cmp.Visible()
	return v
}

type filterStat struct {
	dashboard.StatDescriptor
	Selected bool
}

type filterGroup struct {
	Label string
	Stats []filterStat
}

// pageView feeds templates/index.html.
type pageView struct {
	Snap          dashboard.Snapshot
	Player        *domain.Player
	Cards         []dashboard.Card
	Matches       []domain.PlayerMatchStats
	Filters       []filterGroup
	SelectedCount int

	TrendSVG         template.HTML
	TrendPlaceholder string
	ComparisonSVG    template.HTML
}

func newPageView(snap dashboard.Snapshot, logger zerolog.Logger) pageView {
	v := pageView{
		Snap:          snap,
		SelectedCount: snap.Selection.Len(),
	}

	for _, g := range dashboard.ByCategory() {
		fg := filterGroup{Label: g.Label}
		for _, d := range g.Stats {
			fg.Stats = append(fg.Stats, filterStat{StatDescriptor: d, Selected: snap.Selection.Has(d.Key)})
		}
		v.Filters = append(v.Filters, fg)
	}

	if snap.Result == nil {
		return v
	}

	v.Player = &snap.Result.Player
	v.Cards = snap.Cards()
	v.Matches = snap.Result.Matches

	trend := snap.Trend()
	if trend.Placeholder() {
		v.TrendPlaceholder = dashboard.TrendPlaceholder
	} else {
		v.TrendSVG = inlineSVG(logger, "trend", func(buf *bytes.Buffer) error {
			return dashboard.RenderTrendSVG(buf, trend)
		})
	}

	v.ComparisonSVG = inlineSVG(logger, "comparison", func(buf *bytes.Buffer) error {
		return dashboard.RenderComparisonSVG(buf, snap.Comparison())
	})
	return v
}

// inlineSVG renders a chart for embedding in the page; chart output is
// generated by us, never user markup.
func inlineSVG(logger zerolog.Logger, name string, render func(*bytes.Buffer) error) template.HTML {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		if !errors.Is(err, dashboard.ErrNothingToRender) {
			logger.Error().Err(err).Str("chart", name).Msg("failed to render chart")
		}
		return ""
	}
	return template.HTML(buf.String())
}
