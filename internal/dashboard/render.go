package dashboard

import (
	"errors"
	"io"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var ErrNothingToRender = errors.New("nothing to render")

const (
	chartHeight   = 400
	chartMinWidth = 720
	barWidth      = 14
	barSpacing    = 4

	singlePointSpread = 0.25
)

var (
	axisColor = hexColor(FallbackColor)
	gridStyle = chart.Style{
		StrokeColor:     hexColor("#e5e7eb"),
		StrokeWidth:     1,
		StrokeDashArray: []float64{3, 3},
	}
)

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

// yRange pads the top of the axis and keeps it non-empty for all-zero data.
func yRange(maxValue float64) *chart.ContinuousRange {
	top := maxValue * 1.1
	if top <= 0 || math.IsNaN(top) {
		top = 1
	}
	return &chart.ContinuousRange{Min: 0, Max: math.Ceil(top)}
}

// RenderTrendSVG draws one line per displayed series with "Match i" ticks.
func RenderTrendSVG(w io.Writer, t Trend) error {
	if t.Placeholder() || len(t.Points) == 0 {
		return ErrNothingToRender
	}

	n := len(t.Points)
	xs := make([]float64, n)
	ticks := make([]chart.Tick, n)
	for i, p := range t.Points {
		xs[i] = float64(p.Index)
		ticks[i] = chart.Tick{Value: float64(p.Index), Label: p.Label}
	}

	// go-chart needs two distinct x values; a single match is drawn as a
	// short flat segment centred on its tick.
	single := n == 1
	if single {
		x := xs[0]
		xs = []float64{x - singlePointSpread, x + singlePointSpread}
	}

	var maxValue float64
	series := make([]chart.Series, 0, len(t.Series))
	for _, s := range t.Series {
		ys := make([]float64, n)
		for i, p := range t.Points {
			ys[i] = p.Values[s.Key]
			maxValue = math.Max(maxValue, ys[i])
		}
		if single {
			ys = []float64{ys[0], ys[0]}
		}
		color := hexColor(s.Color)
		series = append(series, chart.ContinuousSeries{
			Name:    s.Label,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 2,
				DotColor:    color,
				DotWidth:    4,
			},
		})
	}

	ch := chart.Chart{
		Width:      max(chartMinWidth, n*90),
		Height:     chartHeight,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Style: chart.Style{FontColor: axisColor, StrokeColor: axisColor},
			Range: &chart.ContinuousRange{Min: 0.5, Max: float64(n) + 0.5},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Style:          chart.Style{FontColor: axisColor, StrokeColor: axisColor},
			Range:          yRange(maxValue),
			GridMajorStyle: gridStyle,
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	return ch.Render(chart.SVG, w)
}

// RenderComparisonSVG draws grouped kills/deaths/assists bars per match,
// greyed out for lost matches.
func RenderComparisonSVG(w io.Writer, c Comparison) error {
	if !c.Visible() || len(c.Points) == 0 {
		return ErrNothingToRender
	}

	var maxValue float64
	bars := make([]chart.Value, 0, len(c.Points)*len(c.Series))
	for _, p := range c.Points {
		for i, s := range c.Series {
			v := float64(p.Value(s.Key))
			maxValue = math.Max(maxValue, v)

			label := ""
			if i == len(c.Series)/2 {
				label = p.Label
			}
			color := hexColor(c.BarColor(s, p))
			bars = append(bars, chart.Value{
				Value: v,
				Label: label,
				Style: chart.Style{FillColor: color, StrokeColor: color, StrokeWidth: 1},
			})
		}
	}

	bc := chart.BarChart{
		Width:      max(chartMinWidth, len(bars)*(barWidth+barSpacing)+120),
		Height:     chartHeight,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.Style{FontColor: axisColor, StrokeColor: axisColor},
		YAxis: chart.YAxis{
			Style: chart.Style{FontColor: axisColor, StrokeColor: axisColor},
			Range: yRange(maxValue),
		},
		Bars: bars,
	}

	return bc.Render(chart.SVG, w)
}
