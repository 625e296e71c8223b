package dashboard

import (
	"fmt"

	"gametrack/internal/domain"
)

var comparisonSeries = []Series{
	{Key: StatKills, Label: "Kills", Color: Color(StatKills)},
	{Key: StatDeaths, Label: "Deaths", Color: Color(StatDeaths)},
	{Key: StatAssists, Label: "Assists", Color: Color(StatAssists)},
}

type ComparisonPoint struct {
	Index     int    `json:"index"`
	Label     string `json:"label"`
	FullLabel string `json:"full_label"`
	MatchID   string `json:"match_id"`
	Champion  string `json:"champion"`
	Win       bool   `json:"win"`
	Kills     int    `json:"kills"`
	Deaths    int    `json:"deaths"`
	Assists   int    `json:"assists"`
}

func (p ComparisonPoint) Outcome() string {
	if p.Win {
		return "Victory"
	}
	return "Defeat"
}

func (p ComparisonPoint) Value(key string) int {
	switch key {
	case StatKills:
		return p.Kills
	case StatDeaths:
		return p.Deaths
	case StatAssists:
		return p.Assists
	}
	return 0
}

// Comparison is the K/D/A bar chart view model. It is always computed but
// only shown when the selection touches kills, deaths or assists.
type Comparison struct {
	Points  []ComparisonPoint `json:"points"`
	Series  []Series          `json:"series"`
	visible bool
}

func (c Comparison) Visible() bool {
	return c.visible
}

// BarColor mutes every bar of a lost match.
func (c Comparison) BarColor(s Series, p ComparisonPoint) string {
	if !p.Win {
		return MutedColor
	}
	return s.Color
}

func MapComparison(matches []domain.PlayerMatchStats, sel *Selection) Comparison {
	points := make([]ComparisonPoint, len(matches))
	for i := range matches {
		m := matches[len(matches)-1-i]
		points[i] = ComparisonPoint{
			Index:     i + 1,
			Label:     fmt.Sprintf("M%d", i+1),
			FullLabel: fmt.Sprintf("Match %d", i+1),
			MatchID:   m.MatchID,
			Champion:  m.ChampionName,
			Win:       m.Win,
			Kills:     m.Kills,
			Deaths:    m.Deaths,
			Assists:   m.Assists,
		}
	}

	series := make([]Series, len(comparisonSeries))
	copy(series, comparisonSeries)

	return Comparison{
		Points:  points,
		Series:  series,
		visible: sel.HasAny(StatKills, StatDeaths, StatAssists),
	}
}
