package dashboard

import (
	"fmt"

	"gametrack/internal/domain"
)

const TrendPlaceholder = "Select stats to display the trend chart"

type TrendPoint struct {
	Index    int                `json:"index"`
	Label    string             `json:"label"`
	MatchID  string             `json:"match_id"`
	Champion string             `json:"champion"`
	Values   map[string]float64 `json:"values"`
}

type Series struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// Trend is the line chart view model. Points hold a value for every selected
// key, win included; Series lists only what is drawn.
type Trend struct {
	Points []TrendPoint `json:"points"`
	Series []Series     `json:"series"`
}

func (t Trend) Placeholder() bool {
	return len(t.Series) == 0
}

// MapTrend turns newest-first matches into oldest-first chart points.
func MapTrend(matches []domain.PlayerMatchStats, sel *Selection) Trend {
	keys := sel.Keys()

	points := make([]TrendPoint, len(matches))
	for i := range matches {
		m := matches[len(matches)-1-i]
		values := make(map[string]float64, len(keys))
		for _, k := range keys {
			values[k] = StatValue(m, k)
		}
		points[i] = TrendPoint{
			Index:    i + 1,
			Label:    fmt.Sprintf("Match %d", i+1),
			MatchID:  m.MatchID,
			Champion: m.ChampionName,
			Values:   values,
		}
	}

	series := []Series{}
	for _, k := range keys {
		if k == StatWin {
			continue
		}
		series = append(series, Series{Key: k, Label: ShortLabel(k), Color: Color(k)})
	}

	return Trend{Points: points, Series: series}
}
