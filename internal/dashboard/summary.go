package dashboard

import (
	"fmt"
	"strconv"

	"gametrack/internal/domain"

	"github.com/dustin/go-humanize"
)

type Tone string

const (
	ToneBlue   Tone = "blue"
	ToneGreen  Tone = "green"
	ToneRed    Tone = "red"
	TonePurple Tone = "purple"
	ToneOrange Tone = "orange"
)

type Card struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	SubValue string `json:"sub_value,omitempty"`
	Tone     Tone   `json:"tone"`
}

// WinRateTone is positive from 50% up.
func WinRateTone(winRate float64) Tone {
	if winRate >= 50 {
		return ToneGreen
	}
	return ToneRed
}

// SummaryCards lays the summary out as the ten dashboard cards. A nil
// summary renders as zeros.
func SummaryCards(s *domain.Summary) []Card {
	if s == nil {
		s = &domain.Summary{}
	}
	return []Card{
		{Label: "Total Matches", Value: strconv.Itoa(s.TotalMatches), Tone: ToneBlue},
		{
			Label:    "Win Rate",
			Value:    num(s.WinRate) + "%",
			SubValue: fmt.Sprintf("%dW %dL", s.Wins, s.Losses),
			Tone:     WinRateTone(s.WinRate),
		},
		{
			Label:    "Average KDA",
			Value:    num(s.AvgKDA),
			SubValue: fmt.Sprintf("%s/%s/%s", num(s.AvgKills), num(s.AvgDeaths), num(s.AvgAssists)),
			Tone:     TonePurple,
		},
		{Label: "Avg Kills", Value: num(s.AvgKills), Tone: ToneGreen},
		{Label: "Avg Deaths", Value: num(s.AvgDeaths), Tone: ToneRed},
		{Label: "Avg Assists", Value: num(s.AvgAssists), Tone: ToneBlue},
		{Label: "Avg Damage", Value: humanize.Commaf(s.AvgDamage), Tone: ToneOrange},
		{Label: "Avg Gold", Value: humanize.Commaf(s.AvgGold), Tone: ToneOrange},
		{Label: "Avg CS", Value: num(s.AvgCS), Tone: TonePurple},
		{Label: "Avg Vision Score", Value: num(s.AvgVisionScore), Tone: ToneBlue},
	}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
