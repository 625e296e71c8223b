package service

import (
	"math"
	"time"

	"gametrack/internal/api"
	"gametrack/internal/domain"
)

// KDA is (kills + assists) / deaths to two places, or kills + assists when
// the player never died.
func KDA(kills, deaths, assists int) float64 {
	if deaths == 0 {
		return float64(kills + assists)
	}
	return round(float64(kills+assists)/float64(deaths), 2)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// ExtractParticipantStats pulls the given player's line out of a match.
// ok is false when the player did not take part.
func ExtractParticipantStats(match *api.MatchDTO, puuid string) (domain.Match, domain.PlayerMatchStats, bool) {
	p, ok := match.Participant(puuid)
	if !ok {
		return domain.Match{}, domain.PlayerMatchStats{}, false
	}

	matchID := match.Metadata.MatchID
	m := domain.Match{
		MatchID:      matchID,
		GameCreation: match.Info.GameCreation,
		GameDuration: match.Info.GameDuration,
		GameMode:     match.Info.GameMode,
		GameType:     match.Info.GameType,
		RawData:      match.Raw,
	}

	champLevel := p.ChampLevel
	if champLevel == 0 {
		champLevel = 1
	}

	now := time.Now().UTC()
	s := domain.PlayerMatchStats{
		MatchID:      matchID,
		GameDatetime: m.GameDatetime(),
		GameDuration: m.GameDuration,
		GameMode:     m.GameMode,

		Kills:   p.Kills,
		Deaths:  p.Deaths,
		Assists: p.Assists,
		Win:     p.Win,
		KDA:     KDA(p.Kills, p.Deaths, p.Assists),

		ChampionID:   p.ChampionID,
		ChampionName: p.ChampionName,
		ChampLevel:   champLevel,

		DoubleKills:                 p.DoubleKills,
		TripleKills:                 p.TripleKills,
		QuadraKills:                 p.QuadraKills,
		PentaKills:                  p.PentaKills,
		TotalDamageDealtToChampions: p.TotalDamageDealtToChampions,
		GoldEarned:                  p.GoldEarned,
		TotalMinionsKilled:          p.TotalMinionsKilled,
		VisionScore:                 p.VisionScore,
		WardsPlaced:                 p.WardsPlaced,
		WardsKilled:                 p.WardsKilled,

		CreatedAt: now,
		UpdatedAt: now,
	}
	if c := p.Challenges; c != nil {
		s.KillParticipation = c.KillParticipation
		s.DamagePerMinute = c.DamagePerMinute
		s.GoldPerMinute = c.GoldPerMinute
	}
	return m, s, true
}

// Summarize aggregates a match list. Averages use the same rounding the
// dashboard displays; an empty list gives the zero summary.
func Summarize(matches []domain.PlayerMatchStats) domain.Summary {
	n := len(matches)
	if n == 0 {
		return domain.Summary{}
	}

	var wins, kills, deaths, assists, damage, gold, cs, vision int
	for _, m := range matches {
		if m.Win {
			wins++
		}
		kills += m.Kills
		deaths += m.Deaths
		assists += m.Assists
		damage += m.TotalDamageDealtToChampions
		gold += m.GoldEarned
		cs += m.TotalMinionsKilled
		vision += m.VisionScore
	}

	total := float64(n)
	return domain.Summary{
		TotalMatches:   n,
		Wins:           wins,
		Losses:         n - wins,
		WinRate:        round(float64(wins)/total*100, 1),
		AvgKills:       round(float64(kills)/total, 1),
		AvgDeaths:      round(float64(deaths)/total, 1),
		AvgAssists:     round(float64(assists)/total, 1),
		AvgKDA:         KDA(kills, deaths, assists),
		AvgDamage:      round(float64(damage)/total, 0),
		AvgGold:        round(float64(gold)/total, 0),
		AvgCS:          round(float64(cs)/total, 1),
		AvgVisionScore: round(float64(vision)/total, 1),
	}
}
