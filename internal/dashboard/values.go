package dashboard

import "gametrack/internal/domain"

// StatValue reads a stat off a match record as a number. Booleans become
// 1 or 0; missing or unknown values read as 0.
func StatValue(m domain.PlayerMatchStats, key string) float64 {
	switch key {
	case StatKills:
		return float64(m.Kills)
	case StatDeaths:
		return float64(m.Deaths)
	case StatAssists:
		return float64(m.Assists)
	case StatWin:
		if m.Win {
			return 1
		}
		return 0
	case StatKDA:
		return m.KDA
	case StatDamage:
		return float64(m.TotalDamageDealtToChampions)
	case StatDamagePerMinute:
		return deref(m.DamagePerMinute)
	case StatDoubleKills:
		return float64(m.DoubleKills)
	case StatTripleKills:
		return float64(m.TripleKills)
	case StatQuadraKills:
		return float64(m.QuadraKills)
	case StatPentaKills:
		return float64(m.PentaKills)
	case StatGoldEarned:
		return float64(m.GoldEarned)
	case StatGoldPerMinute:
		return deref(m.GoldPerMinute)
	case StatMinionsKilled:
		return float64(m.TotalMinionsKilled)
	case StatVisionScore:
		return float64(m.VisionScore)
	case StatWardsPlaced:
		return float64(m.WardsPlaced)
	case StatWardsKilled:
		return float64(m.WardsKilled)
	case StatKillParticipation:
		return deref(m.KillParticipation)
	}
	return 0
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
