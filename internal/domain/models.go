package domain

import (
	"time"
)

type Player struct {
	Puuid     string    `json:"puuid"`
	GameName  string    `json:"game_name"`
	TagLine   string    `json:"tag_line"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p Player) RiotID() string {
	return p.GameName + "#" + p.TagLine
}

type Match struct {
	MatchID      string
	GameCreation int64 // unix millis
	GameDuration int   // seconds
	GameMode     string
	GameType     string
	RawData      []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (m Match) GameDatetime() time.Time {
	return time.UnixMilli(m.GameCreation).UTC()
}

// PlayerMatchStats is one player's line for one match.
type PlayerMatchStats struct {
	MatchID      string    `json:"match_id"`
	GameDatetime time.Time `json:"game_datetime"`
	GameDuration int       `json:"game_duration"`
	GameMode     string    `json:"game_mode"`

	Kills   int     `json:"kills"`
	Deaths  int     `json:"deaths"`
	Assists int     `json:"assists"`
	Win     bool    `json:"win"`
	KDA     float64 `json:"kda"`

	ChampionID   int    `json:"champion_id"`
	ChampionName string `json:"champion_name"`
	ChampLevel   int    `json:"champ_level"`

	DoubleKills                 int      `json:"double_kills"`
	TripleKills                 int      `json:"triple_kills"`
	QuadraKills                 int      `json:"quadra_kills"`
	PentaKills                  int      `json:"penta_kills"`
	TotalDamageDealtToChampions int      `json:"total_damage_dealt_to_champions"`
	DamagePerMinute             *float64 `json:"damage_per_minute"`

	GoldEarned         int      `json:"gold_earned"`
	GoldPerMinute      *float64 `json:"gold_per_minute"`
	TotalMinionsKilled int      `json:"total_minions_killed"`

	VisionScore int `json:"vision_score"`
	WardsPlaced int `json:"wards_placed"`
	WardsKilled int `json:"wards_killed"`

	KillParticipation *float64 `json:"kill_participation"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Summary struct {
	TotalMatches   int     `json:"total_matches"`
	Wins           int     `json:"wins"`
	Losses         int     `json:"losses"`
	WinRate        float64 `json:"win_rate"`
	AvgKills       float64 `json:"avg_kills"`
	AvgDeaths      float64 `json:"avg_deaths"`
	AvgAssists     float64 `json:"avg_assists"`
	AvgKDA         float64 `json:"avg_kda"`
	AvgDamage      float64 `json:"avg_damage"`
	AvgGold        float64 `json:"avg_gold"`
	AvgCS          float64 `json:"avg_cs"`
	AvgVisionScore float64 `json:"avg_vision_score"`
}

// PlayerMatchHistory is the full result of one stats fetch. Matches are newest-first.
type PlayerMatchHistory struct {
	Player       Player             `json:"player"`
	Matches      []PlayerMatchStats `json:"matches"`
	TotalMatches int                `json:"total_matches"`
	Summary      Summary            `json:"summary"`
}
