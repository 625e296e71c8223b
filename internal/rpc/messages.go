package rpc

import (
	"gametrack/internal/dashboard"
	"gametrack/internal/domain"
)

const GameTrackServiceName = "gametrack.v1.GameTrackService"

const (
	LookupPlayerProcedure     = "/gametrack.v1.GameTrackService/LookupPlayer"
	GetPlayerMatchesProcedure = "/gametrack.v1.GameTrackService/GetPlayerMatches"
	FetchPlayerStatsProcedure = "/gametrack.v1.GameTrackService/FetchPlayerStats"
	ListStatsProcedure        = "/gametrack.v1.GameTrackService/ListStats"
)

type LookupPlayerRequest struct {
	GameName string `json:"game_name"`
	TagLine  string `json:"tag_line"`
}

type LookupPlayerResponse struct {
	Player  domain.Player `json:"player"`
	Created bool          `json:"created"`
}

type GetPlayerMatchesRequest struct {
	Puuid string `json:"puuid"`
	Limit int    `json:"limit,omitempty"`
}

type FetchPlayerStatsRequest struct {
	GameName string `json:"game_name"`
	TagLine  string `json:"tag_line"`
	Limit    int    `json:"limit,omitempty"`
}

// PlayerMatchHistoryResponse answers both GetPlayerMatches and FetchPlayerStats.
type PlayerMatchHistoryResponse = domain.PlayerMatchHistory

type ListStatsRequest struct{}

type ListStatsResponse struct {
	Stats      []dashboard.StatDescriptor `json:"stats"`
	Categories []dashboard.CategoryInfo   `json:"categories"`
}
