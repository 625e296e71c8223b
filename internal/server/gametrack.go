package server

import (
	"context"
	"errors"

	"gametrack/internal/dashboard"
	"gametrack/internal/domain"
	"gametrack/internal/rpc"
	"gametrack/internal/service"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
)

type PlayerLookup interface {
	Lookup(ctx context.Context, gameName, tagLine string) (*domain.Player, bool, error)
}

type MatchHistory interface {
	FetchPlayerStats(ctx context.Context, gameName, tagLine string, limit int) (*domain.PlayerMatchHistory, error)
	GetPlayerMatches(ctx context.Context, puuid string, limit int) (*domain.PlayerMatchHistory, error)
}

type GameTrackServer struct {
	players PlayerLookup
	matches MatchHistory
	logger  zerolog.Logger
}

func NewGameTrackServer(players PlayerLookup, matches MatchHistory, logger zerolog.Logger) *GameTrackServer {
	return &GameTrackServer{players: players, matches: matches, logger: logger}
}

func (s *GameTrackServer) LookupPlayer(ctx context.Context, req *connect.Request[rpc.LookupPlayerRequest]) (*connect.Response[rpc.LookupPlayerResponse], error) {
	player, created, err := s.players.Lookup(ctx, req.Msg.GameName, req.Msg.TagLine)
	if err != nil {
		return nil, s.toConnectError(ctx, "LookupPlayer", err)
	}
	return connect.NewResponse(&rpc.LookupPlayerResponse{Player: *player, Created: created}), nil
}

func (s *GameTrackServer) GetPlayerMatches(ctx context.Context, req *connect.Request[rpc.GetPlayerMatchesRequest]) (*connect.Response[rpc.PlayerMatchHistoryResponse], error) {
	history, err := s.matches.GetPlayerMatches(ctx, req.Msg.Puuid, req.Msg.Limit)
	if err != nil {
		return nil, s.toConnectError(ctx, "GetPlayerMatches", err)
	}
	return connect.NewResponse(history), nil
}

func (s *GameTrackServer) FetchPlayerStats(ctx context.Context, req *connect.Request[rpc.FetchPlayerStatsRequest]) (*connect.Response[rpc.PlayerMatchHistoryResponse], error) {
	history, err := s.matches.FetchPlayerStats(ctx, req.Msg.GameName, req.Msg.TagLine, req.Msg.Limit)
	if err != nil {
		return nil, s.toConnectError(ctx, "FetchPlayerStats", err)
	}
	return connect.NewResponse(history), nil
}

func (s *GameTrackServer) ListStats(ctx context.Context, req *connect.Request[rpc.ListStatsRequest]) (*connect.Response[rpc.ListStatsResponse], error) {
	return connect.NewResponse(&rpc.ListStatsResponse{
		Stats:      dashboard.Catalog(),
		Categories: dashboard.Categories(),
	}), nil
}

// toConnectError keeps the user-facing message of service errors and hides
// everything else behind a generic one.
func (s *GameTrackServer) toConnectError(ctx context.Context, procedure string, err error) error {
	log := zerolog.Ctx(ctx)
	if log.GetLevel() == zerolog.Disabled {
		log = &s.logger
	}

	var se *service.Error
	if !errors.As(err, &se) {
		log.Error().Err(err).Str("procedure", procedure).Msg("unexpected error")
		return connect.NewError(connect.CodeInternal, errors.New("Internal server error"))
	}

	code := connect.CodeInternal
	switch se.Kind {
	case service.KindInvalidArgument:
		code = connect.CodeInvalidArgument
	case service.KindNotFound:
		code = connect.CodeNotFound
	}

	event := log.Warn()
	if code == connect.CodeInternal {
		event = log.Error()
	}
	event.Err(err).Str("procedure", procedure).Str("code", code.String()).Msg("request failed")

	return connect.NewError(code, errors.New(se.Message))
}
