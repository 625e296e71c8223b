package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"gametrack/internal/api"
	"gametrack/internal/constants"
	"gametrack/internal/domain"
	"gametrack/internal/repository"

	"github.com/rs/zerolog"
)

// RiotAPI is the slice of the Riot client the services depend on.
type RiotAPI interface {
	GetAccountByRiotID(ctx context.Context, gameName, tagLine string) (*api.AccountDTO, error)
	GetMatchIDs(ctx context.Context, puuid string, count int) ([]string, error)
	GetMatch(ctx context.Context, matchID string) (*api.MatchDTO, error)
}

type PlayerService struct {
	riot   RiotAPI
	repo   *repository.PlayerRepository
	logger zerolog.Logger
}

func NewPlayerService(riot RiotAPI, repo *repository.PlayerRepository, logger zerolog.Logger) *PlayerService {
	return &PlayerService{riot: riot, repo: repo, logger: logger}
}

// ValidateRiotID trims both parts, drops a leading '#' from the tag and
// enforces the length limits of Riot IDs.
func ValidateRiotID(gameName, tagLine string) (string, string, error) {
	gameName = strings.TrimSpace(gameName)
	if gameName == "" {
		return "", "", invalidArgument("Game name cannot be empty")
	}
	if utf8.RuneCountInString(gameName) > constants.MaxGameNameLength {
		return "", "", invalidArgument(fmt.Sprintf("Game name must be at most %d characters", constants.MaxGameNameLength))
	}

	tagLine = strings.TrimSpace(tagLine)
	if tagLine == "" {
		return "", "", invalidArgument("Tag line cannot be empty")
	}
	if utf8.RuneCountInString(tagLine) > constants.MaxTagLineLength {
		return "", "", invalidArgument(fmt.Sprintf("Tag line must be at most %d characters", constants.MaxTagLineLength))
	}
	tagLine = strings.TrimLeft(tagLine, "#")
	if tagLine == "" {
		return "", "", invalidArgument("Tag line cannot be empty")
	}

	return gameName, tagLine, nil
}

// Lookup resolves a Riot ID to a stored player, creating or renaming the
// record as needed. The flag reports whether the player was new.
func (s *PlayerService) Lookup(ctx context.Context, gameName, tagLine string) (*domain.Player, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	gameName, tagLine, err := ValidateRiotID(gameName, tagLine)
	if err != nil {
		return nil, false, err
	}

	s.logger.Info().Str("game_name", gameName).Str("tag_line", tagLine).Msg("looking up player")

	apiCtx, apiCancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer apiCancel()

	account, err := s.riot.GetAccountByRiotID(apiCtx, gameName, tagLine)
	if err != nil && !errors.Is(err, api.ErrNotFound) {
		if stored, ok := s.stored(ctx, gameName, tagLine); ok {
			s.logger.Warn().Err(err).Str("puuid", stored.Puuid).Msg("riot api unavailable, using stored player")
			return stored, false, nil
		}
	}
	if err != nil {
		s.logger.Error().Err(err).Str("game_name", gameName).Str("tag_line", tagLine).Msg("failed to fetch account")
		return nil, false, notFound("Player not found or Riot API error", err)
	}
	if account.Puuid == "" {
		return nil, false, internal("Failed to get player PUUID", nil)
	}

	player := &domain.Player{
		Puuid:    account.Puuid,
		GameName: orDefault(account.GameName, gameName),
		TagLine:  orDefault(account.TagLine, tagLine),
	}

	dbCtx, dbCancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer dbCancel()

	created, err := s.repo.Upsert(dbCtx, player)
	if err != nil {
		s.logger.Error().Err(err).Str("puuid", player.Puuid).Msg("failed to upsert player")
		return nil, false, internal("Error looking up player", err)
	}

	s.logger.Info().Str("puuid", player.Puuid).Bool("created", created).Msg("player resolved")
	return player, created, nil
}

func (s *PlayerService) GetByPuuid(ctx context.Context, puuid string) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	player, err := s.repo.GetByPuuid(ctx, puuid)
	if errors.Is(err, repository.ErrNotFound) {
		s.logger.Debug().Str("puuid", puuid).Msg("player not found")
		return nil, notFound("Player not found. Please search for the player first.", err)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("puuid", puuid).Msg("failed to load player")
		return nil, internal("Error fetching matches", err)
	}
	return player, nil
}

// stored finds a previously resolved player by Riot ID.
func (s *PlayerService) stored(ctx context.Context, gameName, tagLine string) (*domain.Player, bool) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	player, err := s.repo.GetByRiotID(ctx, gameName, tagLine)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn().Err(err).Msg("failed to read stored player")
		}
		return nil, false
	}
	return player, true
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
