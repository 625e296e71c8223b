package service

import (
	"context"
	"errors"

	"gametrack/internal/api"
	"gametrack/internal/config"
	"gametrack/internal/constants"
	"gametrack/internal/domain"
	"gametrack/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type MatchService struct {
	riot        RiotAPI
	players     *PlayerService
	matchRepo   *repository.MatchRepository
	concurrency int
	logger      zerolog.Logger
}

func NewMatchService(riot RiotAPI, players *PlayerService, matchRepo *repository.MatchRepository, cfg *config.Config, logger zerolog.Logger) *MatchService {
	concurrency := cfg.MatchFetchConcurrency
	if concurrency < 1 {
		concurrency = constants.MatchFetchConcurrency
	}
	return &MatchService{
		riot:        riot,
		players:     players,
		matchRepo:   matchRepo,
		concurrency: concurrency,
		logger:      logger,
	}
}

// ClampLimit applies the default window for non-positive limits and caps the rest.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return constants.DefaultMatchLimit
	}
	return min(limit, constants.MaxMatchLimit)
}

// FetchPlayerStats resolves the Riot ID and returns the player's latest
// matches with their summary.
func (s *MatchService) FetchPlayerStats(ctx context.Context, gameName, tagLine string, limit int) (*domain.PlayerMatchHistory, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	player, _, err := s.players.Lookup(ctx, gameName, tagLine)
	if err != nil {
		return nil, err
	}

	return s.history(ctx, player, ClampLimit(limit), historyMessages{
		noMatches: "No matches found for this player",
		failure:   "Error fetching player stats",
	})
}

// GetPlayerMatches is FetchPlayerStats for a player that was already looked up.
func (s *MatchService) GetPlayerMatches(ctx context.Context, puuid string, limit int) (*domain.PlayerMatchHistory, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	player, err := s.players.GetByPuuid(ctx, puuid)
	if err != nil {
		return nil, err
	}

	return s.history(ctx, player, ClampLimit(limit), historyMessages{
		noMatches: "No matches found or API error",
		failure:   "Error fetching matches",
	})
}

type historyMessages struct {
	noMatches string
	failure   string
}

func (s *MatchService) history(ctx context.Context, player *domain.Player, limit int, msgs historyMessages) (*domain.PlayerMatchHistory, error) {
	log := s.logger.With().Str("puuid", player.Puuid).Int("limit", limit).Logger()

	apiCtx, apiCancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	ids, err := s.riot.GetMatchIDs(apiCtx, player.Puuid, limit)
	apiCancel()
	if err != nil && !errors.Is(err, api.ErrNotFound) {
		if h := s.storedHistory(ctx, player, limit, log); h != nil {
			log.Warn().Err(err).Int("matches", h.TotalMatches).Msg("riot api unavailable, serving stored matches")
			return h, nil
		}
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch match ids")
		return nil, notFound(msgs.noMatches, err)
	}
	if len(ids) == 0 {
		return nil, notFound(msgs.noMatches, nil)
	}
	if len(ids) > limit {
		ids = ids[:limit]
	}

	stats := make([]*domain.PlayerMatchStats, len(ids))
	var missing []int
	for i, id := range ids {
		stored, err := s.matchRepo.GetStats(ctx, player.Puuid, id)
		if err == nil {
			stats[i] = stored
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			log.Warn().Err(err).Str("match_id", id).Msg("failed to read stored stats, refetching")
		}
		missing = append(missing, i)
	}

	log.Debug().Int("stored", len(ids)-len(missing)).Int("missing", len(missing)).Msg("resolving match details")

	fetched := make([]*domain.Match, len(ids))
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for _, i := range missing {
		g.Go(func() error {
			detail, err := s.riot.GetMatch(ctx, ids[i])
			if err != nil {
				log.Warn().Err(err).Str("match_id", ids[i]).Msg("failed to fetch match, skipping")
				return nil
			}
			m, st, ok := ExtractParticipantStats(detail, player.Puuid)
			if !ok {
				log.Warn().Str("match_id", ids[i]).Msg("player missing from match participants, skipping")
				return nil
			}
			fetched[i] = &m
			stats[i] = &st
			return nil
		})
	}
	g.Wait()

	if err := ctx.Err(); err != nil {
		log.Error().Err(err).Msg("match fetch interrupted")
		return nil, internal(msgs.failure, err)
	}

	var (
		matches    = make([]domain.PlayerMatchStats, 0, len(ids))
		newMatches []domain.Match
		newStats   []domain.PlayerMatchStats
	)
	for i := range ids {
		if stats[i] == nil {
			continue
		}
		matches = append(matches, *stats[i])
		if fetched[i] != nil {
			newMatches = append(newMatches, *fetched[i])
			newStats = append(newStats, *stats[i])
		}
	}

	if len(matches) == 0 {
		log.Error().Msg("no match details could be retrieved")
		return nil, internal("Failed to fetch match data", nil)
	}

	if len(newMatches) > 0 {
		dbCtx, dbCancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
		err := s.matchRepo.SaveBatch(dbCtx, player.Puuid, newMatches, newStats)
		dbCancel()
		if err != nil {
			log.Error().Err(err).Msg("failed to save matches")
			return nil, internal(msgs.failure, err)
		}
	}

	summary := Summarize(matches)
	log.Info().
		Int("matches", len(matches)).
		Int("fetched", len(newMatches)).
		Float64("win_rate", summary.WinRate).
		Msg("match history assembled")

	return &domain.PlayerMatchHistory{
		Player:       *player,
		Matches:      matches,
		TotalMatches: len(matches),
		Summary:      summary,
	}, nil
}

// storedHistory builds a history from what is already in the database, or
// returns nil when nothing is stored.
func (s *MatchService) storedHistory(ctx context.Context, player *domain.Player, limit int, log zerolog.Logger) *domain.PlayerMatchHistory {
	dbCtx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	matches, err := s.matchRepo.ListStats(dbCtx, player.Puuid, limit)
	if err != nil {
		log.Warn().Err(err).Msg("failed to read stored matches")
		return nil
	}
	if len(matches) == 0 {
		return nil
	}
	return &domain.PlayerMatchHistory{
		Player:       *player,
		Matches:      matches,
		TotalMatches: len(matches),
		Summary:      Summarize(matches),
	}
}
