package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gametrack/internal/constants"
	"gametrack/internal/domain"

	"github.com/rs/zerolog"
)

type MatchRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewMatchRepository(sqlDB *sql.DB, logger zerolog.Logger) *MatchRepository {
	return &MatchRepository{
		db:     sqlDB,
		logger: logger,
	}
}

const statsSelect = `SELECT
	s.match_id, m.game_creation, m.game_duration, m.game_mode,
	s.kills, s.deaths, s.assists, s.win, s.kda,
	s.champion_id, s.champion_name, s.champ_level,
	s.double_kills, s.triple_kills, s.quadra_kills, s.penta_kills,
	s.total_damage_dealt_to_champions, s.damage_per_minute,
	s.gold_earned, s.gold_per_minute, s.total_minions_killed,
	s.vision_score, s.wards_placed, s.wards_killed,
	s.kill_participation, s.created_at, s.updated_at
FROM player_match_stats s
JOIN matches m ON m.match_id = s.match_id`

func scanStats(row interface{ Scan(...any) error }) (*domain.PlayerMatchStats, error) {
	var (
		s            domain.PlayerMatchStats
		gameCreation int64
		dpm, gpm, kp sql.NullFloat64
	)
	err := row.Scan(
		&s.MatchID, &gameCreation, &s.GameDuration, &s.GameMode,
		&s.Kills, &s.Deaths, &s.Assists, &s.Win, &s.KDA,
		&s.ChampionID, &s.ChampionName, &s.ChampLevel,
		&s.DoubleKills, &s.TripleKills, &s.QuadraKills, &s.PentaKills,
		&s.TotalDamageDealtToChampions, &dpm,
		&s.GoldEarned, &gpm, &s.TotalMinionsKilled,
		&s.VisionScore, &s.WardsPlaced, &s.WardsKilled,
		&kp, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.GameDatetime = time.UnixMilli(gameCreation).UTC()
	s.DamagePerMinute = nullable(dpm)
	s.GoldPerMinute = nullable(gpm)
	s.KillParticipation = nullable(kp)
	return &s, nil
}

func nullable(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func (r *MatchRepository) GetStats(ctx context.Context, puuid, matchID string) (*domain.PlayerMatchStats, error) {
	row := r.db.QueryRowContext(ctx, statsSelect+` WHERE s.puuid = ? AND s.match_id = ?`, puuid, matchID)
	return scanStats(row)
}

// ListStats returns up to limit stored matches for the player, newest first.
func (r *MatchRepository) ListStats(ctx context.Context, puuid string, limit int) ([]domain.PlayerMatchStats, error) {
	rows, err := r.db.QueryContext(ctx, statsSelect+` WHERE s.puuid = ? ORDER BY m.game_creation DESC LIMIT ?`, puuid, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list stats for %s: %w", puuid, err)
	}
	defer rows.Close()

	result := []domain.PlayerMatchStats{}
	for rows.Next() {
		s, err := scanStats(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stats: %w", err)
		}
		result = append(result, *s)
	}
	return result, rows.Err()
}

// SaveBatch writes matches and the player's stats lines in one transaction.
// Existing rows are left untouched; match data never changes once played.
func (r *MatchRepository) SaveBatch(ctx context.Context, puuid string, matches []domain.Match, stats []domain.PlayerMatchStats) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()

	for i := 0; i < len(matches); i += constants.DBBatchSize {
		end := min(i+constants.DBBatchSize, len(matches))
		for _, m := range matches[i:end] {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO matches (match_id, game_creation, game_duration, game_mode, game_type, raw_data, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT (match_id) DO NOTHING`,
				m.MatchID, m.GameCreation, m.GameDuration, m.GameMode, m.GameType, m.RawData, now, now)
			if err != nil {
				return fmt.Errorf("failed to insert match %s: %w", m.MatchID, err)
			}
		}
	}

	for i := 0; i < len(stats); i += constants.DBBatchSize {
		end := min(i+constants.DBBatchSize, len(stats))
		for _, s := range stats[i:end] {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO player_match_stats (
					puuid, match_id, kills, deaths, assists, win, kda,
					champion_id, champion_name, champ_level,
					double_kills, triple_kills, quadra_kills, penta_kills,
					total_damage_dealt_to_champions, damage_per_minute,
					gold_earned, gold_per_minute, total_minions_killed,
					vision_score, wards_placed, wards_killed,
					kill_participation, created_at, updated_at
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT (puuid, match_id) DO NOTHING`,
				puuid, s.MatchID, s.Kills, s.Deaths, s.Assists, s.Win, s.KDA,
				s.ChampionID, s.ChampionName, s.ChampLevel,
				s.DoubleKills, s.TripleKills, s.QuadraKills, s.PentaKills,
				s.TotalDamageDealtToChampions, s.DamagePerMinute,
				s.GoldEarned, s.GoldPerMinute, s.TotalMinionsKilled,
				s.VisionScore, s.WardsPlaced, s.WardsKilled,
				s.KillParticipation, now, now)
			if err != nil {
				return fmt.Errorf("failed to insert stats %s/%s: %w", s.MatchID, puuid, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit match batch: %w", err)
	}

	r.logger.Debug().
		Str("puuid", puuid).
		Int("matches", len(matches)).
		Int("stats", len(stats)).
		Msg("match batch saved")
	return nil
}
