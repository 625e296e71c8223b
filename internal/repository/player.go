package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gametrack/internal/domain"

	"github.com/rs/zerolog"
)

var ErrNotFound = errors.New("not found")

type PlayerRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewPlayerRepository(sqlDB *sql.DB, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{
		db:     sqlDB,
		logger: logger,
	}
}

const playerColumns = `puuid, game_name, tag_line, created_at, updated_at`

func scanPlayer(row interface{ Scan(...any) error }) (*domain.Player, error) {
	var p domain.Player
	if err := row.Scan(&p.Puuid, &p.GameName, &p.TagLine, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PlayerRepository) GetByPuuid(ctx context.Context, puuid string) (*domain.Player, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE puuid = ?`, puuid)
	return scanPlayer(row)
}

// GetByRiotID matches name and tag case-insensitively, as Riot does.
func (r *PlayerRepository) GetByRiotID(ctx context.Context, gameName, tagLine string) (*domain.Player, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+playerColumns+` FROM players
		WHERE game_name = ? COLLATE NOCASE AND tag_line = ? COLLATE NOCASE
		ORDER BY updated_at DESC LIMIT 1`,
		gameName, tagLine)
	return scanPlayer(row)
}

// Upsert stores the player keyed by puuid, refreshing the Riot ID if it changed.
// The returned flag reports whether the row was newly created.
func (r *PlayerRepository) Upsert(ctx context.Context, player *domain.Player) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existing int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM players WHERE puuid = ?`, player.Puuid).Scan(&existing)
	if err != nil {
		return false, fmt.Errorf("failed to check player %s: %w", player.Puuid, err)
	}

	now := time.Now().UTC()
	if player.CreatedAt.IsZero() {
		player.CreatedAt = now
	}
	player.UpdatedAt = now

	_, err = tx.ExecContext(ctx,
		`INSERT INTO players (`+playerColumns+`) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (puuid) DO UPDATE SET
			game_name = excluded.game_name,
			tag_line = excluded.tag_line,
			updated_at = excluded.updated_at`,
		player.Puuid, player.GameName, player.TagLine, player.CreatedAt, player.UpdatedAt)
	if err != nil {
		return false, fmt.Errorf("failed to upsert player %s: %w", player.Puuid, err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit player %s: %w", player.Puuid, err)
	}

	created := existing == 0
	r.logger.Debug().
		Str("puuid", player.Puuid).
		Str("riot_id", player.RiotID()).
		Bool("created", created).
		Msg("player upserted")

	if !created {
		// created_at belongs to the stored row
		if stored, err := r.GetByPuuid(ctx, player.Puuid); err == nil {
			player.CreatedAt = stored.CreatedAt
		}
	}
	return created, nil
}
