package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quillhaven/botadmin/internal/domain"
)

// BotConfigRepository persists the single bot configuration row.
type BotConfigRepository struct {
	db dbtx
}

func NewBotConfigRepository(pool *pgxpool.Pool) *BotConfigRepository {
	return &BotConfigRepository{db: pool}
}

// Get returns the configuration row, or domain.ErrConfigNotFound when none
// has been created yet. The table is expected to hold at most one row; the
// lowest id wins if it ever holds more.
func (r *BotConfigRepository) Get(ctx context.Context) (*domain.BotConfig, error) {
	var cfg domain.BotConfig
	err := r.db.QueryRow(ctx,
		`SELECT id, system_instructions, discord_channel_id, updated_at
		 FROM bot_config
		 ORDER BY id
		 LIMIT 1`,
	).Scan(&cfg.ID, &cfg.SystemInstructions, &cfg.DiscordChannelID, &cfg.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrConfigNotFound
		}
		return nil, err
	}
	return &cfg, nil
}

func (r *BotConfigRepository) Insert(ctx context.Context, cfg *domain.BotConfig) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO bot_config (system_instructions, discord_channel_id, updated_at)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		cfg.SystemInstructions, cfg.DiscordChannelID, cfg.UpdatedAt,
	).Scan(&cfg.ID)
}

func (r *BotConfigRepository) Update(ctx context.Context, cfg *domain.BotConfig) error {
	_, err := r.db.Exec(ctx,
		`UPDATE bot_config
		 SET system_instructions = $2, discord_channel_id = $3, updated_at = $4
		 WHERE id = $1`,
		cfg.ID, cfg.SystemInstructions, cfg.DiscordChannelID, cfg.UpdatedAt,
	)
	return err
}
