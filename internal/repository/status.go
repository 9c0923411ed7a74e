package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quillhaven/botadmin/internal/domain"
)

// BotStatusRepository persists the singleton heartbeat row the bot upserts
// while connected.
type BotStatusRepository struct {
	db dbtx
}

func NewBotStatusRepository(pool *pgxpool.Pool) *BotStatusRepository {
	return &BotStatusRepository{db: pool}
}

// Get returns the heartbeat row, or domain.ErrStatusNotFound when the bot has
// never reported in.
func (r *BotStatusRepository) Get(ctx context.Context) (*domain.BotStatus, error) {
	var s domain.BotStatus
	err := r.db.QueryRow(ctx,
		`SELECT id, connected, last_heartbeat FROM bot_status WHERE id = $1`,
		domain.BotStatusRowID,
	).Scan(&s.ID, &s.Connected, &s.LastHeartbeat)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrStatusNotFound
		}
		return nil, err
	}
	return &s, nil
}

// UpsertHeartbeat records a heartbeat against the fixed status row.
func (r *BotStatusRepository) UpsertHeartbeat(ctx context.Context, connected bool) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO bot_status (id, connected, last_heartbeat)
		 VALUES ($1, $2, now())
		 ON CONFLICT (id) DO UPDATE
		 SET connected = EXCLUDED.connected, last_heartbeat = EXCLUDED.last_heartbeat`,
		domain.BotStatusRowID, connected,
	)
	return err
}

// MarkDisconnectedIfStale flips connected to false when the last heartbeat is
// older than staleAfter. Returns true when the row was flipped.
func (r *BotStatusRepository) MarkDisconnectedIfStale(ctx context.Context, staleAfter time.Duration) (bool, error) {
	cutoff := time.Now().UTC().Add(-staleAfter)
	tag, err := r.db.Exec(ctx,
		`UPDATE bot_status
		 SET connected = FALSE
		 WHERE id = $1 AND connected AND last_heartbeat < $2`,
		domain.BotStatusRowID, cutoff,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
