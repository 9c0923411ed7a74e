package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quillhaven/botadmin/internal/domain"
)

// MemoryRepository persists the bot's rolling conversation memory.
type MemoryRepository struct {
	db dbtx
}

func NewMemoryRepository(pool *pgxpool.Pool) *MemoryRepository {
	return &MemoryRepository{db: pool}
}

// Latest returns the most recent memory entry, or domain.ErrMemoryEmpty when
// the table is empty.
func (r *MemoryRepository) Latest(ctx context.Context) (*domain.MemoryEntry, error) {
	var e domain.MemoryEntry
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, message, summary, created_at
		 FROM chat_memory
		 ORDER BY created_at DESC, id DESC
		 LIMIT 1`,
	).Scan(&e.ID, &e.UserID, &e.Message, &e.Summary, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMemoryEmpty
		}
		return nil, err
	}
	return &e, nil
}

// Insert appends one memory entry. The bot is the normal writer; the admin
// CLI uses this for seeding.
func (r *MemoryRepository) Insert(ctx context.Context, e *domain.MemoryEntry) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO chat_memory (user_id, message, summary)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		e.UserID, e.Message, e.Summary,
	).Scan(&e.ID, &e.CreatedAt)
}

// DeleteAll wipes the memory table.
func (r *MemoryRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM chat_memory`)
	return err
}
