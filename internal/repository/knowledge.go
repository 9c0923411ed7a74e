package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/quillhaven/botadmin/internal/domain"
)

// KnowledgeRepository persists embedded document chunks.
type KnowledgeRepository struct {
	db dbtx
}

func NewKnowledgeRepository(pool *pgxpool.Pool) *KnowledgeRepository {
	return &KnowledgeRepository{db: pool}
}

// Insert stores one chunk with its embedding. Inserts are append-only;
// re-ingesting a document produces a second copy of every chunk.
func (r *KnowledgeRepository) Insert(ctx context.Context, rec *domain.KnowledgeRecord) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO knowledge_base (content, embedding)
		 VALUES ($1, $2)
		 RETURNING id, created_at`,
		rec.Content, pgvector.NewVector(rec.Embedding),
	).Scan(&rec.ID, &rec.CreatedAt)
}

// Count returns the number of stored chunks.
func (r *KnowledgeRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM knowledge_base`).Scan(&n)
	return n, err
}
