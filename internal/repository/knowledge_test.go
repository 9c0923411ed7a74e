//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillhaven/botadmin/internal/domain"
	"github.com/quillhaven/botadmin/internal/testutil"
)

func testEmbedding(fill float32) []float32 {
	emb := make([]float32, 1536)
	for i := range emb {
		emb[i] = fill
	}
	return emb
}

func TestKnowledgeRepository_Insert(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewKnowledgeRepository(pool)

	rec := &domain.KnowledgeRecord{
		Content:   "payment plans are available on request",
		Embedding: testEmbedding(0.1),
	}
	require.NoError(t, repo.Insert(ctx, rec))
	assert.NotZero(t, rec.ID)
	assert.False(t, rec.CreatedAt.IsZero())

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestKnowledgeRepository_Insert_DuplicatesAllowed(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewKnowledgeRepository(pool)

	first := &domain.KnowledgeRecord{Content: "same chunk", Embedding: testEmbedding(0.2)}
	second := &domain.KnowledgeRecord{Content: "same chunk", Embedding: testEmbedding(0.2)}
	require.NoError(t, repo.Insert(ctx, first))
	require.NoError(t, repo.Insert(ctx, second))
	assert.NotEqual(t, first.ID, second.ID)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
