package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/quillhaven/botadmin/internal/domain"
)

// MockBotStatusRepository is a mock implementation of BotStatusRepository
type MockBotStatusRepository struct {
	mock.Mock
}

func (m *MockBotStatusRepository) Get(ctx context.Context) (*domain.BotStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BotStatus), args.Error(1)
}

func (m *MockBotStatusRepository) UpsertHeartbeat(ctx context.Context, connected bool) error {
	args := m.Called(ctx, connected)
	return args.Error(0)
}

func TestStatusService_Get(t *testing.T) {
	repo := new(MockBotStatusRepository)
	now := time.Now().UTC()
	repo.On("Get", mock.Anything).Return(&domain.BotStatus{
		ID:            domain.BotStatusRowID,
		Connected:     true,
		LastHeartbeat: now,
	}, nil)

	svc := NewStatusService(repo)
	status, err := svc.Get(context.Background())

	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, now, status.LastHeartbeat)
}

func TestStatusService_Get_NeverConnected(t *testing.T) {
	repo := new(MockBotStatusRepository)
	repo.On("Get", mock.Anything).Return(nil, domain.ErrStatusNotFound)

	svc := NewStatusService(repo)
	_, err := svc.Get(context.Background())

	assert.ErrorIs(t, err, domain.ErrStatusNotFound)
}
