package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/quillhaven/botadmin/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBotConfigRepo struct {
	mock.Mock
}

func (m *MockBotConfigRepo) Get(ctx context.Context) (*domain.BotConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BotConfig), args.Error(1)
}

func (m *MockBotConfigRepo) Insert(ctx context.Context, cfg *domain.BotConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

func (m *MockBotConfigRepo) Update(ctx context.Context, cfg *domain.BotConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

func strPtr(s string) *string { return &s }

func TestBotConfigService_Get_MissingRowIsNil(t *testing.T) {
	repo := new(MockBotConfigRepo)
	svc := NewBotConfigService(repo)

	repo.On("Get", mock.Anything).Return(nil, domain.ErrConfigNotFound)

	cfg, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestBotConfigService_Get_RepoError(t *testing.T) {
	repo := new(MockBotConfigRepo)
	svc := NewBotConfigService(repo)

	repo.On("Get", mock.Anything).Return(nil, errors.New("connection refused"))

	_, err := svc.Get(context.Background())
	assert.Error(t, err)
}

func TestBotConfigService_Update_PartialOnExisting(t *testing.T) {
	repo := new(MockBotConfigRepo)
	svc := NewBotConfigService(repo)

	existing := &domain.BotConfig{
		ID:                 1,
		SystemInstructions: "old instructions",
		DiscordChannelID:   "12345",
		UpdatedAt:          time.Now().UTC().Add(-time.Hour),
	}
	repo.On("Get", mock.Anything).Return(existing, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(cfg *domain.BotConfig) bool {
		return cfg.SystemInstructions == "new instructions" && cfg.DiscordChannelID == "12345"
	})).Return(nil)

	before := time.Now().UTC()
	cfg, err := svc.Update(context.Background(), UpdateConfigInput{SystemInstructions: strPtr("new instructions")})

	require.NoError(t, err)
	assert.Equal(t, "new instructions", cfg.SystemInstructions)
	assert.Equal(t, "12345", cfg.DiscordChannelID)
	assert.False(t, cfg.UpdatedAt.Before(before))
	repo.AssertExpectations(t)
}

func TestBotConfigService_Update_InsertsDefaultRowWhenEmpty(t *testing.T) {
	repo := new(MockBotConfigRepo)
	svc := NewBotConfigService(repo)

	repo.On("Get", mock.Anything).Return(nil, domain.ErrConfigNotFound)
	repo.On("Insert", mock.Anything, mock.MatchedBy(func(cfg *domain.BotConfig) bool {
		return cfg.SystemInstructions == "be nice" && cfg.DiscordChannelID == domain.DefaultChannelID
	})).Return(nil)

	cfg, err := svc.Update(context.Background(), UpdateConfigInput{SystemInstructions: strPtr("be nice")})

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultChannelID, cfg.DiscordChannelID)
	repo.AssertExpectations(t)
}

func TestBotConfigService_Update_ChannelOnlyInsert(t *testing.T) {
	repo := new(MockBotConfigRepo)
	svc := NewBotConfigService(repo)

	repo.On("Get", mock.Anything).Return(nil, domain.ErrConfigNotFound)
	repo.On("Insert", mock.Anything, mock.MatchedBy(func(cfg *domain.BotConfig) bool {
		return cfg.DiscordChannelID == "98765" && cfg.SystemInstructions == ""
	})).Return(nil)

	cfg, err := svc.Update(context.Background(), UpdateConfigInput{DiscordChannelID: strPtr("98765")})

	require.NoError(t, err)
	assert.Equal(t, "98765", cfg.DiscordChannelID)
}

func TestBotConfigService_Status_Empty(t *testing.T) {
	repo := new(MockBotConfigRepo)
	svc := NewBotConfigService(repo)

	repo.On("Get", mock.Anything).Return(nil, domain.ErrConfigNotFound)

	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Nil(t, status.LastUpdatedAt)
	assert.Nil(t, status.InstructionPreview)
}

func TestBotConfigService_Status_PreviewTruncated(t *testing.T) {
	repo := new(MockBotConfigRepo)
	svc := NewBotConfigService(repo)

	updated := time.Now().UTC()
	repo.On("Get", mock.Anything).Return(&domain.BotConfig{
		SystemInstructions: strings.Repeat("z", 500),
		DiscordChannelID:   "1",
		UpdatedAt:          updated,
	}, nil)

	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	require.NotNil(t, status.LastUpdatedAt)
	assert.Equal(t, updated, *status.LastUpdatedAt)
	require.NotNil(t, status.InstructionPreview)
	assert.Len(t, *status.InstructionPreview, domain.InstructionPreviewLen)
}
