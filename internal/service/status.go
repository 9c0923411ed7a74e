package service

import (
	"context"

	"github.com/quillhaven/botadmin/internal/domain"
)

// BotStatusRepository defines the persistence interface for the bot's
// heartbeat row.
type BotStatusRepository interface {
	Get(ctx context.Context) (*domain.BotStatus, error)
	UpsertHeartbeat(ctx context.Context, connected bool) error
}

// StatusService reads the bot's connectivity heartbeat.
type StatusService struct {
	repo BotStatusRepository
}

func NewStatusService(repo BotStatusRepository) *StatusService {
	return &StatusService{repo: repo}
}

// Get returns the bot status row. The bot writes it; the dashboard only
// reads, so a missing row surfaces as domain.ErrStatusNotFound.
func (s *StatusService) Get(ctx context.Context) (*domain.BotStatus, error) {
	return s.repo.Get(ctx)
}
