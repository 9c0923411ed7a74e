package service

import (
	"context"
	"errors"
	"time"

	"github.com/quillhaven/botadmin/internal/domain"
)

// BotConfigRepository defines the persistence interface for the single-row
// bot configuration.
type BotConfigRepository interface {
	Get(ctx context.Context) (*domain.BotConfig, error)
	Insert(ctx context.Context, cfg *domain.BotConfig) error
	Update(ctx context.Context, cfg *domain.BotConfig) error
}

// UpdateConfigInput carries a partial config update. Nil fields are left
// untouched on an existing row.
type UpdateConfigInput struct {
	SystemInstructions *string
	DiscordChannelID   *string
}

// ConfigStatus is the freshness summary shown on the dashboard.
type ConfigStatus struct {
	LastUpdatedAt      *time.Time
	InstructionPreview *string
}

// BotConfigService reads and writes the bot's configuration row.
type BotConfigService struct {
	repo BotConfigRepository
	now  func() time.Time
}

func NewBotConfigService(repo BotConfigRepository) *BotConfigService {
	return &BotConfigService{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// Get returns the current config, or nil when no row exists yet. A missing
// row is not an error for readers.
func (s *BotConfigService) Get(ctx context.Context) (*domain.BotConfig, error) {
	cfg, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrConfigNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return cfg, nil
}

// Update applies a partial update to the first config row, creating a default
// row when the table is empty. A row created without a channel ID gets the
// placeholder the bot recognizes as unconfigured.
func (s *BotConfigService) Update(ctx context.Context, input UpdateConfigInput) (*domain.BotConfig, error) {
	existing, err := s.repo.Get(ctx)
	if err != nil && !errors.Is(err, domain.ErrConfigNotFound) {
		return nil, err
	}

	if existing == nil {
		cfg := &domain.BotConfig{
			SystemInstructions: "",
			DiscordChannelID:   domain.DefaultChannelID,
			UpdatedAt:          s.now(),
		}
		if input.SystemInstructions != nil {
			cfg.SystemInstructions = *input.SystemInstructions
		}
		if input.DiscordChannelID != nil {
			cfg.DiscordChannelID = *input.DiscordChannelID
		}
		if err := s.repo.Insert(ctx, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	if input.SystemInstructions != nil {
		existing.SystemInstructions = *input.SystemInstructions
	}
	if input.DiscordChannelID != nil {
		existing.DiscordChannelID = *input.DiscordChannelID
	}
	existing.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Status returns when the config was last touched and a preview of the
// system instructions. Both are nil when no row exists.
func (s *BotConfigService) Status(ctx context.Context) (*ConfigStatus, error) {
	cfg, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return &ConfigStatus{}, nil
	}

	status := &ConfigStatus{LastUpdatedAt: &cfg.UpdatedAt}
	if cfg.SystemInstructions != "" {
		preview := cfg.InstructionPreview()
		status.InstructionPreview = &preview
	}
	return status, nil
}
