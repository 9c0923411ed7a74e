package service

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/quillhaven/botadmin/internal/domain"
)

// MemoryRepository defines the persistence interface for conversation memory.
type MemoryRepository interface {
	Latest(ctx context.Context) (*domain.MemoryEntry, error)
	DeleteAll(ctx context.Context) error
}

// MemoryPreview is the most recent rolling summary and its length.
type MemoryPreview struct {
	Summary   *string
	CharCount int
}

// MemoryService exposes the dashboard's view of the bot's conversation
// memory: a read of the latest summary, and a wholesale clear.
type MemoryService struct {
	repo MemoryRepository
}

func NewMemoryService(repo MemoryRepository) *MemoryService {
	return &MemoryService{repo: repo}
}

// Preview returns the most recent summary. An empty memory table yields a nil
// summary and a zero count, not an error.
func (s *MemoryService) Preview(ctx context.Context) (*MemoryPreview, error) {
	entry, err := s.repo.Latest(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrMemoryEmpty) {
			return &MemoryPreview{}, nil
		}
		return nil, err
	}

	if entry.Summary == "" {
		return &MemoryPreview{}, nil
	}

	summary := entry.Summary
	return &MemoryPreview{
		Summary:   &summary,
		CharCount: utf8.RuneCountInString(summary),
	}, nil
}

// Clear deletes every memory row. The bot starts summarizing from scratch on
// its next message.
func (s *MemoryService) Clear(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}
