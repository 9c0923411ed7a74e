package jobs

import (
	"context"
	"fmt"
	"log"
	"time"
)

// StatusStore flips the bot's heartbeat row to disconnected once it has gone
// quiet for longer than staleAfter.
type StatusStore interface {
	MarkDisconnectedIfStale(ctx context.Context, staleAfter time.Duration) (bool, error)
}

// HeartbeatSweeper marks the bot disconnected when its heartbeat goes stale.
// The bot process upserts a heartbeat while it runs; if it is killed it never
// gets to write connected=false, so the dashboard would show a live bot
// forever without this sweep.
type HeartbeatSweeper struct {
	store      StatusStore
	staleAfter time.Duration
}

func NewHeartbeatSweeper(store StatusStore, staleAfter time.Duration) *HeartbeatSweeper {
	return &HeartbeatSweeper{store: store, staleAfter: staleAfter}
}

// Sweep implements the Sweeper interface.
func (s *HeartbeatSweeper) Sweep(ctx context.Context) error {
	flipped, err := s.store.MarkDisconnectedIfStale(ctx, s.staleAfter)
	if err != nil {
		return fmt.Errorf("failed to sweep heartbeat: %w", err)
	}
	if flipped {
		log.Printf("heartbeat stale for over %v, marked bot disconnected", s.staleAfter)
	}
	return nil
}
