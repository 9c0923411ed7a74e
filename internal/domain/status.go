package domain

import "time"

// BotStatusRowID is the fixed primary key of the singleton bot_status row.
// The bot upserts its heartbeat against this ID.
const BotStatusRowID = 1

// BotStatus is the bot's connectivity heartbeat as seen by the dashboard.
type BotStatus struct {
	ID            int64
	Connected     bool
	LastHeartbeat time.Time
}

// StaleSince reports whether the last heartbeat is older than the given
// threshold relative to now.
func (s *BotStatus) StaleSince(now time.Time, threshold time.Duration) bool {
	return now.Sub(s.LastHeartbeat) > threshold
}
