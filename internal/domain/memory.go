package domain

import "time"

// MemoryEntry is one row of the bot's rolling conversation memory. The bot
// appends entries as it chats; the dashboard only ever reads the most recent
// summary or clears the table wholesale.
type MemoryEntry struct {
	ID        int64
	UserID    string
	Message   string
	Summary   string
	CreatedAt time.Time
}
