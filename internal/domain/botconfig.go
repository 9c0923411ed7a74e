package domain

import (
	"time"
	"unicode/utf8"
)

// DefaultChannelID is stored when a config row is created before the operator
// has pointed the bot at a channel.
const DefaultChannelID = "UNKNOWN_PLEASE_UPDATE"

// InstructionPreviewLen is the number of characters of the system instructions
// surfaced by the config status endpoint.
const InstructionPreviewLen = 120

// BotConfig is the single-row configuration consumed by the chat bot: the
// system prompt it runs with and the channel it is restricted to.
type BotConfig struct {
	ID                 int64
	SystemInstructions string
	DiscordChannelID   string
	UpdatedAt          time.Time
}

// InstructionPreview returns the leading characters of the system instructions
// for dashboard display. Returns the whole string when it is shorter than the
// preview length.
func (c *BotConfig) InstructionPreview() string {
	if utf8.RuneCountInString(c.SystemInstructions) <= InstructionPreviewLen {
		return c.SystemInstructions
	}
	return string([]rune(c.SystemInstructions)[:InstructionPreviewLen])
}
