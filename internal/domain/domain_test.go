package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Error(t *testing.T) {
	err := NewDomainError(ErrCodeInvalidRequest, "No file uploaded")
	assert.Equal(t, "[INVALID_REQUEST] No file uploaded", err.Error())
}

func TestDomainError_ErrorWithCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewDomainErrorWithCause(ErrCodeEmbedding, "embedding call failed", cause)
	assert.Equal(t, "[EMBEDDING_ERROR] embedding call failed: connection refused", err.Error())
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestBotConfig_InstructionPreview_Short(t *testing.T) {
	cfg := &BotConfig{SystemInstructions: "Be helpful."}
	assert.Equal(t, "Be helpful.", cfg.InstructionPreview())
}

func TestBotConfig_InstructionPreview_Truncates(t *testing.T) {
	cfg := &BotConfig{SystemInstructions: strings.Repeat("x", 300)}
	assert.Len(t, cfg.InstructionPreview(), InstructionPreviewLen)
}

func TestBotConfig_InstructionPreview_MultibyteRunes(t *testing.T) {
	cfg := &BotConfig{SystemInstructions: strings.Repeat("é", 150)}
	preview := cfg.InstructionPreview()
	assert.Equal(t, strings.Repeat("é", InstructionPreviewLen), preview)
}

func TestBotStatus_StaleSince(t *testing.T) {
	now := time.Now().UTC()
	status := &BotStatus{LastHeartbeat: now.Add(-90 * time.Second)}
	assert.True(t, status.StaleSince(now, 60*time.Second))
	assert.False(t, status.StaleSince(now, 2*time.Minute))
}

func TestIngestReport_Partial(t *testing.T) {
	report := &IngestReport{TotalChunks: 3, Stored: 2, Failures: []ChunkFailure{
		{Index: 1, Stage: ChunkStageEmbedding, Err: errors.New("quota")},
	}}
	assert.True(t, report.Partial())

	allFailed := &IngestReport{TotalChunks: 1, Failures: []ChunkFailure{
		{Index: 0, Stage: ChunkStageStorage, Err: errors.New("width mismatch")},
	}}
	assert.False(t, allFailed.Partial())

	clean := &IngestReport{TotalChunks: 2, Stored: 2}
	assert.False(t, clean.Partial())
}
