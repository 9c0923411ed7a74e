package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/quillhaven/botadmin/internal/api"
	"github.com/quillhaven/botadmin/internal/domain"
	"github.com/quillhaven/botadmin/internal/service"
)

type ConfigService interface {
	Get(ctx context.Context) (*domain.BotConfig, error)
	Update(ctx context.Context, input service.UpdateConfigInput) (*domain.BotConfig, error)
	Status(ctx context.Context) (*service.ConfigStatus, error)
}

// ConfigHandler serves the bot configuration endpoints.
type ConfigHandler struct {
	svc ConfigService
}

func NewConfigHandler(svc ConfigService) *ConfigHandler {
	return &ConfigHandler{svc: svc}
}

type ConfigPayload struct {
	ID                 int64  `json:"id"`
	SystemInstructions string `json:"system_instructions"`
	DiscordChannelID   string `json:"discord_channel_id"`
	UpdatedAt          string `json:"updated_at"`
}

// GetConfigResponse wraps the config row; Config is null when no row exists.
type GetConfigResponse struct {
	Config *ConfigPayload `json:"config"`
}

type UpdateConfigRequest struct {
	SystemInstructions *string `json:"system_instructions"`
	DiscordChannelID   *string `json:"discord_channel_id"`
}

type SuccessFlagResponse struct {
	Success bool `json:"success"`
}

type ConfigStatusResponse struct {
	LastUpdatedAt      *time.Time `json:"last_updated_at"`
	InstructionPreview *string    `json:"instruction_preview"`
}

func configToPayload(cfg *domain.BotConfig) *ConfigPayload {
	if cfg == nil {
		return nil
	}
	return &ConfigPayload{
		ID:                 cfg.ID,
		SystemInstructions: cfg.SystemInstructions,
		DiscordChannelID:   cfg.DiscordChannelID,
		UpdatedAt:          cfg.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.svc.Get(r.Context())
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, GetConfigResponse{Config: configToPayload(cfg)})
}

func (h *ConfigHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.SystemInstructions == nil && req.DiscordChannelID == nil {
		api.Error(w, http.StatusBadRequest, "no fields to update")
		return
	}

	if _, err := h.svc.Update(r.Context(), service.UpdateConfigInput{
		SystemInstructions: req.SystemInstructions,
		DiscordChannelID:   req.DiscordChannelID,
	}); err != nil {
		api.HandleError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, SuccessFlagResponse{Success: true})
}

func (h *ConfigHandler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.svc.Status(r.Context())
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, ConfigStatusResponse{
		LastUpdatedAt:      status.LastUpdatedAt,
		InstructionPreview: status.InstructionPreview,
	})
}
