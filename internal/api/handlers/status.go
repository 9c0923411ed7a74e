package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/quillhaven/botadmin/internal/api"
	"github.com/quillhaven/botadmin/internal/domain"
)

type StatusService interface {
	Get(ctx context.Context) (*domain.BotStatus, error)
}

// StatusHandler serves the bot connectivity endpoint.
type StatusHandler struct {
	svc StatusService
}

func NewStatusHandler(svc StatusService) *StatusHandler {
	return &StatusHandler{svc: svc}
}

type BotStatusResponse struct {
	Connected     bool      `json:"connected"`
	LastHeartbeat time.Time `json:"last_heartbeat"`
}

func (h *StatusHandler) Get(w http.ResponseWriter, r *http.Request) {
	status, err := h.svc.Get(r.Context())
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, BotStatusResponse{
		Connected:     status.Connected,
		LastHeartbeat: status.LastHeartbeat,
	})
}
