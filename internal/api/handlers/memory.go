package handlers

import (
	"context"
	"net/http"

	"github.com/quillhaven/botadmin/internal/api"
	"github.com/quillhaven/botadmin/internal/service"
)

type MemoryService interface {
	Preview(ctx context.Context) (*service.MemoryPreview, error)
	Clear(ctx context.Context) error
}

// MemoryHandler serves the conversation-memory endpoints.
type MemoryHandler struct {
	svc MemoryService
}

func NewMemoryHandler(svc MemoryService) *MemoryHandler {
	return &MemoryHandler{svc: svc}
}

type MemoryPreviewResponse struct {
	Summary   *string `json:"summary"`
	CharCount int     `json:"char_count"`
}

func (h *MemoryHandler) Preview(w http.ResponseWriter, r *http.Request) {
	preview, err := h.svc.Preview(r.Context())
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, MemoryPreviewResponse{
		Summary:   preview.Summary,
		CharCount: preview.CharCount,
	})
}

func (h *MemoryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Clear(r.Context()); err != nil {
		api.HandleError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, SuccessFlagResponse{Success: true})
}
