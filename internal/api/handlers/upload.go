package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/quillhaven/botadmin/internal/api"
	"github.com/quillhaven/botadmin/internal/domain"
	"github.com/quillhaven/botadmin/internal/service"
)

type IngestService interface {
	Ingest(ctx context.Context, input service.IngestInput) (*domain.IngestReport, error)
}

// UploadHandler accepts PDF uploads and feeds them through the ingestion
// pipeline.
type UploadHandler struct {
	svc IngestService
}

func NewUploadHandler(svc IngestService) *UploadHandler {
	return &UploadHandler{svc: svc}
}

// UploadResponse reports how many chunks were stored. The count covers only
// successfully stored chunks; per-chunk failures are visible in server logs.
type UploadResponse struct {
	Success         bool `json:"success"`
	ChunksProcessed int  `json:"chunksProcessed"`
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		api.Error(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "failed to read uploaded file")
		return
	}

	report, err := h.svc.Ingest(r.Context(), service.IngestInput{
		Filename: header.Filename,
		Data:     data,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, UploadResponse{
		Success:         true,
		ChunksProcessed: report.Stored,
	})
}
