package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/quillhaven/botadmin/internal/api/handlers"
	"github.com/quillhaven/botadmin/internal/domain"
	"github.com/quillhaven/botadmin/internal/service"
	"github.com/stretchr/testify/assert"
)

type stubIngestService struct{}

func (s *stubIngestService) Ingest(ctx context.Context, input service.IngestInput) (*domain.IngestReport, error) {
	return &domain.IngestReport{TotalChunks: 1, Stored: 1}, nil
}

type stubConfigService struct{}

func (s *stubConfigService) Get(ctx context.Context) (*domain.BotConfig, error) {
	return nil, nil
}

func (s *stubConfigService) Update(ctx context.Context, input service.UpdateConfigInput) (*domain.BotConfig, error) {
	return &domain.BotConfig{ID: 1}, nil
}

func (s *stubConfigService) Status(ctx context.Context) (*service.ConfigStatus, error) {
	return &service.ConfigStatus{}, nil
}

type stubMemoryService struct{}

func (s *stubMemoryService) Preview(ctx context.Context) (*service.MemoryPreview, error) {
	return &service.MemoryPreview{}, nil
}

func (s *stubMemoryService) Clear(ctx context.Context) error {
	return nil
}

type stubStatusService struct{}

func (s *stubStatusService) Get(ctx context.Context) (*domain.BotStatus, error) {
	return &domain.BotStatus{ID: 1, Connected: true, LastHeartbeat: time.Now().UTC()}, nil
}

func newTestRouter(maxBody int64) http.Handler {
	return NewRouter(RouterConfig{
		UploadHandler: handlers.NewUploadHandler(&stubIngestService{}),
		ConfigHandler: handlers.NewConfigHandler(&stubConfigService{}),
		MemoryHandler: handlers.NewMemoryHandler(&stubMemoryService{}),
		StatusHandler: handlers.NewStatusHandler(&stubStatusService{}),
		MaxBodyBytes:  maxBody,
	})
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(0)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestRouter_Routes(t *testing.T) {
	router := newTestRouter(0)

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/api/config", "", http.StatusOK},
		{http.MethodPost, "/api/config", `{"system_instructions":"x"}`, http.StatusOK},
		{http.MethodGet, "/api/config/status", "", http.StatusOK},
		{http.MethodGet, "/api/memory/preview", "", http.StatusOK},
		{http.MethodDelete, "/api/memory", "", http.StatusOK},
		{http.MethodGet, "/api/bot/status", "", http.StatusOK},
		{http.MethodGet, "/api/unknown", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, bytes.NewReader([]byte(tt.body)))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, tt.want, w.Code, "%s %s", tt.method, tt.path)
	}
}

func TestRouter_RequestIDHeader(t *testing.T) {
	router := newTestRouter(0)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_BodyLimit(t *testing.T) {
	router := newTestRouter(64)

	body := strings.Repeat("x", 1024)
	req := httptest.NewRequest(http.MethodPost, "/api/config", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
