package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/quillhaven/botadmin/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStatusService struct {
	mock.Mock
}

func (m *MockStatusService) Get(ctx context.Context) (*domain.BotStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BotStatus), args.Error(1)
}

func TestStatusHandler_Get(t *testing.T) {
	mockSvc := new(MockStatusService)
	handler := NewStatusHandler(mockSvc)

	heartbeat := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mockSvc.On("Get", mock.Anything).Return(&domain.BotStatus{
		ID:            domain.BotStatusRowID,
		Connected:     true,
		LastHeartbeat: heartbeat,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/bot/status", nil)
	w := httptest.NewRecorder()

	handler.Get(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp BotStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Connected)
	assert.Equal(t, heartbeat, resp.LastHeartbeat)
}

func TestStatusHandler_Get_MissingRow(t *testing.T) {
	mockSvc := new(MockStatusService)
	handler := NewStatusHandler(mockSvc)

	mockSvc.On("Get", mock.Anything).Return(nil, domain.ErrStatusNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/bot/status", nil)
	w := httptest.NewRecorder()

	handler.Get(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
