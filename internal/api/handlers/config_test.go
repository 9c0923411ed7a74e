package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/quillhaven/botadmin/internal/domain"
	"github.com/quillhaven/botadmin/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockConfigService struct {
	mock.Mock
}

func (m *MockConfigService) Get(ctx context.Context) (*domain.BotConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BotConfig), args.Error(1)
}

func (m *MockConfigService) Update(ctx context.Context, input service.UpdateConfigInput) (*domain.BotConfig, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BotConfig), args.Error(1)
}

func (m *MockConfigService) Status(ctx context.Context) (*service.ConfigStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ConfigStatus), args.Error(1)
}

func TestConfigHandler_Get(t *testing.T) {
	mockSvc := new(MockConfigService)
	handler := NewConfigHandler(mockSvc)

	mockSvc.On("Get", mock.Anything).Return(&domain.BotConfig{
		ID:                 1,
		SystemInstructions: "Be helpful.",
		DiscordChannelID:   "12345",
		UpdatedAt:          time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/config", nil)
	w := httptest.NewRecorder()

	handler.Get(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp GetConfigResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Config)
	assert.Equal(t, "Be helpful.", resp.Config.SystemInstructions)
	assert.Equal(t, "12345", resp.Config.DiscordChannelID)
}

func TestConfigHandler_Get_NoRowIsNull(t *testing.T) {
	mockSvc := new(MockConfigService)
	handler := NewConfigHandler(mockSvc)

	mockSvc.On("Get", mock.Anything).Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/config", nil)
	w := httptest.NewRecorder()

	handler.Get(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"config":null}`, w.Body.String())
}

func TestConfigHandler_Update(t *testing.T) {
	mockSvc := new(MockConfigService)
	handler := NewConfigHandler(mockSvc)

	mockSvc.On("Update", mock.Anything, mock.MatchedBy(func(input service.UpdateConfigInput) bool {
		return input.SystemInstructions != nil && *input.SystemInstructions == "new prompt" && input.DiscordChannelID == nil
	})).Return(&domain.BotConfig{ID: 1, SystemInstructions: "new prompt"}, nil)

	body := `{"system_instructions":"new prompt"}`
	req := httptest.NewRequest(http.MethodPost, "/api/config", bytes.NewReader([]byte(body)))
	w := httptest.NewRecorder()

	handler.Update(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
	mockSvc.AssertExpectations(t)
}

func TestConfigHandler_Update_InvalidJSON(t *testing.T) {
	mockSvc := new(MockConfigService)
	handler := NewConfigHandler(mockSvc)

	req := httptest.NewRequest(http.MethodPost, "/api/config", bytes.NewReader([]byte(`{invalid`)))
	w := httptest.NewRecorder()

	handler.Update(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Update")
}

func TestConfigHandler_Update_NoFields(t *testing.T) {
	mockSvc := new(MockConfigService)
	handler := NewConfigHandler(mockSvc)

	req := httptest.NewRequest(http.MethodPost, "/api/config", bytes.NewReader([]byte(`{}`)))
	w := httptest.NewRecorder()

	handler.Update(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Update")
}

func TestConfigHandler_Status(t *testing.T) {
	mockSvc := new(MockConfigService)
	handler := NewConfigHandler(mockSvc)

	updated := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	preview := "Be helpful."
	mockSvc.On("Status", mock.Anything).Return(&service.ConfigStatus{
		LastUpdatedAt:      &updated,
		InstructionPreview: &preview,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/config/status", nil)
	w := httptest.NewRecorder()

	handler.Status(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp ConfigStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.InstructionPreview)
	assert.Equal(t, "Be helpful.", *resp.InstructionPreview)
}

func TestConfigHandler_Status_Empty(t *testing.T) {
	mockSvc := new(MockConfigService)
	handler := NewConfigHandler(mockSvc)

	mockSvc.On("Status", mock.Anything).Return(&service.ConfigStatus{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/config/status", nil)
	w := httptest.NewRecorder()

	handler.Status(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"last_updated_at":null,"instruction_preview":null}`, w.Body.String())
}

func TestConfigHandler_Get_ServiceError(t *testing.T) {
	mockSvc := new(MockConfigService)
	handler := NewConfigHandler(mockSvc)

	mockSvc.On("Get", mock.Anything).Return(nil, errors.New("connection refused"))

	req := httptest.NewRequest(http.MethodGet, "/api/config", nil)
	w := httptest.NewRecorder()

	handler.Get(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
