package update_scheduling_settings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) UpdateSettings(ctx context.Context, patch domain.SettingsPatch) (*domain.SchedulingSettings, error) {
	args := m.Called(ctx, patch)
	res, _ := args.Get(0).(*domain.SchedulingSettings)
	return res, args.Error(1)
}

func serve(t *testing.T, svc *mockService, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/scheduling/settings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestHandler_PartialUpdate(t *testing.T) {
	svc := &mockService{}
	svc.On("UpdateSettings", mock.Anything, mock.MatchedBy(func(p domain.SettingsPatch) bool {
		return p.SlotDurationMinutes != nil && *p.SlotDurationMinutes == 30 &&
			p.MinAdvanceBookingHours == nil && p.MaxAdvanceBookingDays == nil
	})).Return(&domain.SchedulingSettings{
		ID:                     1,
		SlotDurationMinutes:    30,
		MinAdvanceBookingHours: 4,
		MaxAdvanceBookingDays:  30,
	}, nil).Once()

	rec := serve(t, svc, `{"slotDurationMinutes":30}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.SettingsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 30, resp.SlotDurationMinutes)
	assert.Equal(t, 4, resp.MinAdvanceBookingHours)
	assert.False(t, resp.IsDefault)
	svc.AssertExpectations(t)
}

func TestHandler_InvalidBody(t *testing.T) {
	for name, body := range map[string]string{
		"malformed":     `{"slotDurationMinutes":`,
		"wrong type":    `{"slotDurationMinutes":"thirty"}`,
		"unknown field": `{"timezone":"UTC"}`,
	} {
		t.Run(name, func(t *testing.T) {
			svc := &mockService{}

			rec := serve(t, svc, body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, msgInvalidRequestBody, errorMessage(t, rec))
			svc.AssertNotCalled(t, "UpdateSettings", mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "settings not seeded",
			err:        domain.ErrSettingsNotFound,
			wantStatus: http.StatusNotFound,
			wantMsg:    "настройки расписания еще не созданы",
		},
		{
			name:       "value above limit",
			err:        &domain.RuleError{Err: domain.ErrInvalidSettings, Field: "slotDurationMinutes", Limit: 480},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "недопустимое значение настройки: slotDurationMinutes (не более 480)",
		},
		{
			name:       "storage failure",
			err:        errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "внутренняя ошибка сервера",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("UpdateSettings", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			rec := serve(t, svc, `{"slotDurationMinutes":600}`)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMsg, errorMessage(t, rec))
			svc.AssertExpectations(t)
		})
	}
}
