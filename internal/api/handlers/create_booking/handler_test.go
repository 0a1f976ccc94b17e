package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	createBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*createBooking.Response)
	return res, args.Error(1)
}

const validBody = `{
	"title": "Иван Петров",
	"startTime": "2026-03-02T10:00:00Z",
	"endTime": "2026-03-02T11:00:00Z",
	"status": "pending",
	"email": "ivan@example.com"
}`

func serve(t *testing.T, uc *mockUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(uc, logger.NewNop())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestHandler_Created(t *testing.T) {
	uc := &mockUseCase{}
	id := uuid.New()
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	email := "ivan@example.com"

	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *createBooking.Request) bool {
		return r.Title == "Иван Петров" && r.StartTime == "2026-03-02T10:00:00Z" && r.Email != nil && *r.Email == email
	})).Return(&createBooking.Response{
		ID:         id,
		Title:      "Иван Петров",
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
		Status:     "pending",
		CustomerID: "1000",
		Email:      &email,
		CreatedAt:  start,
		UpdatedAt:  start,
	}, nil).Once()

	rec := serve(t, uc, validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, id, resp.ID)
	assert.Equal(t, "2026-03-02T10:00:00Z", resp.StartTime)
	assert.Equal(t, "2026-03-02T11:00:00Z", resp.EndTime)
	assert.Equal(t, "1000", resp.CustomerID)
	uc.AssertExpectations(t)
}

func TestHandler_InvalidBody(t *testing.T) {
	for name, body := range map[string]string{
		"malformed":     `{"title":`,
		"empty":         ``,
		"unknown field": `{"title":"x","companyId":1}`,
	} {
		t.Run(name, func(t *testing.T) {
			uc := &mockUseCase{}
			rec := serve(t, uc, body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, msgInvalidRequestBody, errorMessage(t, rec))
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_RuleViolations(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "missing field",
			err:        domain.NewFieldError(domain.ErrMissingField, "title"),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "не заполнено обязательное поле: title",
		},
		{
			name:       "too soon",
			err:        domain.NewLimitError(domain.ErrTooSoon, 4),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "бронирование возможно не менее чем за 4 ч. до начала",
		},
		{
			name:       "too far",
			err:        domain.NewLimitError(domain.ErrTooFar, 60),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "бронирование возможно не более чем на 60 дн. вперед",
		},
		{
			name:       "slot taken",
			err:        domain.NewRuleError(domain.ErrSlotTaken),
			wantStatus: http.StatusConflict,
			wantMsg:    "это время уже занято, выберите другое",
		},
		{
			name:       "concurrent booking",
			err:        domain.NewRuleError(domain.ErrConcurrentBooking),
			wantStatus: http.StatusConflict,
		},
		{
			name:       "outside hours",
			err:        domain.NewRuleError(domain.ErrOutsideHours),
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			rec := serve(t, uc, validBody)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, errorMessage(t, rec))
			}
		})
	}
}

func TestHandler_InternalErrorHidesDetails(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.Anything).
		Return(nil, errors.New("create_booking: internal error: pq: connection refused")).Once()

	rec := serve(t, uc, validBody)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "pq")
}
