package get_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) GetByID(ctx context.Context, id uuid.UUID) (*models.BookingResponse, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*models.BookingResponse)
	return res, args.Error(1)
}

func serve(t *testing.T, svc *mockService, bookingID string) *httptest.ResponseRecorder {
	t.Helper()
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/bookings/{bookingId}", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+bookingID, nil))
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestHandler_OK(t *testing.T) {
	svc := &mockService{}
	id := uuid.New()
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	svc.On("GetByID", mock.Anything, id).Return(&models.BookingResponse{
		ID:         id,
		Title:      "Иван Петров",
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
		Status:     "confirmed",
		CustomerID: "1001",
	}, nil).Once()

	rec := serve(t, svc, id.String())

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, id, resp.ID)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, "1001", resp.CustomerID)
	svc.AssertExpectations(t)
}

func TestHandler_Errors(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name       string
		bookingID  string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "invalid id", bookingID: "not-a-uuid", wantStatus: http.StatusBadRequest, wantMsg: msgInvalidBookingID},
		{name: "not found", bookingID: id.String(), err: domain.ErrBookingNotFound, wantStatus: http.StatusNotFound, wantMsg: msgNotFound},
		{name: "storage failure", bookingID: id.String(), err: errors.New("connection refused"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			if tt.err != nil {
				svc.On("GetByID", mock.Anything, id).Return(nil, tt.err).Once()
			}

			rec := serve(t, svc, tt.bookingID)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, errorMessage(t, rec))
			}
			if tt.err == nil {
				svc.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
			}
			svc.AssertExpectations(t)
		})
	}
}
