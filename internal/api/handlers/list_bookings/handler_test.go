package list_bookings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*models.BookingListResponse)
	return res, args.Error(1)
}

func serve(t *testing.T, svc *mockService, query string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(svc, logger.NewNop())
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings?"+query, nil))
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestHandler_PassesFilters(t *testing.T) {
	svc := &mockService{}
	clientID := uuid.New()
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	bookingID := uuid.New()

	svc.On("List", mock.Anything, mock.MatchedBy(func(r *models.ListBookingsRequest) bool {
		return r.IncludeCancelled &&
			r.Status != nil && *r.Status == "cancelled" &&
			r.ClientID != nil && *r.ClientID == clientID &&
			r.From != nil && r.From.Equal(from) &&
			r.To != nil && r.To.Equal(to)
	})).Return(&models.BookingListResponse{
		Bookings: []models.BookingResponse{{ID: bookingID, Status: "cancelled", CustomerID: "1000"}},
	}, nil).Once()

	query := url.Values{}
	query.Set("from", from.Format(time.RFC3339))
	query.Set("to", to.Format(time.RFC3339))
	query.Set("status", "cancelled")
	query.Set("clientId", clientID.String())
	query.Set("includeCancelled", "true")

	rec := serve(t, svc, query.Encode())

	require.Equal(t, http.StatusOK, rec.Code)
	var resp []models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, bookingID, resp[0].ID)
	svc.AssertExpectations(t)
}

func TestHandler_DefaultsExcludeCancelled(t *testing.T) {
	svc := &mockService{}
	svc.On("List", mock.Anything, mock.MatchedBy(func(r *models.ListBookingsRequest) bool {
		return !r.IncludeCancelled && r.Status == nil && r.ClientID == nil && r.From == nil && r.To == nil
	})).Return(&models.BookingListResponse{Bookings: []models.BookingResponse{}}, nil).Once()

	rec := serve(t, svc, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestHandler_InvalidQuery(t *testing.T) {
	for name, query := range map[string]string{
		"from not rfc3339":      "from=2026-03-02",
		"to not rfc3339":        "to=tomorrow",
		"includeCancelled junk": "includeCancelled=maybe",
		"clientId not uuid":     "clientId=17",
	} {
		t.Run(name, func(t *testing.T) {
			svc := &mockService{}

			rec := serve(t, svc, query)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, msgInvalidParams, errorMessage(t, rec))
			svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "unknown status", err: fmt.Errorf("%w: List - status: unknown", bookings.ErrInvalidInput), wantStatus: http.StatusBadRequest},
		{name: "storage failure", err: errors.New("connection refused"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("List", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			rec := serve(t, svc, "status=archived")

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}
