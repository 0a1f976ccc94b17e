package create_booking

import (
	"time"

	"github.com/google/uuid"

	createBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Title       string     `json:"title"`
	StartTime   string     `json:"startTime"` // "2026-03-02T10:00:00+03:00"
	EndTime     string     `json:"endTime"`
	Status      string     `json:"status"` // pending | confirmed | cancelled
	Email       *string    `json:"email,omitempty"`
	Phone       *string    `json:"phone,omitempty"`
	CustomerID  string     `json:"customerId,omitempty"`
	ClientID    *uuid.UUID `json:"clientId,omitempty"`
	Description *string    `json:"description,omitempty"`
	Location    *string    `json:"location,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	StartTime   string     `json:"startTime"`
	EndTime     string     `json:"endTime"`
	Status      string     `json:"status"`
	ClientID    *uuid.UUID `json:"clientId,omitempty"`
	CustomerID  string     `json:"customerId"`
	Email       *string    `json:"email,omitempty"`
	Phone       *string    `json:"phone,omitempty"`
	Description *string    `json:"description,omitempty"`
	Location    *string    `json:"location,omitempty"`
	CreatedAt   string     `json:"createdAt"`
	UpdatedAt   string     `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Время не разбирается здесь: формат проверяет валидатор, чтобы ошибка указывала на поле
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		Title:       r.Title,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Status:      r.Status,
		Email:       r.Email,
		Phone:       r.Phone,
		CustomerID:  r.CustomerID,
		ClientID:    r.ClientID,
		Description: r.Description,
		Location:    r.Location,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:          resp.ID,
		Title:       resp.Title,
		StartTime:   resp.StartTime.Format(time.RFC3339),
		EndTime:     resp.EndTime.Format(time.RFC3339),
		Status:      resp.Status,
		ClientID:    resp.ClientID,
		CustomerID:  resp.CustomerID,
		Email:       resp.Email,
		Phone:       resp.Phone,
		Description: resp.Description,
		Location:    resp.Location,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   resp.UpdatedAt.Format(time.RFC3339),
	}
}
