package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// IsValid returns true if the status belongs to the allowed set
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// Booking represents a scheduled appointment
type Booking struct {
	ID          uuid.UUID
	Title       string
	StartTime   time.Time
	EndTime     time.Time
	Status      BookingStatus
	ClientID    *uuid.UUID // владелец записи (опционально)
	CustomerID  string     // числовой идентификатор, выдается последовательно
	Email       *string
	Phone       *string
	Description *string
	Location    *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies its time range
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// Overlaps reports whether [start, end) intersects the booking's range
func (b *Booking) Overlaps(start, end time.Time) bool {
	return IntervalsOverlap(b.StartTime, b.EndTime, start, end)
}

// Duration returns the booking length
func (b *Booking) Duration() time.Duration {
	return b.EndTime.Sub(b.StartTime)
}

// HasContact returns true if either email or phone is present
func (b *Booking) HasContact() bool {
	return (b.Email != nil && *b.Email != "") || (b.Phone != nil && *b.Phone != "")
}

// IntervalsOverlap половинчатые интервалы [aStart, aEnd) и [bStart, bEnd) пересекаются
// тогда и только тогда, когда aStart < bEnd и bStart < aEnd
func IntervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// BookingsFilter фильтр для списка бронирований
type BookingsFilter struct {
	From             *time.Time     // бронирования, заканчивающиеся после From
	To               *time.Time     // бронирования, начинающиеся до To
	Status           *BookingStatus // фильтр по статусу (опционально)
	ClientID         *uuid.UUID     // фильтр по клиенту (опционально)
	IncludeCancelled bool           // включать ли отмененные
}
