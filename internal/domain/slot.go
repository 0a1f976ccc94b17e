package domain

import "time"

// AvailableSlot свободный слот, который форма бронирования может предложить клиенту
type AvailableSlot struct {
	StartTime time.Time
	EndTime   time.Time
}

// DurationMinutes returns the slot length in minutes
func (s AvailableSlot) DurationMinutes() int {
	return int(s.EndTime.Sub(s.StartTime) / time.Minute)
}
