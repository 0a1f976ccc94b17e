package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// SchedulingPolicy источник настроек и недельных окон доступности
type SchedulingPolicy interface {
	GetSettings(ctx context.Context) domain.SchedulingSettings
	GetWeeklyRules(ctx context.Context) []domain.WeeklyAvailabilityRule
}

// ConflictChecker проверка пересечения с существующими бронированиями
type ConflictChecker interface {
	HasConflict(ctx context.Context, start, end time.Time) bool
}

// BookingValidator проверяет запрос и возвращает бронирование, готовое к записи
type BookingValidator interface {
	Validate(ctx context.Context, req *Request) (*domain.Booking, error)
}

// BookingWriter сохраняет бронирование
type BookingWriter interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics учет результатов создания бронирований
type Metrics interface {
	ObserveBooking(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
