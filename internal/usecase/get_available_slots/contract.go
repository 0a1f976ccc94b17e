package get_available_slots

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

// BookingLookup поиск бронирований, пересекающих интервал
type BookingLookup interface {
	Overlapping(ctx context.Context, start, end time.Time) ([]*domain.Booking, error)
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
