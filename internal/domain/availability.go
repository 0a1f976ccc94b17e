package domain

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// WeeklyAvailabilityRule повторяющееся еженедельное окно доступности
type WeeklyAvailabilityRule struct {
	ID          int64
	DayOfWeek   int // 0 = воскресенье, как time.Weekday
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsAvailable bool
}

// Weekday возвращает день недели правила
func (r WeeklyAvailabilityRule) Weekday() time.Weekday {
	return time.Weekday(r.DayOfWeek)
}

// Validate проверяет день недели и порядок границ окна
func (r WeeklyAvailabilityRule) Validate() error {
	if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
		return NewFieldError(ErrInvalidRule, "dayOfWeek")
	}
	if err := r.StartTime.Validate(); err != nil {
		return NewFieldError(ErrInvalidRule, "startTime")
	}
	if err := r.EndTime.Validate(); err != nil {
		return NewFieldError(ErrInvalidRule, "endTime")
	}
	if !r.StartTime.IsBefore(r.EndTime) {
		return NewFieldError(ErrInvalidRule, "endTime")
	}
	return nil
}

// Contains возвращает true, если [start, end] целиком лежит внутри окна (границы включительно)
func (r WeeklyAvailabilityRule) Contains(start, end types.TimeString) bool {
	return !start.IsBefore(r.StartTime) && !end.IsAfter(r.EndTime)
}

// AvailableRulesForDay доступные окна для дня недели в исходном порядке
func AvailableRulesForDay(rules []WeeklyAvailabilityRule, day time.Weekday) []WeeklyAvailabilityRule {
	var result []WeeklyAvailabilityRule
	for _, r := range rules {
		if r.IsAvailable && r.Weekday() == day {
			result = append(result, r)
		}
	}
	return result
}
