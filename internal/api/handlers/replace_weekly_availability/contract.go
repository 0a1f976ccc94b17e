package replace_weekly_availability

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

type AvailabilityService interface {
	ReplaceWeeklyRules(ctx context.Context, rules []domain.WeeklyAvailabilityRule) ([]domain.WeeklyAvailabilityRule, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
