package get_scheduling_settings

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

type SettingsService interface {
	GetSettings(ctx context.Context) domain.SchedulingSettings
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
