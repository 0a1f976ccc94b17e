package update_scheduling_settings

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

type SettingsService interface {
	UpdateSettings(ctx context.Context, patch domain.SettingsPatch) (*domain.SchedulingSettings, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
