package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек расписания
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.SchedulingSettings, error)
	Create(ctx context.Context, s *domain.SchedulingSettings) (*domain.SchedulingSettings, error)
	Update(ctx context.Context, s *domain.SchedulingSettings) (*domain.SchedulingSettings, error)
}

// RulesRepository интерфейс репозитория недельных окон доступности
type RulesRepository interface {
	List(ctx context.Context) ([]domain.WeeklyAvailabilityRule, error)
	DeleteAll(ctx context.Context) error
	CreateBatch(ctx context.Context, rules []domain.WeeklyAvailabilityRule) ([]domain.WeeklyAvailabilityRule, error)
}

// Cache интерфейс кэша (Redis или Nop)
type Cache interface {
	Get(ctx context.Context, key string, value any) error
	Save(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Generation(ctx context.Context, key string) (int64, error)
	BumpGeneration(ctx context.Context, key string) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
