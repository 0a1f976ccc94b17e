package availability

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-SchedulingService/pkg/cache"
)

// Ключи кэша. Значение хранится под ключом текущего поколения (cache.VersionedKey),
// счетчик поколения под ключом с суффиксом generationSuffix
const (
	SettingsCacheKey    = "scheduling:settings"
	WeeklyRulesCacheKey = "scheduling:weekly_rules"

	generationSuffix = ":gen"
)

// Service источник политики бронирования и недельных окон доступности
// Чтение идет через кэш, запись после коммита переключает поколение кэша
type Service struct {
	settingsRepo SettingsRepository
	rulesRepo    RulesRepository
	cache        Cache
	cacheTTL     time.Duration
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса; cache может быть nil (кэширование выключено)
func NewService(
	settingsRepo SettingsRepository,
	rulesRepo RulesRepository,
	cacheStore Cache,
	cacheTTL time.Duration,
	txManager TransactionManager,
	logger Logger,
) *Service {
	if cacheStore == nil {
		cacheStore = cache.Nop{}
	}
	return &Service{
		settingsRepo: settingsRepo,
		rulesRepo:    rulesRepo,
		cache:        cacheStore,
		cacheTTL:     cacheTTL,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetSettings возвращает текущие настройки
// Если строки нет или чтение не удалось, возвращает значения по умолчанию; ошибку не возвращает
func (s *Service) GetSettings(ctx context.Context) domain.SchedulingSettings {
	key, cacheable := s.cacheKey(ctx, SettingsCacheKey)
	if cacheable {
		var cached domain.SchedulingSettings
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return cached
		} else if !errors.Is(err, cache.ErrMiss) {
			s.logger.Warn("GetSettings: cache read failed: %v", err)
		}
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Warn("GetSettings: settings are not seeded, using defaults")
		} else {
			s.logger.Error("GetSettings: failed to read settings, using defaults: %v", err)
		}
		return domain.DefaultSchedulingSettings()
	}

	if cacheable {
		if err := s.cache.Save(ctx, key, settings, s.cacheTTL); err != nil {
			s.logger.Warn("GetSettings: cache write failed: %v", err)
		}
	}

	return *settings
}

// GetWeeklyRules возвращает все правила, упорядоченные по дню недели и времени начала
// При ошибке чтения возвращает пустой список: ни одного доступного окна
func (s *Service) GetWeeklyRules(ctx context.Context) []domain.WeeklyAvailabilityRule {
	key, cacheable := s.cacheKey(ctx, WeeklyRulesCacheKey)
	if cacheable {
		var cached []domain.WeeklyAvailabilityRule
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			if cached == nil {
				cached = []domain.WeeklyAvailabilityRule{}
			}
			return cached
		} else if !errors.Is(err, cache.ErrMiss) {
			s.logger.Warn("GetWeeklyRules: cache read failed: %v", err)
		}
	}

	rules, err := s.rulesRepo.List(ctx)
	if err != nil {
		s.logger.Error("GetWeeklyRules: failed to read rules, treating as no availability: %v", err)
		return []domain.WeeklyAvailabilityRule{}
	}

	if cacheable {
		if err := s.cache.Save(ctx, key, rules, s.cacheTTL); err != nil {
			s.logger.Warn("GetWeeklyRules: cache write failed: %v", err)
		}
	}

	return rules
}

// UpdateSettings применяет частичное обновление к существующей строке настроек
// Возвращает domain.ErrSettingsNotFound, если настройки еще не созданы
func (s *Service) UpdateSettings(ctx context.Context, patch domain.SettingsPatch) (*domain.SchedulingSettings, error) {
	s.logger.Info("UpdateSettings: slot=%v, minAdvance=%v, maxAdvance=%v",
		derefInt(patch.SlotDurationMinutes), derefInt(patch.MinAdvanceBookingHours), derefInt(patch.MaxAdvanceBookingDays))

	var updated *domain.SchedulingSettings

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.settingsRepo.Get(txCtx)
		if err != nil {
			if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
				return domain.ErrSettingsNotFound
			}
			return fmt.Errorf("%w: UpdateSettings - read settings: %v", ErrInternal, err)
		}

		merged := patch.Apply(*current)
		if err := merged.Validate(); err != nil {
			return err
		}

		updated, err = s.settingsRepo.Update(txCtx, &merged)
		if err != nil {
			if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
				return domain.ErrSettingsNotFound
			}
			return fmt.Errorf("%w: UpdateSettings - update settings: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("UpdateSettings: %v", err)
		} else {
			s.logger.Warn("UpdateSettings: rejected: %v", err)
		}
		return nil, err
	}

	s.invalidate(ctx, SettingsCacheKey)

	s.logger.Info("UpdateSettings: settings id=%d updated", updated.ID)
	return updated, nil
}

// ReplaceWeeklyRules атомарно заменяет весь набор правил
// Удаление и вставка выполняются в одной транзакции: читатели не видят пустого промежуточного состояния.
// Пересекающиеся окна в один день допустимы
func (s *Service) ReplaceWeeklyRules(ctx context.Context, rules []domain.WeeklyAvailabilityRule) ([]domain.WeeklyAvailabilityRule, error) {
	s.logger.Info("ReplaceWeeklyRules: replacing with %d rules", len(rules))

	if len(rules) > domain.MaxWeeklyRules {
		s.logger.Warn("ReplaceWeeklyRules: %d rules exceed limit %d", len(rules), domain.MaxWeeklyRules)
		return nil, ErrTooManyRules
	}

	for i, rule := range rules {
		if err := rule.Validate(); err != nil {
			var re *domain.RuleError
			if errors.As(err, &re) {
				err = &domain.RuleError{Err: re.Err, Field: fmt.Sprintf("rules[%d].%s", i, re.Field)}
			}
			s.logger.Warn("ReplaceWeeklyRules: invalid rule #%d: %v", i, err)
			return nil, err
		}
	}

	var created []domain.WeeklyAvailabilityRule

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.rulesRepo.DeleteAll(txCtx); err != nil {
			return fmt.Errorf("%w: ReplaceWeeklyRules - delete rules: %v", ErrInternal, err)
		}

		var err error
		created, err = s.rulesRepo.CreateBatch(txCtx, rules)
		if err != nil {
			return fmt.Errorf("%w: ReplaceWeeklyRules - insert rules: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("ReplaceWeeklyRules: %v", err)
		return nil, err
	}

	s.invalidate(ctx, WeeklyRulesCacheKey)

	sortRules(created)

	s.logger.Info("ReplaceWeeklyRules: %d rules stored", len(created))
	return created, nil
}

// SeedSettings создает строку настроек со значениями по умолчанию, если её нет
// Возвращает true, если строка была создана
func (s *Service) SeedSettings(ctx context.Context) (*domain.SchedulingSettings, bool, error) {
	var (
		result  *domain.SchedulingSettings
		created bool
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		existing, err := s.settingsRepo.Get(txCtx)
		if err == nil {
			result = existing
			return nil
		}
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return fmt.Errorf("%w: SeedSettings - read settings: %v", ErrInternal, err)
		}

		defaults := domain.DefaultSchedulingSettings()
		result, err = s.settingsRepo.Create(txCtx, &defaults)
		if err != nil {
			return fmt.Errorf("%w: SeedSettings - create settings: %v", ErrInternal, err)
		}
		created = true
		return nil
	})
	if err != nil {
		s.logger.Error("SeedSettings: %v", err)
		return nil, false, err
	}

	if created {
		s.invalidate(ctx, SettingsCacheKey)
		s.logger.Info("SeedSettings: default settings created (id=%d)", result.ID)
	}

	return result, created, nil
}

// cacheKey возвращает ключ значения в текущем поколении.
// Поколение читается до обращения к БД: если запись успеет переключить поколение,
// прочитанное старое значение ляжет в уже неиспользуемый ключ.
// cacheable = false, если поколение прочитать не удалось: кэш в этом запросе не используется
func (s *Service) cacheKey(ctx context.Context, key string) (string, bool) {
	gen, err := s.cache.Generation(ctx, key+generationSuffix)
	if err != nil {
		s.logger.Warn("cacheKey: failed to read cache generation for %s: %v", key, err)
		return "", false
	}
	return cache.VersionedKey(key, gen), true
}

func (s *Service) invalidate(ctx context.Context, key string) {
	gen, err := s.cache.BumpGeneration(ctx, key+generationSuffix)
	if err != nil {
		// устаревшее значение проживет не дольше TTL
		s.logger.Error("invalidate: failed to bump cache generation for %s: %v", key, err)
		return
	}
	if err := s.cache.Delete(ctx, cache.VersionedKey(key, gen-1)); err != nil {
		s.logger.Warn("invalidate: failed to delete previous generation of %s: %v", key, err)
	}
}

func sortRules(rules []domain.WeeklyAvailabilityRule) {
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].DayOfWeek != rules[j].DayOfWeek {
			return rules[i].DayOfWeek < rules[j].DayOfWeek
		}
		return rules[i].StartTime.IsBefore(rules[j].StartTime)
	})
}

func derefInt(v *int) interface{} {
	if v == nil {
		return "-"
	}
	return *v
}
