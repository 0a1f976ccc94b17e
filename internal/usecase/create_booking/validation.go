package create_booking

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Validator последовательно проверяет запрос на бронирование и останавливается на первом нарушении:
//  1. обязательные поля и статус
//  2. email или телефон
//  3. разбор времени (RFC 3339)
//  4. начало раньше конца
//  5. минимальный отступ от текущего момента
//  6. максимальный горизонт бронирования
//  7. попадание в недельное окно доступности
//  8. пересечение с существующими бронированиями
//
// Валидатор ничего не записывает. Настройки и правила читаются не более одного раза за вызов
type Validator struct {
	policy       SchedulingPolicy
	checker      ConflictChecker
	location     *time.Location
	validate     *validator.Validate
	timeProvider TimeProvider
	logger       Logger
}

// NewValidator создает валидатор; location - часовой пояс, в котором заданы окна доступности
func NewValidator(policy SchedulingPolicy, checker ConflictChecker, location *time.Location, logger Logger) *Validator {
	if location == nil {
		location = time.UTC
	}

	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{
		policy:       policy,
		checker:      checker,
		location:     location,
		validate:     validate,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Validate возвращает нормализованное бронирование или первое нарушенное правило (*domain.RuleError)
func (v *Validator) Validate(ctx context.Context, req *Request) (*domain.Booking, error) {
	if req == nil {
		return nil, ErrInvalidInput
	}

	normalized := normalizeRequest(req)

	// 1-2. Обязательные поля, статус, контакт
	if err := v.checkFields(normalized); err != nil {
		return nil, v.reject(err)
	}

	// 3. Разбор времени
	start, err := time.Parse(time.RFC3339, normalized.StartTime)
	if err != nil {
		return nil, v.reject(domain.NewFieldError(domain.ErrInvalidTime, "startTime"))
	}
	end, err := time.Parse(time.RFC3339, normalized.EndTime)
	if err != nil {
		return nil, v.reject(domain.NewFieldError(domain.ErrInvalidTime, "endTime"))
	}

	// 4. Порядок границ
	if !start.Before(end) {
		return nil, v.reject(domain.NewFieldError(domain.ErrInvalidRange, "endTime"))
	}

	now := v.timeProvider.Now()
	settings := v.policy.GetSettings(ctx)

	// 5. Минимальный отступ
	if start.Before(now.Add(settings.MinAdvance())) {
		return nil, v.reject(domain.NewLimitError(domain.ErrTooSoon, settings.MinAdvanceBookingHours))
	}

	// 6. Максимальный горизонт
	if start.After(now.Add(settings.MaxAdvance())) {
		return nil, v.reject(domain.NewLimitError(domain.ErrTooFar, settings.MaxAdvanceBookingDays))
	}

	// 7. Недельное окно доступности
	if err := v.checkWeeklyAvailability(ctx, start, end); err != nil {
		return nil, v.reject(err)
	}

	// 8. Конфликт с существующими бронированиями
	if v.checker.HasConflict(ctx, start, end) {
		return nil, v.reject(domain.NewRuleError(domain.ErrSlotTaken))
	}

	return &domain.Booking{
		Title:       normalized.Title,
		StartTime:   start,
		EndTime:     end,
		Status:      domain.BookingStatus(normalized.Status),
		ClientID:    normalized.ClientID,
		CustomerID:  normalized.CustomerID,
		Email:       normalized.Email,
		Phone:       normalized.Phone,
		Description: normalized.Description,
		Location:    normalized.Location,
	}, nil
}

// checkFields проверяет struct-теги запроса, первая ошибка определяет вид нарушения
func (v *Validator) checkFields(req *Request) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return domain.NewRuleError(domain.ErrMissingField)
	}

	first := fieldErrs[0]
	switch first.Tag() {
	case "required":
		return domain.NewFieldError(domain.ErrMissingField, first.Field())
	case "oneof":
		return domain.NewFieldError(domain.ErrInvalidStatus, first.Field())
	case "required_without":
		return domain.NewRuleError(domain.ErrMissingContact)
	case "number", "max":
		return domain.NewFieldError(domain.ErrInvalidCustomerID, first.Field())
	default:
		return domain.NewFieldError(domain.ErrMissingField, first.Field())
	}
}

// checkWeeklyAvailability проверяет, что бронирование целиком лежит в одном доступном окне своего дня недели.
// Бронирование, переходящее через полночь, вне рабочих часов; конец ровно в 00:00 следующего дня считается 24:00
func (v *Validator) checkWeeklyAvailability(ctx context.Context, start, end time.Time) error {
	localStart := start.In(v.location)
	localEnd := end.In(v.location)

	rules := domain.AvailableRulesForDay(v.policy.GetWeeklyRules(ctx), localStart.Weekday())
	if len(rules) == 0 {
		return domain.NewRuleError(domain.ErrDayUnavailable)
	}

	startOfDay := types.NewTimeString(localStart)
	endOfDay, ok := timeOfDayUntil(localStart, localEnd)
	if !ok {
		return domain.NewRuleError(domain.ErrOutsideHours)
	}

	for _, rule := range rules {
		if rule.Contains(startOfDay, endOfDay) {
			return nil
		}
	}

	return domain.NewRuleError(domain.ErrOutsideHours)
}

// timeOfDayUntil время суток конца бронирования относительно дня начала
// ok = false, если конец приходится на другой день
func timeOfDayUntil(localStart, localEnd time.Time) (types.TimeString, bool) {
	y, m, d := localStart.Date()
	ey, em, ed := localEnd.Date()
	if y == ey && m == em && d == ed {
		return types.NewTimeString(localEnd), true
	}

	nextMidnight := time.Date(y, m, d+1, 0, 0, 0, 0, localStart.Location())
	if localEnd.Equal(nextMidnight) {
		return types.EndOfDay(), true
	}

	return "", false
}

func (v *Validator) reject(err error) error {
	v.logger.Warn("Validate: %v", err)
	return err
}

// normalizeRequest обрезает пробелы, пустые необязательные поля превращаются в nil
func normalizeRequest(req *Request) *Request {
	return &Request{
		Title:       strings.TrimSpace(req.Title),
		StartTime:   strings.TrimSpace(req.StartTime),
		EndTime:     strings.TrimSpace(req.EndTime),
		Status:      strings.TrimSpace(req.Status),
		Email:       trimOptional(req.Email),
		Phone:       trimOptional(req.Phone),
		CustomerID:  strings.TrimSpace(req.CustomerID),
		ClientID:    req.ClientID,
		Description: trimOptional(req.Description),
		Location:    trimOptional(req.Location),
	}
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
