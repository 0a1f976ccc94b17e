package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// UseCase use case для получения доступных слотов на дату
// Слоты - подсказка для формы бронирования, окончательное решение принимает валидатор
type UseCase struct {
	policy       SchedulingPolicy
	bookings     BookingLookup
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	policy SchedulingPolicy,
	bookings BookingLookup,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		policy:       policy,
		bookings:     bookings,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s", req.Date)

	// 1. Разбираем дату
	date, err := parseDate(req.Date, uc.location)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: %v", err)
		return nil, err
	}

	// 2. Настройки и окна дня недели
	now := uc.timeProvider.Now()
	settings := uc.policy.GetSettings(ctx)
	rules := domain.AvailableRulesForDay(uc.policy.GetWeeklyRules(ctx), date.Weekday())

	response := &Response{
		Date:                date,
		SlotDurationMinutes: settings.SlotDurationMinutes,
		Slots:               []domain.AvailableSlot{},
	}

	if len(rules) == 0 {
		uc.logger.Info("GetAvailableSlots: %s is not available", date.Format(domain.DateFormat))
		return response, nil
	}

	// 3. Генерируем слоты
	slots := generateSlots(rules, date, settings.SlotDurationMinutes)
	if len(slots) == 0 {
		return response, nil
	}

	// 4. Занятость за весь диапазон слотов
	bookings, err := uc.bookings.Overlapping(ctx, slots[0].StartTime, lastEnd(slots))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 5. Фильтруем по отступу, горизонту и занятости
	response.Slots = filterSlots(slots, now.Add(settings.MinAdvance()), now.Add(settings.MaxAdvance()), bookings)

	uc.logger.Info("GetAvailableSlots: %d of %d slots free on %s",
		len(response.Slots), len(slots), date.Format(domain.DateFormat))

	return response, nil
}

func lastEnd(slots []domain.AvailableSlot) time.Time {
	end := slots[0].EndTime
	for _, s := range slots[1:] {
		if s.EndTime.After(end) {
			end = s.EndTime
		}
	}
	return end
}
