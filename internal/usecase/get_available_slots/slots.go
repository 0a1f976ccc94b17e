package get_available_slots

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// generateSlots нарезает каждое окно на слоты фиксированной длины, начиная с начала окна.
// Хвост окна короче слота отбрасывается; одинаковые слоты из пересекающихся окон схлопываются
func generateSlots(rules []domain.WeeklyAvailabilityRule, date time.Time, slotMinutes int) []domain.AvailableSlot {
	if slotMinutes <= 0 {
		return []domain.AvailableSlot{}
	}

	seen := make(map[int64]bool)
	slots := make([]domain.AvailableSlot, 0)

	for _, rule := range rules {
		current := rule.StartTime
		for {
			end, err := current.AddMinutes(slotMinutes)
			if err != nil || end.IsAfter(rule.EndTime) {
				break
			}

			slot := domain.AvailableSlot{
				StartTime: current.OnDate(date),
				EndTime:   end.OnDate(date),
			}
			if key := slot.StartTime.Unix(); !seen[key] {
				seen[key] = true
				slots = append(slots, slot)
			}

			current = end
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartTime.Before(slots[j].StartTime)
	})

	return slots
}

// filterSlots оставляет слоты, которые валидатор бы принял по времени и занятости:
// начало не раньше earliest, не позже latest и без пересечения с активными бронированиями.
// Граничащие бронирования слот не занимают
func filterSlots(slots []domain.AvailableSlot, earliest, latest time.Time, bookings []*domain.Booking) []domain.AvailableSlot {
	result := make([]domain.AvailableSlot, 0, len(slots))

	for _, slot := range slots {
		if slot.StartTime.Before(earliest) || slot.StartTime.After(latest) {
			continue
		}
		if isTaken(slot, bookings) {
			continue
		}
		result = append(result, slot)
	}

	return result
}

func isTaken(slot domain.AvailableSlot, bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if b.IsActive() && b.Overlaps(slot.StartTime, slot.EndTime) {
			return true
		}
	}
	return false
}
