package domain

import "time"

// SchedulingSettings глобальная политика бронирования (одна активная строка)
type SchedulingSettings struct {
	ID                     int64
	SlotDurationMinutes    int
	MinAdvanceBookingHours int
	MaxAdvanceBookingDays  int
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// DefaultSchedulingSettings значения, подставляемые при отсутствии строки настроек
func DefaultSchedulingSettings() SchedulingSettings {
	return SchedulingSettings{
		SlotDurationMinutes:    DefaultSlotDurationMinutes,
		MinAdvanceBookingHours: DefaultMinAdvanceBookingHours,
		MaxAdvanceBookingDays:  DefaultMaxAdvanceBookingDays,
	}
}

// MinAdvance минимальный отступ начала бронирования от текущего момента
func (s SchedulingSettings) MinAdvance() time.Duration {
	return time.Duration(s.MinAdvanceBookingHours) * time.Hour
}

// MaxAdvance максимальный горизонт бронирования
func (s SchedulingSettings) MaxAdvance() time.Duration {
	return time.Duration(s.MaxAdvanceBookingDays) * 24 * time.Hour
}

// SlotDuration длительность слота
func (s SchedulingSettings) SlotDuration() time.Duration {
	return time.Duration(s.SlotDurationMinutes) * time.Minute
}

// Validate проверяет значения на допустимые границы
func (s SchedulingSettings) Validate() error {
	if s.SlotDurationMinutes < MinSlotDurationMinutes || s.SlotDurationMinutes > MaxSlotDurationMinutes {
		return &RuleError{Err: ErrInvalidSettings, Field: "slotDurationMinutes", Limit: MaxSlotDurationMinutes}
	}
	if s.MinAdvanceBookingHours < MinAdvanceBookingHours || s.MinAdvanceBookingHours > MaxAdvanceBookingHours {
		return &RuleError{Err: ErrInvalidSettings, Field: "minAdvanceBookingHours", Limit: MaxAdvanceBookingHours}
	}
	if s.MaxAdvanceBookingDays < MinAdvanceBookingDays || s.MaxAdvanceBookingDays > MaxAdvanceBookingDays {
		return &RuleError{Err: ErrInvalidSettings, Field: "maxAdvanceBookingDays", Limit: MaxAdvanceBookingDays}
	}
	// окно бронирования не должно быть пустым
	if s.MinAdvance() >= s.MaxAdvance() {
		return &RuleError{Err: ErrInvalidSettings, Field: "minAdvanceBookingHours", Limit: s.MaxAdvanceBookingDays * 24}
	}
	return nil
}

// SettingsPatch частичное обновление настроек (nil = не менять)
type SettingsPatch struct {
	SlotDurationMinutes    *int
	MinAdvanceBookingHours *int
	MaxAdvanceBookingDays  *int
}

// IsEmpty returns true if the patch changes nothing
func (p SettingsPatch) IsEmpty() bool {
	return p.SlotDurationMinutes == nil && p.MinAdvanceBookingHours == nil && p.MaxAdvanceBookingDays == nil
}

// Apply возвращает копию настроек с примененными полями патча
func (p SettingsPatch) Apply(s SchedulingSettings) SchedulingSettings {
	if p.SlotDurationMinutes != nil {
		s.SlotDurationMinutes = *p.SlotDurationMinutes
	}
	if p.MinAdvanceBookingHours != nil {
		s.MinAdvanceBookingHours = *p.MinAdvanceBookingHours
	}
	if p.MaxAdvanceBookingDays != nil {
		s.MaxAdvanceBookingDays = *p.MaxAdvanceBookingDays
	}
	return s
}
