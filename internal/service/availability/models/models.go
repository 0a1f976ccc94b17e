package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модели

// UpdateSettingsRequest частичное обновление настроек (отсутствующие поля не меняются)
type UpdateSettingsRequest struct {
	SlotDurationMinutes    *int `json:"slotDurationMinutes,omitempty"`
	MinAdvanceBookingHours *int `json:"minAdvanceBookingHours,omitempty"`
	MaxAdvanceBookingDays  *int `json:"maxAdvanceBookingDays,omitempty"`
}

// ToDomainPatch конвертирует request в domain патч
func (r *UpdateSettingsRequest) ToDomainPatch() domain.SettingsPatch {
	return domain.SettingsPatch{
		SlotDurationMinutes:    r.SlotDurationMinutes,
		MinAdvanceBookingHours: r.MinAdvanceBookingHours,
		MaxAdvanceBookingDays:  r.MaxAdvanceBookingDays,
	}
}

// WeeklyRuleDTO правило недельной доступности
type WeeklyRuleDTO struct {
	ID          int64            `json:"id,omitempty"`
	DayOfWeek   int              `json:"dayOfWeek"`
	StartTime   types.TimeString `json:"startTime"` // "09:00"
	EndTime     types.TimeString `json:"endTime"`   // "18:00"
	IsAvailable bool             `json:"isAvailable"`
}

// ReplaceWeeklyRulesRequest полный новый набор правил
type ReplaceWeeklyRulesRequest struct {
	Rules []WeeklyRuleDTO `json:"rules"`
}

// ToDomainRules конвертирует request в domain правила
func (r *ReplaceWeeklyRulesRequest) ToDomainRules() []domain.WeeklyAvailabilityRule {
	rules := make([]domain.WeeklyAvailabilityRule, len(r.Rules))
	for i, dto := range r.Rules {
		rules[i] = domain.WeeklyAvailabilityRule{
			DayOfWeek:   dto.DayOfWeek,
			StartTime:   dto.StartTime,
			EndTime:     dto.EndTime,
			IsAvailable: dto.IsAvailable,
		}
	}
	return rules
}

// Response модели

// SettingsResponse текущие настройки расписания
type SettingsResponse struct {
	SlotDurationMinutes    int        `json:"slotDurationMinutes"`
	MinAdvanceBookingHours int        `json:"minAdvanceBookingHours"`
	MaxAdvanceBookingDays  int        `json:"maxAdvanceBookingDays"`
	IsDefault              bool       `json:"isDefault"` // строка настроек еще не создана
	UpdatedAt              *time.Time `json:"updatedAt,omitempty"`
}

// WeeklyRulesResponse ответ со списком правил
type WeeklyRulesResponse struct {
	Rules []WeeklyRuleDTO `json:"rules"`
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s domain.SchedulingSettings) *SettingsResponse {
	resp := &SettingsResponse{
		SlotDurationMinutes:    s.SlotDurationMinutes,
		MinAdvanceBookingHours: s.MinAdvanceBookingHours,
		MaxAdvanceBookingDays:  s.MaxAdvanceBookingDays,
		IsDefault:              s.ID == 0,
	}
	if !s.UpdatedAt.IsZero() {
		updatedAt := s.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}

// FromDomainRules конвертирует список domain правил в DTO
func FromDomainRules(rules []domain.WeeklyAvailabilityRule) *WeeklyRulesResponse {
	resp := &WeeklyRulesResponse{
		Rules: make([]WeeklyRuleDTO, len(rules)),
	}
	for i, r := range rules {
		resp.Rules[i] = WeeklyRuleDTO{
			ID:          r.ID,
			DayOfWeek:   r.DayOfWeek,
			StartTime:   r.StartTime,
			EndTime:     r.EndTime,
			IsAvailable: r.IsAvailable,
		}
	}
	return resp
}
