package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

func TestWeeklyAvailabilityRule_Validate(t *testing.T) {
	tests := []struct {
		name    string
		rule    WeeklyAvailabilityRule
		wantErr bool
	}{
		{name: "valid", rule: WeeklyAvailabilityRule{DayOfWeek: 1, StartTime: "09:00", EndTime: "18:00", IsAvailable: true}},
		{name: "until midnight", rule: WeeklyAvailabilityRule{DayOfWeek: 6, StartTime: "20:00", EndTime: "24:00"}},
		{name: "day below range", rule: WeeklyAvailabilityRule{DayOfWeek: -1, StartTime: "09:00", EndTime: "18:00"}, wantErr: true},
		{name: "day above range", rule: WeeklyAvailabilityRule{DayOfWeek: 7, StartTime: "09:00", EndTime: "18:00"}, wantErr: true},
		{name: "empty window", rule: WeeklyAvailabilityRule{DayOfWeek: 1, StartTime: "09:00", EndTime: "09:00"}, wantErr: true},
		{name: "reversed window", rule: WeeklyAvailabilityRule{DayOfWeek: 1, StartTime: "18:00", EndTime: "09:00"}, wantErr: true},
		{name: "bad start", rule: WeeklyAvailabilityRule{DayOfWeek: 1, StartTime: "9am", EndTime: "18:00"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRule)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestWeeklyAvailabilityRule_Contains(t *testing.T) {
	rule := WeeklyAvailabilityRule{DayOfWeek: 1, StartTime: "09:00", EndTime: "18:00", IsAvailable: true}

	assert.True(t, rule.Contains("09:00", "10:00"), "window start is inclusive")
	assert.True(t, rule.Contains("17:00", "18:00"), "window end is inclusive")
	assert.False(t, rule.Contains("08:00", "09:00"))
	assert.False(t, rule.Contains("17:30", "18:30"))
	assert.False(t, rule.Contains("08:59:59", "10:00"))
}

func TestAvailableRulesForDay(t *testing.T) {
	rules := []WeeklyAvailabilityRule{
		{ID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00", IsAvailable: true},
		{ID: 2, DayOfWeek: 1, StartTime: "13:00", EndTime: "18:00", IsAvailable: true},
		{ID: 3, DayOfWeek: 2, StartTime: "09:00", EndTime: "18:00", IsAvailable: false},
		{ID: 4, DayOfWeek: 3, StartTime: types.MustTimeString("10:00"), EndTime: "16:00", IsAvailable: true},
	}

	monday := AvailableRulesForDay(rules, time.Monday)
	assert.Len(t, monday, 2)
	assert.Equal(t, int64(1), monday[0].ID)

	assert.Empty(t, AvailableRulesForDay(rules, time.Tuesday), "unavailable rules are skipped")
	assert.Empty(t, AvailableRulesForDay(rules, time.Sunday))
	assert.Empty(t, AvailableRulesForDay(nil, time.Monday))
}
