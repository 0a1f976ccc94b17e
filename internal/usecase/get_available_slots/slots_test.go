package get_available_slots

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func window(start, end string) domain.WeeklyAvailabilityRule {
	return domain.WeeklyAvailabilityRule{
		DayOfWeek:   int(time.Monday),
		StartTime:   types.MustTimeString(start),
		EndTime:     types.MustTimeString(end),
		IsAvailable: true,
	}
}

func hm(hour, minute int) time.Time {
	return monday.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func startsOf(slots []domain.AvailableSlot) []string {
	result := make([]string, 0, len(slots))
	for _, s := range slots {
		result = append(result, s.StartTime.Format(domain.TimeFormat))
	}
	return result
}

func TestGenerateSlots(t *testing.T) {
	tests := []struct {
		name    string
		rules   []domain.WeeklyAvailabilityRule
		minutes int
		want    []string
	}{
		{
			name:    "hourly slots",
			rules:   []domain.WeeklyAvailabilityRule{window("09:00", "12:00")},
			minutes: 60,
			want:    []string{"09:00", "10:00", "11:00"},
		},
		{
			name:    "tail shorter than slot is dropped",
			rules:   []domain.WeeklyAvailabilityRule{window("09:00", "10:45")},
			minutes: 30,
			want:    []string{"09:00", "09:30", "10:00"},
		},
		{
			name:    "split windows are sorted",
			rules:   []domain.WeeklyAvailabilityRule{window("14:00", "16:00"), window("09:00", "11:00")},
			minutes: 60,
			want:    []string{"09:00", "10:00", "14:00", "15:00"},
		},
		{
			name:    "overlapping windows do not duplicate slots",
			rules:   []domain.WeeklyAvailabilityRule{window("09:00", "11:00"), window("10:00", "12:00")},
			minutes: 60,
			want:    []string{"09:00", "10:00", "11:00"},
		},
		{
			name:    "window shorter than slot",
			rules:   []domain.WeeklyAvailabilityRule{window("09:00", "09:30")},
			minutes: 60,
			want:    []string{},
		},
		{
			name:    "window until end of day",
			rules:   []domain.WeeklyAvailabilityRule{window("22:00", "24:00")},
			minutes: 60,
			want:    []string{"22:00", "23:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := generateSlots(tt.rules, monday, tt.minutes)
			assert.Equal(t, tt.want, startsOf(got))
			for _, s := range got {
				assert.Equal(t, tt.minutes, s.DurationMinutes())
			}
		})
	}
}

func TestGenerateSlots_LastSlotEndsAtMidnight(t *testing.T) {
	got := generateSlots([]domain.WeeklyAvailabilityRule{window("23:00", "24:00")}, monday, 60)

	require.Len(t, got, 1)
	assert.True(t, monday.AddDate(0, 0, 1).Equal(got[0].EndTime))
}

func TestGenerateSlots_DaylightSavingDay(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	// воскресенье, в 02:00 часы переводятся на 03:00
	date := time.Date(2026, 3, 29, 0, 0, 0, 0, berlin)
	rule := domain.WeeklyAvailabilityRule{
		DayOfWeek:   int(time.Sunday),
		StartTime:   types.MustTimeString("09:00"),
		EndTime:     types.MustTimeString("11:00"),
		IsAvailable: true,
	}

	got := generateSlots([]domain.WeeklyAvailabilityRule{rule}, date, 60)

	require.Len(t, got, 2)
	assert.Equal(t, "2026-03-29T09:00:00+02:00", got[0].StartTime.Format(time.RFC3339))
	assert.Equal(t, "2026-03-29T10:00:00+02:00", got[0].EndTime.Format(time.RFC3339))
	assert.Equal(t, "2026-03-29T10:00:00+02:00", got[1].StartTime.Format(time.RFC3339))
	assert.Equal(t, "2026-03-29T11:00:00+02:00", got[1].EndTime.Format(time.RFC3339))
}

func TestFilterSlots(t *testing.T) {
	slots := generateSlots([]domain.WeeklyAvailabilityRule{window("09:00", "14:00")}, monday, 60)
	bookings := []*domain.Booking{
		{StartTime: hm(10, 30), EndTime: hm(11, 30), Status: domain.StatusConfirmed},
		{StartTime: hm(12, 0), EndTime: hm(13, 0), Status: domain.StatusCancelled},
		{StartTime: hm(8, 0), EndTime: hm(9, 0), Status: domain.StatusPending},
	}

	got := filterSlots(slots, hm(9, 30), hm(12, 0), bookings)

	// 09:00 - раньше минимального отступа, 10:00 и 11:00 заняты, 13:00 - за горизонтом
	assert.Equal(t, []string{"12:00"}, startsOf(got))
}

func TestFilterSlots_BoundariesIncluded(t *testing.T) {
	slots := generateSlots([]domain.WeeklyAvailabilityRule{window("09:00", "12:00")}, monday, 60)

	got := filterSlots(slots, hm(9, 0), hm(11, 0), nil)

	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, startsOf(got))
}
