package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTimeString возвращается при некорректном формате времени
var ErrInvalidTimeString = errors.New("invalid time string format")

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
	secondsPerDay    = 24 * secondsPerHour
)

// TimeString время суток в формате "HH:MM" или "HH:MM:SS"
// Допускается "24:00" как конец суток (используется для правой границы окна доступности)
type TimeString string

// NewTimeString создает TimeString из часов/минут/секунд переданного времени
func NewTimeString(t time.Time) TimeString {
	return fromSeconds(t.Hour()*secondsPerHour + t.Minute()*secondsPerMinute + t.Second())
}

// NewTimeStringFromString парсит строку формата "HH:MM" или "HH:MM:SS"
func NewTimeStringFromString(s string) (TimeString, error) {
	seconds, err := parseSeconds(strings.TrimSpace(s))
	if err != nil {
		return "", err
	}
	return fromSeconds(seconds), nil
}

// MustTimeString паникует при некорректном формате, удобно для констант и тестов
func MustTimeString(s string) TimeString {
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// EndOfDay возвращает "24:00"
func EndOfDay() TimeString {
	return fromSeconds(secondsPerDay)
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат времени
func (t TimeString) Validate() error {
	_, err := parseSeconds(string(t))
	return err
}

// String возвращает строковое представление
func (t TimeString) String() string {
	return string(t)
}

// Seconds возвращает количество секунд от начала суток (0 для некорректного значения)
func (t TimeString) Seconds() int {
	seconds, err := parseSeconds(string(t))
	if err != nil {
		return 0
	}
	return seconds
}

// Minutes возвращает количество полных минут от начала суток
func (t TimeString) Minutes() int {
	return t.Seconds() / secondsPerMinute
}

// AddMinutes прибавляет минуты, результат должен остаться в пределах [00:00, 24:00]
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	seconds, err := parseSeconds(string(t))
	if err != nil {
		return "", err
	}

	result := seconds + minutes*secondsPerMinute
	if result < 0 || result > secondsPerDay {
		return "", fmt.Errorf("%w: %s%+d minutes is out of day range", ErrInvalidTimeString, t, minutes)
	}

	return fromSeconds(result), nil
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Seconds() < other.Seconds()
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Seconds() > other.Seconds()
}

// Equal сравнивает моменты времени независимо от формата записи ("09:00" == "09:00:00")
func (t TimeString) Equal(other TimeString) bool {
	return t.Seconds() == other.Seconds()
}

// OnDate возвращает момент с настенным временем t на календарную дату date в её часовом поясе.
// "24:00" дает полночь следующего дня. В дни перехода на летнее/зимнее время
// настенное время сохраняется, а не отсчитывается от полуночи
func (t TimeString) OnDate(date time.Time) time.Time {
	y, m, d := date.Date()
	seconds := t.Seconds()
	return time.Date(y, m, d, seconds/3600, seconds%3600/60, seconds%60, 0, date.Location())
}

// Scan реализует sql.Scanner (колонки типа TIME)
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeString, src)
	}
}

func (t *TimeString) scanString(s string) error {
	// Postgres может вернуть дробные секунды: "09:00:00.000000"
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		s = s[:idx]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	seconds, err := parseSeconds(string(t))
	if err != nil {
		return nil, err
	}
	return formatLong(seconds), nil
}

// UnmarshalJSON проверяет формат при декодировании
func (t *TimeString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*t = ""
		return nil
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func parseSeconds(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, ErrInvalidTimeString
	}

	values := make([]int, 3)
	for i, part := range parts {
		if len(part) != 2 {
			return 0, ErrInvalidTimeString
		}
		v, err := strconv.Atoi(part)
		if err != nil || v < 0 {
			return 0, ErrInvalidTimeString
		}
		values[i] = v
	}

	hours, minutes, seconds := values[0], values[1], values[2]
	if minutes > 59 || seconds > 59 {
		return 0, ErrInvalidTimeString
	}
	if hours > 24 || (hours == 24 && (minutes > 0 || seconds > 0)) {
		return 0, ErrInvalidTimeString
	}

	return hours*secondsPerHour + minutes*secondsPerMinute + seconds, nil
}

// fromSeconds форматирует как "HH:MM", секунды добавляются только если они ненулевые
func fromSeconds(total int) TimeString {
	if total%secondsPerMinute != 0 {
		return TimeString(formatLong(total))
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/secondsPerHour, (total%secondsPerHour)/secondsPerMinute))
}

func formatLong(total int) string {
	return fmt.Sprintf("%02d:%02d:%02d",
		total/secondsPerHour,
		(total%secondsPerHour)/secondsPerMinute,
		total%secondsPerMinute,
	)
}
