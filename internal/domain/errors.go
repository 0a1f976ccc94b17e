package domain

import (
	"errors"
	"fmt"
)

// Ошибки правил бронирования. Валидатор и слой записи возвращают их обернутыми в *RuleError,
// поэтому вызывающий код проверяет вид ошибки через errors.Is, а границу читает через errors.As
var (
	ErrMissingField      = errors.New("booking: required field is missing")
	ErrMissingContact    = errors.New("booking: email or phone is required")
	ErrInvalidTime       = errors.New("booking: invalid time")
	ErrInvalidRange      = errors.New("booking: end time must be after start time")
	ErrTooSoon           = errors.New("booking: start time is too soon")
	ErrTooFar            = errors.New("booking: start time is too far in the future")
	ErrDayUnavailable    = errors.New("booking: day is not available")
	ErrOutsideHours      = errors.New("booking: time is outside available hours")
	ErrSlotTaken         = errors.New("booking: time slot is already taken")
	ErrInvalidStatus     = errors.New("booking: invalid status")
	ErrInvalidCustomerID = errors.New("booking: invalid customer id")
	ErrDuplicateContact  = errors.New("booking: contact already has a confirmed booking on this date")
	ErrConcurrentBooking = errors.New("booking: concurrent booking detected")
	ErrBookingNotFound   = errors.New("booking: not found")
)

// Ошибки настроек расписания
var (
	ErrSettingsNotFound = errors.New("scheduling: settings not found")
	ErrInvalidSettings  = errors.New("scheduling: invalid settings")
	ErrInvalidRule      = errors.New("scheduling: invalid availability rule")
)

// RuleError нарушение правила с указанием поля и/или нарушенной границы
type RuleError struct {
	Err   error  // вид ошибки (один из sentinel выше)
	Field string // поле запроса, если применимо
	Limit int    // нарушенная граница (часы, дни, минуты), 0 если нет
}

func (e *RuleError) Error() string {
	msg := e.Err.Error()
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Field)
	}
	if e.Limit != 0 {
		msg = fmt.Sprintf("%s (limit %d)", msg, e.Limit)
	}
	return msg
}

func (e *RuleError) Unwrap() error {
	return e.Err
}

// NewRuleError создает ошибку правила без поля и границы
func NewRuleError(kind error) *RuleError {
	return &RuleError{Err: kind}
}

// NewFieldError создает ошибку, относящуюся к полю запроса
func NewFieldError(kind error, field string) *RuleError {
	return &RuleError{Err: kind, Field: field}
}

// NewLimitError создает ошибку с нарушенной границей
func NewLimitError(kind error, limit int) *RuleError {
	return &RuleError{Err: kind, Limit: limit}
}

// IsRuleViolation returns true for errors caused by the request itself rather than by the infrastructure
func IsRuleViolation(err error) bool {
	var re *RuleError
	if errors.As(err, &re) {
		return true
	}
	for _, kind := range []error{
		ErrMissingField, ErrMissingContact, ErrInvalidTime, ErrInvalidRange,
		ErrTooSoon, ErrTooFar, ErrDayUnavailable, ErrOutsideHours, ErrSlotTaken,
		ErrInvalidStatus, ErrInvalidCustomerID, ErrDuplicateContact, ErrConcurrentBooking,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

// Kind возвращает короткое имя вида ошибки (метки метрик, логи)
func Kind(err error) string {
	switch {
	case err == nil:
		return "created"
	case errors.Is(err, ErrMissingField):
		return "missing_field"
	case errors.Is(err, ErrMissingContact):
		return "missing_contact"
	case errors.Is(err, ErrInvalidTime):
		return "invalid_time"
	case errors.Is(err, ErrInvalidRange):
		return "invalid_range"
	case errors.Is(err, ErrTooSoon):
		return "too_soon"
	case errors.Is(err, ErrTooFar):
		return "too_far"
	case errors.Is(err, ErrDayUnavailable):
		return "day_unavailable"
	case errors.Is(err, ErrOutsideHours):
		return "outside_hours"
	case errors.Is(err, ErrSlotTaken):
		return "slot_taken"
	case errors.Is(err, ErrInvalidStatus):
		return "invalid_status"
	case errors.Is(err, ErrInvalidCustomerID):
		return "invalid_customer_id"
	case errors.Is(err, ErrDuplicateContact):
		return "duplicate_contact"
	case errors.Is(err, ErrConcurrentBooking):
		return "concurrent_booking"
	default:
		return "internal_error"
	}
}
