package availability

import "errors"

var (
	// ErrTooManyRules возвращается, когда набор правил превышает domain.MaxWeeklyRules
	ErrTooManyRules = errors.New("availability: too many rules")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)
