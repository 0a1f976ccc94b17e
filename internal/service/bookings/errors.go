package bookings

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных параметрах чтения (фильтр, статус)
	ErrInvalidInput = errors.New("bookings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
