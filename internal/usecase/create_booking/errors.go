package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается, когда запрос не передан
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
