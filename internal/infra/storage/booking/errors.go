package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotOverlap нарушено ограничение исключения пересечений (scheduling_no_overlap)
	ErrSlotOverlap = errors.New("booking.repository: time range overlaps an active booking")

	// ErrEndBeforeStart нарушено ограничение scheduling_end_after_start
	ErrEndBeforeStart = errors.New("booking.repository: end time must be after start time")

	// ErrInvalidStatus нарушено ограничение scheduling_status_check
	ErrInvalidStatus = errors.New("booking.repository: invalid booking status")

	// ErrInvalidCustomerID нарушено ограничение scheduling_customer_id_format
	ErrInvalidCustomerID = errors.New("booking.repository: customer id must be up to 18 digits")

	// ErrDuplicateContact у email/телефона уже есть подтвержденное бронирование на эту дату
	ErrDuplicateContact = errors.New("booking.repository: duplicate confirmed booking for contact and date")

	// ErrSerialization конфликт сериализации или deadlock, транзакция откатана
	ErrSerialization = errors.New("booking.repository: serialization failure")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
