package booking

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Коды SQLSTATE PostgreSQL
const (
	pgUniqueViolation      = "23505"
	pgCheckViolation       = "23514"
	pgExclusionViolation   = "23P01"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// Имена ограничений таблицы scheduling (см. migrations/postgres)
const (
	constraintNoOverlap           = "scheduling_no_overlap"
	constraintEndAfterStart       = "scheduling_end_after_start"
	constraintStatus              = "scheduling_status_check"
	constraintCustomerIDFormat    = "scheduling_customer_id_format"
	constraintConfirmedEmailDaily = "scheduling_confirmed_email_per_day"
	constraintConfirmedPhoneDaily = "scheduling_confirmed_phone_per_day"
)

// classifyError сопоставляет ошибку PostgreSQL с ошибкой репозитория
// Возвращает nil, если ошибка не относится к известным ограничениям
func classifyError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil
	}

	switch string(pqErr.Code) {
	case pgExclusionViolation:
		return ErrSlotOverlap
	case pgCheckViolation:
		switch pqErr.Constraint {
		case constraintEndAfterStart:
			return ErrEndBeforeStart
		case constraintStatus:
			return ErrInvalidStatus
		case constraintCustomerIDFormat:
			return ErrInvalidCustomerID
		}
	case pgUniqueViolation:
		switch pqErr.Constraint {
		case constraintConfirmedEmailDaily, constraintConfirmedPhoneDaily:
			return ErrDuplicateContact
		}
	case pgSerializationFailure, pgDeadlockDetected:
		return ErrSerialization
	}

	return nil
}

// wrapExecError оборачивает ошибку выполнения: известные ограничения получают свой sentinel,
// остальные ErrExecQuery
func wrapExecError(method string, err error) error {
	if kind := classifyError(err); kind != nil {
		return fmt.Errorf("%w: %s: %v", kind, method, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrExecQuery, method, err)
}
