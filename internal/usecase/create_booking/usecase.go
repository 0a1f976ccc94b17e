package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	validator BookingValidator
	writer    BookingWriter
	txManager TransactionManager
	metrics   Metrics
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	validator BookingValidator,
	writer BookingWriter,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		validator: validator,
		writer:    writer,
		txManager: txManager,
		metrics:   metrics,
		logger:    logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка конфликта, чтение customer id и вставка выполняются в одной сериализуемой транзакции.
// Повторов нет: конфликт сериализации возвращается как domain.ErrConcurrentBooking
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, ErrInvalidInput
	}

	uc.logger.Info("CreateBooking: title=%q, start=%s, end=%s, status=%s",
		req.Title, req.StartTime, req.EndTime, req.Status)

	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.validator.Validate(txCtx, req)
		if err != nil {
			return err
		}

		created, err := uc.writer.Create(txCtx, booking)
		if err != nil {
			return err
		}

		result = created
		return nil
	})

	if err != nil {
		err = uc.classify(err)
		uc.metrics.ObserveBooking(domain.Kind(err))
		return nil, err
	}

	uc.metrics.ObserveBooking(domain.Kind(nil))
	uc.logger.Info("CreateBooking: successfully created booking id=%s, customer=%s", result.ID, result.CustomerID)

	return toResponse(result), nil
}

// classify оставляет нарушения правил как есть, остальное превращает в ErrInternal
func (uc *UseCase) classify(err error) error {
	switch {
	case domain.IsRuleViolation(err):
		uc.logger.Warn("CreateBooking: rejected (%s): %v", domain.Kind(err), err)
		return err
	case errors.Is(err, txmanager.ErrSerializationFailure):
		uc.logger.Warn("CreateBooking: concurrent booking detected: %v", err)
		return domain.NewRuleError(domain.ErrConcurrentBooking)
	default:
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:          b.ID,
		Title:       b.Title,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Status:      string(b.Status),
		ClientID:    b.ClientID,
		CustomerID:  b.CustomerID,
		Email:       b.Email,
		Phone:       b.Phone,
		Description: b.Description,
		Location:    b.Location,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
