package bookings

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
)

// Service сохраняет бронирования и меняет их статус.
// Ошибки ограничений БД переводятся в доменные ошибки
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// NextCustomerID возвращает следующий customer id: максимальный числовой + 1.
// Если бронирований еще нет, чтение не удалось или номер не помещается в
// domain.MaxCustomerIDLength цифр, возвращает domain.InitialCustomerID
func (s *Service) NextCustomerID(ctx context.Context) string {
	initial := strconv.Itoa(domain.InitialCustomerID)

	maxID, ok, err := s.bookingRepo.MaxCustomerID(ctx)
	if err != nil {
		s.logger.Error("NextCustomerID: failed to read max customer id, falling back to %s: %v", initial, err)
		return initial
	}
	if !ok {
		return initial
	}

	current, parsed := new(big.Int).SetString(maxID, 10)
	if !parsed {
		s.logger.Error("NextCustomerID: max customer id %q is not a number, falling back to %s", maxID, initial)
		return initial
	}

	next := current.Add(current, big.NewInt(1)).String()
	if len(next) > domain.MaxCustomerIDLength {
		s.logger.Error("NextCustomerID: next customer id %s exceeds %d digits, falling back to %s",
			next, domain.MaxCustomerIDLength, initial)
		return initial
	}
	return next
}

// Create сохраняет бронирование, при пустом CustomerID назначает следующий номер.
// Внутри транзакции чтение номера и вставка выполняются атомарно
func (s *Service) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if booking.CustomerID == "" {
		booking.CustomerID = s.NextCustomerID(ctx)
	}

	s.logger.Info("Create: title=%q, start=%s, end=%s, status=%s, customer=%s",
		booking.Title, booking.StartTime.Format(time.RFC3339), booking.EndTime.Format(time.RFC3339),
		booking.Status, booking.CustomerID)

	created, err := s.bookingRepo.Create(ctx, booking)
	if err != nil {
		mapped := mapRepositoryError(err)
		if errors.Is(mapped, ErrInternal) {
			s.logger.Error("Create: repository error: %v", err)
		} else {
			s.logger.Warn("Create: rejected by storage: %v", err)
		}
		return nil, mapped
	}

	s.logger.Info("Create: booking id=%s created, customer=%s", created.ID, created.CustomerID)
	return created, nil
}

// UpdateStatus меняет статус бронирования.
// Возврат отмененного бронирования в активный статус проверяется теми же ограничениями, что и создание
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: booking id=%s, status=%s", id, status)

	newStatus := domain.BookingStatus(status)
	if !newStatus.IsValid() {
		s.logger.Warn("UpdateStatus: invalid status=%q for booking id=%s", status, id)
		return nil, domain.NewFieldError(domain.ErrInvalidStatus, "status")
	}

	updated, err := s.bookingRepo.UpdateStatus(ctx, id, newStatus)
	if err != nil {
		mapped := mapRepositoryError(err)
		switch {
		case errors.Is(mapped, domain.ErrBookingNotFound):
			s.logger.Warn("UpdateStatus: booking id=%s not found", id)
		case errors.Is(mapped, ErrInternal):
			s.logger.Error("UpdateStatus: repository error for booking id=%s: %v", id, err)
		default:
			s.logger.Warn("UpdateStatus: rejected by storage for booking id=%s: %v", id, err)
		}
		return nil, mapped
	}

	s.logger.Info("UpdateStatus: booking id=%s is now %s", id, updated.Status)
	return models.FromDomainBooking(updated), nil
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, domain.ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// List получает бронирования, пересекающие период, с фильтрацией по статусу
//
// Примеры:
// - Все активные бронирования: List(ctx, &ListBookingsRequest{})
// - Бронирования за неделю: From и To на границах недели
// - Включая отмененные: IncludeCancelled = true
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// ListByClient получает бронирования клиента
func (s *Service) ListByClient(ctx context.Context, clientID uuid.UUID, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	if req == nil {
		req = &models.ListBookingsRequest{}
	}
	req.ClientID = &clientID

	s.logger.Info("ListByClient: client=%s", clientID)
	return s.List(ctx, req)
}

// mapRepositoryError переводит ошибки репозитория в доменные
func mapRepositoryError(err error) error {
	switch {
	case errors.Is(err, bookingRepo.ErrSlotOverlap):
		return domain.NewRuleError(domain.ErrSlotTaken)
	case errors.Is(err, bookingRepo.ErrEndBeforeStart):
		return domain.NewFieldError(domain.ErrInvalidRange, "endTime")
	case errors.Is(err, bookingRepo.ErrInvalidStatus):
		return domain.NewFieldError(domain.ErrInvalidStatus, "status")
	case errors.Is(err, bookingRepo.ErrInvalidCustomerID):
		return domain.NewFieldError(domain.ErrInvalidCustomerID, "customerId")
	case errors.Is(err, bookingRepo.ErrDuplicateContact):
		return domain.NewRuleError(domain.ErrDuplicateContact)
	case errors.Is(err, bookingRepo.ErrSerialization):
		return domain.NewRuleError(domain.ErrConcurrentBooking)
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		return domain.ErrBookingNotFound
	default:
		return fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
}
