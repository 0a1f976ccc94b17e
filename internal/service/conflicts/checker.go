package conflicts

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Checker проверяет пересечение интервала с уже существующими бронированиями
type Checker struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewChecker создает новый экземпляр проверки конфликтов
func NewChecker(bookingRepo BookingRepository, logger Logger) *Checker {
	return &Checker{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// HasConflict возвращает true, если [start, end) пересекается хотя бы с одним неотмененным бронированием.
// Бронирования, касающиеся интервала только границей, конфликтом не считаются.
// Если прочитать бронирования не удалось, возвращает true (интервал считается занятым)
func (c *Checker) HasConflict(ctx context.Context, start, end time.Time) bool {
	overlapping, err := c.Overlapping(ctx, start, end)
	if err != nil {
		c.logger.Error("HasConflict: treating [%s, %s) as taken: %v",
			start.Format(time.RFC3339), end.Format(time.RFC3339), err)
		return true
	}

	if len(overlapping) > 0 {
		c.logger.Info("HasConflict: [%s, %s) overlaps %d booking(s), first id=%s",
			start.Format(time.RFC3339), end.Format(time.RFC3339), len(overlapping), overlapping[0].ID)
		return true
	}

	return false
}

// Overlapping возвращает неотмененные бронирования, пересекающие [start, end)
func (c *Checker) Overlapping(ctx context.Context, start, end time.Time) ([]*domain.Booking, error) {
	bookings, err := c.bookingRepo.FindOverlapping(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: Overlapping - repository error: %v", ErrInternal, err)
	}

	result := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.IsActive() && b.Overlaps(start, end) {
			result = append(result, b)
		}
	}

	return result, nil
}
