package create_booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

type mockWriter struct{ mock.Mock }

func (m *mockWriter) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, b)
	res, _ := args.Get(0).(*domain.Booking)
	return res, args.Error(1)
}

// fakeTx выполняет fn и возвращает commitErr, если fn завершилась успешно
type fakeTx struct {
	commitErr error
	calls     int
}

func (tx *fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	if err := fn(ctx); err != nil {
		return err
	}
	return tx.commitErr
}

type recordedOutcomes struct{ outcomes []string }

func (r *recordedOutcomes) ObserveBooking(outcome string) {
	r.outcomes = append(r.outcomes, outcome)
}

type useCaseFixture struct {
	policy  *fakePolicy
	checker *fakeChecker
	writer  *mockWriter
	tx      *fakeTx
	metrics *recordedOutcomes
	uc      *UseCase
}

func newUseCaseFixture(t *testing.T) *useCaseFixture {
	t.Helper()
	f := &useCaseFixture{
		policy:  mondayPolicy(),
		checker: &fakeChecker{},
		writer:  &mockWriter{},
		tx:      &fakeTx{},
		metrics: &recordedOutcomes{},
	}
	validator := newTestValidator(f.policy, f.checker, time.UTC)
	f.uc = NewUseCase(validator, f.writer, f.tx, f.metrics, logger.NewNop())
	return f
}

func TestUseCase_Execute_CreatesBooking(t *testing.T) {
	f := newUseCaseFixture(t)
	stored := &domain.Booking{
		ID:         uuid.New(),
		Title:      "Иван Петров",
		StartTime:  at(nextMonday, 10, 0),
		EndTime:    at(nextMonday, 11, 0),
		Status:     domain.StatusPending,
		CustomerID: "1000",
	}

	f.writer.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Title == "Иван Петров" && b.Status == domain.StatusPending && b.CustomerID == ""
	})).Return(stored, nil).Once()

	resp, err := f.uc.Execute(context.Background(), request(at(nextMonday, 10, 0), at(nextMonday, 11, 0)))
	require.NoError(t, err)

	assert.Equal(t, stored.ID, resp.ID)
	assert.Equal(t, "1000", resp.CustomerID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 1, f.tx.calls)
	assert.Equal(t, []string{"created"}, f.metrics.outcomes)
	f.writer.AssertExpectations(t)
}

func TestUseCase_Execute_RejectedBeforeWrite(t *testing.T) {
	f := newUseCaseFixture(t)

	_, err := f.uc.Execute(context.Background(), request(now.Add(time.Hour), now.Add(2*time.Hour)))

	assert.ErrorIs(t, err, domain.ErrTooSoon)
	assert.Equal(t, []string{"too_soon"}, f.metrics.outcomes)
	f.writer.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUseCase_Execute_ConflictDetectedByCheck(t *testing.T) {
	f := newUseCaseFixture(t)
	f.checker.conflict = true

	_, err := f.uc.Execute(context.Background(), request(at(nextMonday, 10, 30), at(nextMonday, 11, 30)))

	assert.ErrorIs(t, err, domain.ErrSlotTaken)
	assert.Equal(t, []string{"slot_taken"}, f.metrics.outcomes)
	f.writer.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUseCase_Execute_ConflictDetectedByStorage(t *testing.T) {
	f := newUseCaseFixture(t)
	f.writer.On("Create", mock.Anything, mock.Anything).
		Return(nil, domain.NewRuleError(domain.ErrSlotTaken)).Once()

	_, err := f.uc.Execute(context.Background(), request(at(nextMonday, 10, 0), at(nextMonday, 11, 0)))

	assert.ErrorIs(t, err, domain.ErrSlotTaken)
	assert.Equal(t, []string{"slot_taken"}, f.metrics.outcomes)
}

func TestUseCase_Execute_SerializationFailureOnCommit(t *testing.T) {
	f := newUseCaseFixture(t)
	f.tx.commitErr = fmt.Errorf("%w: commit: pq: could not serialize access", txmanager.ErrSerializationFailure)
	f.writer.On("Create", mock.Anything, mock.Anything).Return(&domain.Booking{ID: uuid.New()}, nil).Once()

	_, err := f.uc.Execute(context.Background(), request(at(nextMonday, 10, 0), at(nextMonday, 11, 0)))

	assert.ErrorIs(t, err, domain.ErrConcurrentBooking)
	assert.Equal(t, []string{"concurrent_booking"}, f.metrics.outcomes)
	assert.Equal(t, 1, f.tx.calls, "no automatic retries")
}

func TestUseCase_Execute_InternalError(t *testing.T) {
	f := newUseCaseFixture(t)
	f.writer.On("Create", mock.Anything, mock.Anything).
		Return(nil, errors.New("bookings: internal error: connection reset")).Once()

	_, err := f.uc.Execute(context.Background(), request(at(nextMonday, 10, 0), at(nextMonday, 11, 0)))

	assert.ErrorIs(t, err, ErrInternal)
	assert.False(t, domain.IsRuleViolation(err))
	assert.Equal(t, []string{"internal_error"}, f.metrics.outcomes)
}

func TestUseCase_Execute_NilRequest(t *testing.T) {
	f := newUseCaseFixture(t)

	_, err := f.uc.Execute(context.Background(), nil)

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, f.tx.calls)
}
