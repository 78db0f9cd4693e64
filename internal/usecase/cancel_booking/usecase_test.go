package cancel_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feelmetown/FMT-BookingService/internal/domain"
	"github.com/feelmetown/FMT-BookingService/internal/infra/storage/booking"
	"github.com/feelmetown/FMT-BookingService/pkg/ptr"
)

type fakeRepo struct {
	mu        sync.Mutex
	byRef     map[string]*domain.Booking
	cancelErr error
}

func newFakeRepo(bookings ...*domain.Booking) *fakeRepo {
	r := &fakeRepo{byRef: make(map[string]*domain.Booking)}
	for _, b := range bookings {
		r.byRef[b.Ref] = b
	}
	return r
}

func (r *fakeRepo) GetByRef(ctx context.Context, ref string) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.byRef[ref]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeRepo) Cancel(ctx context.Context, id int64, decision domain.RefundDecision) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancelErr != nil {
		return r.cancelErr
	}

	for _, b := range r.byRef {
		if b.ID == id {
			if b.IsCancelled() {
				// guard по статусу: строка уже отменена, 0 rows affected
				return booking.ErrBookingNotFound
			}
			now := time.Now()
			b.Status = domain.StatusCancelled
			b.RefundEligible = ptr.Ptr(decision.Eligible)
			b.RefundAmount = ptr.Ptr(decision.Amount)
			b.CancelledAt = &now
			return nil
		}
	}
	return booking.ErrBookingNotFound
}

type fakePublisher struct {
	mu    sync.Mutex
	calls int
}

func (p *fakePublisher) PublishSlotsChanged(ctx context.Context, venueID int64, date time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
}

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

type fixedTime struct{ now time.Time }

func (t *fixedTime) Now() time.Time { return t.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:            7,
		Ref:           "FMT-AB12CD34",
		VenueID:       42,
		BookingDate:   time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		SlotKey:       "19:00-21:00",
		StartTime:     "19:00",
		EndTime:       "21:00",
		CustomerEmail: "aarav.sharma@example.com",
		TotalAmount:   3000,
		AdvanceAmount: 750,
		Status:        domain.StatusConfirmed,
	}
}

func TestExecute_RefundableCancellation(t *testing.T) {
	repo := newFakeRepo(testBooking())
	pub := &fakePublisher{}
	// слот начинается 15.09 в 19:00, отмена за ~2 недели
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	uc := NewUseCase(repo, pub, &fixedTime{now: now}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		BookingRef:    "FMT-AB12CD34",
		CustomerEmail: "aarav.sharma@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.True(t, resp.RefundEligible)
	assert.Equal(t, 750.0, resp.RefundAmount)
	assert.False(t, resp.AlreadyCancelled)
	assert.Equal(t, 1, pub.count())
}

func TestExecute_LateCancellationNoRefund(t *testing.T) {
	repo := newFakeRepo(testBooking())
	// за 48 часов до слота — под порогом
	now := time.Date(2026, 9, 13, 19, 0, 0, 0, time.UTC)
	uc := NewUseCase(repo, &fakePublisher{}, &fixedTime{now: now}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		BookingRef:    "FMT-AB12CD34",
		CustomerEmail: "aarav.sharma@example.com",
	})
	require.NoError(t, err)

	assert.False(t, resp.RefundEligible)
	assert.Equal(t, 0.0, resp.RefundAmount)
}

func TestExecute_IdempotentRepeatReturnsStoredDecision(t *testing.T) {
	repo := newFakeRepo(testBooking())
	pub := &fakePublisher{}
	firstNow := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	uc := NewUseCase(repo, pub, &fixedTime{now: firstNow}, nopLogger{})

	req := &Request{BookingRef: "FMT-AB12CD34", CustomerEmail: "aarav.sharma@example.com"}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.True(t, first.RefundEligible)

	// вторая отмена — уже под порогом, но решение не пересчитывается
	lateUC := NewUseCase(repo, pub, &fixedTime{now: time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)}, nopLogger{})

	second, err := lateUC.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, second.AlreadyCancelled)
	assert.Equal(t, first.RefundEligible, second.RefundEligible)
	assert.Equal(t, first.RefundAmount, second.RefundAmount)
	// повторная отмена ничего не меняет и не сигналит
	assert.Equal(t, 1, pub.count())
}

func TestExecute_LostCancelRaceReturnsStoredDecision(t *testing.T) {
	// Cancel вернул 0 строк (гонка), перечитывание находит уже отменённую запись
	b := testBooking()
	b.Status = domain.StatusCancelled
	b.RefundEligible = ptr.Ptr(false)
	b.RefundAmount = ptr.Ptr(0.0)

	racing := &racingRepo{fakeRepo: newFakeRepo(b)}

	uc := NewUseCase(racing, &fakePublisher{}, &fixedTime{now: time.Now()}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		BookingRef:    "FMT-AB12CD34",
		CustomerEmail: "aarav.sharma@example.com",
	})
	require.NoError(t, err)
	assert.True(t, resp.AlreadyCancelled)
	assert.False(t, resp.RefundEligible)
}

// racingRepo отдаёт активное бронирование на первом чтении, имитируя
// конкурентную отмену между чтением и записью
type racingRepo struct {
	*fakeRepo
	reads int
}

func (r *racingRepo) GetByRef(ctx context.Context, ref string) (*domain.Booking, error) {
	b, err := r.fakeRepo.GetByRef(ctx, ref)
	if err != nil {
		return nil, err
	}
	r.reads++
	if r.reads == 1 {
		b.Status = domain.StatusConfirmed
		b.RefundEligible = nil
		b.RefundAmount = nil
	}
	return b, nil
}

func TestExecute_AccessDenied(t *testing.T) {
	repo := newFakeRepo(testBooking())
	uc := NewUseCase(repo, &fakePublisher{}, &fixedTime{now: time.Now()}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingRef:    "FMT-AB12CD34",
		CustomerEmail: "someone.else@example.com",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_NotFound(t *testing.T) {
	uc := NewUseCase(newFakeRepo(), &fakePublisher{}, &fixedTime{now: time.Now()}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingRef:    "FMT-MISSING1",
		CustomerEmail: "aarav.sharma@example.com",
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_StoreFailureIsNotSwallowed(t *testing.T) {
	repo := newFakeRepo(testBooking())
	repo.cancelErr = errors.New("connection reset")
	uc := NewUseCase(repo, &fakePublisher{}, &fixedTime{now: time.Now()}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingRef:    "FMT-AB12CD34",
		CustomerEmail: "aarav.sharma@example.com",
	})
	assert.ErrorIs(t, err, ErrInternal)
}
