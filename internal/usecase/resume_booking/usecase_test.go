package resume_booking

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feelmetown/FMT-BookingService/internal/domain"
	"github.com/feelmetown/FMT-BookingService/internal/infra/storage/booking"
)

// flakyRepo отдаёт ошибки для первых failures вызовов, затем бронирование
type flakyRepo struct {
	mu       sync.Mutex
	failures int
	calls    int
	booking  *domain.Booking
	err      error
}

func (r *flakyRepo) GetByRef(ctx context.Context, ref string) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls++
	if r.calls <= r.failures {
		return nil, r.err
	}
	if r.booking == nil {
		return nil, booking.ErrBookingNotFound
	}
	copied := *r.booking
	return &copied, nil
}

func (r *flakyRepo) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

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
		SlotLabel:     "7:00 PM - 9:00 PM",
		SlotKey:       "19:00-21:00",
		StartTime:     "19:00",
		EndTime:       "21:00",
		CustomerEmail: "aarav.sharma@example.com",
		Status:        domain.StatusPending,
	}
}

// newTestUseCase собирает use case с мгновенным sleep
func newTestUseCase(repo BookingRepository, opts Options) *UseCase {
	uc := NewUseCase(repo, nopLogger{}, opts)
	uc.sleep = func(ctx context.Context, d time.Duration) error { return nil }
	return uc
}

func testRequest() *Request {
	return &Request{
		BookingRef:    "FMT-AB12CD34",
		CustomerEmail: "aarav.sharma@example.com",
	}
}

func TestExecute_FirstAttemptSucceeds(t *testing.T) {
	repo := &flakyRepo{booking: testBooking()}
	uc := newTestUseCase(repo, DefaultOptions())

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, "FMT-AB12CD34", resp.Ref)
	assert.Equal(t, 1, resp.Attempts)
	assert.Equal(t, 1, repo.callCount())
}

func TestExecute_SucceedsOnThirdAttempt(t *testing.T) {
	repo := &flakyRepo{
		booking:  testBooking(),
		failures: 2,
		err:      errors.New("connection refused"),
	}
	uc := newTestUseCase(repo, DefaultOptions())

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Attempts)
	assert.Equal(t, 3, repo.callCount())
}

func TestExecute_GivesUpAfterMaxAttempts(t *testing.T) {
	repo := &flakyRepo{
		booking:  testBooking(),
		failures: 100,
		err:      errors.New("connection refused"),
	}
	uc := newTestUseCase(repo, DefaultOptions())

	_, err := uc.Execute(context.Background(), testRequest())
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrGivenUp)
	assert.NotErrorIs(t, err, ErrBookingNotFound)
	// ровно MaxAttempts попыток, ни одной сверх лимита
	assert.Equal(t, DefaultOptions().MaxAttempts, repo.callCount())
}

func TestExecute_NotFoundIsTerminal(t *testing.T) {
	repo := &flakyRepo{booking: nil}
	uc := newTestUseCase(repo, DefaultOptions())

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrBookingNotFound)
	// терминальная ошибка: повторов не было
	assert.Equal(t, 1, repo.callCount())
}

func TestExecute_AccessDenied(t *testing.T) {
	repo := &flakyRepo{booking: testBooking()}
	uc := newTestUseCase(repo, DefaultOptions())

	req := testRequest()
	req.CustomerEmail = "someone.else@example.com"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_ConcurrentResumesShareOneFetch(t *testing.T) {
	// блокирующий репозиторий: пока первый fetch висит, остальные вызовы
	// обязаны подцепиться к нему, а не начать свои
	release := make(chan struct{})
	repo := &blockingRepo{booking: testBooking(), release: release}
	uc := newTestUseCase(repo, DefaultOptions())

	const callers = 8

	var wg sync.WaitGroup
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), testRequest())
		}(i)
	}

	// даём всем вызовам дойти до singleflight и отпускаем fetch
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(1), repo.calls.Load())
}

type blockingRepo struct {
	booking *domain.Booking
	release chan struct{}
	calls   atomic.Int32
}

func (r *blockingRepo) GetByRef(ctx context.Context, ref string) (*domain.Booking, error) {
	r.calls.Add(1)
	<-r.release
	copied := *r.booking
	return &copied, nil
}

func TestExecute_CallerDisconnectDoesNotAbortSharedFetch(t *testing.T) {
	// вызывающий, начавший последовательность попыток, отключается во время
	// backoff; последовательность общая и должна дойти до конца
	repo := &flakyRepo{
		booking:  testBooking(),
		failures: 1,
		err:      errors.New("connection refused"),
	}
	uc := NewUseCase(repo, nopLogger{}, DefaultOptions())

	ctx, cancel := context.WithCancel(context.Background())
	uc.sleep = func(sleepCtx context.Context, d time.Duration) error {
		cancel()
		// контекст fetch отвязан от отмены вызывающего
		return sleepCtx.Err()
	}

	resp, err := uc.Execute(ctx, testRequest())
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Attempts)
	assert.Equal(t, 2, repo.callCount())
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := newTestUseCase(&flakyRepo{booking: testBooking()}, DefaultOptions())

	_, err := uc.Execute(context.Background(), &Request{BookingRef: "", CustomerEmail: "a@b.c"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{BookingRef: "FMT-AB12CD34", CustomerEmail: ""})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
