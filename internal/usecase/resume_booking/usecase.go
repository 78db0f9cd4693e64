package resume_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/feelmetown/FMT-BookingService/internal/domain"
	"github.com/feelmetown/FMT-BookingService/internal/infra/storage/booking"
)

// Options параметры политики повторов
type Options struct {
	MaxAttempts    int           // всего попыток, включая первую
	BackoffStep    time.Duration // пауза = номер попытки * BackoffStep
	AttemptTimeout time.Duration // таймаут одной попытки
}

// DefaultOptions политика повторов по умолчанию
func DefaultOptions() Options {
	return Options{
		MaxAttempts:    3,
		BackoffStep:    time.Second,
		AttemptTimeout: 10 * time.Second,
	}
}

// UseCase use case возобновления потока бронирования по ссылке из письма.
//
// Клиент открывает ссылку в момент, когда хранилище может быть недоступно
// (деплой, сетевой сбой), поэтому чтение обёрнуто в ограниченные повторы.
// Конкурентные открытия одной и той же ссылки схлопываются через
// singleflight: одна последовательность попыток на номер бронирования.
type UseCase struct {
	bookingRepo BookingRepository
	logger      Logger
	opts        Options

	group singleflight.Group

	// подменяется в тестах, чтобы не ждать реальных пауз
	sleep func(ctx context.Context, d time.Duration) error
}

type fetchResult struct {
	booking  *domain.Booking
	attempts int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, logger Logger, opts Options) *UseCase {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultOptions().MaxAttempts
	}
	if opts.BackoffStep <= 0 {
		opts.BackoffStep = DefaultOptions().BackoffStep
	}
	if opts.AttemptTimeout <= 0 {
		opts.AttemptTimeout = DefaultOptions().AttemptTimeout
	}

	return &UseCase{
		bookingRepo: bookingRepo,
		logger:      logger,
		opts:        opts,
		sleep:       sleepCtx,
	}
}

// Execute выполняет use case возобновления бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ResumeBooking: validation failed: %v", err)
		return nil, err
	}

	ref := strings.TrimSpace(req.BookingRef)
	uc.logger.Info("ResumeBooking: ref=%s", ref)

	v, err, shared := uc.group.Do(ref, func() (interface{}, error) {
		// Последовательность попыток общая для всех, кто на неё схлопнулся:
		// отключение вызывающего, начавшего её, не должно обрывать остальных.
		// Контекст отвязывается от отмены, границей остаются MaxAttempts
		// и AttemptTimeout
		return uc.fetchWithRetries(context.WithoutCancel(ctx), ref)
	})
	if err != nil {
		return nil, err
	}

	res := v.(*fetchResult)
	if shared {
		uc.logger.Info("ResumeBooking: ref=%s shared an in-flight fetch", ref)
	}

	// Проверка владения — вне singleflight: результат общий,
	// а право доступа у каждого вызывающего своё
	if !res.booking.OwnedBy(req.CustomerEmail) {
		uc.logger.Warn("ResumeBooking: access denied for ref=%s", ref)
		return nil, ErrAccessDenied
	}

	return fromDomainBooking(res.booking, res.attempts), nil
}

// fetchWithRetries читает бронирование с ограниченными повторами.
// ErrBookingNotFound терминальна: хранилище ответило, записи нет,
// повторять бессмысленно. Всё остальное считается временным сбоем.
func (uc *UseCase) fetchWithRetries(ctx context.Context, ref string) (*fetchResult, error) {
	var lastErr error

	for attempt := 1; attempt <= uc.opts.MaxAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, uc.opts.AttemptTimeout)
		b, err := uc.bookingRepo.GetByRef(attemptCtx, ref)
		cancel()

		if err == nil {
			return &fetchResult{booking: b, attempts: attempt}, nil
		}

		if errors.Is(err, booking.ErrBookingNotFound) {
			uc.logger.Warn("ResumeBooking: ref=%s not found (attempt %d)", ref, attempt)
			return nil, ErrBookingNotFound
		}

		lastErr = err
		uc.logger.Warn("ResumeBooking: attempt %d/%d failed for ref=%s: %v",
			attempt, uc.opts.MaxAttempts, ref, err)

		if attempt == uc.opts.MaxAttempts {
			break
		}

		// линейный backoff: 1s, 2s, ...
		if err := uc.sleep(ctx, time.Duration(attempt)*uc.opts.BackoffStep); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrGivenUp, err)
		}
	}

	uc.logger.Error("ResumeBooking: gave up on ref=%s after %d attempts: %v",
		ref, uc.opts.MaxAttempts, lastErr)
	return nil, fmt.Errorf("%w: last error: %v", ErrGivenUp, lastErr)
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.BookingRef) == "" {
		return fmt.Errorf("%w: booking ref is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.CustomerEmail) == "" {
		return fmt.Errorf("%w: customer email is required", ErrInvalidInput)
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
