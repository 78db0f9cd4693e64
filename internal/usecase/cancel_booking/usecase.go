package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/feelmetown/FMT-BookingService/internal/domain"
	"github.com/feelmetown/FMT-BookingService/internal/infra/storage/booking"
)

// UseCase use case отмены бронирования.
//
// Отмена идемпотентна: повторный запрос на уже отменённое бронирование
// возвращает решение по возврату, сохранённое при первой отмене, и не
// пересчитывает его — момент первой отмены фиксирует сумму.
type UseCase struct {
	bookingRepo  BookingRepository
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	publisher EventPublisher,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		publisher:    publisher,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет use case отмены бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: ref=%s", req.BookingRef)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бронирование по внешнему номеру
	b, err := uc.bookingRepo.GetByRef(ctx, req.BookingRef)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			uc.logger.Warn("CancelBooking: booking ref=%s not found", req.BookingRef)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CancelBooking: failed to get booking ref=%s: %v", req.BookingRef, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 3. Лёгкая проверка владения по email
	if !b.OwnedBy(req.CustomerEmail) {
		uc.logger.Warn("CancelBooking: access denied for ref=%s", req.BookingRef)
		return nil, ErrAccessDenied
	}

	// 4. Повторная отмена: возвращаем сохранённое решение
	if b.IsCancelled() {
		uc.logger.Info("CancelBooking: ref=%s already cancelled", req.BookingRef)
		return fromCancelled(b), nil
	}

	// 5. Решение по возврату принимается на момент этой отмены
	now := uc.timeProvider.Now()
	decision := domain.DecideRefund(b.SlotStart(), b.AdvanceAmount, now)

	// 6. Переводим в cancelled; guard по статусу в запросе делает переход
	// атомарным при гонке двух отмен
	if err := uc.bookingRepo.Cancel(ctx, b.ID, decision); err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			// гонка: кто-то отменил первым, перечитываем сохранённое решение
			fresh, ferr := uc.bookingRepo.GetByRef(ctx, req.BookingRef)
			if ferr == nil && fresh.IsCancelled() {
				return fromCancelled(fresh), nil
			}
			uc.logger.Error("CancelBooking: lost cancel race and refetch failed for ref=%s: %v", req.BookingRef, ferr)
			return nil, fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
		}
		uc.logger.Error("CancelBooking: failed to cancel booking ref=%s: %v", req.BookingRef, err)
		return nil, fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
	}

	// 7. Слот освободился — сигналим после записи
	uc.publisher.PublishSlotsChanged(ctx, b.VenueID, b.BookingDate)

	uc.logger.Info("CancelBooking: ref=%s cancelled, refund eligible=%t amount=%.2f",
		req.BookingRef, decision.Eligible, decision.Amount)

	return &Response{
		Ref:            b.Ref,
		Status:         string(domain.StatusCancelled),
		RefundEligible: decision.Eligible,
		RefundAmount:   decision.Amount,
		CancelledAt:    &now,
	}, nil
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
