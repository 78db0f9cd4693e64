package reserve_slot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/feelmetown/FMT-BookingService/internal/domain"
	"github.com/feelmetown/FMT-BookingService/internal/infra/storage/booking"
	catalogClient "github.com/feelmetown/FMT-BookingService/internal/integrations/venuecatalog"
	"github.com/feelmetown/FMT-BookingService/pkg/slotkey"
)

// UseCase use case бронирования слота.
//
// Ровно один победитель на (площадка, дата, слот) обеспечивается тремя
// слоями, от дешёвого к последнему рубежу:
//  1. SlotLocker сериализует конкурентов в рамках процесса;
//  2. сериализуемая транзакция + FOR UPDATE перечитывают занятость под
//     блокировкой строк;
//  3. частичный уникальный индекс в БД ловит всё, что просочилось мимо
//     (другой инстанс сервиса, ручная правка данных).
type UseCase struct {
	bookingRepo   BookingRepository
	catalogClient VenueCatalogClient
	txManager     TransactionManager
	slotLocker    SlotLocker
	publisher     EventPublisher
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogClient VenueCatalogClient,
	txManager TransactionManager,
	slotLocker SlotLocker,
	publisher EventPublisher,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		catalogClient: catalogClient,
		txManager:     txManager,
		slotLocker:    slotLocker,
		publisher:     publisher,
		timeProvider:  timeProvider,
		logger:        logger,
	}
}

// Execute выполняет use case бронирования слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReserveSlot: venue=%d, date=%s, slot=%q",
		req.VenueID, req.Date.Format(domain.DateFormat), req.SlotLabel)

	now := uc.timeProvider.Now()

	// 1. Валидация входных данных
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("ReserveSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем площадку с её сконфигурированными слотами
	venue, err := uc.catalogClient.GetVenue(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrVenueNotFound) {
			uc.logger.Warn("ReserveSlot: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("ReserveSlot: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	// 3. Размер компании против вместимости площадки
	if err := validateCapacity(venue, req.Draft.PartySize); err != nil {
		uc.logger.Warn("ReserveSlot: %v", err)
		return nil, err
	}

	// 4. Нормализуем метку слота: "7:00 PM - 9:00 PM" и "7:00PM-9:00PM"
	// должны конкурировать за один и тот же ключ
	key := slotkey.Normalize(req.SlotLabel)

	// 5. Сериализуем конкурентов на (площадка, дата)
	lockKey := fmt.Sprintf("%d:%s", req.VenueID, req.Date.Format(domain.DateFormat))
	uc.slotLocker.Lock(lockKey)
	defer uc.slotLocker.Unlock(lockKey)

	var created *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		// Перечитываем занятость под блокировкой строк
		bookings, err := uc.bookingRepo.FindActiveByVenueAndDate(ctx, req.VenueID, req.Date)
		if err != nil {
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		view := buildAvailabilityView(venue, req.Date, bookings)

		slot, ok := view.SlotByKey(key)
		if !ok {
			return &ConflictError{Reason: ConflictReasonNotConfigured, View: view}
		}
		if slot.Booked {
			return &ConflictError{Reason: ConflictReasonTaken, View: view}
		}

		status := domain.StatusConfirmed
		if !req.Draft.Finalize {
			status = domain.StatusPending
		}

		created, err = uc.bookingRepo.Create(ctx, &domain.Booking{
			Ref:           newBookingRef(),
			VenueID:       req.VenueID,
			BookingDate:   req.Date,
			SlotLabel:     slot.Label,
			SlotKey:       key,
			StartTime:     slot.StartTime,
			EndTime:       slot.EndTime,
			CustomerName:  strings.TrimSpace(req.Draft.CustomerName),
			CustomerEmail: strings.TrimSpace(req.Draft.CustomerEmail),
			CustomerPhone: strings.TrimSpace(req.Draft.CustomerPhone),
			Occasion:      req.Draft.Occasion,
			PartySize:     req.Draft.PartySize,
			TotalAmount:   req.Draft.TotalAmount,
			AdvanceAmount: req.Draft.AdvanceAmount,
			Status:        status,
		})
		if err != nil {
			if errors.Is(err, booking.ErrDuplicateSlot) {
				// последний рубеж: уникальный индекс поймал гонку,
				// которую не видел ни локер, ни перечитывание
				return &ConflictError{Reason: ConflictReasonTaken, View: view}
			}
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			uc.logger.Warn("ReserveSlot: conflict (%s): venue=%d, date=%s, key=%q",
				conflict.Reason, req.VenueID, req.Date.Format(domain.DateFormat), key)
			return nil, conflict
		}
		uc.logger.Error("ReserveSlot: %v", err)
		return nil, err
	}

	// 6. Сигнал об изменении — строго после коммита
	uc.publisher.PublishSlotsChanged(ctx, req.VenueID, req.Date)

	uc.logger.Info("ReserveSlot: created booking ref=%s, venue=%d, date=%s, key=%q, status=%s",
		created.Ref, req.VenueID, req.Date.Format(domain.DateFormat), key, created.Status)

	return fromDomainBooking(created), nil
}

// newBookingRef генерирует человекочитаемый номер бронирования FMT-XXXXXXXX
func newBookingRef() string {
	id := uuid.New()
	suffix := strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))[:8]
	return "FMT-" + suffix
}
