package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/feelmetown/FMT-BookingService/internal/domain"
	catalogClient "github.com/feelmetown/FMT-BookingService/internal/integrations/venuecatalog"
)

// UseCase use case получения представления доступности слотов.
//
// Представление каждый раз пересчитывается из двух авторитетных источников
// (каталог площадок и хранилище бронирований) и нигде не кэшируется —
// кэшу здесь негде разойтись с истиной. Читающий путь не берёт блокировок:
// допустима кратковременная устаревшесть, менеджер бронирований всё равно
// перепроверит состояние под своей блокировкой.
type UseCase struct {
	bookingRepo   BookingRepository
	catalogClient VenueCatalogClient
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogClient VenueCatalogClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		catalogClient: catalogClient,
		logger:        logger,
	}
}

// Execute выполняет use case получения доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: venue=%d, date=%s", req.VenueID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем площадку с её сконфигурированными слотами
	venue, err := uc.catalogClient.GetVenue(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrVenueNotFound) {
			uc.logger.Warn("GetAvailability: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("GetAvailability: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	// 3. Получаем активные бронирования на дату
	bookings, err := uc.bookingRepo.FindActiveByVenueAndDate(ctx, req.VenueID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 4. Строим производное представление
	view := buildAvailabilityView(venue, req.Date, bookings)

	uc.logger.Info("GetAvailability: venue=%d, date=%s: %d slots, %d free",
		req.VenueID, req.Date.Format(domain.DateFormat), len(view.Slots), view.FreeCount())

	return fromDomainView(view), nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
