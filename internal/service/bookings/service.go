package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/feelmetown/FMT-BookingService/internal/domain"
	bookingRepo "github.com/feelmetown/FMT-BookingService/internal/infra/storage/booking"
	"github.com/feelmetown/FMT-BookingService/internal/service/bookings/models"
)

// Service сервис чтения бронирований
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

// GetByRef получает бронирование по внешнему номеру
// Клиент видит только своё бронирование: email должен совпасть с владельцем
func (s *Service) GetByRef(ctx context.Context, req *models.GetBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("GetByRef: fetching booking ref=%s", req.BookingRef)

	if strings.TrimSpace(req.BookingRef) == "" {
		return nil, fmt.Errorf("%w: booking ref is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.CustomerEmail) == "" {
		return nil, fmt.Errorf("%w: customer email is required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByRef(ctx, req.BookingRef)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByRef: booking ref=%s not found", req.BookingRef)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByRef: repository error for ref=%s: %v", req.BookingRef, err)
		return nil, fmt.Errorf("%w: GetByRef - repository error: %v", ErrInternal, err)
	}

	if !booking.OwnedBy(req.CustomerEmail) {
		s.logger.Warn("GetByRef: access denied for ref=%s", req.BookingRef)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByRef: successfully fetched booking ref=%s", req.BookingRef)
	return models.FromDomainBooking(booking), nil
}

// GetCustomerBookings получает историю бронирований клиента по email
func (s *Service) GetCustomerBookings(ctx context.Context, email string) (*models.BookingListResponse, error) {
	s.logger.Info("GetCustomerBookings: fetching bookings for customer")

	if strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("%w: customer email is required", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByCustomerEmail(ctx, email)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerBookings: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// GetVenueBookings получает дневную сводку бронирований площадки
// Опционально включает отменённые записи (сводка для персонала)
func (s *Service) GetVenueBookings(ctx context.Context, req *models.GetVenueBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetVenueBookings: fetching bookings for venue=%d, date=%s, includeCancelled=%t",
		req.VenueID, req.Date.Format(domain.DateFormat), req.IncludeCancelled)

	if req.VenueID <= 0 {
		return nil, fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByVenueWithFilter(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("GetVenueBookings: repository error for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: GetVenueBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetVenueBookings: successfully fetched %d bookings for venue=%d", len(bookings), req.VenueID)
	return models.FromDomainBookingList(bookings), nil
}
