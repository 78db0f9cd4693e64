package bookings

import (
	"context"

	"github.com/feelmetown/FMT-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByRef(ctx context.Context, ref string) (*domain.Booking, error)
	GetByCustomerEmail(ctx context.Context, email string) ([]*domain.Booking, error)
	GetByVenueWithFilter(ctx context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
