package get_availability

import (
	"context"
	"time"

	"github.com/feelmetown/FMT-BookingService/internal/domain"
	"github.com/feelmetown/FMT-BookingService/internal/integrations/venuecatalog"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// FindActiveByVenueAndDate получает все не отменённые бронирования площадки на дату
	FindActiveByVenueAndDate(ctx context.Context, venueID int64, date time.Time) ([]*domain.Booking, error)
}

// VenueCatalogClient интерфейс клиента каталога площадок
type VenueCatalogClient interface {
	GetVenue(ctx context.Context, venueID int64) (*venuecatalog.Venue, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
