package get_booking

import (
	"context"

	"github.com/feelmetown/FMT-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetByRef(ctx context.Context, req *models.GetBookingRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
