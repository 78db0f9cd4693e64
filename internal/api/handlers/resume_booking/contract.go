package resume_booking

import (
	"context"

	resumeBooking "github.com/feelmetown/FMT-BookingService/internal/usecase/resume_booking"
)

type ResumeBookingUseCase interface {
	Execute(ctx context.Context, req *resumeBooking.Request) (*resumeBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
