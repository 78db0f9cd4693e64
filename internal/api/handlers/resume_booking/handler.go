package resume_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/feelmetown/FMT-BookingService/internal/api/handlers"
	resumeBooking "github.com/feelmetown/FMT-BookingService/internal/usecase/resume_booking"
)

const (
	msgMissingEmail = "email is required"
	msgNotFound     = "booking not found"
	msgForbidden    = "access denied"
	msgGivenUp      = "booking is temporarily unavailable, please try again"
)

type Handler struct {
	useCase ResumeBookingUseCase
	logger  Logger
}

func NewHandler(useCase ResumeBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingRef}/resume
// Query params: email (required)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingRef := vars["bookingRef"]

	email := r.URL.Query().Get("email")
	if email == "" {
		h.logger.Warn("GET /bookings/{ref}/resume - Missing email: booking_ref=%s", bookingRef)
		handlers.RespondBadRequest(w, msgMissingEmail)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &resumeBooking.Request{
		BookingRef:    bookingRef,
		CustomerEmail: email,
	})
	if err != nil {
		switch {
		case errors.Is(err, resumeBooking.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{ref}/resume - Booking not found: booking_ref=%s", bookingRef)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, resumeBooking.ErrAccessDenied):
			h.logger.Warn("GET /bookings/{ref}/resume - Access denied: booking_ref=%s", bookingRef)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, resumeBooking.ErrGivenUp):
			h.logger.Error("GET /bookings/{ref}/resume - Gave up after retries: booking_ref=%s, error=%v", bookingRef, err)
			handlers.RespondServiceUnavailable(w, msgGivenUp)

		case errors.Is(err, resumeBooking.ErrInvalidInput):
			h.logger.Warn("GET /bookings/{ref}/resume - Invalid input: booking_ref=%s, error=%v", bookingRef, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /bookings/{ref}/resume - Failed to resume booking: booking_ref=%s, error=%v",
				bookingRef, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /bookings/{ref}/resume - Booking resumed: booking_ref=%s, attempts=%d",
		bookingRef, result.Attempts)
	handlers.RespondJSON(w, http.StatusOK, response)
}
