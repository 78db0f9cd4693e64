package get_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/feelmetown/FMT-BookingService/internal/api/handlers"
	"github.com/feelmetown/FMT-BookingService/internal/service/bookings"
	"github.com/feelmetown/FMT-BookingService/internal/service/bookings/models"
)

const (
	msgMissingEmail = "email is required"
	msgNotFound     = "booking not found"
	msgForbidden    = "access denied"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingRef}
// Query params: email (required)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingRef := vars["bookingRef"]

	email := r.URL.Query().Get("email")
	if email == "" {
		h.logger.Warn("GET /bookings/{ref} - Missing email: booking_ref=%s", bookingRef)
		handlers.RespondBadRequest(w, msgMissingEmail)
		return
	}

	booking, err := h.service.GetByRef(r.Context(), &models.GetBookingRequest{
		BookingRef:    bookingRef,
		CustomerEmail: email,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{ref} - Booking not found: booking_ref=%s", bookingRef)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings/{ref} - Access denied: booking_ref=%s", bookingRef)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings/{ref} - Invalid input: booking_ref=%s, error=%v", bookingRef, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /bookings/{ref} - Failed to get booking: booking_ref=%s, error=%v", bookingRef, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{ref} - Booking retrieved successfully: booking_ref=%s", bookingRef)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
