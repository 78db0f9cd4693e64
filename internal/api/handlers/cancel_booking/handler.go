package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/feelmetown/FMT-BookingService/internal/api/handlers"
	cancelBooking "github.com/feelmetown/FMT-BookingService/internal/usecase/cancel_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgNotFound           = "booking not found"
	msgForbidden          = "access denied"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingRef}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingRef := vars["bookingRef"]

	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{ref}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancelBooking.Request{
		BookingRef:    bookingRef,
		CustomerEmail: req.CustomerEmail,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancelBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{ref}/cancel - Booking not found: booking_ref=%s", bookingRef)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancelBooking.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{ref}/cancel - Access denied: booking_ref=%s", bookingRef)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, cancelBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{ref}/cancel - Invalid input: booking_ref=%s, error=%v", bookingRef, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /bookings/{ref}/cancel - Failed to cancel booking: booking_ref=%s, error=%v",
				bookingRef, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("PATCH /bookings/{ref}/cancel - Booking cancelled: booking_ref=%s, refund_eligible=%t, refund_amount=%.2f",
		bookingRef, result.RefundEligible, result.RefundAmount)
	handlers.RespondJSON(w, http.StatusOK, response)
}
