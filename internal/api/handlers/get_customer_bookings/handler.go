package get_customer_bookings

import (
	"errors"
	"net/http"

	"github.com/feelmetown/FMT-BookingService/internal/api/handlers"
	"github.com/feelmetown/FMT-BookingService/internal/service/bookings"
)

const (
	msgMissingEmail = "email is required"
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

// Handle GET /api/v1/customers/bookings
// Query params: email (required)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		h.logger.Warn("GET /customers/bookings - Missing email")
		handlers.RespondBadRequest(w, msgMissingEmail)
		return
	}

	result, err := h.service.GetCustomerBookings(r.Context(), email)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /customers/bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /customers/bookings - Failed to get bookings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /customers/bookings - Bookings retrieved successfully: count=%d", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
