package get_venue_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/feelmetown/FMT-BookingService/internal/api/handlers"
	"github.com/feelmetown/FMT-BookingService/internal/domain"
	"github.com/feelmetown/FMT-BookingService/internal/service/bookings"
	"github.com/feelmetown/FMT-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidVenueID = "invalid venue ID"
	msgMissingDate    = "date is required"
	msgInvalidDate    = "invalid date format, expected YYYY-MM-DD"
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

// Handle GET /api/v1/venues/{venueId}/bookings
// Query params: date (required, YYYY-MM-DD), includeCancelled (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	venueIDStr := vars["venueId"]
	venueID, err := strconv.ParseInt(venueIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/bookings - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /venues/{id}/bookings - Missing date: venue_id=%d", venueID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/bookings - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	includeCancelled := r.URL.Query().Get("includeCancelled") == "true"

	result, err := h.service.GetVenueBookings(r.Context(), &models.GetVenueBookingsRequest{
		VenueID:          venueID,
		Date:             date,
		IncludeCancelled: includeCancelled,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /venues/{id}/bookings - Invalid input: venue_id=%d, error=%v", venueID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /venues/{id}/bookings - Failed to get bookings: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues/{id}/bookings - Bookings retrieved successfully: venue_id=%d, date=%s, count=%d",
		venueID, dateStr, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
