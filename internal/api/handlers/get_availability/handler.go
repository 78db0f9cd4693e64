package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/feelmetown/FMT-BookingService/internal/api/handlers"
	getAvailability "github.com/feelmetown/FMT-BookingService/internal/usecase/get_availability"
)

const (
	msgInvalidVenueID = "invalid venue ID"
	msgMissingDate    = "date is required"
	msgInvalidDate    = "invalid date format, expected YYYY-MM-DD"
	msgVenueNotFound  = "venue not found"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/availability
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	venueIDStr := vars["venueId"]
	venueID, err := strconv.ParseInt(venueIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/availability - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /venues/{id}/availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(venueID, dateStr)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrVenueNotFound):
			h.logger.Warn("GET /venues/{id}/availability - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /venues/{id}/availability - Invalid input: venue_id=%d, error=%v", venueID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /venues/{id}/availability - Failed to get availability: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /venues/{id}/availability - Availability retrieved: venue_id=%d, date=%s, slots_count=%d",
		venueID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
