package reserve_slot

import (
	"errors"
	"net/http"

	"github.com/feelmetown/FMT-BookingService/internal/api/handlers"
	reserveSlot "github.com/feelmetown/FMT-BookingService/internal/usecase/reserve_slot"
)

const (
	msgInvalidRequestBody  = "invalid request body"
	msgInvalidDate         = "invalid booking date format, expected YYYY-MM-DD"
	msgSlotTaken           = "the selected slot is already booked"
	msgSlotNotConfigured   = "the selected slot is not offered at this venue"
	msgVenueNotFound       = "venue not found"
	msgInvalidBookingDate  = "booking date is in the past"
	msgPartySizeOutOfRange = "party size is outside the venue capacity"
)

type Handler struct {
	useCase ReserveSlotUseCase
	logger  Logger
}

func NewHandler(useCase ReserveSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ReserveSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflict *reserveSlot.ConflictError
		switch {
		case errors.As(err, &conflict):
			// 409 с приложенным свежим представлением доступности
			msg := msgSlotTaken
			if conflict.Reason == reserveSlot.ConflictReasonNotConfigured {
				msg = msgSlotNotConfigured
			}
			h.logger.Warn("POST /bookings - Slot conflict (%s): venue_id=%d, date=%s, slot=%q",
				conflict.Reason, req.VenueID, req.BookingDate, req.SlotLabel)
			handlers.RespondJSON(w, http.StatusConflict, fromConflict(msg, conflict))

		case errors.Is(err, reserveSlot.ErrVenueNotFound):
			h.logger.Warn("POST /bookings - Venue not found: venue_id=%d", req.VenueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, reserveSlot.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: venue_id=%d, date=%s", req.VenueID, req.BookingDate)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, reserveSlot.ErrPartySizeOutOfRange):
			h.logger.Warn("POST /bookings - Party size out of range: venue_id=%d, party_size=%d", req.VenueID, req.PartySize)
			handlers.RespondBadRequest(w, msgPartySizeOutOfRange)

		case errors.Is(err, reserveSlot.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: venue_id=%d, error=%v", req.VenueID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings - Failed to reserve slot: venue_id=%d, date=%s, error=%v",
				req.VenueID, req.BookingDate, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_ref=%s, venue_id=%d, date=%s",
		result.Ref, req.VenueID, req.BookingDate)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
