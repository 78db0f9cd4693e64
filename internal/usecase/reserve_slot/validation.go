package reserve_slot

import (
	"fmt"
	"strings"
	"time"

	"github.com/feelmetown/FMT-BookingService/internal/domain"
	"github.com/feelmetown/FMT-BookingService/internal/integrations/venuecatalog"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	reqDay := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, now.Location())
	if reqDay.Before(today) {
		return fmt.Errorf("%w: booking date is in the past", ErrInvalidDate)
	}

	if strings.TrimSpace(req.SlotLabel) == "" {
		return fmt.Errorf("%w: slot label is required", ErrInvalidInput)
	}

	return validateDraft(&req.Draft)
}

// validateDraft валидирует черновик бронирования
func validateDraft(draft *BookingDraft) error {
	name := strings.TrimSpace(draft.CustomerName)
	if name == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customer name is too long", ErrInvalidInput)
	}

	email := strings.TrimSpace(draft.CustomerEmail)
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: valid customer email is required", ErrInvalidInput)
	}

	if strings.TrimSpace(draft.CustomerPhone) == "" {
		return fmt.Errorf("%w: customer phone is required", ErrInvalidInput)
	}

	if draft.Occasion != nil && len(*draft.Occasion) > domain.MaxOccasionLength {
		return fmt.Errorf("%w: occasion is too long", ErrInvalidInput)
	}

	if draft.PartySize < domain.MinPartySize {
		return fmt.Errorf("%w: party size must be at least %d", ErrInvalidInput, domain.MinPartySize)
	}

	if draft.TotalAmount < 0 {
		return fmt.Errorf("%w: total amount must be non-negative", ErrInvalidInput)
	}
	if draft.AdvanceAmount < 0 || draft.AdvanceAmount > draft.TotalAmount {
		return fmt.Errorf("%w: advance amount must be within [0, total]", ErrInvalidInput)
	}

	return nil
}

// validateCapacity проверяет размер компании против вместимости площадки
func validateCapacity(venue *venuecatalog.Venue, partySize int) error {
	if venue.CapacityMin > 0 && partySize < venue.CapacityMin {
		return fmt.Errorf("%w: party of %d is below venue minimum %d",
			ErrPartySizeOutOfRange, partySize, venue.CapacityMin)
	}
	if venue.CapacityMax > 0 && partySize > venue.CapacityMax {
		return fmt.Errorf("%w: party of %d exceeds venue capacity %d",
			ErrPartySizeOutOfRange, partySize, venue.CapacityMax)
	}
	return nil
}
