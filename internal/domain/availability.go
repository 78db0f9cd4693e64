package domain

import (
	"time"

	"github.com/feelmetown/FMT-BookingService/pkg/types"
)

// SlotState the state of one configured slot on a given day.
// Deliberately carries no customer detail: availability is a public view.
type SlotState struct {
	Label     string
	Key       string // normalized slot key
	StartTime types.TimeString
	EndTime   types.TimeString
	Booked    bool
}

// SlotAvailabilityView a derived, read-only projection of slot state for one
// (venue, date). Recomputed on demand from the venue configuration and the set
// of non-cancelled bookings; never stored, so it cannot diverge from ground
// truth. An empty Slots list means the venue has no configured slots for the
// day, which is distinct from "fully booked" (all entries with Booked=true).
type SlotAvailabilityView struct {
	VenueID int64
	Date    time.Time
	Slots   []SlotState
}

// SlotByKey returns the state of the slot with the given normalized key
func (v *SlotAvailabilityView) SlotByKey(key string) (SlotState, bool) {
	for _, s := range v.Slots {
		if s.Key == key {
			return s, true
		}
	}
	return SlotState{}, false
}

// FreeCount returns the number of slots currently free
func (v *SlotAvailabilityView) FreeCount() int {
	free := 0
	for _, s := range v.Slots {
		if !s.Booked {
			free++
		}
	}
	return free
}
