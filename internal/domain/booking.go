package domain

import (
	"strings"
	"time"

	"github.com/feelmetown/FMT-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	// StatusPending booking was started but not finalized (e.g. abandoned before payment)
	StatusPending BookingStatus = "pending"
	// StatusConfirmed booking holds its slot
	StatusConfirmed BookingStatus = "confirmed"
	// StatusCancelled booking was cancelled and no longer holds its slot
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a private-theater slot reservation.
//
// The central invariant of the whole service: for a given
// (venue, date, normalized slot key) at most one booking may be in a
// non-cancelled status at any time. Only the reservation path creates
// bookings and only the cancellation path transitions them to cancelled;
// cancelled records are never deleted, the freed slot becomes bookable again.
type Booking struct {
	ID      int64
	Ref     string // external reference used in customer links (FMT-XXXXXXXX)
	VenueID int64

	BookingDate time.Time // calendar day of the visit
	SlotLabel   string    // display label as configured at booking time
	SlotKey     string    // normalized slot key, the identity used for conflicts
	StartTime   types.TimeString
	EndTime     types.TimeString

	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Occasion      *string
	PartySize     int

	TotalAmount   float64
	AdvanceAmount float64 // resolved upstream, typically 25% of total

	Status BookingStatus

	// Refund audit fields, persisted by the cancellation path
	RefundEligible *bool
	RefundAmount   *float64
	CancelledAt    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsPending returns true if the booking was started but not finalized
func (b *Booking) IsPending() bool {
	return b.Status == StatusPending
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// OwnedBy reports whether the given email matches the booking's customer.
// The check is a lightweight ownership gate, not authentication; emails are
// compared case-insensitively because records created from web forms drift.
func (b *Booking) OwnedBy(email string) bool {
	return strings.EqualFold(strings.TrimSpace(b.CustomerEmail), strings.TrimSpace(email))
}

// SlotStart returns the exact moment the booked slot begins
func (b *Booking) SlotStart() time.Time {
	return b.StartTime.At(b.BookingDate)
}

// VenueBookingsFilter filter for fetching bookings of a venue
type VenueBookingsFilter struct {
	VenueID          int64     // required
	Date             time.Time // required, a single calendar day
	IncludeCancelled bool      // include cancelled bookings (for the day sheet)
}
