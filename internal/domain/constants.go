package domain

// Refund policy constants
const (
	// RefundNoticeHours cancellations strictly more than this many hours
	// before the slot start are refunded in full (of the advance)
	RefundNoticeHours = 72

	// DefaultAdvancePercent share of the total price normally collected as
	// advance; the advance arrives resolved on the draft, this is reference
	DefaultAdvancePercent = 25
)

// Business validation constants
const (
	MaxCustomerNameLength = 100
	MaxOccasionLength     = 200
	MinPartySize          = 1
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses statuses under which a booking occupies its slot
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
