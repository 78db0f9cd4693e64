package domain

import (
	"math"
	"time"
)

// RefundDecision the outcome of the cancellation refund policy.
// Computed, never stored as live state; the cancellation path persists the
// audit copy next to the booking at the moment of cancellation.
type RefundDecision struct {
	Eligible bool
	Amount   float64
}

// DecideRefund applies the refund policy to a cancellation happening at now
// for a booking whose slot begins at slotStart.
//
// Policy: a single hard cliff. Strictly more than RefundNoticeHours before the
// slot the full advance (rounded) is refunded; at or under the cliff nothing
// is. Pure and total: no I/O, no mutation, no error cases, so it is safe to
// call inside the reservation lock and trivial to test at the boundary.
func DecideRefund(slotStart time.Time, advanceAmount float64, now time.Time) RefundDecision {
	if slotStart.Sub(now) > RefundNoticeHours*time.Hour {
		return RefundDecision{
			Eligible: true,
			Amount:   math.Round(advanceAmount),
		}
	}
	return RefundDecision{Eligible: false, Amount: 0}
}
