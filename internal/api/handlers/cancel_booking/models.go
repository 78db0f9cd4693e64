package cancel_booking

import (
	"time"

	cancelBooking "github.com/feelmetown/FMT-BookingService/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CustomerEmail string `json:"customerEmail"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	BookingRef string `json:"bookingRef"`
	Status     string `json:"status"`

	RefundEligible bool    `json:"refundEligible"`
	RefundAmount   float64 `json:"refundAmount"`

	AlreadyCancelled bool `json:"alreadyCancelled,omitempty"`

	CancelledAt *string `json:"cancelledAt,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	out := &CancelBookingResponse{
		BookingRef:       resp.Ref,
		Status:           resp.Status,
		RefundEligible:   resp.RefundEligible,
		RefundAmount:     resp.RefundAmount,
		AlreadyCancelled: resp.AlreadyCancelled,
	}
	if resp.CancelledAt != nil {
		formatted := resp.CancelledAt.Format(time.RFC3339)
		out.CancelledAt = &formatted
	}
	return out
}
