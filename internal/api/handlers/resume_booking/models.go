package resume_booking

import (
	"github.com/feelmetown/FMT-BookingService/internal/domain"
	resumeBooking "github.com/feelmetown/FMT-BookingService/internal/usecase/resume_booking"
)

// ResumeBookingResponse HTTP response model
type ResumeBookingResponse struct {
	BookingRef  string `json:"bookingRef"`
	VenueID     int64  `json:"venueId"`
	BookingDate string `json:"bookingDate"`
	SlotLabel   string `json:"slotLabel"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`

	CustomerName string  `json:"customerName"`
	PartySize    int     `json:"partySize"`
	Occasion     *string `json:"occasion,omitempty"`

	TotalAmount   float64 `json:"totalAmount"`
	AdvanceAmount float64 `json:"advanceAmount"`
	Status        string  `json:"status"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *resumeBooking.Response) *ResumeBookingResponse {
	return &ResumeBookingResponse{
		BookingRef:    resp.Ref,
		VenueID:       resp.VenueID,
		BookingDate:   resp.BookingDate.Format(domain.DateFormat),
		SlotLabel:     resp.SlotLabel,
		StartTime:     resp.StartTime,
		EndTime:       resp.EndTime,
		CustomerName:  resp.CustomerName,
		PartySize:     resp.PartySize,
		Occasion:      resp.Occasion,
		TotalAmount:   resp.TotalAmount,
		AdvanceAmount: resp.AdvanceAmount,
		Status:        resp.Status,
	}
}
