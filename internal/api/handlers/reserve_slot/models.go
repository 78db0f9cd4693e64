package reserve_slot

import (
	"time"

	"github.com/feelmetown/FMT-BookingService/internal/domain"
	reserveSlot "github.com/feelmetown/FMT-BookingService/internal/usecase/reserve_slot"
)

// ReserveSlotRequest HTTP request model
type ReserveSlotRequest struct {
	VenueID     int64  `json:"venueId"`
	BookingDate string `json:"bookingDate"` // "2026-09-15"
	SlotLabel   string `json:"slotLabel"`   // любой из принимаемых форматов, например "7:00 PM - 9:00 PM"

	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone string  `json:"customerPhone"`
	Occasion      *string `json:"occasion,omitempty"`
	PartySize     int     `json:"partySize"`

	TotalAmount   float64 `json:"totalAmount"`
	AdvanceAmount float64 `json:"advanceAmount"`

	Finalize bool `json:"finalize"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	BookingRef  string `json:"bookingRef"`
	VenueID     int64  `json:"venueId"`
	BookingDate string `json:"bookingDate"`
	SlotLabel   string `json:"slotLabel"`
	SlotKey     string `json:"slotKey"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`

	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone string  `json:"customerPhone"`
	Occasion      *string `json:"occasion,omitempty"`
	PartySize     int     `json:"partySize"`

	TotalAmount   float64 `json:"totalAmount"`
	AdvanceAmount float64 `json:"advanceAmount"`
	Status        string  `json:"status"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ConflictResponse тело ответа 409: причина плюс свежее представление
// доступности, чтобы клиент сразу показал актуальное состояние
type ConflictResponse struct {
	Error        string            `json:"error"`
	Reason       string            `json:"reason"` // "taken" | "not_configured"
	Availability *AvailabilityBody `json:"availability,omitempty"`
}

// AvailabilityBody представление доступности внутри ответа 409
type AvailabilityBody struct {
	VenueID int64      `json:"venueId"`
	Date    string     `json:"date"`
	Slots   []SlotBody `json:"slots"`
}

// SlotBody один слот внутри представления доступности
type SlotBody struct {
	Label     string `json:"label"`
	Key       string `json:"key"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Booked    bool   `json:"booked"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ReserveSlotRequest) ToUseCaseRequest() (*reserveSlot.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	return &reserveSlot.Request{
		VenueID:   r.VenueID,
		Date:      bookingDate,
		SlotLabel: r.SlotLabel,
		Draft: reserveSlot.BookingDraft{
			CustomerName:  r.CustomerName,
			CustomerEmail: r.CustomerEmail,
			CustomerPhone: r.CustomerPhone,
			Occasion:      r.Occasion,
			PartySize:     r.PartySize,
			TotalAmount:   r.TotalAmount,
			AdvanceAmount: r.AdvanceAmount,
			Finalize:      r.Finalize,
		},
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reserveSlot.Response) *BookingResponse {
	return &BookingResponse{
		BookingRef:    resp.Ref,
		VenueID:       resp.VenueID,
		BookingDate:   resp.BookingDate.Format(domain.DateFormat),
		SlotLabel:     resp.SlotLabel,
		SlotKey:       resp.SlotKey,
		StartTime:     resp.StartTime,
		EndTime:       resp.EndTime,
		CustomerName:  resp.CustomerName,
		CustomerEmail: resp.CustomerEmail,
		CustomerPhone: resp.CustomerPhone,
		Occasion:      resp.Occasion,
		PartySize:     resp.PartySize,
		TotalAmount:   resp.TotalAmount,
		AdvanceAmount: resp.AdvanceAmount,
		Status:        resp.Status,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}

// fromConflict строит тело ответа 409 из ошибки конфликта
func fromConflict(msg string, conflict *reserveSlot.ConflictError) *ConflictResponse {
	resp := &ConflictResponse{
		Error:  msg,
		Reason: conflict.Reason,
	}

	if conflict.View != nil {
		slots := make([]SlotBody, 0, len(conflict.View.Slots))
		for _, s := range conflict.View.Slots {
			slots = append(slots, SlotBody{
				Label:     s.Label,
				Key:       s.Key,
				StartTime: s.StartTime.String(),
				EndTime:   s.EndTime.String(),
				Booked:    s.Booked,
			})
		}
		resp.Availability = &AvailabilityBody{
			VenueID: conflict.View.VenueID,
			Date:    conflict.View.Date.Format(domain.DateFormat),
			Slots:   slots,
		}
	}

	return resp
}
