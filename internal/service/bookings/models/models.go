package models

import (
	"time"

	"github.com/feelmetown/FMT-BookingService/internal/domain"
)

// Request модели

// GetBookingRequest запрос на получение бронирования по номеру
type GetBookingRequest struct {
	BookingRef    string `json:"bookingRef"`
	CustomerEmail string `json:"customerEmail"`
}

// GetVenueBookingsRequest запрос на получение бронирований площадки за день
type GetVenueBookingsRequest struct {
	VenueID          int64     `json:"venueId"`
	Date             time.Time `json:"date"`
	IncludeCancelled bool      `json:"includeCancelled,omitempty"` // включить отменённые (для дневной сводки)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetVenueBookingsRequest) ToDomainFilter() domain.VenueBookingsFilter {
	return domain.VenueBookingsFilter{
		VenueID:          r.VenueID,
		Date:             r.Date,
		IncludeCancelled: r.IncludeCancelled,
	}
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	Ref         string `json:"bookingRef"`
	VenueID     int64  `json:"venueId"`
	BookingDate string `json:"bookingDate"` // "2026-09-15"
	SlotLabel   string `json:"slotLabel"`
	SlotKey     string `json:"slotKey"`
	StartTime   string `json:"startTime"` // "19:00"
	EndTime     string `json:"endTime"`   // "21:00"

	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	Occasion      *string `json:"occasion,omitempty"`
	PartySize     int     `json:"partySize"`

	TotalAmount   float64 `json:"totalAmount"`
	AdvanceAmount float64 `json:"advanceAmount"`
	Status        string  `json:"status"`

	RefundEligible *bool    `json:"refundEligible,omitempty"`
	RefundAmount   *float64 `json:"refundAmount,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Total    int                `json:"total"`
}

// FromDomainBooking конвертирует доменную модель в response
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		Ref:            b.Ref,
		VenueID:        b.VenueID,
		BookingDate:    b.BookingDate.Format(domain.DateFormat),
		SlotLabel:      b.SlotLabel,
		SlotKey:        b.SlotKey,
		StartTime:      b.StartTime.String(),
		EndTime:        b.EndTime.String(),
		CustomerName:   b.CustomerName,
		CustomerPhone:  b.CustomerPhone,
		Occasion:       b.Occasion,
		PartySize:      b.PartySize,
		TotalAmount:    b.TotalAmount,
		AdvanceAmount:  b.AdvanceAmount,
		Status:         string(b.Status),
		RefundEligible: b.RefundEligible,
		RefundAmount:   b.RefundAmount,
		CreatedAt:      b.CreatedAt,
	}
}

// FromDomainBookingList конвертирует список доменных моделей в response
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	responses := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		responses = append(responses, FromDomainBooking(b))
	}

	return &BookingListResponse{
		Bookings: responses,
		Total:    len(responses),
	}
}
