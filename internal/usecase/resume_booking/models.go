package resume_booking

import (
	"time"

	"github.com/feelmetown/FMT-BookingService/internal/domain"
)

// Request модель запроса на возобновление потока бронирования
type Request struct {
	BookingRef    string // внешний номер из письма-ссылки (FMT-XXXXXXXX)
	CustomerEmail string // email для проверки владения
}

// Response модель ответа с восстановленным бронированием
type Response struct {
	Ref         string
	VenueID     int64
	BookingDate time.Time
	SlotLabel   string
	SlotKey     string
	StartTime   string
	EndTime     string

	CustomerName string
	PartySize    int
	Occasion     *string

	TotalAmount   float64
	AdvanceAmount float64
	Status        string

	Attempts int // сколько попыток понадобилось
}

// fromDomainBooking конвертирует доменную модель в ответ usecase
func fromDomainBooking(b *domain.Booking, attempts int) *Response {
	return &Response{
		Ref:           b.Ref,
		VenueID:       b.VenueID,
		BookingDate:   b.BookingDate,
		SlotLabel:     b.SlotLabel,
		SlotKey:       b.SlotKey,
		StartTime:     b.StartTime.String(),
		EndTime:       b.EndTime.String(),
		CustomerName:  b.CustomerName,
		PartySize:     b.PartySize,
		Occasion:      b.Occasion,
		TotalAmount:   b.TotalAmount,
		AdvanceAmount: b.AdvanceAmount,
		Status:        string(b.Status),
		Attempts:      attempts,
	}
}
