package reserve_slot

import (
	"time"

	"github.com/feelmetown/FMT-BookingService/internal/domain"
)

// Request модель запроса на бронирование слота
type Request struct {
	VenueID   int64     // ID площадки
	Date      time.Time // Дата бронирования (без времени)
	SlotLabel string    // Метка слота в любом из принимаемых форматов

	Draft BookingDraft // Черновик бронирования
}

// BookingDraft данные клиента и параметры визита
// AdvanceAmount приходит уже рассчитанным выше по потоку (обычно 25% от
// полной стоимости); сервис его не выводит, только валидирует
type BookingDraft struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Occasion      *string
	PartySize     int
	TotalAmount   float64
	AdvanceAmount float64

	// Finalize == false создаёт бронирование в статусе pending
	// (начатый, но не завершённый поток, например до оплаты)
	Finalize bool
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64
	Ref         string
	VenueID     int64
	BookingDate time.Time
	SlotLabel   string
	SlotKey     string
	StartTime   string
	EndTime     string

	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Occasion      *string
	PartySize     int

	TotalAmount   float64
	AdvanceAmount float64
	Status        string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// fromDomainBooking конвертирует доменную модель в ответ usecase
func fromDomainBooking(b *domain.Booking) *Response {
	return &Response{
		ID:            b.ID,
		Ref:           b.Ref,
		VenueID:       b.VenueID,
		BookingDate:   b.BookingDate,
		SlotLabel:     b.SlotLabel,
		SlotKey:       b.SlotKey,
		StartTime:     b.StartTime.String(),
		EndTime:       b.EndTime.String(),
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		Occasion:      b.Occasion,
		PartySize:     b.PartySize,
		TotalAmount:   b.TotalAmount,
		AdvanceAmount: b.AdvanceAmount,
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
