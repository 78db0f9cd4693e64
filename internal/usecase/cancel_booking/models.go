package cancel_booking

import (
	"time"

	"github.com/feelmetown/FMT-BookingService/internal/domain"
	"github.com/feelmetown/FMT-BookingService/pkg/ptr"
)

// Request модель запроса на отмену бронирования
type Request struct {
	BookingRef    string // внешний номер бронирования (FMT-XXXXXXXX)
	CustomerEmail string // email для проверки владения
}

// Response модель ответа с решением по возврату
type Response struct {
	Ref    string
	Status string

	RefundEligible bool
	RefundAmount   float64

	// AlreadyCancelled == true означает повторную отмену: возвращено
	// сохранённое решение, новое не вычислялось
	AlreadyCancelled bool

	CancelledAt *time.Time
}

// fromCancelled строит ответ из уже отменённого бронирования, восстанавливая
// сохранённое при первой отмене решение по возврату
func fromCancelled(b *domain.Booking) *Response {
	return &Response{
		Ref:              b.Ref,
		Status:           string(b.Status),
		RefundEligible:   ptr.Deref(b.RefundEligible),
		RefundAmount:     ptr.Deref(b.RefundAmount),
		AlreadyCancelled: true,
		CancelledAt:      b.CancelledAt,
	}
}
