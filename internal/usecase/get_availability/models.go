package get_availability

import (
	"time"

	"github.com/feelmetown/FMT-BookingService/internal/domain"
)

// Request модель запроса на получение доступности слотов
type Request struct {
	VenueID int64     // ID площадки
	Date    time.Time // Дата (без времени)
}

// Response модель ответа с представлением доступности
// Пустой список Slots означает "на эту дату слоты не сконфигурированы" —
// это отличимо от "всё занято" (все слоты с Booked=true)
type Response struct {
	VenueID int64
	Date    time.Time
	Slots   []Slot
}

// Slot состояние одного сконфигурированного слота
// Никаких данных клиента: доступность — публичное представление
type Slot struct {
	Label     string
	Key       string // нормализованный ключ слота
	StartTime string // "19:00"
	EndTime   string // "21:00"
	Booked    bool
}

// fromDomainView конвертирует доменное представление в ответ usecase
func fromDomainView(view *domain.SlotAvailabilityView) *Response {
	slots := make([]Slot, len(view.Slots))
	for i, s := range view.Slots {
		slots[i] = Slot{
			Label:     s.Label,
			Key:       s.Key,
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
			Booked:    s.Booked,
		}
	}

	return &Response{
		VenueID: view.VenueID,
		Date:    view.Date,
		Slots:   slots,
	}
}
