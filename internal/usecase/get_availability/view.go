package get_availability

import (
	"time"

	"github.com/feelmetown/FMT-BookingService/internal/domain"
	"github.com/feelmetown/FMT-BookingService/internal/integrations/venuecatalog"
	"github.com/feelmetown/FMT-BookingService/pkg/slotkey"
	"github.com/feelmetown/FMT-BookingService/pkg/types"
)

// bookedKeys собирает множество нормализованных ключей занятых слотов.
// Ключ из записи бронирования нормализуется повторно: старые записи могли
// быть созданы до текущих правил нормализации или отредактированы вручную.
func bookedKeys(bookings []*domain.Booking) map[string]struct{} {
	keys := make(map[string]struct{}, len(bookings))
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		keys[slotkey.Normalize(b.SlotKey)] = struct{}{}
	}
	return keys
}

// buildAvailabilityView строит представление доступности для (площадка, дата).
//
// В представление попадают только активные сконфигурированные слоты.
// Бронирование, чей ключ не совпадает ни с одним сконфигурированным слотом
// (конфигурация площадки изменилась после бронирования), в представлении не
// видно, но его ключ остаётся занятым — удалённый и возвращённый слот не
// станет незаметно продан дважды.
func buildAvailabilityView(
	venue *venuecatalog.Venue,
	date time.Time,
	bookings []*domain.Booking,
) *domain.SlotAvailabilityView {
	occupied := bookedKeys(bookings)

	slots := make([]domain.SlotState, 0, len(venue.Slots))
	for _, cs := range venue.Slots {
		if !cs.Active {
			continue
		}

		key := slotkey.Normalize(cs.Label)
		_, booked := occupied[key]

		start, end, ok := slotkey.Bounds(key)
		if !ok {
			// метка не распарсилась как диапазон, берём границы из конфигурации
			start = types.TimeString(cs.StartTime)
			end = types.TimeString(cs.EndTime)
		}

		slots = append(slots, domain.SlotState{
			Label:     cs.Label,
			Key:       key,
			StartTime: start,
			EndTime:   end,
			Booked:    booked,
		})
	}

	return &domain.SlotAvailabilityView{
		VenueID: venue.ID,
		Date:    date,
		Slots:   slots,
	}
}
