package reserve_slot

import (
	"errors"
	"fmt"

	"github.com/feelmetown/FMT-BookingService/internal/domain"
)

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("reserve_slot: venue not found")

	// ErrSlotConflict возвращается, когда слот нельзя забронировать:
	// занят, неактивен или не сконфигурирован на площадке
	ErrSlotConflict = errors.New("reserve_slot: slot is not available")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("reserve_slot: invalid booking date")

	// ErrPartySizeOutOfRange возвращается при размере компании вне
	// допустимых границ вместимости площадки
	ErrPartySizeOutOfRange = errors.New("reserve_slot: party size is out of venue capacity bounds")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reserve_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	// Отказ хранилища на пути записи никогда не глотается: проглоченная
	// ошибка insert рассинхронизировала бы инвариант состояния слотов
	ErrInternal = errors.New("reserve_slot: internal error")
)

// Причины конфликта слота
const (
	ConflictReasonTaken         = "taken"          // слот занят активным бронированием
	ConflictReasonNotConfigured = "not_configured" // слота нет среди активных сконфигурированных
)

// ConflictError ошибка конфликта с приложенным свежим представлением
// доступности: вызывающая сторона сразу показывает актуальное состояние
// без второго запроса. errors.Is(err, ErrSlotConflict) == true.
type ConflictError struct {
	Reason string
	View   *domain.SlotAvailabilityView
}

// Error реализует интерфейс error
func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v (%s)", ErrSlotConflict, e.Reason)
}

// Unwrap позволяет сопоставлять ConflictError с ErrSlotConflict
func (e *ConflictError) Unwrap() error {
	return ErrSlotConflict
}
