package reserve_slot

import (
	"context"
	"time"

	"github.com/feelmetown/FMT-BookingService/internal/domain"
	"github.com/feelmetown/FMT-BookingService/internal/integrations/venuecatalog"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	FindActiveByVenueAndDate(ctx context.Context, venueID int64, date time.Time) ([]*domain.Booking, error)
}

// VenueCatalogClient интерфейс клиента каталога площадок
type VenueCatalogClient interface {
	GetVenue(ctx context.Context, venueID int64) (*venuecatalog.Venue, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// SlotLocker граница сериализации по ключу (площадка, дата)
// Конкурирующие reserve/cancel на один ключ выстраиваются в очередь,
// разные ключи обрабатываются параллельно
type SlotLocker interface {
	Lock(key string)
	Unlock(key string)
}

// EventPublisher интерфейс публикации сигналов об изменении слотов
type EventPublisher interface {
	PublishSlotsChanged(ctx context.Context, venueID int64, date time.Time)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
