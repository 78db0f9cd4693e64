package cancel_booking

import (
	"context"
	"time"

	"github.com/feelmetown/FMT-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByRef(ctx context.Context, ref string) (*domain.Booking, error)
	Cancel(ctx context.Context, id int64, decision domain.RefundDecision) error
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
