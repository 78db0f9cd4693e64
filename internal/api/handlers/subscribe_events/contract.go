package subscribe_events

import (
	"github.com/feelmetown/FMT-BookingService/internal/infra/notify"
)

// SignalHub локальный фан-аут сигналов об изменении слотов
type SignalHub interface {
	Subscribe(venueID int64, date string) (<-chan notify.Signal, func())
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
