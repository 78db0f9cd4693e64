package sync_signal

import (
	"context"
)

// EventPublisher интерфейс публикации широковещательного сигнала
type EventPublisher interface {
	PublishSync(ctx context.Context)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
