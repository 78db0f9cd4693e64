package notify

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics интерфейс счётчика опубликованных сигналов
type Metrics interface {
	IncBusSignal(scope string)
}

// Bus шина уведомлений об изменении слотов поверх Redis pub/sub.
//
// Redis выбран транспортом, потому что сигнал должен доходить до подписчиков
// всех инстансов сервиса, а не только того, который обработал запись.
// Durability отсутствует намеренно: подписчик, который был оффлайн, догонит
// состояние своим периодическим re-poll.
type Bus struct {
	rdb     *redis.Client
	hub     *Hub
	log     Logger
	metrics Metrics // nil, если метрики выключены
}

// NewBus создает шину поверх готового Redis-клиента
func NewBus(rdb *redis.Client, hub *Hub, log Logger, metrics Metrics) *Bus {
	return &Bus{
		rdb:     rdb,
		hub:     hub,
		log:     log,
		metrics: metrics,
	}
}

// PublishSlotsChanged публикует scoped-сигнал для пары (площадка, дата)
// Ошибка публикации логируется, но не возвращается: шина — оптимизация
// задержки, а не источник истины, и не должна ронять успешную запись
func (b *Bus) PublishSlotsChanged(ctx context.Context, venueID int64, date time.Time) {
	channel := scopedChannel(venueID, date)

	if err := b.rdb.Publish(ctx, channel, "").Err(); err != nil {
		b.log.Error("notify: failed to publish slots-changed signal to %s: %v", channel, err)
		return
	}

	if b.metrics != nil {
		b.metrics.IncBusSignal("scoped")
	}
}

// PublishSync публикует широковещательный сигнал "данные изменились"
// Используется внешним каталогом при изменении конфигурации площадок
func (b *Bus) PublishSync(ctx context.Context) {
	if err := b.rdb.Publish(ctx, broadChannel, "").Err(); err != nil {
		b.log.Error("notify: failed to publish sync signal: %v", err)
		return
	}

	if b.metrics != nil {
		b.metrics.IncBusSignal("broad")
	}
}

// Run подписывается на каналы шины и перекачивает сигналы в локальный Hub.
// Блокируется до отмены контекста; go-redis сам переподключает подписку
// после обрывов соединения.
func (b *Bus) Run(ctx context.Context) error {
	pubsub := b.rdb.PSubscribe(ctx, channelPattern)
	defer pubsub.Close()

	b.log.Info("notify: subscribed to %s", channelPattern)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			b.log.Info("notify: bus listener stopped")
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				b.log.Warn("notify: pubsub channel closed")
				return nil
			}

			sig, ok := parseChannel(msg.Channel)
			if !ok {
				b.log.Warn("notify: ignoring message on unexpected channel %s", msg.Channel)
				continue
			}

			b.hub.Publish(sig)
		}
	}
}
