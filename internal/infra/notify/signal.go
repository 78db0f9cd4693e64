package notify

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// channelPrefix общий префикс каналов шины в Redis
	channelPrefix = "slots."

	// broadChannel канал широковещательного сигнала "данные изменились"
	broadChannel = "slots.sync"

	// channelPattern шаблон подписки на все сигналы шины
	channelPattern = "slots.*"

	dateLayout = "2006-01-02"
)

// Signal уведомление об изменении состояния слотов.
//
// Сигнал не несёт полезной нагрузки: подписчик обязан перечитать
// представление доступности сам. Payload в сигнале гонялся бы с более
// быстрыми прямыми запросами и превращал бы шину в ещё один источник истины.
type Signal struct {
	// Broad широковещательный сигнал без привязки к площадке/дате
	Broad bool
	// VenueID и Date заполнены только для scoped-сигнала
	VenueID int64
	Date    string // YYYY-MM-DD
}

// scopedChannel возвращает имя Redis-канала для пары (площадка, дата)
func scopedChannel(venueID int64, date time.Time) string {
	return fmt.Sprintf("%s%d.%s", channelPrefix, venueID, date.Format(dateLayout))
}

// parseChannel восстанавливает Signal из имени канала
func parseChannel(channel string) (Signal, bool) {
	if channel == broadChannel {
		return Signal{Broad: true}, true
	}

	rest, found := strings.CutPrefix(channel, channelPrefix)
	if !found {
		return Signal{}, false
	}

	venuePart, datePart, found := strings.Cut(rest, ".")
	if !found {
		return Signal{}, false
	}

	venueID, err := strconv.ParseInt(venuePart, 10, 64)
	if err != nil {
		return Signal{}, false
	}
	if _, err := time.Parse(dateLayout, datePart); err != nil {
		return Signal{}, false
	}

	return Signal{VenueID: venueID, Date: datePart}, true
}
