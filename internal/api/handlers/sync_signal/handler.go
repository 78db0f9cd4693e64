package sync_signal

import (
	"net/http"

	"github.com/feelmetown/FMT-BookingService/internal/api/handlers"
)

type Handler struct {
	publisher EventPublisher
	logger    Logger
}

func NewHandler(publisher EventPublisher, logger Logger) *Handler {
	return &Handler{
		publisher: publisher,
		logger:    logger,
	}
}

// Handle POST /internal/events/sync
//
// Широковещательный сигнал "данные изменились" для админских правок в обход
// обычных потоков (ручная чистка записей, правка конфигурации площадок).
// Подписчики перечитают состояние сами, тело запроса не нужно.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	h.publisher.PublishSync(r.Context())

	h.logger.Info("POST /internal/events/sync - Broadcast sync signal published")
	handlers.RespondJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}
