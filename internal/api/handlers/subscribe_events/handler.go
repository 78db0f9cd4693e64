package subscribe_events

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/feelmetown/FMT-BookingService/internal/api/handlers"
	"github.com/feelmetown/FMT-BookingService/internal/domain"
)

const (
	msgInvalidVenueID        = "invalid venue ID"
	msgInvalidDate           = "invalid date format, expected YYYY-MM-DD"
	msgStreamingNotSupported = "streaming is not supported"

	// heartbeatInterval период keep-alive комментариев, чтобы прокси
	// не закрывали простаивающее соединение
	heartbeatInterval = 30 * time.Second
)

type Handler struct {
	hub    SignalHub
	logger Logger
}

func NewHandler(hub SignalHub, logger Logger) *Handler {
	return &Handler{
		hub:    hub,
		logger: logger,
	}
}

// Handle GET /api/v1/events
// Query params: venueId (required), date (required, YYYY-MM-DD)
//
// SSE-поток payload-free сигналов "состояние слотов изменилось".
// Клиент, получив событие, сам перечитывает представление доступности.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueIDStr := r.URL.Query().Get("venueId")
	venueID, err := strconv.ParseInt(venueIDStr, 10, 64)
	if err != nil || venueID <= 0 {
		h.logger.Warn("GET /events - Invalid venue ID: %q", venueIDStr)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if _, err := time.Parse(domain.DateFormat, dateStr); err != nil {
		h.logger.Warn("GET /events - Invalid date: %q", dateStr)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		h.logger.Error("GET /events - ResponseWriter does not support flushing")
		handlers.RespondError(w, http.StatusInternalServerError, msgStreamingNotSupported)
		return
	}

	// Снимаем write deadline сервера: поток живёт дольше WriteTimeout
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		h.logger.Warn("GET /events - Failed to clear write deadline: %v", err)
	}

	signals, cancel := h.hub.Subscribe(venueID, dateStr)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	h.logger.Info("GET /events - Subscriber connected: venue_id=%d, date=%s", venueID, dateStr)

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			h.logger.Info("GET /events - Subscriber disconnected: venue_id=%d, date=%s", venueID, dateStr)
			return

		case sig, ok := <-signals:
			if !ok {
				return
			}
			event := "slots-changed"
			if sig.Broad {
				event = "sync"
			}
			fmt.Fprintf(w, "event: %s\ndata: {}\n\n", event)
			flusher.Flush()

		case <-heartbeat.C:
			fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()
		}
	}
}
