package notify

import (
	"sync"
)

// subscriberBuffer размер буфера канала подписчика
// Сигналы — чистая инвалидация, поэтому при переполнении буфера лишние
// сигналы можно молча отбрасывать: подписчик всё равно перечитает состояние
const subscriberBuffer = 4

// subscriber локальный подписчик с областью интереса
type subscriber struct {
	ch      chan Signal
	venueID int64
	date    string
}

// Hub локальный фан-аут сигналов по подписчикам (SSE-соединения UI).
//
// Доставка: at-least-once, best-effort, без какого-либо порядка и без
// durability. Медленный подписчик получает меньше сигналов, а не блокирует
// остальных. Корректность обеспечивает периодический re-poll клиента, шина
// лишь сокращает задержку.
type Hub struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]*subscriber
}

// NewHub создает пустой Hub
func NewHub() *Hub {
	return &Hub{subs: make(map[int]*subscriber)}
}

// Subscribe регистрирует подписчика на scoped-сигналы (venueID, date)
// и на широковещательные сигналы. Возвращённая функция отписывает и
// закрывает канал; вызывать её обязан подписчик при смене области интереса.
func (h *Hub) Subscribe(venueID int64, date string) (<-chan Signal, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++

	sub := &subscriber{
		ch:      make(chan Signal, subscriberBuffer),
		venueID: venueID,
		date:    date,
	}
	h.subs[id] = sub

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if s, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(s.ch)
		}
	}

	return sub.ch, cancel
}

// Publish раздаёт сигнал подписчикам
// Scoped-сигнал получают только подписчики с совпадающей областью: чужой
// топик отфильтровывается здесь, без сетевых вызовов на стороне подписчика
func (h *Hub) Publish(sig Signal) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subs {
		if !sig.Broad && (sub.venueID != sig.VenueID || sub.date != sig.Date) {
			continue
		}

		select {
		case sub.ch <- sig:
		default:
			// буфер полон, подписчик и так перечитает состояние
		}
	}
}

// Len возвращает количество активных подписчиков
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
