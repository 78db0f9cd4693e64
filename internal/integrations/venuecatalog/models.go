package venuecatalog

// Venue модель площадки (частного кинозала) из каталога
// Каталог владеет конфигурацией площадок; для этого сервиса данные read-only
type Venue struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	CapacityMin int              `json:"capacity_min"`
	CapacityMax int              `json:"capacity_max"`
	BasePrice   float64          `json:"base_price"`
	Slots       []ConfiguredSlot `json:"slots"`
}

// ConfiguredSlot сконфигурированный временной слот площадки
// Метка отображается клиенту как есть; сравнение слотов в сервисе идёт
// только по нормализованному ключу
type ConfiguredSlot struct {
	Label     string `json:"label"`      // например, "7:00 PM - 9:00 PM"
	StartTime string `json:"start_time"` // "19:00"
	EndTime   string `json:"end_time"`   // "21:00"
	Active    bool   `json:"active"`     // неактивные слоты исключены из доступности
}

// ErrorResponse модель ошибки от каталога
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
