package get_availability

import (
	"time"

	"github.com/feelmetown/FMT-BookingService/internal/domain"
	getAvailability "github.com/feelmetown/FMT-BookingService/internal/usecase/get_availability"
)

// SlotResponse HTTP модель одного слота
type SlotResponse struct {
	Label     string `json:"label"`
	Key       string `json:"key"`
	StartTime string `json:"startTime"` // "19:00"
	EndTime   string `json:"endTime"`   // "21:00"
	Booked    bool   `json:"booked"`
}

// AvailabilityResponse HTTP модель представления доступности
type AvailabilityResponse struct {
	VenueID int64          `json:"venueId"`
	Date    string         `json:"date"` // "2026-09-15"
	Slots   []SlotResponse `json:"slots"`
}

// ToUseCaseRequest конвертирует параметры запроса в модель use case
func ToUseCaseRequest(venueID int64, dateStr string) (*getAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailability.Request{
		VenueID: venueID,
		Date:    date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			Label:     s.Label,
			Key:       s.Key,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Booked:    s.Booked,
		})
	}

	return &AvailabilityResponse{
		VenueID: resp.VenueID,
		Date:    resp.Date.Format(domain.DateFormat),
		Slots:   slots,
	}
}
