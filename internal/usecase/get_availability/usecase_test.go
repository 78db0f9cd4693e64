package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feelmetown/FMT-BookingService/internal/domain"
	"github.com/feelmetown/FMT-BookingService/internal/integrations/venuecatalog"
)

type fakeRepo struct {
	bookings []*domain.Booking
	err      error
}

func (r *fakeRepo) FindActiveByVenueAndDate(ctx context.Context, venueID int64, date time.Time) ([]*domain.Booking, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.bookings, nil
}

type fakeCatalog struct {
	venue *venuecatalog.Venue
	err   error
}

func (c *fakeCatalog) GetVenue(ctx context.Context, venueID int64) (*venuecatalog.Venue, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.venue, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func testVenue() *venuecatalog.Venue {
	return &venuecatalog.Venue{
		ID:   42,
		Name: "Aurora Private Theater",
		Slots: []venuecatalog.ConfiguredSlot{
			{Label: "4:00 PM - 6:00 PM", StartTime: "16:00", EndTime: "18:00", Active: true},
			{Label: "7:00 PM - 9:00 PM", StartTime: "19:00", EndTime: "21:00", Active: true},
			{Label: "10:00 PM - 12:00 AM", StartTime: "22:00", EndTime: "00:00", Active: false},
		},
	}
}

func testRequest() *Request {
	return &Request{
		VenueID: 42,
		Date:    time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestExecute_AllSlotsFree(t *testing.T) {
	uc := NewUseCase(&fakeRepo{}, &fakeCatalog{venue: testVenue()}, nopLogger{})

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	// неактивный слот в представление не попадает
	require.Len(t, resp.Slots, 2)
	for _, s := range resp.Slots {
		assert.False(t, s.Booked)
	}
	assert.Equal(t, "16:00-18:00", resp.Slots[0].Key)
	assert.Equal(t, "19:00-21:00", resp.Slots[1].Key)
}

func TestExecute_BookedSlotMarked(t *testing.T) {
	repo := &fakeRepo{bookings: []*domain.Booking{
		{VenueID: 42, SlotKey: "19:00-21:00", Status: domain.StatusConfirmed},
	}}
	uc := NewUseCase(repo, &fakeCatalog{venue: testVenue()}, nopLogger{})

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	byKey := make(map[string]Slot, len(resp.Slots))
	for _, s := range resp.Slots {
		byKey[s.Key] = s
	}

	assert.True(t, byKey["19:00-21:00"].Booked)
	assert.False(t, byKey["16:00-18:00"].Booked)
}

func TestExecute_LegacySlotKeyIsRenormalized(t *testing.T) {
	// запись создана до текущих правил нормализации, ключ хранится в
	// старом формате, но занимать должна тот же слот
	repo := &fakeRepo{bookings: []*domain.Booking{
		{VenueID: 42, SlotKey: "7:00 PM - 9:00 PM", Status: domain.StatusConfirmed},
	}}
	uc := NewUseCase(repo, &fakeCatalog{venue: testVenue()}, nopLogger{})

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	for _, s := range resp.Slots {
		if s.Key == "19:00-21:00" {
			assert.True(t, s.Booked)
		}
	}
}

func TestExecute_NoConfiguredSlots(t *testing.T) {
	// пустая конфигурация — пустой список, это не "всё занято"
	venue := &venuecatalog.Venue{ID: 42, Name: "Unconfigured"}
	uc := NewUseCase(&fakeRepo{}, &fakeCatalog{venue: venue}, nopLogger{})

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	assert.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
}

func TestExecute_OrphanBookingInvisibleButOccupies(t *testing.T) {
	// бронирование на слот, которого больше нет в конфигурации:
	// в представлении его не видно, список слотов не растёт
	repo := &fakeRepo{bookings: []*domain.Booking{
		{VenueID: 42, SlotKey: "13:00-15:00", Status: domain.StatusConfirmed},
	}}
	uc := NewUseCase(repo, &fakeCatalog{venue: testVenue()}, nopLogger{})

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	require.Len(t, resp.Slots, 2)
	for _, s := range resp.Slots {
		assert.False(t, s.Booked)
	}
}

func TestExecute_VenueNotFound(t *testing.T) {
	uc := NewUseCase(&fakeRepo{}, &fakeCatalog{err: venuecatalog.ErrVenueNotFound}, nopLogger{})

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&fakeRepo{}, &fakeCatalog{venue: testVenue()}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{VenueID: 0, Date: time.Now()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{VenueID: 42})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
