package reserve_slot

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feelmetown/FMT-BookingService/internal/domain"
	"github.com/feelmetown/FMT-BookingService/internal/infra/storage/booking"
	"github.com/feelmetown/FMT-BookingService/internal/integrations/venuecatalog"
	"github.com/feelmetown/FMT-BookingService/pkg/keymutex"
)

// fakeRepo потокобезопасное in-memory хранилище, имитирующее частичный
// уникальный индекс по (venue_id, booking_date, slot_key)
type fakeRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings []*domain.Booking
}

func (r *fakeRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.bookings {
		if existing.IsActive() &&
			existing.VenueID == b.VenueID &&
			existing.BookingDate.Equal(b.BookingDate) &&
			existing.SlotKey == b.SlotKey {
			return nil, booking.ErrDuplicateSlot
		}
	}

	r.nextID++
	stored := *b
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.bookings = append(r.bookings, &stored)

	out := stored
	return &out, nil
}

func (r *fakeRepo) FindActiveByVenueAndDate(ctx context.Context, venueID int64, date time.Time) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*domain.Booking
	for _, b := range r.bookings {
		if b.IsActive() && b.VenueID == venueID && b.BookingDate.Equal(date) {
			copied := *b
			result = append(result, &copied)
		}
	}
	return result, nil
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

type fakeTxManager struct{}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePublisher struct {
	mu    sync.Mutex
	calls int
}

func (p *fakePublisher) PublishSlotsChanged(ctx context.Context, venueID int64, date time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
}

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

type fixedTime struct{ now time.Time }

func (t *fixedTime) Now() time.Time { return t.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func testVenue() *venuecatalog.Venue {
	return &venuecatalog.Venue{
		ID:          42,
		Name:        "Aurora Private Theater",
		CapacityMin: 2,
		CapacityMax: 12,
		Slots: []venuecatalog.ConfiguredSlot{
			{Label: "4:00 PM - 6:00 PM", StartTime: "16:00", EndTime: "18:00", Active: true},
			{Label: "7:00 PM - 9:00 PM", StartTime: "19:00", EndTime: "21:00", Active: true},
			{Label: "10:00 PM - 12:00 AM", StartTime: "22:00", EndTime: "00:00", Active: false},
		},
	}
}

func testRequest(slotLabel string) *Request {
	return &Request{
		VenueID:   42,
		Date:      time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		SlotLabel: slotLabel,
		Draft: BookingDraft{
			CustomerName:  "Aarav Sharma",
			CustomerEmail: "aarav.sharma@example.com",
			CustomerPhone: "+91 98200 12345",
			PartySize:     4,
			TotalAmount:   3000,
			AdvanceAmount: 750,
			Finalize:      true,
		},
	}
}

func newTestUseCase(repo *fakeRepo, catalog *fakeCatalog, pub *fakePublisher) *UseCase {
	return NewUseCase(
		repo,
		catalog,
		&fakeTxManager{},
		keymutex.New(),
		pub,
		&fixedTime{now: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)},
		nopLogger{},
	)
}

func TestExecute_Success(t *testing.T) {
	repo := &fakeRepo{}
	pub := &fakePublisher{}
	uc := newTestUseCase(repo, &fakeCatalog{venue: testVenue()}, pub)

	resp, err := uc.Execute(context.Background(), testRequest("7:00 PM - 9:00 PM"))
	require.NoError(t, err)

	assert.Equal(t, "19:00-21:00", resp.SlotKey)
	assert.Equal(t, "19:00", resp.StartTime)
	assert.Equal(t, "21:00", resp.EndTime)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Regexp(t, `^FMT-[0-9A-F]{8}$`, resp.Ref)
	assert.Equal(t, 1, pub.count())
}

func TestExecute_PendingWhenNotFinalized(t *testing.T) {
	repo := &fakeRepo{}
	uc := newTestUseCase(repo, &fakeCatalog{venue: testVenue()}, &fakePublisher{})

	req := testRequest("7:00 PM - 9:00 PM")
	req.Draft.Finalize = false

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
}

func TestExecute_LabelVariantsCompeteForSameSlot(t *testing.T) {
	// "7:00 PM - 9:00 PM" и "7:00PM-9:00PM" — один и тот же слот
	repo := &fakeRepo{}
	uc := newTestUseCase(repo, &fakeCatalog{venue: testVenue()}, &fakePublisher{})

	_, err := uc.Execute(context.Background(), testRequest("7:00 PM - 9:00 PM"))
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), testRequest("7:00PM-9:00PM"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSlotConflict)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, ConflictReasonTaken, conflict.Reason)
}

func TestExecute_ConflictCarriesFreshAvailability(t *testing.T) {
	repo := &fakeRepo{}
	uc := newTestUseCase(repo, &fakeCatalog{venue: testVenue()}, &fakePublisher{})

	_, err := uc.Execute(context.Background(), testRequest("7:00 PM - 9:00 PM"))
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), testRequest("7:00 PM - 9:00 PM"))
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)

	require.NotNil(t, conflict.View)
	// активных сконфигурированных слотов два, занят ровно один
	require.Len(t, conflict.View.Slots, 2)
	taken, ok := conflict.View.SlotByKey("19:00-21:00")
	require.True(t, ok)
	assert.True(t, taken.Booked)
	free, ok := conflict.View.SlotByKey("16:00-18:00")
	require.True(t, ok)
	assert.False(t, free.Booked)
}

func TestExecute_UnconfiguredSlotIsConflict(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{}, &fakeCatalog{venue: testVenue()}, &fakePublisher{})

	_, err := uc.Execute(context.Background(), testRequest("1:00 PM - 3:00 PM"))
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, ConflictReasonNotConfigured, conflict.Reason)
}

func TestExecute_InactiveSlotIsConflict(t *testing.T) {
	// слот сконфигурирован, но выключен — в представление не попадает
	uc := newTestUseCase(&fakeRepo{}, &fakeCatalog{venue: testVenue()}, &fakePublisher{})

	_, err := uc.Execute(context.Background(), testRequest("10:00 PM - 12:00 AM"))
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, ConflictReasonNotConfigured, conflict.Reason)
}

func TestExecute_ConcurrentRequestsOneWinner(t *testing.T) {
	repo := &fakeRepo{}
	pub := &fakePublisher{}
	uc := newTestUseCase(repo, &fakeCatalog{venue: testVenue()}, pub)

	const workers = 16

	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), testRequest("7:00 PM - 9:00 PM"))
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, ErrSlotConflict)
		}
	}

	assert.Equal(t, 1, winners)
	assert.Equal(t, 1, pub.count())

	repo.mu.Lock()
	defer repo.mu.Unlock()
	assert.Len(t, repo.bookings, 1)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{}, &fakeCatalog{venue: testVenue()}, &fakePublisher{})

	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{"past date", func(r *Request) { r.Date = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC) }, ErrInvalidDate},
		{"empty slot label", func(r *Request) { r.SlotLabel = "  " }, ErrInvalidInput},
		{"missing name", func(r *Request) { r.Draft.CustomerName = "" }, ErrInvalidInput},
		{"bad email", func(r *Request) { r.Draft.CustomerEmail = "not-an-email" }, ErrInvalidInput},
		{"missing phone", func(r *Request) { r.Draft.CustomerPhone = "" }, ErrInvalidInput},
		{"zero party", func(r *Request) { r.Draft.PartySize = 0 }, ErrInvalidInput},
		{"advance above total", func(r *Request) { r.Draft.AdvanceAmount = 5000 }, ErrInvalidInput},
		{"party above capacity", func(r *Request) { r.Draft.PartySize = 20 }, ErrPartySizeOutOfRange},
		{"party below capacity", func(r *Request) { r.Draft.PartySize = 1 }, ErrPartySizeOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testRequest("7:00 PM - 9:00 PM")
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_VenueNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{}, &fakeCatalog{err: venuecatalog.ErrVenueNotFound}, &fakePublisher{})

	_, err := uc.Execute(context.Background(), testRequest("7:00 PM - 9:00 PM"))
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestExecute_StoreFailureIsNotSwallowed(t *testing.T) {
	storeErr := errors.New("connection reset")
	uc := NewUseCase(
		&failingRepo{err: storeErr},
		&fakeCatalog{venue: testVenue()},
		&fakeTxManager{},
		keymutex.New(),
		&fakePublisher{},
		&fixedTime{now: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), testRequest("7:00 PM - 9:00 PM"))
	assert.ErrorIs(t, err, ErrInternal)
}

type failingRepo struct{ err error }

func (r *failingRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	return nil, r.err
}

func (r *failingRepo) FindActiveByVenueAndDate(ctx context.Context, venueID int64, date time.Time) ([]*domain.Booking, error) {
	return nil, r.err
}
