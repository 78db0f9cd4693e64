package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_ScopedDelivery(t *testing.T) {
	hub := NewHub()

	chA, cancelA := hub.Subscribe(42, "2026-09-15")
	defer cancelA()
	chB, cancelB := hub.Subscribe(7, "2026-09-15")
	defer cancelB()

	hub.Publish(Signal{VenueID: 42, Date: "2026-09-15"})

	select {
	case sig := <-chA:
		assert.Equal(t, int64(42), sig.VenueID)
	case <-time.After(time.Second):
		t.Fatal("subscriber A did not receive its signal")
	}

	select {
	case sig := <-chB:
		t.Fatalf("subscriber B received a foreign signal: %+v", sig)
	default:
	}
}

func TestHub_BroadReachesEveryone(t *testing.T) {
	hub := NewHub()

	chA, cancelA := hub.Subscribe(42, "2026-09-15")
	defer cancelA()
	chB, cancelB := hub.Subscribe(7, "2026-10-01")
	defer cancelB()

	hub.Publish(Signal{Broad: true})

	for name, ch := range map[string]<-chan Signal{"A": chA, "B": chB} {
		select {
		case sig := <-ch:
			assert.True(t, sig.Broad, "subscriber %s", name)
		case <-time.After(time.Second):
			t.Fatalf("subscriber %s did not receive the broad signal", name)
		}
	}
}

func TestHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	hub := NewHub()

	_, cancelSlow := hub.Subscribe(42, "2026-09-15")
	defer cancelSlow()

	// переполняем буфер медленного подписчика с запасом
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < subscriberBuffer*4; i++ {
			hub.Publish(Signal{VenueID: 42, Date: "2026-09-15"})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}
}

func TestHub_CancelClosesChannel(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe(42, "2026-09-15")
	require.Equal(t, 1, hub.Len())

	cancel()
	assert.Equal(t, 0, hub.Len())

	_, open := <-ch
	assert.False(t, open)

	// повторный cancel безопасен
	cancel()
}

func TestParseChannel(t *testing.T) {
	sig, ok := parseChannel("slots.42.2026-09-15")
	require.True(t, ok)
	assert.Equal(t, Signal{VenueID: 42, Date: "2026-09-15"}, sig)

	sig, ok = parseChannel("slots.sync")
	require.True(t, ok)
	assert.True(t, sig.Broad)

	for _, channel := range []string{
		"slots.",
		"slots.abc.2026-09-15",
		"slots.42.not-a-date",
		"other.42.2026-09-15",
		"",
	} {
		_, ok := parseChannel(channel)
		assert.False(t, ok, "channel %q", channel)
	}
}

func TestScopedChannelRoundTrip(t *testing.T) {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	channel := scopedChannel(42, date)
	assert.Equal(t, "slots.42.2026-09-15", channel)

	sig, ok := parseChannel(channel)
	require.True(t, ok)
	assert.Equal(t, int64(42), sig.VenueID)
	assert.Equal(t, "2026-09-15", sig.Date)
}
