package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("19:00")
	require.NoError(t, err)
	assert.Equal(t, "19:00", ts.String())

	for _, bad := range []string{"25:00", "19:60", "7pm", "19", ""} {
		_, err := NewTimeStringFromString(bad)
		assert.ErrorIs(t, err, ErrInvalidTimeString, "input %q", bad)
	}
}

func TestTimeString_Minutes(t *testing.T) {
	ts := TimeString("19:30")
	minutes, err := ts.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 19*60+30, minutes)

	_, err = TimeString("garbage").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("22:00")

	end, err := ts.AddMinutes(120)
	require.NoError(t, err)
	assert.Equal(t, TimeString("00:00"), end)

	_, err = ts.AddMinutes(200)
	assert.Error(t, err)
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("19:00"))
	assert.True(t, TimeString("19:00").IsAfter("09:00"))
	assert.False(t, TimeString("19:00").IsBefore("19:00"))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("19:00"))
	assert.Equal(t, TimeString("19:00"), ts)

	// TIME-колонка отдаёт секунды
	require.NoError(t, ts.Scan("19:00:00"))
	assert.Equal(t, TimeString("19:00"), ts)

	require.NoError(t, ts.Scan([]byte("21:30:00")))
	assert.Equal(t, TimeString("21:30"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 9, 15, 19, 0, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("19:00"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_At(t *testing.T) {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	got := TimeString("19:30").At(date)
	assert.Equal(t, time.Date(2026, 9, 15, 19, 30, 0, 0, time.UTC), got)
}
