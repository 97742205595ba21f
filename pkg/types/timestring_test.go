package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"10:00", "10:00", false},
		{"00:00", "00:00", false},
		{"23:59", "23:59", false},
		{"9:00", "09:00", false},     // normalized to wire format
		{"17:30:00", "17:30", false}, // seconds from Postgres TIME are dropped
		{"25:00", "", true},
		{"10:61", "", true},
		{"-1:00", "", true},
		{"1000", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		ts, err := NewTimeStringFromString(tt.input)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidTimeFormat, "input %q", tt.input)
			continue
		}
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, ts.String())
	}
}

func TestNewTimeStringFromTime(t *testing.T) {
	ts := NewTimeString(time.Date(2026, 3, 1, 9, 15, 40, 0, time.UTC))
	assert.Equal(t, "09:15", ts.String())
}

func TestTimeStringMinutesAndAdd(t *testing.T) {
	ts, err := NewTimeStringFromString("10:00")
	require.NoError(t, err)

	minutes, err := ts.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 600, minutes)

	next, err := ts.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, "10:30", next.String())

	// Slots never cross midnight
	late, err := NewTimeStringFromString("23:45")
	require.NoError(t, err)
	_, err = late.AddMinutes(30)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)

	// Exactly midnight is out of range too: "00:00" belongs to the next day
	edge, err := NewTimeStringFromString("23:30")
	require.NoError(t, err)
	_, err = edge.AddMinutes(30)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)

	last, err := NewTimeStringFromString("23:59")
	require.NoError(t, err)
	_, err = last.AddMinutes(1)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeStringComparisons(t *testing.T) {
	a, _ := NewTimeStringFromString("10:00")
	b, _ := NewTimeStringFromString("17:30")

	assert.True(t, a.IsBefore(b))
	assert.False(t, a.IsAfter(b))
	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsBefore(a))
	assert.False(t, a.IsAfter(a))
}

func TestFormat12HourRoundTrip(t *testing.T) {
	// Conversion to the display format and back must be lossless.
	tests := []struct {
		wire    string
		display string
	}{
		{"00:00", "12:00 AM"},
		{"00:30", "12:30 AM"},
		{"10:00", "10:00 AM"},
		{"11:30", "11:30 AM"},
		{"12:00", "12:00 PM"},
		{"12:30", "12:30 PM"},
		{"13:00", "1:00 PM"},
		{"17:30", "5:30 PM"},
		{"23:30", "11:30 PM"},
	}

	for _, tt := range tests {
		ts, err := NewTimeStringFromString(tt.wire)
		require.NoError(t, err)

		display, err := ts.Format12Hour()
		require.NoError(t, err)
		assert.Equal(t, tt.display, display, "wire %s", tt.wire)

		back, err := ParseTime12(display)
		require.NoError(t, err)
		assert.Equal(t, tt.wire, back.String(), "display %s", tt.display)
	}
}

func TestParseTime12Invalid(t *testing.T) {
	for _, input := range []string{"", "10:00", "13:00 PM", "0:30 AM", "10:00 XM", "10 AM"} {
		_, err := ParseTime12(input)
		assert.ErrorIs(t, err, ErrInvalidTimeFormat, "input %q", input)
	}
}

func TestTimeStringScan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("10:30"))
	assert.Equal(t, "10:30", ts.String())

	// Postgres TIME comes back with seconds
	require.NoError(t, ts.Scan("17:30:00"))
	assert.Equal(t, "17:30", ts.String())

	require.NoError(t, ts.Scan([]byte("12:00")))
	assert.Equal(t, "12:00", ts.String())

	require.NoError(t, ts.Scan(time.Date(2026, 3, 1, 9, 15, 0, 0, time.UTC)))
	assert.Equal(t, "09:15", ts.String())

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeStringValue(t *testing.T) {
	ts, _ := NewTimeStringFromString("10:00")
	v, err := ts.Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	var zero TimeString
	v, err = zero.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("bogus").Value()
	assert.Error(t, err)
}
