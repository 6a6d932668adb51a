package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "plain", input: "09:15", want: "09:15"},
		{name: "postgres time with seconds", input: "20:45:00", want: "20:45"},
		{name: "surrounding spaces", input: " 10:00 ", want: "10:00"},
		{name: "hour out of range", input: "25:00", wantErr: true},
		{name: "single digit hour", input: "9:00", wantErr: true},
		{name: "single digit minute", input: "09:0", wantErr: true},
		{name: "single digit hour with seconds", input: "9:00:00", wantErr: true},
		{name: "garbage", input: "noon", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_MinutesRoundTrip(t *testing.T) {
	for m := 0; m < minutesPerDay; m += 15 {
		ts, err := FromMinutes(m)
		require.NoError(t, err)
		assert.Equal(t, m, ts.Minutes(), "round trip for %s", ts)
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("20:45").AddMinutes(15)
	require.NoError(t, err)
	assert.Equal(t, TimeString("21:00"), got)

	_, err = TimeString("23:50").AddMinutes(15)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)

	_, err = TimeString("bad").AddMinutes(15)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:15"))
	assert.False(t, TimeString("09:15").IsBefore("09:15"))
	assert.True(t, TimeString("11:00").IsAfter("10:45"))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("14:30:00"))
	assert.Equal(t, TimeString("14:30"), ts)

	require.NoError(t, ts.Scan([]byte("08:05")))
	assert.Equal(t, TimeString("08:05"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 12, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("12:45"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}
