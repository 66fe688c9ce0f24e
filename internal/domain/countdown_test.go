package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestCountdown(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		due  *string
		want *string
	}{
		{name: "no due date", due: nil, want: nil},
		{name: "blank due date", due: ptr("  "), want: nil},
		{name: "garbage", due: ptr("next tuesday"), want: ptr(CountdownInvalid)},
		{name: "past", due: ptr("2026-03-10T11:00:00Z"), want: ptr(CountdownOverdue)},
		{name: "exactly now", due: ptr("2026-03-10T12:00:00Z"), want: ptr(CountdownOverdue)},
		{name: "two hours", due: ptr("2026-03-10T14:00:00Z"), want: ptr("2h 0m")},
		{name: "minutes only", due: ptr("2026-03-10T12:45:30Z"), want: ptr("45m")},
		{name: "under a minute", due: ptr("2026-03-10T12:00:30Z"), want: ptr("0m")},
		{name: "days", due: ptr("2026-03-12T15:07:00Z"), want: ptr("2d 3h 7m")},
		{name: "offset", due: ptr("2026-03-10T15:30:00+02:00"), want: ptr("1h 30m")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Countdown(tt.due, now)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestCountdown_LocalLayouts(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

	got := Countdown(ptr("2026-03-10T14:00"), now)
	require.NotNil(t, got)
	assert.Equal(t, "2h 0m", *got)

	got = Countdown(ptr("2026-03-11"), now)
	require.NotNil(t, got)
	assert.Equal(t, "12h 0m", *got)
}

func TestParseDueDate(t *testing.T) {
	for _, s := range []string{
		"2026-03-10T14:00:00Z",
		"2026-03-10T14:00:00.123456Z",
		"2026-03-10T14:00:00.123456",
		"2026-03-10T14:00:00",
		"2026-03-10T14:00",
		"2026-03-10 14:00:00",
		"2026-03-10",
	} {
		_, err := ParseDueDate(s)
		assert.NoError(t, err, s)
	}

	_, err := ParseDueDate("10/03/2026")
	assert.Error(t, err)
}
