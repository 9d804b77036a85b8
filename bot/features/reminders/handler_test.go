package reminders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDelay(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"30m", 30 * time.Minute},
		{"2h", 2 * time.Hour},
		{"90s", 90 * time.Second},
		{"1h30m", 90 * time.Minute},
		{"1d", 24 * time.Hour},
		{"2d", 48 * time.Hour},
		{"1d12h", 36 * time.Hour},
		{" 1D ", 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseDelay(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDelayRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "soon", "d", "1x", "dd", "h1"} {
		t.Run(input, func(t *testing.T) {
			_, err := parseDelay(input)
			assert.Error(t, err)
		})
	}
}

func TestParseWhenFullDate(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	at, err := parseWhen("2026-09-01 18:30", 0, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 1, 18, 30, 0, 0, time.UTC), at.UTC())

	// +2 hours offset means the same wall clock is two hours earlier in UTC.
	at, err = parseWhen("2026-09-01 18:30", 2, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 1, 16, 30, 0, 0, time.UTC), at.UTC())
}

func TestParseWhenBareTimePicksNextOccurrence(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	at, err := parseWhen("18:30", 0, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 30, 18, 30, 0, 0, time.UTC), at.UTC())

	// A time already past today rolls over to tomorrow.
	at, err = parseWhen("09:00", 0, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC), at.UTC())
}

func TestParseWhenRejectsGarbage(t *testing.T) {
	now := time.Now()
	for _, input := range []string{"", "teatime", "25:99", "2026-13-01 18:30"} {
		_, err := parseWhen(input, 0, now)
		assert.Error(t, err, "input %q", input)
	}

	_, err := parseWhen("18:30", 20, now)
	assert.Error(t, err)
}
