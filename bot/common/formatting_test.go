package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatChips(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		expected string
	}{
		{"zero", 0, "0"},
		{"small", 42, "42"},
		{"exactly one thousand", 1000, "1,000"},
		{"large", 1234567, "1,234,567"},
		{"negative", -2500, "-2,500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatChips(tt.amount))
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		d        time.Duration
		expected string
	}{
		{"seconds", 45 * time.Second, "45s"},
		{"minutes", 12 * time.Minute, "12m"},
		{"hours", 2 * time.Hour, "2h"},
		{"hours and minutes", 90 * time.Minute, "1h 30m"},
		{"days", 48 * time.Hour, "2d"},
		{"days and hours", 50 * time.Hour, "2d 2h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDuration(tt.d))
		})
	}
}

func TestFormatNetChange(t *testing.T) {
	assert.Equal(t, "+150", FormatNetChange(150))
	assert.Equal(t, "-1,000", FormatNetChange(-1000))
	assert.Equal(t, "+0", FormatNetChange(0))
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "░░░░", ProgressBar(0, 0, 4))
	assert.Equal(t, "██░░", ProgressBar(1, 2, 4))
	assert.Equal(t, "████", ProgressBar(2, 2, 4))
}
