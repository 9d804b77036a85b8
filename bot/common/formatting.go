package common

import (
	"fmt"
	"strings"
	"time"
)

// FormatChips formats a chip amount with thousand separators
func FormatChips(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}
	str := fmt.Sprintf("%d", amount)

	n := len(str)
	var result strings.Builder
	if negative {
		result.WriteByte('-')
	}
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}
	return result.String()
}

// FormatDuration renders a duration as a compact human string, e.g. "1h 5m".
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Round(time.Second).Seconds()))
	}
	d = d.Round(time.Minute)
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	switch {
	case hours >= 24:
		days := hours / 24
		hours %= 24
		if hours == 0 {
			return fmt.Sprintf("%dd", days)
		}
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		if minutes == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}

// FormatNetChange renders a signed chip delta with its sign, e.g. "+150".
func FormatNetChange(net int64) string {
	if net >= 0 {
		return "+" + FormatChips(net)
	}
	return FormatChips(net)
}

// Mention renders a user mention from an int64 ID.
func Mention(userID int64) string {
	return fmt.Sprintf("<@%d>", userID)
}

// ProgressBar renders a fixed-width vote bar for poll tallies.
func ProgressBar(count, total, width int) string {
	filled := 0
	if total > 0 {
		filled = count * width / total
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
