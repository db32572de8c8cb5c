package domain

import (
	"fmt"
	"strings"
)

// HumanDuration renders seconds the way the maps provider labels durations,
// e.g. "45 secs", "12 mins", "1 hour 5 mins", "2 days 3 hours".
func HumanDuration(seconds int) string {
	if seconds < 60 {
		return plural(seconds, "sec")
	}

	minutes := (seconds + 30) / 60
	days := minutes / (24 * 60)
	hours := minutes / 60 % 24
	mins := minutes % 60

	parts := make([]string, 0, 2)
	switch {
	case days > 0:
		parts = append(parts, plural(days, "day"))
		if hours > 0 {
			parts = append(parts, plural(hours, "hour"))
		}
	case hours > 0:
		parts = append(parts, plural(hours, "hour"))
		if mins > 0 {
			parts = append(parts, plural(mins, "min"))
		}
	default:
		parts = append(parts, plural(mins, "min"))
	}

	return strings.Join(parts, " ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// FormatHMS renders seconds as "H hrs M mins S secs".
func FormatHMS(seconds int) string {
	hrs := seconds / 3600
	seconds %= 3600
	mins := seconds / 60
	secs := seconds % 60
	return fmt.Sprintf("%d hrs %d mins %d secs", hrs, mins, secs)
}
