package utils

import (
	"fmt"
	"time"
)

// FormatRoundedUnit renders seconds in the largest whole unit: 42s, 5m, 3h, 2d
func FormatRoundedUnit(seconds int64) string {
	if seconds < 0 {
		seconds = -seconds
	}
	switch {
	case seconds < 60:
		return fmt.Sprintf("%ds", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%dm", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%dh", seconds/3600)
	default:
		return fmt.Sprintf("%dd", seconds/86400)
	}
}

// FormatAge renders how long ago t was, relative to now
func FormatAge(t, now time.Time) string {
	return FormatRoundedUnit(int64(now.Sub(t).Seconds())) + " ago"
}

// FormatMillis renders a run duration: 850ms, 1.2s
func FormatMillis(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	return fmt.Sprintf("%.1fs", float64(ms)/1000)
}
