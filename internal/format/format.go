// Package format holds the display-boundary conversions. Aggregation totals
// stay in integer milliseconds; everything here is presentation only.
package format

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	msPerSecond = 1000
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
)

// Duration renders milliseconds as a compact human-readable span,
// e.g. "3d 7h 12m", "2h 5m", "4m 31s" or "12s".
func Duration(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	seconds := ms / msPerSecond
	minutes := seconds / 60
	hours := minutes / 60
	days := hours / 24

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours%24, minutes%60)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes%60)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds%60)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// Hours converts milliseconds to decimal hours rounded to 2 places.
func Hours(ms int64) float64 {
	return round2(ms, msPerHour)
}

// Days converts milliseconds to decimal days rounded to 2 places.
func Days(ms int64) float64 {
	return round2(ms, msPerDay)
}

func round2(ms int64, unit int64) float64 {
	value, _ := decimal.NewFromInt(ms).
		DivRound(decimal.NewFromInt(unit), 6).
		Round(2).
		Float64()
	return value
}

// Date renders an RFC 3339 timestamp as "Jan 2, 2006". Unparseable input is
// returned unchanged rather than erroring at the display boundary.
func Date(ts string) string {
	parsed, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return parsed.Format("Jan 2, 2006")
}

// DateShort renders an RFC 3339 timestamp as "Jan 2".
func DateShort(ts string) string {
	parsed, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return parsed.Format("Jan 2")
}
