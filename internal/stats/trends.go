package stats

import (
	"fmt"
	"sort"
	"time"

	v1 "github.com/earworm-lab/earworm/internal/api/v1"
	"github.com/earworm-lab/earworm/internal/format"
)

// Period selects the bucket width of a listening trend.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

const dayKeyLayout = "2006-01-02"

// ParsePeriod validates a period string, defaulting blank input to day.
func ParsePeriod(value string) (Period, error) {
	switch Period(value) {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodYear:
		return Period(value), nil
	case "":
		return PeriodDay, nil
	default:
		return "", fmt.Errorf("unknown trend period %q", value)
	}
}

// ListeningTrends sums played milliseconds into calendar buckets of the
// given period, evaluated in loc. Week buckets key on the Sunday starting
// the event's week (weekday subtraction, not ISO week numbers). Buckets are
// sorted ascending by their actual bucket start time, not by key string,
// so week keys spanning year boundaries order correctly. Events without a
// parseable timestamp cannot be bucketed and are skipped.
func ListeningTrends(events []v1.PlayEvent, period Period, loc *time.Location) []TrendPoint {
	if loc == nil {
		loc = time.UTC
	}

	totals := make(map[string]int64)
	starts := make(map[string]time.Time)

	for i := range events {
		at, ok := events[i].Time()
		if !ok {
			continue
		}
		key, start := bucketFor(at.In(loc), period)
		if _, seen := totals[key]; !seen {
			starts[key] = start
		}
		totals[key] += events[i].PlayedMS()
	}

	points := make([]TrendPoint, 0, len(totals))
	for key, ms := range totals {
		points = append(points, TrendPoint{Date: key, MS: ms, Hours: format.Hours(ms)})
	}

	sort.Slice(points, func(i, j int) bool {
		si, sj := starts[points[i].Date], starts[points[j].Date]
		if si.Equal(sj) {
			return points[i].Date < points[j].Date
		}
		return si.Before(sj)
	})

	return points
}

// bucketFor maps a local event time to its bucket key and the bucket's
// chronological start, which drives sorting.
func bucketFor(at time.Time, period Period) (string, time.Time) {
	year, month, day := at.Date()
	dayStart := time.Date(year, month, day, 0, 0, 0, 0, at.Location())

	switch period {
	case PeriodWeek:
		weekStart := dayStart.AddDate(0, 0, -int(dayStart.Weekday()))
		return weekStart.Format(dayKeyLayout), weekStart
	case PeriodMonth:
		monthStart := time.Date(year, month, 1, 0, 0, 0, 0, at.Location())
		return monthStart.Format("2006-01"), monthStart
	case PeriodYear:
		yearStart := time.Date(year, 1, 1, 0, 0, 0, 0, at.Location())
		return yearStart.Format("2006"), yearStart
	default:
		return dayStart.Format(dayKeyLayout), dayStart
	}
}
