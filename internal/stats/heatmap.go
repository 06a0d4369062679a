package stats

import (
	"fmt"
	"time"

	v1 "github.com/earworm-lab/earworm/internal/api/v1"
	"github.com/earworm-lab/earworm/internal/format"
)

var weekdayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// TimeOfDayHeatmap sums played milliseconds per (weekday, hour-of-day)
// cell, evaluated in loc. Weekday 0 is Sunday. The result is always the
// dense 7x24 grid of 168 cells in weekday-major order; consumers rely on
// the fixed size, so empty cells are emitted with zero totals. Events
// without a parseable timestamp are skipped.
func TimeOfDayHeatmap(events []v1.PlayEvent, loc *time.Location) []HeatmapCell {
	if loc == nil {
		loc = time.UTC
	}

	var totals [7][24]int64
	for i := range events {
		at, ok := events[i].Time()
		if !ok {
			continue
		}
		local := at.In(loc)
		totals[int(local.Weekday())][local.Hour()] += events[i].PlayedMS()
	}

	cells := make([]HeatmapCell, 0, 7*24)
	for day := 0; day < 7; day++ {
		for hour := 0; hour < 24; hour++ {
			ms := totals[day][hour]
			cells = append(cells, HeatmapCell{
				Day:      weekdayNames[day],
				DayIndex: day,
				Hour:     hour,
				MS:       ms,
				Hours:    format.Hours(ms),
			})
		}
	}
	return cells
}

// MostActiveHour returns the hour of day with the largest listening total,
// evaluated in loc. Ties resolve to the lowest hour number. Returns nil
// when no event contributes an hour bucket.
func MostActiveHour(events []v1.PlayEvent, loc *time.Location) *ActiveHour {
	if loc == nil {
		loc = time.UTC
	}

	var totals [24]int64
	var counts [24]int
	for i := range events {
		at, ok := events[i].Time()
		if !ok {
			continue
		}
		hour := at.In(loc).Hour()
		totals[hour] += events[i].PlayedMS()
		counts[hour]++
	}

	best := -1
	for hour := 0; hour < 24; hour++ {
		if counts[hour] == 0 {
			continue
		}
		if best == -1 || totals[hour] > totals[best] {
			best = hour
		}
	}
	if best == -1 {
		return nil
	}

	return &ActiveHour{
		Hour:      best,
		Formatted: fmt.Sprintf("%d:00", best),
		MS:        totals[best],
		Hours:     format.Hours(totals[best]),
	}
}
