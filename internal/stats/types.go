// Package stats is the aggregation engine: pure reducers over a filtered
// play-event sequence. Every function is a pure function of its inputs,
// accumulates in integer milliseconds and degrades to a zero/empty result
// on empty input.
package stats

// Metric is the common result shape of grouping reducers: a group key, the
// full-precision millisecond total and its 2-decimal hour conversion. The
// hour value is display only; MS is authoritative.
type Metric struct {
	Name  string  `json:"name"`
	MS    int64   `json:"ms"`
	Hours float64 `json:"hours"`
}

// TrackStat is one entry of the track ranking. Tracks rank by play count,
// not total milliseconds; the summed milliseconds ride along.
type TrackStat struct {
	Name   string  `json:"name"`
	Artist string  `json:"artist"`
	Count  int     `json:"count"`
	MS     int64   `json:"ms"`
	Hours  float64 `json:"hours"`
}

// TrendPoint is one chronological bucket of a listening trend.
type TrendPoint struct {
	Date  string  `json:"date"`
	MS    int64   `json:"ms"`
	Hours float64 `json:"hours"`
}

// HeatmapCell is one weekday/hour cell. The heatmap is always dense:
// 7 weekdays x 24 hours = 168 cells, zeros included.
type HeatmapCell struct {
	Day      string  `json:"day"`
	DayIndex int     `json:"dayIndex"`
	Hour     int     `json:"hour"`
	MS       int64   `json:"ms"`
	Hours    float64 `json:"hours"`
}

// SkipStats counts skipped vs. completed plays.
type SkipStats struct {
	Skipped   int `json:"skipped"`
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// ShuffleUse counts shuffled vs. non-shuffled plays.
type ShuffleUse struct {
	Shuffled    int `json:"shuffled"`
	NotShuffled int `json:"notShuffled"`
	Total       int `json:"total"`
}

// ActiveHour is the hour of day with the largest listening total.
type ActiveHour struct {
	Hour      int     `json:"hour"`
	Formatted string  `json:"formatted"`
	MS        int64   `json:"ms"`
	Hours     float64 `json:"hours"`
}

// UnknownArtistLabel buckets plays whose artist name is missing or blank so
// no ranking key is ever empty.
const UnknownArtistLabel = "Unknown artist"

// UnknownLabel is the fallback bucket for missing platform/country values.
const UnknownLabel = "Unknown"
