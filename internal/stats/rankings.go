package stats

import (
	"sort"
	"strings"

	v1 "github.com/earworm-lab/earworm/internal/api/v1"
	"github.com/earworm-lab/earworm/internal/format"
)

// TopArtists groups plays by trimmed artist name, summing played
// milliseconds, and returns the top limit groups by total time. Blank or
// missing names bucket under UnknownArtistLabel. Ties keep first-seen
// order, which the explicit insertion-order list makes deterministic for a
// given input sequence.
func TopArtists(events []v1.PlayEvent, limit int) []Metric {
	totals := make(map[string]int64)
	order := make([]string, 0)

	for i := range events {
		name := strings.TrimSpace(events[i].Artist())
		if name == "" {
			name = UnknownArtistLabel
		}
		if _, seen := totals[name]; !seen {
			order = append(order, name)
		}
		totals[name] += events[i].PlayedMS()
	}

	return rankedMetrics(order, totals, limit)
}

// PlatformBreakdown groups plays by platform label, "Unknown" for missing
// values, sorted descending by total time.
func PlatformBreakdown(events []v1.PlayEvent) []Metric {
	totals := make(map[string]int64)
	order := make([]string, 0)

	for i := range events {
		name := events[i].PlatformLabel()
		if name == "" {
			name = UnknownLabel
		}
		if _, seen := totals[name]; !seen {
			order = append(order, name)
		}
		totals[name] += events[i].PlayedMS()
	}

	return rankedMetrics(order, totals, 0)
}

// CountryBreakdown groups plays by connection country, "Unknown" for
// missing values, sorted descending by total time.
func CountryBreakdown(events []v1.PlayEvent) []Metric {
	totals := make(map[string]int64)
	order := make([]string, 0)

	for i := range events {
		name := events[i].Country()
		if name == "" {
			name = UnknownLabel
		}
		if _, seen := totals[name]; !seen {
			order = append(order, name)
		}
		totals[name] += events[i].PlayedMS()
	}

	return rankedMetrics(order, totals, 0)
}

// rankedMetrics builds Metric entries in first-seen order, stable-sorts
// descending by milliseconds and truncates to limit (limit <= 0 keeps all).
func rankedMetrics(order []string, totals map[string]int64, limit int) []Metric {
	metrics := make([]Metric, 0, len(order))
	for _, name := range order {
		ms := totals[name]
		metrics = append(metrics, Metric{Name: name, MS: ms, Hours: format.Hours(ms)})
	}

	sort.SliceStable(metrics, func(i, j int) bool {
		return metrics[i].MS > metrics[j].MS
	})

	if limit > 0 && len(metrics) > limit {
		metrics = metrics[:limit]
	}
	return metrics
}

type trackKey struct {
	track  string
	artist string
}

// TopTracks groups plays by the (track, artist) pair and ranks by play
// count. Two tracks sharing a name but not an artist stay distinct. Unlike
// TopArtists there is no fallback bucket: an event missing either field is
// excluded from this ranking entirely.
func TopTracks(events []v1.PlayEvent, limit int) []TrackStat {
	groups := make(map[trackKey]*TrackStat)
	order := make([]trackKey, 0)

	for i := range events {
		e := &events[i]
		if e.TrackName == nil || e.ArtistName == nil {
			continue
		}
		track, artist := *e.TrackName, *e.ArtistName
		if track == "" || artist == "" {
			continue
		}

		key := trackKey{track: track, artist: artist}
		group, seen := groups[key]
		if !seen {
			group = &TrackStat{Name: track, Artist: artist}
			groups[key] = group
			order = append(order, key)
		}
		group.Count++
		group.MS += e.PlayedMS()
	}

	ranked := make([]TrackStat, 0, len(order))
	for _, key := range order {
		group := groups[key]
		group.Hours = format.Hours(group.MS)
		ranked = append(ranked, *group)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
