package stats

import (
	v1 "github.com/earworm-lab/earworm/internal/api/v1"
)

// TotalListeningMS sums the played duration over all events.
func TotalListeningMS(events []v1.PlayEvent) int64 {
	var total int64
	for i := range events {
		total += events[i].PlayedMS()
	}
	return total
}

// TotalTracks counts play events.
func TotalTracks(events []v1.PlayEvent) int {
	return len(events)
}

// UniqueArtists counts distinct non-empty artist names.
func UniqueArtists(events []v1.PlayEvent) int {
	seen := make(map[string]struct{})
	for i := range events {
		if name := events[i].Artist(); name != "" {
			seen[name] = struct{}{}
		}
	}
	return len(seen)
}

// UniqueAlbums counts distinct non-empty album names.
func UniqueAlbums(events []v1.PlayEvent) int {
	seen := make(map[string]struct{})
	for i := range events {
		if name := events[i].Album(); name != "" {
			seen[name] = struct{}{}
		}
	}
	return len(seen)
}

// AverageSessionLengthMS is the mean played duration per event, 0 for an
// empty sequence.
func AverageSessionLengthMS(events []v1.PlayEvent) float64 {
	if len(events) == 0 {
		return 0
	}
	return float64(TotalListeningMS(events)) / float64(len(events))
}
