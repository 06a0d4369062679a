package stats

import (
	v1 "github.com/earworm-lab/earworm/internal/api/v1"
)

// SkippedStats counts skipped vs. completed plays in one pass. Total is the
// event count as processed; callers guard their own percentage division.
func SkippedStats(events []v1.PlayEvent) SkipStats {
	stats := SkipStats{Total: len(events)}
	for i := range events {
		if events[i].Skipped {
			stats.Skipped++
		} else {
			stats.Completed++
		}
	}
	return stats
}

// ShuffleStats counts plays started in shuffle mode in one pass.
func ShuffleStats(events []v1.PlayEvent) ShuffleUse {
	stats := ShuffleUse{Total: len(events)}
	for i := range events {
		if events[i].Shuffle {
			stats.Shuffled++
		} else {
			stats.NotShuffled++
		}
	}
	return stats
}
