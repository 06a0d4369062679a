package stats

import (
	"strings"
	"time"

	v1 "github.com/earworm-lab/earworm/internal/api/v1"
)

// MusicOnly drops entries without track and artist metadata (podcasts,
// audiobooks). Order preserving and idempotent.
func MusicOnly(events []v1.PlayEvent) []v1.PlayEvent {
	filtered := make([]v1.PlayEvent, 0, len(events))
	for _, e := range events {
		if e.IsMusic() {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// ByDateRange keeps events whose timestamp falls inside [start, end], both
// bounds inclusive and each optional. Events with unparseable timestamps
// pass through: the filter only excludes what it can positively place
// outside the range.
func ByDateRange(events []v1.PlayEvent, start, end *time.Time) []v1.PlayEvent {
	if start == nil && end == nil {
		return events
	}

	filtered := make([]v1.PlayEvent, 0, len(events))
	for _, e := range events {
		at, ok := e.Time()
		if !ok {
			filtered = append(filtered, e)
			continue
		}
		if start != nil && at.Before(*start) {
			continue
		}
		if end != nil && at.After(*end) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}

// ByArtist keeps events whose artist name contains text, case-insensitive.
// Empty filter text is a pass-through.
func ByArtist(events []v1.PlayEvent, text string) []v1.PlayEvent {
	if text == "" {
		return events
	}

	needle := strings.ToLower(text)
	filtered := make([]v1.PlayEvent, 0, len(events))
	for _, e := range events {
		if e.ArtistName == nil {
			continue
		}
		if strings.Contains(strings.ToLower(*e.ArtistName), needle) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// ByPlatform keeps events with an exact platform match. Empty text or "all"
// is a pass-through.
func ByPlatform(events []v1.PlayEvent, platform string) []v1.PlayEvent {
	if platform == "" || platform == "all" {
		return events
	}

	filtered := make([]v1.PlayEvent, 0, len(events))
	for _, e := range events {
		if e.Platform != nil && *e.Platform == platform {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
