package v1

import (
	"strings"
	"time"
)

// PlayEvent is one record of the Spotify extended streaming history export.
// Field names follow the raw export: track/artist/album live under the
// nested-metadata style keys, the timestamp under "ts" and the played
// duration under "ms_played". Pointer fields distinguish absent/null from
// empty strings; podcast episodes carry no track or artist metadata.
type PlayEvent struct {
	TS          string  `json:"ts"`
	MSPlayed    int64   `json:"ms_played"`
	TrackName   *string `json:"master_metadata_track_name"`
	ArtistName  *string `json:"master_metadata_album_artist_name"`
	AlbumName   *string `json:"master_metadata_album_album_name"`
	Platform    *string `json:"platform"`
	ConnCountry *string `json:"conn_country"`
	Skipped     bool    `json:"skipped"`
	Shuffle     bool    `json:"shuffle"`
}

// IsMusic reports whether the event is a music play. Entries without both a
// track name and an artist name (podcasts, audiobooks) are not music.
func (e *PlayEvent) IsMusic() bool {
	return e.TrackName != nil && e.ArtistName != nil
}

// PlayedMS returns the played duration, clamping malformed negative values
// to zero so no aggregate can sum below zero.
func (e *PlayEvent) PlayedMS() int64 {
	if e.MSPlayed < 0 {
		return 0
	}
	return e.MSPlayed
}

// Track returns the track name, or "" when absent.
func (e *PlayEvent) Track() string {
	if e.TrackName == nil {
		return ""
	}
	return *e.TrackName
}

// Artist returns the artist name, or "" when absent.
func (e *PlayEvent) Artist() string {
	if e.ArtistName == nil {
		return ""
	}
	return *e.ArtistName
}

// Album returns the album name, or "" when absent.
func (e *PlayEvent) Album() string {
	if e.AlbumName == nil {
		return ""
	}
	return *e.AlbumName
}

// PlatformLabel returns the platform, or "" when absent.
func (e *PlayEvent) PlatformLabel() string {
	if e.Platform == nil {
		return ""
	}
	return *e.Platform
}

// Country returns the connection country code, or "" when absent.
func (e *PlayEvent) Country() string {
	if e.ConnCountry == nil {
		return ""
	}
	return *e.ConnCountry
}

// Time parses the event timestamp. The export writes RFC 3339 with a "Z"
// suffix; some shards carry fractional seconds, so both layouts are
// accepted. Returns false for blank or unparseable timestamps.
func (e *PlayEvent) Time() (time.Time, bool) {
	ts := strings.TrimSpace(e.TS)
	if ts == "" {
		return time.Time{}, false
	}
	if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
		return parsed, true
	}
	if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
		return parsed, true
	}
	return time.Time{}, false
}
