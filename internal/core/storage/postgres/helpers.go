package postgres

import (
	"database/sql"
	"fmt"

	v1 "github.com/earworm-lab/earworm/internal/api/v1"
)

// nullableString maps an absent field to SQL NULL rather than an empty
// string, preserving the music/non-music distinction across a round-trip.
func nullableString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPointer(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	value := ns.String
	return &value
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanPlayEventRow scans a database row into a PlayEvent.
// Compatible with both sql.Row (single) and sql.Rows (multiple).
func scanPlayEventRow(row scanner) (v1.PlayEvent, error) {
	var evt v1.PlayEvent
	var track, artist, album, platform, country sql.NullString

	err := row.Scan(
		&evt.TS,
		&evt.MSPlayed,
		&track,
		&artist,
		&album,
		&platform,
		&country,
		&evt.Skipped,
		&evt.Shuffle,
	)
	if err != nil {
		return v1.PlayEvent{}, fmt.Errorf("failed to scan play event row: %w", err)
	}

	evt.TrackName = stringPointer(track)
	evt.ArtistName = stringPointer(artist)
	evt.AlbumName = stringPointer(album)
	evt.Platform = stringPointer(platform)
	evt.ConnCountry = stringPointer(country)

	return evt, nil
}
