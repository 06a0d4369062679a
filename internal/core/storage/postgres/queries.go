package postgres

// SQL for the single-dataset store: one play_events table plus a one-row
// dataset_meta table carrying the upload timestamp.

const (
	queryDeleteEvents = `DELETE FROM play_events`

	// queryInsertEvent appends one record. seq (BIGSERIAL) preserves the
	// upload's concatenation order so Events can return it verbatim.
	queryInsertEvent = `
		INSERT INTO play_events (
			ts, ms_played, track_name, artist_name, album_name,
			platform, conn_country, skipped, shuffled
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	queryRetrieveEvents = `
		SELECT
			ts, ms_played, track_name, artist_name, album_name,
			platform, conn_country, skipped, shuffled
		FROM play_events
		ORDER BY seq ASC
	`

	queryCountEvents = `SELECT COUNT(*) FROM play_events`

	// queryUpsertUploadedAt keeps exactly one metadata row under a fixed key.
	queryUpsertUploadedAt = `
		INSERT INTO dataset_meta (key, uploaded_at)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET uploaded_at = EXCLUDED.uploaded_at
	`

	queryDeleteUploadedAt = `DELETE FROM dataset_meta WHERE key = $1`

	querySelectUploadedAt = `SELECT uploaded_at FROM dataset_meta WHERE key = $1`
)

// metaKeyUploadedAt is the fixed key of the dataset_meta row.
const metaKeyUploadedAt = "uploaded_at"
