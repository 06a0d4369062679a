package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	v1 "github.com/earworm-lab/earworm/internal/api/v1"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newMockAdapter(t *testing.T) (*Adapter, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewAdapterWithDB(db), mock
}

func TestAdapter_Replace(t *testing.T) {
	events := []v1.PlayEvent{
		{
			TS:          "2024-03-15T08:30:00Z",
			MSPlayed:    241000,
			TrackName:   strPtr("Holocene"),
			ArtistName:  strPtr("Bon Iver"),
			AlbumName:   strPtr("Bon Iver, Bon Iver"),
			Platform:    strPtr("android"),
			ConnCountry: strPtr("SE"),
			Skipped:     false,
			Shuffle:     true,
		},
		{
			TS:       "2024-03-15T09:00:00Z",
			MSPlayed: -50, // malformed export value, must be clamped on write
		},
	}

	tests := []struct {
		name      string
		mockSetup func(mock sqlmock.Sqlmock)
		wantErr   string
	}{
		{
			name: "success commits delete, inserts and timestamp as one unit",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(queryDeleteEvents)).
					WillReturnResult(sqlmock.NewResult(0, 0))
				prep := mock.ExpectPrepare(regexp.QuoteMeta(queryInsertEvent))
				prep.ExpectExec().
					WithArgs("2024-03-15T08:30:00Z", int64(241000),
						sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
						sqlmock.AnyArg(), sqlmock.AnyArg(), false, true).
					WillReturnResult(sqlmock.NewResult(1, 1))
				prep.ExpectExec().
					WithArgs("2024-03-15T09:00:00Z", int64(0),
						sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
						sqlmock.AnyArg(), sqlmock.AnyArg(), false, false).
					WillReturnResult(sqlmock.NewResult(2, 1))
				mock.ExpectExec(regexp.QuoteMeta(queryUpsertUploadedAt)).
					WithArgs(metaKeyUploadedAt, sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "insert failure rolls back",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(queryDeleteEvents)).
					WillReturnResult(sqlmock.NewResult(0, 0))
				prep := mock.ExpectPrepare(regexp.QuoteMeta(queryInsertEvent))
				prep.ExpectExec().
					WillReturnError(errors.New("disk full"))
				mock.ExpectRollback()
			},
			wantErr: "failed to insert event 0",
		},
		{
			name: "timestamp write failure rolls back the whole replacement",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(queryDeleteEvents)).
					WillReturnResult(sqlmock.NewResult(0, 0))
				prep := mock.ExpectPrepare(regexp.QuoteMeta(queryInsertEvent))
				prep.ExpectExec().WillReturnResult(sqlmock.NewResult(1, 1))
				prep.ExpectExec().WillReturnResult(sqlmock.NewResult(2, 1))
				mock.ExpectExec(regexp.QuoteMeta(queryUpsertUploadedAt)).
					WithArgs(metaKeyUploadedAt, sqlmock.AnyArg()).
					WillReturnError(errors.New("connection reset"))
				mock.ExpectRollback()
			},
			wantErr: "failed to record upload timestamp",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			adapter, mock := newMockAdapter(t)
			tc.mockSetup(mock)

			err := adapter.Replace(context.Background(), events)
			if tc.wantErr != "" {
				require.ErrorContains(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAdapter_Events(t *testing.T) {
	columns := []string{
		"ts", "ms_played", "track_name", "artist_name", "album_name",
		"platform", "conn_country", "skipped", "shuffled",
	}

	t.Run("empty table means absent dataset, not an error", func(t *testing.T) {
		adapter, mock := newMockAdapter(t)
		mock.ExpectQuery(regexp.QuoteMeta(queryRetrieveEvents)).
			WillReturnRows(sqlmock.NewRows(columns))

		events, err := adapter.Events(context.Background())
		require.NoError(t, err)
		require.Nil(t, events)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rows scan with NULL metadata preserved", func(t *testing.T) {
		adapter, mock := newMockAdapter(t)
		mock.ExpectQuery(regexp.QuoteMeta(queryRetrieveEvents)).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("2024-03-15T08:30:00Z", int64(241000),
					"Holocene", "Bon Iver", "Bon Iver, Bon Iver",
					"android", "SE", false, true).
				AddRow("2024-03-15T09:00:00Z", int64(90000),
					nil, nil, nil, nil, nil, true, false))

		events, err := adapter.Events(context.Background())
		require.NoError(t, err)
		require.Len(t, events, 2)

		require.True(t, events[0].IsMusic())
		require.Equal(t, "Bon Iver", events[0].Artist())
		require.True(t, events[0].Shuffle)

		require.False(t, events[1].IsMusic())
		require.Nil(t, events[1].TrackName)
		require.True(t, events[1].Skipped)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAdapter_Count(t *testing.T) {
	tests := []struct {
		name  string
		count int64
	}{
		{name: "empty store", count: 0},
		{name: "populated store", count: 412387},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			adapter, mock := newMockAdapter(t)
			mock.ExpectQuery(regexp.QuoteMeta(queryCountEvents)).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tc.count))

			count, err := adapter.Count(context.Background())
			require.NoError(t, err)
			require.Equal(t, tc.count, count)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAdapter_Clear(t *testing.T) {
	adapter, mock := newMockAdapter(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(queryDeleteEvents)).
		WillReturnResult(sqlmock.NewResult(0, 42))
	mock.ExpectExec(regexp.QuoteMeta(queryDeleteUploadedAt)).
		WithArgs(metaKeyUploadedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, adapter.Clear(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_UploadedAt(t *testing.T) {
	t.Run("no metadata row yields nil", func(t *testing.T) {
		adapter, mock := newMockAdapter(t)
		mock.ExpectQuery(regexp.QuoteMeta(querySelectUploadedAt)).
			WithArgs(metaKeyUploadedAt).
			WillReturnRows(sqlmock.NewRows([]string{"uploaded_at"}))

		uploadedAt, err := adapter.UploadedAt(context.Background())
		require.NoError(t, err)
		require.Nil(t, uploadedAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stored timestamp round-trips", func(t *testing.T) {
		stored := time.Date(2026, 2, 8, 12, 0, 0, 0, time.UTC)
		adapter, mock := newMockAdapter(t)
		mock.ExpectQuery(regexp.QuoteMeta(querySelectUploadedAt)).
			WithArgs(metaKeyUploadedAt).
			WillReturnRows(sqlmock.NewRows([]string{"uploaded_at"}).AddRow(stored))

		uploadedAt, err := adapter.UploadedAt(context.Background())
		require.NoError(t, err)
		require.NotNil(t, uploadedAt)
		require.True(t, stored.Equal(*uploadedAt))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
