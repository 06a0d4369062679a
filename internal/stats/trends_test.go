package stats

import (
	"testing"
	"time"

	v1 "github.com/earworm-lab/earworm/internal/api/v1"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	for _, valid := range []string{"day", "week", "month", "year"} {
		period, err := ParsePeriod(valid)
		require.NoError(t, err)
		require.Equal(t, Period(valid), period)
	}

	period, err := ParsePeriod("")
	require.NoError(t, err)
	require.Equal(t, PeriodDay, period)

	_, err = ParsePeriod("fortnight")
	require.Error(t, err)
}

func TestListeningTrends_Day(t *testing.T) {
	events := []v1.PlayEvent{
		play("2024-03-15T08:00:00Z", "A", "t", 1000),
		play("2024-03-15T22:00:00Z", "A", "t", 2000),
		play("2024-03-16T01:00:00Z", "A", "t", 500),
	}

	points := ListeningTrends(events, PeriodDay, time.UTC)
	require.Equal(t, []TrendPoint{
		{Date: "2024-03-15", MS: 3000, Hours: 0},
		{Date: "2024-03-16", MS: 500, Hours: 0},
	}, points)
}

func TestListeningTrends_WeekStartsOnSunday(t *testing.T) {
	// 2024-03-15 is a Friday; its week starts Sunday 2024-03-10.
	// 2024-03-17 is the following Sunday and starts its own week.
	events := []v1.PlayEvent{
		play("2024-03-15T08:00:00Z", "A", "t", 1000),
		play("2024-03-16T08:00:00Z", "A", "t", 1000),
		play("2024-03-17T08:00:00Z", "A", "t", 500),
	}

	points := ListeningTrends(events, PeriodWeek, time.UTC)
	require.Len(t, points, 2)
	require.Equal(t, "2024-03-10", points[0].Date)
	require.Equal(t, int64(2000), points[0].MS)
	require.Equal(t, "2024-03-17", points[1].Date)
}

func TestListeningTrends_MonthAndYearKeys(t *testing.T) {
	events := []v1.PlayEvent{
		play("2023-12-31T23:00:00Z", "A", "t", 100),
		play("2024-01-01T01:00:00Z", "A", "t", 200),
		play("2024-02-10T01:00:00Z", "A", "t", 300),
	}

	months := ListeningTrends(events, PeriodMonth, time.UTC)
	require.Equal(t, "2023-12", months[0].Date)
	require.Equal(t, "2024-01", months[1].Date)
	require.Equal(t, "2024-02", months[2].Date)

	years := ListeningTrends(events, PeriodYear, time.UTC)
	require.Len(t, years, 2)
	require.Equal(t, "2023", years[0].Date)
	require.Equal(t, "2024", years[1].Date)
	require.Equal(t, int64(500), years[1].MS)
}

func TestListeningTrends_YearKeysAreDistinctYearsAscending(t *testing.T) {
	events := []v1.PlayEvent{
		play("2025-06-01T00:00:00Z", "A", "t", 1),
		play("2021-06-01T00:00:00Z", "A", "t", 1),
		play("2023-06-01T00:00:00Z", "A", "t", 1),
		play("2021-07-01T00:00:00Z", "A", "t", 1),
	}

	years := ListeningTrends(events, PeriodYear, time.UTC)
	keys := make([]string, 0, len(years))
	for _, p := range years {
		keys = append(keys, p.Date)
	}
	require.Equal(t, []string{"2021", "2023", "2025"}, keys)
}

func TestListeningTrends_TimezoneShiftsBucket(t *testing.T) {
	// 23:30 UTC on the 15th is already the 16th in UTC+2.
	loc := time.FixedZone("UTC+2", 2*60*60)
	events := []v1.PlayEvent{
		play("2024-03-15T23:30:00Z", "A", "t", 100),
	}

	points := ListeningTrends(events, PeriodDay, loc)
	require.Equal(t, "2024-03-16", points[0].Date)
}

func TestListeningTrends_SkipsUnparseableTimestamps(t *testing.T) {
	events := []v1.PlayEvent{
		{TS: "garbage", MSPlayed: 100},
		play("2024-03-15T08:00:00Z", "A", "t", 50),
	}

	points := ListeningTrends(events, PeriodDay, time.UTC)
	require.Len(t, points, 1)
	require.Equal(t, int64(50), points[0].MS)
}

func TestListeningTrends_Empty(t *testing.T) {
	require.Empty(t, ListeningTrends(nil, PeriodDay, time.UTC))
}
