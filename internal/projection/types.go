package projection

import (
	"time"

	"github.com/earworm-lab/earworm/internal/stats"
)

// StatsQuery carries the shared filter parameters accepted by every stats
// endpoint. Start/End are inclusive calendar dates.
type StatsQuery struct {
	Start    *time.Time
	End      *time.Time
	Artist   string
	Platform string
	Limit    int
	Period   stats.Period
}

// Overview is the headline summary for the active dataset.
type Overview struct {
	HasData        bool              `json:"has_data"`
	TotalMS        int64             `json:"total_ms"`
	TotalHours     float64           `json:"total_hours"`
	TotalDuration  string            `json:"total_duration"`
	TotalTracks    int               `json:"total_tracks"`
	UniqueArtists  int               `json:"unique_artists"`
	UniqueAlbums   int               `json:"unique_albums"`
	AvgTrackMS     float64           `json:"avg_track_ms"`
	Skipped        stats.SkipStats   `json:"skipped"`
	Shuffle        stats.ShuffleUse  `json:"shuffle"`
	MostActiveHour *stats.ActiveHour `json:"most_active_hour"`
}

// RankingResponse wraps an ordered breakdown (artists, platforms, countries).
type RankingResponse struct {
	Count int            `json:"count"`
	Items []stats.Metric `json:"items"`
}

// TrackRankingResponse wraps the top-tracks ranking.
type TrackRankingResponse struct {
	Count int               `json:"count"`
	Items []stats.TrackStat `json:"items"`
}

// TrendsResponse is a chronological listening-time series.
type TrendsResponse struct {
	Period stats.Period       `json:"period"`
	Points []stats.TrendPoint `json:"points"`
}

// HeatmapResponse is the dense weekday-by-hour listening grid.
type HeatmapResponse struct {
	Cells []stats.HeatmapCell `json:"cells"`
}
