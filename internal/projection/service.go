package projection

import (
	"context"
	"fmt"
	"time"

	v1 "github.com/earworm-lab/earworm/internal/api/v1"
	"github.com/earworm-lab/earworm/internal/format"
	"github.com/earworm-lab/earworm/internal/loader"
	"github.com/earworm-lab/earworm/internal/stats"
)

// Service implements the read/query layer. Every endpoint runs the same
// pipeline: active dataset -> music filter -> request filters -> reducer.
type Service struct {
	loader       *loader.Service
	location     *time.Location
	defaultLimit int
}

// NewService creates a new projection service. loc is the timezone used for
// hour and weekday bucketing; a nil loc falls back to UTC.
func NewService(ldr *loader.Service, loc *time.Location, defaultLimit int) *Service {
	if ldr == nil {
		panic("projection: loader must not be nil")
	}
	if loc == nil {
		loc = time.UTC
	}
	if defaultLimit <= 0 {
		defaultLimit = 10
	}
	return &Service{
		loader:       ldr,
		location:     loc,
		defaultLimit: defaultLimit,
	}
}

// filteredEvents loads the active dataset and applies the music filter plus
// every request-level filter in order.
func (s *Service) filteredEvents(ctx context.Context, q StatsQuery) ([]v1.PlayEvent, error) {
	events, err := s.loader.LoadActiveDataset(ctx)
	if err != nil {
		return nil, fmt.Errorf("load active dataset: %w", err)
	}

	events = stats.MusicOnly(events)
	events = stats.ByDateRange(events, q.Start, q.End)
	events = stats.ByArtist(events, q.Artist)
	events = stats.ByPlatform(events, q.Platform)
	return events, nil
}

// Overview computes the headline summary. HasData reports whether any events
// exist at all, before request filters: an empty result under filters still
// counts as having data.
func (s *Service) Overview(ctx context.Context, q StatsQuery) (*Overview, error) {
	all, err := s.loader.LoadActiveDataset(ctx)
	if err != nil {
		return nil, fmt.Errorf("load active dataset: %w", err)
	}

	events := stats.MusicOnly(all)
	hasData := len(events) > 0
	events = stats.ByDateRange(events, q.Start, q.End)
	events = stats.ByArtist(events, q.Artist)
	events = stats.ByPlatform(events, q.Platform)

	totalMS := stats.TotalListeningMS(events)
	return &Overview{
		HasData:        hasData,
		TotalMS:        totalMS,
		TotalHours:     format.Hours(totalMS),
		TotalDuration:  format.Duration(totalMS),
		TotalTracks:    stats.TotalTracks(events),
		UniqueArtists:  stats.UniqueArtists(events),
		UniqueAlbums:   stats.UniqueAlbums(events),
		AvgTrackMS:     stats.AverageSessionLengthMS(events),
		Skipped:        stats.SkippedStats(events),
		Shuffle:        stats.ShuffleStats(events),
		MostActiveHour: stats.MostActiveHour(events, s.location),
	}, nil
}

// TopArtists returns the highest-listening-time artists.
func (s *Service) TopArtists(ctx context.Context, q StatsQuery) (*RankingResponse, error) {
	events, err := s.filteredEvents(ctx, q)
	if err != nil {
		return nil, err
	}
	items := stats.TopArtists(events, s.limitOrDefault(q))
	return &RankingResponse{Count: len(items), Items: items}, nil
}

// TopTracks returns the most-played tracks.
func (s *Service) TopTracks(ctx context.Context, q StatsQuery) (*TrackRankingResponse, error) {
	events, err := s.filteredEvents(ctx, q)
	if err != nil {
		return nil, err
	}
	items := stats.TopTracks(events, s.limitOrDefault(q))
	return &TrackRankingResponse{Count: len(items), Items: items}, nil
}

// Trends returns the chronological listening series for the given period.
func (s *Service) Trends(ctx context.Context, q StatsQuery) (*TrendsResponse, error) {
	events, err := s.filteredEvents(ctx, q)
	if err != nil {
		return nil, err
	}
	points := stats.ListeningTrends(events, q.Period, s.location)
	return &TrendsResponse{Period: q.Period, Points: points}, nil
}

// Heatmap returns the dense weekday-by-hour grid.
func (s *Service) Heatmap(ctx context.Context, q StatsQuery) (*HeatmapResponse, error) {
	events, err := s.filteredEvents(ctx, q)
	if err != nil {
		return nil, err
	}
	return &HeatmapResponse{Cells: stats.TimeOfDayHeatmap(events, s.location)}, nil
}

// Platforms returns listening time grouped by playback platform.
func (s *Service) Platforms(ctx context.Context, q StatsQuery) (*RankingResponse, error) {
	events, err := s.filteredEvents(ctx, q)
	if err != nil {
		return nil, err
	}
	items := stats.PlatformBreakdown(events)
	return &RankingResponse{Count: len(items), Items: items}, nil
}

// Countries returns listening time grouped by connection country.
func (s *Service) Countries(ctx context.Context, q StatsQuery) (*RankingResponse, error) {
	events, err := s.filteredEvents(ctx, q)
	if err != nil {
		return nil, err
	}
	items := stats.CountryBreakdown(events)
	return &RankingResponse{Count: len(items), Items: items}, nil
}

func (s *Service) limitOrDefault(q StatsQuery) int {
	if q.Limit > 0 {
		return q.Limit
	}
	return s.defaultLimit
}
