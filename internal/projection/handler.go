package projection

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	httperr "github.com/earworm-lab/earworm/internal/core/errors"
	"github.com/earworm-lab/earworm/internal/stats"
)

const dateLayout = "2006-01-02"

// RegisterRoutes registers all stats API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/stats/overview", s.OverviewHandler)
	r.GET("/v1/stats/artists", s.ArtistsHandler)
	r.GET("/v1/stats/tracks", s.TracksHandler)
	r.GET("/v1/stats/trends", s.TrendsHandler)
	r.GET("/v1/stats/heatmap", s.HeatmapHandler)
	r.GET("/v1/stats/platforms", s.PlatformsHandler)
	r.GET("/v1/stats/countries", s.CountriesHandler)
}

// parseQuery reads the shared filter parameters. A start or end parameter
// must be a calendar date; end is widened to the last instant of its day so
// the range stays inclusive.
func (s *Service) parseQuery(c *gin.Context) (StatsQuery, bool) {
	q := StatsQuery{
		Artist:   c.Query("artist"),
		Platform: c.Query("platform"),
	}

	if raw := c.Query("start"); raw != "" {
		at, err := time.Parse(dateLayout, raw)
		if err != nil {
			invalidQuery(c, "Invalid start date, expected YYYY-MM-DD", err)
			return q, false
		}
		q.Start = &at
	}
	if raw := c.Query("end"); raw != "" {
		at, err := time.Parse(dateLayout, raw)
		if err != nil {
			invalidQuery(c, "Invalid end date, expected YYYY-MM-DD", err)
			return q, false
		}
		endOfDay := at.Add(24*time.Hour - time.Nanosecond)
		q.End = &endOfDay
	}
	if q.Start != nil && q.End != nil && q.End.Before(*q.Start) {
		invalidQueryMsg(c, "start date must not be after end date")
		return q, false
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			invalidQueryMsg(c, "limit must be a positive integer")
			return q, false
		}
		q.Limit = limit
	}

	period, err := stats.ParsePeriod(c.Query("period"))
	if err != nil {
		invalidQuery(c, "Invalid period", err)
		return q, false
	}
	q.Period = period

	return q, true
}

// OverviewHandler handles GET /v1/stats/overview
func (s *Service) OverviewHandler(c *gin.Context) {
	q, ok := s.parseQuery(c)
	if !ok {
		return
	}
	resp, err := s.Overview(c.Request.Context(), q)
	if err != nil {
		internalError(c, "Failed to compute overview", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ArtistsHandler handles GET /v1/stats/artists
func (s *Service) ArtistsHandler(c *gin.Context) {
	q, ok := s.parseQuery(c)
	if !ok {
		return
	}
	resp, err := s.TopArtists(c.Request.Context(), q)
	if err != nil {
		internalError(c, "Failed to rank artists", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TracksHandler handles GET /v1/stats/tracks
func (s *Service) TracksHandler(c *gin.Context) {
	q, ok := s.parseQuery(c)
	if !ok {
		return
	}
	resp, err := s.TopTracks(c.Request.Context(), q)
	if err != nil {
		internalError(c, "Failed to rank tracks", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TrendsHandler handles GET /v1/stats/trends
func (s *Service) TrendsHandler(c *gin.Context) {
	q, ok := s.parseQuery(c)
	if !ok {
		return
	}
	resp, err := s.Trends(c.Request.Context(), q)
	if err != nil {
		internalError(c, "Failed to compute trends", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HeatmapHandler handles GET /v1/stats/heatmap
func (s *Service) HeatmapHandler(c *gin.Context) {
	q, ok := s.parseQuery(c)
	if !ok {
		return
	}
	resp, err := s.Heatmap(c.Request.Context(), q)
	if err != nil {
		internalError(c, "Failed to compute heatmap", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PlatformsHandler handles GET /v1/stats/platforms
func (s *Service) PlatformsHandler(c *gin.Context) {
	q, ok := s.parseQuery(c)
	if !ok {
		return
	}
	resp, err := s.Platforms(c.Request.Context(), q)
	if err != nil {
		internalError(c, "Failed to compute platform breakdown", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CountriesHandler handles GET /v1/stats/countries
func (s *Service) CountriesHandler(c *gin.Context) {
	q, ok := s.parseQuery(c)
	if !ok {
		return
	}
	resp, err := s.Countries(c.Request.Context(), q)
	if err != nil {
		internalError(c, "Failed to compute country breakdown", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func invalidQuery(c *gin.Context, message string, err error) {
	c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
		ErrorType: httperr.HttpInvalidQueryError,
		Message:   message,
		Details:   err.Error(),
	})
}

func invalidQueryMsg(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
		ErrorType: httperr.HttpInvalidQueryError,
		Message:   message,
	})
}

func internalError(c *gin.Context, message string, err error) {
	c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
		ErrorType: httperr.HttpInternalError,
		Message:   message,
		Details:   err.Error(),
	})
}
