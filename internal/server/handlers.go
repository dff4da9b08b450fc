package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"reel/internal/api"
	"reel/internal/fetch"
	"reel/internal/movies"
)

func (s *Server) getMovie(c *gin.Context) {
	title := strings.TrimSpace(c.Param("title"))
	if title == "" {
		title = strings.TrimSpace(c.Query("title"))
	}
	if title == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "title is required"})
		return
	}
	if err := s.app.RequireMovies(); err != nil {
		c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: err.Error()})
		return
	}

	outcome := s.app.Movies.Lookup(c.Request.Context(), title)
	if !outcome.OK() {
		c.JSON(outcomeStatus(outcome.Kind), api.FromOutcomeError(outcome))
		return
	}
	record := outcome.Value
	if c.Query("flatten") == "true" {
		record = movies.FlattenRatings(record)
	}
	c.JSON(http.StatusOK, record)
}

func (s *Server) postMovieBatch(c *gin.Context) {
	var req api.MovieBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body", Detail: err.Error()})
		return
	}
	titles := cleanKeys(req.Titles)
	if len(titles) == 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "titles must not be empty"})
		return
	}
	if err := s.app.RequireMovies(); err != nil {
		c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: err.Error()})
		return
	}

	result := s.app.EnrichMovies(c.Request.Context(), titles)
	c.JSON(http.StatusOK, api.FromMovieBatch(result, req.Features))
}

func (s *Server) getMovieStats(c *gin.Context) {
	titles := movies.ParseTitles(c.Query("titles"))
	if len(titles) == 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "titles query parameter is required"})
		return
	}
	if err := s.app.RequireMovies(); err != nil {
		c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: err.Error()})
		return
	}

	result := s.app.EnrichMovies(c.Request.Context(), titles)
	records := movies.Search(result.Values, c.Query("q"))
	c.JSON(http.StatusOK, api.MovieStatsResponse{
		BatchID: result.BatchID,
		Summary: movies.Summarize(records),
	})
}

func (s *Server) getPlace(c *gin.Context) {
	place := strings.TrimSpace(c.Param("place"))
	outcome := s.app.Geo.Lookup(c.Request.Context(), place)
	if !outcome.OK() {
		c.JSON(outcomeStatus(outcome.Kind), api.FromOutcomeError(outcome))
		return
	}
	c.JSON(http.StatusOK, api.GeoPoint{
		Place:     place,
		Latitude:  outcome.Value.Latitude,
		Longitude: outcome.Value.Longitude,
	})
}

func (s *Server) postGeoBatch(c *gin.Context) {
	var req api.GeoBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body", Detail: err.Error()})
		return
	}
	places := cleanKeys(req.Places)
	if len(places) == 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "places must not be empty"})
		return
	}
	c.JSON(http.StatusOK, api.FromPoints(s.app.LocatePlaces(c.Request.Context(), places)))
}

func (s *Server) listCaches(c *gin.Context) {
	caches := s.app.Caches()
	resp := api.CacheListResponse{Caches: make([]api.CacheStatus, 0, len(caches))}
	for _, cache := range caches {
		resp.Caches = append(resp.Caches, api.FromStats(cache.Stats()))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) listCacheKeys(c *gin.Context) {
	name := c.Param("name")
	if _, err := s.app.Cache(name); err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		return
	}
	keys, err := s.app.MatchKeys(name, c.Query("match"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, api.CacheKeysResponse{Name: name, Keys: keys})
}

func (s *Server) invalidateCache(c *gin.Context) {
	cache, err := s.app.Cache(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		return
	}
	if err := cache.Invalidate(); err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, api.FromStats(cache.Stats()))
}

func outcomeStatus(kind fetch.Kind) int {
	if kind == fetch.NotFound {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

func cleanKeys(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if key = strings.TrimSpace(key); key != "" {
			out = append(out, key)
		}
	}
	return out
}
