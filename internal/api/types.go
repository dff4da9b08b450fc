package api

import (
	"reel/internal/movies"
	"reel/internal/omdb"
)

// ErrorResponse is returned for every non-2xx reply.
type ErrorResponse struct {
	Error  string `json:"error"`
	Code   string `json:"code,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// HealthResponse reports liveness.
type HealthResponse struct {
	Status string `json:"status"`
}

// MovieBatchRequest asks for a set of titles to be resolved.
type MovieBatchRequest struct {
	Titles   []string `json:"titles" binding:"required"`
	Features []string `json:"features,omitempty"`
}

// MovieBatchResponse carries the records that resolved, in request order.
type MovieBatchResponse struct {
	BatchID   string        `json:"batch_id"`
	Requested int           `json:"requested"`
	Missing   []string      `json:"missing"`
	Movies    []omdb.Record `json:"movies"`
}

// MovieStatsResponse carries the overview aggregates for a set of titles.
type MovieStatsResponse struct {
	BatchID string `json:"batch_id"`
	movies.Summary
}

// GeoPoint is a located place.
type GeoPoint struct {
	Place     string  `json:"place"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GeoBatchRequest asks for a set of places to be geocoded.
type GeoBatchRequest struct {
	Places []string `json:"places" binding:"required"`
}

// GeoBatchResponse carries the places that resolved.
type GeoBatchResponse struct {
	Points []GeoPoint `json:"points"`
}

// CacheStatus describes one lookup cache.
type CacheStatus struct {
	Name              string `json:"name"`
	Path              string `json:"path"`
	Entries           int    `json:"entries"`
	Hits              int64  `json:"hits"`
	Misses            int64  `json:"misses"`
	Fetches           int64  `json:"fetches"`
	NotFound          int64  `json:"not_found"`
	TransientFailures int64  `json:"transient_failures"`
}

// CacheListResponse lists every lookup cache.
type CacheListResponse struct {
	Caches []CacheStatus `json:"caches"`
}

// CacheKeysResponse lists the keys of one cache.
type CacheKeysResponse struct {
	Name string   `json:"name"`
	Keys []string `json:"keys"`
}
