package api

import (
	"github.com/jmgilman/go/errors"

	"reel/internal/app"
	"reel/internal/enrich"
	"reel/internal/fetch"
	"reel/internal/lookup"
	"reel/internal/movies"
	"reel/internal/omdb"
)

// FromMovieBatch converts an enrichment result, optionally keeping only features.
func FromMovieBatch(result enrich.Result[omdb.Record], features []string) MovieBatchResponse {
	records := result.Values
	if len(features) > 0 {
		records = movies.SelectFeatures(records, features)
	}
	missing := result.Missing
	if missing == nil {
		missing = []string{}
	}
	return MovieBatchResponse{
		BatchID:   result.BatchID,
		Requested: result.Requested,
		Missing:   missing,
		Movies:    records,
	}
}

// FromPoints converts located places.
func FromPoints(points []app.Point) GeoBatchResponse {
	out := make([]GeoPoint, 0, len(points))
	for _, point := range points {
		out = append(out, GeoPoint{
			Place:     point.Place,
			Latitude:  point.Latitude,
			Longitude: point.Longitude,
		})
	}
	return GeoBatchResponse{Points: out}
}

// FromStats converts service counters.
func FromStats(stats lookup.Stats) CacheStatus {
	return CacheStatus{
		Name:              stats.Name,
		Path:              stats.Path,
		Entries:           stats.Entries,
		Hits:              stats.Hits,
		Misses:            stats.Misses,
		Fetches:           stats.Fetches,
		NotFound:          stats.NotFound,
		TransientFailures: stats.Transient,
	}
}

// FromOutcomeError describes why a lookup produced no value.
func FromOutcomeError[V any](outcome fetch.Outcome[V]) ErrorResponse {
	if outcome.Kind == fetch.NotFound {
		return ErrorResponse{Error: "not found", Code: string(errors.CodeNotFound)}
	}
	resp := ErrorResponse{Error: "lookup unavailable", Code: string(errors.GetCode(outcome.Err))}
	if outcome.Err != nil {
		resp.Detail = outcome.Err.Error()
	}
	return resp
}
