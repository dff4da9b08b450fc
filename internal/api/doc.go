// Package api defines wire-format types and converters for the HTTP API.
//
// It translates lookup results, enrichment batches, and cache statistics into
// transport-friendly DTOs that the dashboard can render without coupling to
// internal types. Movie records pass through as raw OMDb objects; every other
// payload uses snake_case JSON keys.
package api
