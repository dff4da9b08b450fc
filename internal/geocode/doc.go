// Package geocode resolves place names to coordinates through a
// Nominatim-compatible search endpoint.
//
// Only the best hit is used. An empty result list is reported with
// errors.CodeNotFound; transport problems, throttling, and malformed bodies
// carry retryable codes.
package geocode
