// Package server exposes the lookup pipeline as a JSON HTTP API for the
// dashboard.
//
// Routes:
//
//	GET    /health
//	GET    /api/movies?title=...        single movie (also /api/movies/:title)
//	POST   /api/movies/batch            {"titles": [...], "features": [...]}
//	GET    /api/movies/stats?titles=... overview aggregates, optional q= search
//	GET    /api/geo/:place
//	POST   /api/geo/batch               {"places": [...]}
//	GET    /api/cache                   per-cache statistics
//	GET    /api/cache/:name/keys        cached keys, optional match= glob
//	DELETE /api/cache/:name             invalidate a cache
//
// Failed lookups answer 404 when the remote confirmed there is no match and
// 502 when the remote could not be asked.
package server
