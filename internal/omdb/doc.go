// Package omdb provides the minimal Open Movie Database client used to
// resolve movie titles to catalog metadata.
//
// Lookups query by exact title and return the response object untouched as a
// Record, so fields added by OMDb flow through without code changes. Failures
// carry github.com/jmgilman/go/errors codes: CodeNotFound when OMDb confirms
// there is no such movie, and network, timeout, rate-limit, auth, or
// malformed-body codes otherwise.
package omdb
