// Package fetch performs rate-limited calls to remote lookup APIs.
//
// A Fetcher wraps a single remote call and guarantees a minimum delay between
// the start of consecutive calls made through the same instance. Every call
// yields an Outcome: a value, a confirmed no-match, or a transient failure.
// Fetchers never retry; callers decide whether to ask again.
//
// The delay is tracked per Fetcher. Two fetchers (or two processes) hitting
// the same API do not coordinate.
package fetch
