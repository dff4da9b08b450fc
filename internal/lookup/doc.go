// Package lookup implements a read-through cache in front of a rate-limited
// fetcher.
//
// Service.Resolve answers from the cache when it can and otherwise performs
// one remote fetch, caching only successful answers. Not-found and transient
// failures are never cached, so the next call for the same key asks the
// remote again. A single lock spans the whole check-fetch-store sequence,
// which keeps concurrent callers from fetching the same key twice.
package lookup
