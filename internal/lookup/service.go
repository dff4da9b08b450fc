package lookup

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"reel/internal/fetch"
	"reel/internal/logging"
)

// Cache is the key/value store consulted before fetching.
type Cache[V any] interface {
	Get(key string) (V, bool)
	Put(key string, value V)
	Load()
	Invalidate() error
	Keys() []string
	Len() int
	Path() string
}

// Fetcher performs a single remote lookup.
type Fetcher[V any] interface {
	Fetch(ctx context.Context, key string) fetch.Outcome[V]
}

// Stats summarizes a service's cache and fetch activity since start.
type Stats struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	Entries   int    `json:"entries"`
	Hits      int64  `json:"hits"`
	Misses    int64  `json:"misses"`
	Fetches   int64  `json:"fetches"`
	NotFound  int64  `json:"not_found"`
	Transient int64  `json:"transient_failures"`
}

// Service resolves keys through a cache backed by a fetcher.
type Service[V any] struct {
	name    string
	cache   Cache[V]
	fetcher Fetcher[V]
	logger  *slog.Logger

	mu    sync.Mutex
	stats Stats
}

// New builds a service. name identifies the service in logs and stats.
func New[V any](name string, cache Cache[V], fetcher Fetcher[V], logger *slog.Logger) *Service[V] {
	return &Service[V]{
		name:    name,
		cache:   cache,
		fetcher: fetcher,
		logger:  logging.NewComponentLogger(logger, "lookup").With(logging.String(logging.FieldService, name)),
		stats:   Stats{Name: name},
	}
}

// Name returns the service name.
func (s *Service[V]) Name() string {
	return s.name
}

// Resolve returns the value for key, or false when the remote has no answer
// right now.
func (s *Service[V]) Resolve(ctx context.Context, key string) (V, bool) {
	outcome := s.Lookup(ctx, key)
	return outcome.Value, outcome.OK()
}

// Lookup is Resolve with the failure reason preserved. Cache hits are
// reported as Success.
func (s *Service[V]) Lookup(ctx context.Context, key string) fetch.Outcome[V] {
	s.mu.Lock()
	defer s.mu.Unlock()

	if value, ok := s.cache.Get(key); ok {
		s.stats.Hits++
		s.logger.Debug("lookup cache hit",
			logging.String(logging.FieldLookupKey, key),
			logging.String(logging.FieldEventType, "lookup_cache_hit"))
		return fetch.Found(value)
	}
	s.stats.Misses++

	start := time.Now()
	outcome := s.fetcher.Fetch(ctx, key)
	s.stats.Fetches++
	elapsed := time.Since(start)

	switch outcome.Kind {
	case fetch.Success:
		s.cache.Put(key, outcome.Value)
		s.logger.Info("lookup resolved",
			logging.String(logging.FieldLookupKey, key),
			logging.String(logging.FieldEventType, "lookup_fetched"),
			logging.Duration("elapsed", elapsed))
	case fetch.NotFound:
		s.stats.NotFound++
		s.logger.Info("lookup found no match",
			logging.String(logging.FieldLookupKey, key),
			logging.String(logging.FieldEventType, "lookup_not_found"),
			logging.String(logging.FieldOutcome, outcome.Kind.String()),
			logging.Error(outcome.Err))
	default:
		s.stats.Transient++
		logging.WarnWithContext(s.logger, "lookup failed", "lookup_transient_failure",
			logging.String(logging.FieldLookupKey, key),
			logging.String(logging.FieldOutcome, outcome.Kind.String()),
			logging.Duration("elapsed", elapsed),
			logging.Error(outcome.Err),
			logging.String(logging.FieldErrorHint, "check network connectivity and API credentials"),
			logging.String(logging.FieldImpact, "key is left uncached and will be fetched again on next request"))
	}
	return outcome
}

// Cached returns the cached value for key without fetching.
func (s *Service[V]) Cached(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Get(key)
}

// Keys lists cached keys.
func (s *Service[V]) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Keys()
}

// Invalidate deletes the persisted cache and reloads, leaving the service empty.
func (s *Service[V]) Invalidate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cache.Invalidate(); err != nil {
		return err
	}
	s.cache.Load()
	return nil
}

// Stats returns a snapshot of the service counters.
func (s *Service[V]) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := s.stats
	stats.Entries = s.cache.Len()
	stats.Path = s.cache.Path()
	return stats
}
