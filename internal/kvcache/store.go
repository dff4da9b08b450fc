package kvcache

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"reel/internal/logging"
)

// Store is an in-memory key/value map mirrored to a Backend.
//
// Keys are used exactly as given. A Store with a nil backend keeps entries in
// memory only.
type Store[V any] struct {
	backend Backend
	logger  *slog.Logger
	mu      sync.RWMutex
	entries map[string]V
}

// New creates a store and loads any persisted snapshot from backend.
func New[V any](backend Backend, logger *slog.Logger) *Store[V] {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Store[V]{
		backend: backend,
		logger:  logging.NewComponentLogger(logger, "kvcache"),
		entries: make(map[string]V),
	}
	s.Load()
	return s
}

// Load replaces the in-memory map with the persisted snapshot. Unreadable or
// malformed snapshots are logged and leave the store empty.
func (s *Store[V]) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]V)
	if s.backend == nil {
		return
	}

	snapshot, err := s.backend.Load()
	if err != nil {
		s.warnLoad(err)
		return
	}

	entries := make(map[string]V, len(snapshot))
	for key, raw := range snapshot {
		var value V
		if err := json.Unmarshal(raw, &value); err != nil {
			s.warnLoad(fmt.Errorf("decode entry %q: %w", key, err))
			return
		}
		entries[key] = value
	}
	s.entries = entries

	s.logger.Debug("loaded lookup cache",
		logging.Int("entry_count", len(entries)),
		logging.String(logging.FieldCachePath, s.backend.Path()))
}

// Get returns the cached value for key without touching the backend.
func (s *Store[V]) Get(key string) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.entries[key]
	return value, ok
}

// Put stores value under key and persists the full snapshot. Persistence
// failures are logged; the in-memory entry is kept either way.
func (s *Store[V]) Put(key string, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = value
	if s.backend == nil {
		return
	}

	if err := s.save(); err != nil {
		logging.WarnWithContext(s.logger, "failed to persist lookup cache", "kvcache_save_failed",
			logging.String(logging.FieldLookupKey, key),
			logging.String(logging.FieldCachePath, s.backend.Path()),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check permissions and free space in the cache directory"),
			logging.String(logging.FieldImpact, "entry is cached for this process only"))
		return
	}

	s.logger.Debug("cached lookup result",
		logging.String(logging.FieldLookupKey, key),
		logging.Int("entry_count", len(s.entries)))
}

// Invalidate deletes the persisted snapshot. The in-memory map is untouched
// until the next Load.
func (s *Store[V]) Invalidate() error {
	if s.backend == nil {
		return nil
	}
	if err := s.backend.Remove(); err != nil {
		return fmt.Errorf("invalidate cache: %w", err)
	}
	s.logger.Info("lookup cache invalidated",
		logging.String(logging.FieldEventType, "kvcache_invalidated"),
		logging.String(logging.FieldCachePath, s.backend.Path()))
	return nil
}

// Keys returns every cached key in sorted order.
func (s *Store[V]) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.entries))
	for key := range s.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of cached entries.
func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Path reports the backing location, or "" for a memory-only store.
func (s *Store[V]) Path() string {
	if s.backend == nil {
		return ""
	}
	return s.backend.Path()
}

func (s *Store[V]) save() error {
	snapshot := make(Snapshot, len(s.entries))
	for key, value := range s.entries {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode entry %q: %w", key, err)
		}
		snapshot[key] = raw
	}
	return s.backend.Save(snapshot)
}

func (s *Store[V]) warnLoad(err error) {
	logging.WarnWithContext(s.logger, "failed to load lookup cache", "kvcache_load_failed",
		logging.String(logging.FieldCachePath, s.backend.Path()),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "cache will start empty"),
		logging.String(logging.FieldImpact, "previously cached lookups will be fetched again"))
}
