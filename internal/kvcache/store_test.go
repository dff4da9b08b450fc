package kvcache

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/gofrs/flock"
)

type point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func backends(t *testing.T) map[string]func(dir string) Backend {
	t.Helper()
	return map[string]func(dir string) Backend{
		BackendJSON: func(dir string) Backend {
			return NewJSONFile(filepath.Join(dir, "cache.json"))
		},
		BackendSQLite: func(dir string) Backend {
			return NewSQLite(filepath.Join(dir, "cache.db"))
		},
	}
}

func TestStoreRoundTripAcrossInstances(t *testing.T) {
	for name, newBackend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			want := map[string]point{
				"Paris":  {Latitude: 48.8566, Longitude: 2.3522},
				"Tokyo":  {Latitude: 35.6762, Longitude: 139.6503},
				"Lisbon": {Latitude: 38.7223, Longitude: -9.1393},
			}

			first := New[point](newBackend(dir), nil)
			for key, value := range want {
				first.Put(key, value)
			}

			second := New[point](newBackend(dir), nil)
			if second.Len() != len(want) {
				t.Fatalf("expected %d entries after reload, got %d", len(want), second.Len())
			}
			for key, value := range want {
				got, ok := second.Get(key)
				if !ok {
					t.Fatalf("missing %q after reload", key)
				}
				if got != value {
					t.Fatalf("entry %q mismatch: got %+v want %+v", key, got, value)
				}
			}
		})
	}
}

func TestStoreMissingFileStartsEmpty(t *testing.T) {
	for name, newBackend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			store := New[point](newBackend(filepath.Join(t.TempDir(), "absent")), nil)
			if store.Len() != 0 {
				t.Fatalf("expected empty store, got %d entries", store.Len())
			}
			if _, ok := store.Get("anything"); ok {
				t.Fatal("expected miss on empty store")
			}
		})
	}
}

func TestStoreCorruptJSONStartsEmptyAndRecovers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cache.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	store := New[point](NewJSONFile(path), nil)
	if store.Len() != 0 {
		t.Fatalf("expected corrupt file to load as empty, got %d entries", store.Len())
	}

	store.Put("Oslo", point{Latitude: 59.91, Longitude: 10.75})
	reloaded := New[point](NewJSONFile(path), nil)
	if _, ok := reloaded.Get("Oslo"); !ok {
		t.Fatal("expected Put to overwrite the corrupt snapshot")
	}
}

func TestStoreMismatchedValuesStartEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cache.json")
	if err := os.WriteFile(path, []byte(`{"Oslo": "not a point"}`), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	store := New[point](NewJSONFile(path), nil)
	if store.Len() != 0 {
		t.Fatalf("expected undecodable entries to load as empty, got %d", store.Len())
	}
}

func TestStoreCorruptSQLiteStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cache.db")
	if err := os.WriteFile(path, []byte("this is not a database file at all, just text padding it out"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	store := New[point](NewSQLite(path), nil)
	if store.Len() != 0 {
		t.Fatalf("expected corrupt database to load as empty, got %d entries", store.Len())
	}
}

func TestStoreInvalidateRemovesFile(t *testing.T) {
	for name, newBackend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			backend := newBackend(t.TempDir())
			store := New[point](backend, nil)
			store.Put("Rome", point{Latitude: 41.9, Longitude: 12.5})

			if _, err := os.Stat(backend.Path()); err != nil {
				t.Fatalf("expected snapshot file after Put: %v", err)
			}
			if err := store.Invalidate(); err != nil {
				t.Fatalf("Invalidate returned error: %v", err)
			}
			if _, err := os.Stat(backend.Path()); !errors.Is(err, fs.ErrNotExist) {
				t.Fatalf("expected snapshot file removed, stat err = %v", err)
			}
			if _, ok := store.Get("Rome"); !ok {
				t.Fatal("expected in-memory entry to survive until the next Load")
			}

			store.Load()
			if store.Len() != 0 {
				t.Fatalf("expected empty store after reload, got %d", store.Len())
			}
			if err := store.Invalidate(); err != nil {
				t.Fatalf("second Invalidate should tolerate a missing file: %v", err)
			}
		})
	}
}

func TestStorePutOverwritesAndKeysAreExact(t *testing.T) {
	store := New[point](NewJSONFile(filepath.Join(t.TempDir(), "cache.json")), nil)
	store.Put("paris", point{Latitude: 1})
	store.Put("Paris", point{Latitude: 2})
	store.Put("Paris", point{Latitude: 3})

	if store.Len() != 2 {
		t.Fatalf("expected case-sensitive keys, got %d entries", store.Len())
	}
	got, _ := store.Get("Paris")
	if got.Latitude != 3 {
		t.Fatalf("expected overwrite, got %+v", got)
	}
	if keys := store.Keys(); !reflect.DeepEqual(keys, []string{"Paris", "paris"}) {
		t.Fatalf("unexpected keys: %v", keys)
	}
}

func TestStoreWithoutBackendIsMemoryOnly(t *testing.T) {
	store := New[map[string]any](nil, nil)
	store.Put("Inception", map[string]any{"Title": "Inception"})

	value, ok := store.Get("Inception")
	if !ok || value["Title"] != "Inception" {
		t.Fatalf("unexpected value: %v %v", value, ok)
	}
	if store.Path() != "" {
		t.Fatalf("expected empty path, got %q", store.Path())
	}
	if err := store.Invalidate(); err != nil {
		t.Fatalf("Invalidate on memory store returned error: %v", err)
	}
}

func TestStorePutSurvivesUnwritableBackend(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	// The parent of the snapshot is a regular file, so every save fails.
	store := New[point](NewJSONFile(filepath.Join(blocker, "cache.json")), nil)
	store.Put("Cairo", point{Latitude: 30.04, Longitude: 31.24})

	if _, ok := store.Get("Cairo"); !ok {
		t.Fatal("expected entry kept in memory when persistence fails")
	}
}

func TestOpenBackend(t *testing.T) {
	dir := t.TempDir()
	if b, err := OpenBackend("JSON", filepath.Join(dir, "a.json")); err != nil {
		t.Fatalf("json backend: %v", err)
	} else if _, ok := b.(*JSONFile); !ok {
		t.Fatalf("expected *JSONFile, got %T", b)
	}
	if b, err := OpenBackend("sqlite", filepath.Join(dir, "a.db")); err != nil {
		t.Fatalf("sqlite backend: %v", err)
	} else if _, ok := b.(*SQLite); !ok {
		t.Fatalf("expected *SQLite, got %T", b)
	}
	if _, err := OpenBackend("redis", "x"); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestJSONFileRemoveKeepsLockFile(t *testing.T) {
	backend := NewJSONFile(filepath.Join(t.TempDir(), "geo.json"))
	store := New[point](backend, nil)
	store.Put("Oslo", point{Latitude: 59.9, Longitude: 10.7})

	held := flock.New(backend.lockPath())
	if err := held.Lock(); err != nil {
		t.Fatalf("lock before invalidate: %v", err)
	}
	if err := held.Unlock(); err != nil {
		t.Fatalf("unlock: %v", err)
	}

	if err := store.Invalidate(); err != nil {
		t.Fatalf("Invalidate returned error: %v", err)
	}
	if _, err := os.Stat(backend.lockPath()); err != nil {
		t.Fatalf("expected lock file to survive invalidation: %v", err)
	}

	if err := held.Lock(); err != nil {
		t.Fatalf("relock: %v", err)
	}
	defer func() { _ = held.Unlock() }()
	other := flock.New(backend.lockPath())
	locked, err := other.TryLock()
	if err != nil {
		t.Fatalf("TryLock returned error: %v", err)
	}
	if locked {
		_ = other.Unlock()
		t.Fatal("expected a second lock on the surviving lock file to be refused")
	}
}
