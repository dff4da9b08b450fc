package kvcache

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Snapshot is the serialized form of a store: key to encoded value.
type Snapshot map[string]json.RawMessage

// Backend reads and replaces a persisted snapshot.
type Backend interface {
	// Load returns the persisted snapshot. A missing file yields an empty snapshot.
	Load() (Snapshot, error)
	// Save replaces the persisted snapshot with entries.
	Save(entries Snapshot) error
	// Remove deletes the persisted snapshot. Removing a missing file is not an error.
	Remove() error
	// Path reports where the snapshot lives.
	Path() string
}

// Backend kinds accepted by OpenBackend.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// OpenBackend returns the backend named by kind, rooted at path.
func OpenBackend(kind, path string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", BackendJSON:
		return NewJSONFile(path), nil
	case BackendSQLite:
		return NewSQLite(path), nil
	default:
		return nil, fmt.Errorf("unsupported cache backend %q", kind)
	}
}
