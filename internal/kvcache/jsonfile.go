package kvcache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// JSONFile stores the snapshot as a single indented JSON object.
type JSONFile struct {
	path string
}

// NewJSONFile returns a backend writing to path. The file is created on first Save.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// Path returns the snapshot file location.
func (j *JSONFile) Path() string {
	return j.path
}

// Load reads the snapshot under a shared lock.
func (j *JSONFile) Load() (Snapshot, error) {
	if _, err := os.Stat(filepath.Dir(j.path)); errors.Is(err, fs.ErrNotExist) {
		return Snapshot{}, nil
	}

	lock := flock.New(j.lockPath())
	if err := lock.RLock(); err != nil {
		return nil, fmt.Errorf("lock cache file: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	data, err := os.ReadFile(j.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Snapshot{}, nil
		}
		return nil, fmt.Errorf("read cache file: %w", err)
	}
	if len(data) == 0 {
		return Snapshot{}, nil
	}

	var entries Snapshot
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse cache file: %w", err)
	}
	if entries == nil {
		entries = Snapshot{}
	}
	return entries, nil
}

// Save writes the snapshot atomically via a temp file under an exclusive lock.
func (j *JSONFile) Save(entries Snapshot) error {
	if entries == nil {
		entries = Snapshot{}
	}
	// encoding/json sorts map keys, so output is deterministic.
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(j.path), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	lock := flock.New(j.lockPath())
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock cache file: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	tmpPath := j.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, j.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Remove deletes the snapshot file under the exclusive lock. The lock file
// stays so every process keeps locking the same inode.
func (j *JSONFile) Remove() error {
	if _, err := os.Stat(j.path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	lock := flock.New(j.lockPath())
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock cache file: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	if err := os.Remove(j.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove cache file: %w", err)
	}
	return nil
}

func (j *JSONFile) lockPath() string {
	return j.path + ".lock"
}
