// Package store provides a small JSON document store backed by the filesystem.
// Each named slot maps to one file under the data directory. Reads of missing
// or corrupt slots report a cold miss instead of failing, so callers always
// start from an empty state rather than crashing on bad on-disk data.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sync"
)

var slotName = regexp.MustCompile(`^[a-z0-9_-]+$`)

// FileStore persists JSON documents in per-slot files.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates the data directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("store: empty data dir")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Save marshals v and writes it to the slot atomically (write to temp, rename).
func (s *FileStore) Save(slot string, v any) error {
	if !slotName.MatchString(slot) {
		return fmt.Errorf("store: invalid slot name %q", slot)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: marshal %s: %w", slot, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(slot)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("store: write %s: %w", slot, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("store: rename %s: %w", slot, err)
	}
	return nil
}

// Load reads a slot into out. Returns false on a missing or corrupt slot;
// a corrupt slot is removed so the next Save starts clean.
func (s *FileStore) Load(slot string, out any) (bool, error) {
	if !slotName.MatchString(slot) {
		return false, fmt.Errorf("store: invalid slot name %q", slot)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(slot)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("store: read %s: %w", slot, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		_ = os.Remove(path)
		return false, nil
	}
	return true, nil
}

// Delete removes a slot. Missing slots are not an error.
func (s *FileStore) Delete(slot string) error {
	if !slotName.MatchString(slot) {
		return fmt.Errorf("store: invalid slot name %q", slot)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(slot))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("store: delete %s: %w", slot, err)
	}
	return nil
}

func (s *FileStore) path(slot string) string {
	return filepath.Join(s.dir, slot+".json")
}
