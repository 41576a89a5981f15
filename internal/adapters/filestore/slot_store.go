// Package filestore persists session slots in a local JSON file.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/bookstore/bookstore-admin/internal/ports"
)

var _ ports.SlotStore = (*SlotStore)(nil)

const (
	fileMode = 0o600
	dirMode  = 0o700
)

// SlotStore keeps every slot in one JSON object on disk.
// Writes go to a temp file that is renamed over the target.
type SlotStore struct {
	mu   sync.Mutex
	path string
}

// NewSlotStore returns a store backed by path. The file is created on first write.
func NewSlotStore(path string) (*SlotStore, error) {
	if path == "" {
		return nil, errors.New("slot file path is required")
	}
	return &SlotStore{path: path}, nil
}

// Path returns the backing file.
func (s *SlotStore) Path() string { return s.path }

func (s *SlotStore) Load(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slots, err := s.read()
	if err != nil {
		return "", false, err
	}
	v, ok := slots[key]
	return v, ok, nil
}

func (s *SlotStore) Save(_ context.Context, key, value string) error {
	if key == "" {
		return errors.New("slot key cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	slots, err := s.read()
	if err != nil {
		return err
	}
	slots[key] = value
	return s.write(slots)
}

// Delete removes keys. Missing keys are not an error; an empty file is removed.
func (s *SlotStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	slots, err := s.read()
	if err != nil {
		return err
	}
	changed := false
	for _, k := range keys {
		if _, ok := slots[k]; ok {
			delete(slots, k)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	if len(slots) == 0 {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove slot file: %w", err)
		}
		return nil
	}
	return s.write(slots)
}

// read returns the current slots. A missing file is empty; an unreadable one is an error.
func (s *SlotStore) read() (map[string]string, error) {
	slots := map[string]string{}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return slots, nil
		}
		return nil, fmt.Errorf("read slot file: %w", err)
	}
	if len(data) == 0 {
		return slots, nil
	}
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, fmt.Errorf("decode slot file %s: %w", s.path, err)
	}
	return slots, nil
}

func (s *SlotStore) write(slots map[string]string) error {
	data, err := json.MarshalIndent(slots, "", "  ")
	if err != nil {
		return fmt.Errorf("encode slots: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("create slot dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".slots-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp slot file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temp slot file: %w", err)
	}
	if err := tmp.Chmod(fileMode); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("chmod temp slot file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp slot file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace slot file: %w", err)
	}
	return nil
}
