// SPDX-License-Identifier: MPL-2.0

package state

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

const (
	// FileName is the state file name inside the configuration directory.
	FileName = "state.toml"

	// SuppressStartDialogKey hides the confirmation shown before the Model
	// Editor starts.
	SuppressStartDialogKey = "suppress_start_dialog"
)

type (
	// Store reads and writes flags in a single TOML file. Every call goes to
	// disk, so separate processes observe each other's writes.
	Store struct {
		path string
		mu   sync.Mutex
	}

	document struct {
		Flags map[string]bool `toml:"flags"`
	}
)

// NewStore returns a Store backed by path. The file is created on the first
// write.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Bool returns the value of key, false when it was never set.
func (s *Store) Bool(key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return false, err
	}
	return doc.Flags[key], nil
}

// SetBool stores value under key. Setting false removes the key.
func (s *Store) SetBool(key string, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if value {
		if doc.Flags == nil {
			doc.Flags = make(map[string]bool)
		}
		doc.Flags[key] = true
	} else {
		delete(doc.Flags, key)
	}
	return s.save(doc)
}

func (s *Store) load() (document, error) {
	var doc document
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return doc, fmt.Errorf("read state file: %w", err)
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("parse state file %s: %w", s.path, err)
	}
	return doc, nil
}

// save writes through a temporary file so a crash never leaves a truncated
// state file behind.
func (s *Store) save(doc document) error {
	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".state-*.toml")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}
