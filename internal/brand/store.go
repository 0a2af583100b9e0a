// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package brand

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

// StorageKey is the fixed key the guidelines document is persisted under.
const StorageKey = "omu-brand-guidelines"

// ErrNotFound is returned by a Persistence backend when nothing has been
// saved yet. The Store substitutes the built-in defaults.
var ErrNotFound = errors.New("brand: no saved guidelines")

// Persistence stores the serialized guidelines document under StorageKey.
type Persistence interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// Store owns the current brand guidelines. Reads return copies and writes
// replace the whole structure, so a half-finished edit (e.g. a logo upload
// completing after a color change) can never produce a partially updated
// document. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	current Guidelines
	persist Persistence
}

// NewStore creates a guidelines store and loads the persisted document,
// falling back to Default when nothing was saved. A corrupt persisted
// document is an error: silently discarding user branding is worse than
// failing startup.
func NewStore(p Persistence) (*Store, error) {
	s := &Store{persist: p, current: Default()}

	data, err := p.Load()
	if errors.Is(err, ErrNotFound) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("brand load: %w", err)
	}
	var g Guidelines
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("brand decode: %w", err)
	}
	s.current = g
	return s, nil
}

// Get returns the current guidelines by value.
func (s *Store) Get() Guidelines {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set replaces the guidelines wholesale and persists the new document.
// The in-memory value is only swapped after a successful save, so a failed
// save leaves the store consistent with the backend.
func (s *Store) Set(next Guidelines) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("brand encode: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist.Save(data); err != nil {
		return fmt.Errorf("brand save: %w", err)
	}
	s.current = next
	return nil
}

// KV is the slice of the settings store the guidelines need: a string value
// under a fixed key. Satisfied by store.SettingStore.
type KV interface {
	Get(key, fallback string) (string, error)
	Set(key, value string) error
}

// SettingsPersistence persists guidelines as a row in the settings table.
type SettingsPersistence struct {
	kv KV
}

// NewSettingsPersistence wraps a settings store as a Persistence backend.
func NewSettingsPersistence(kv KV) *SettingsPersistence {
	return &SettingsPersistence{kv: kv}
}

func (p *SettingsPersistence) Load() ([]byte, error) {
	val, err := p.kv.Get(StorageKey, "")
	if err != nil {
		return nil, err
	}
	if val == "" {
		return nil, ErrNotFound
	}
	return []byte(val), nil
}

func (p *SettingsPersistence) Save(data []byte) error {
	return p.kv.Set(StorageKey, string(data))
}

// FilePersistence persists guidelines as a JSON file on disk. Used by
// deployments running without PostgreSQL.
type FilePersistence struct {
	path string
}

// NewFilePersistence creates a file-backed Persistence at the given path.
func NewFilePersistence(path string) *FilePersistence {
	return &FilePersistence{path: path}
}

func (p *FilePersistence) Load() ([]byte, error) {
	data, err := os.ReadFile(p.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (p *FilePersistence) Save(data []byte) error {
	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, p.path)
}
