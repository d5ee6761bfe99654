package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type fileStore struct {
	Version     int                        `json:"version"`
	Collections map[string]json.RawMessage `json:"collections"`
}

// JSONStore keeps the whole namespace in a single indented JSON file.
type JSONStore struct {
	path  string
	store *fileStore
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &fileStore{
		Version:     1,
		Collections: make(map[string]json.RawMessage),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'cripes init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &fileStore{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.store.Collections == nil {
		s.store.Collections = make(map[string]json.RawMessage)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetRaw(key string) (json.RawMessage, bool, error) {
	if s.store == nil {
		return nil, false, fmt.Errorf("storage not loaded")
	}

	raw, ok := s.store.Collections[key]
	if !ok {
		return nil, false, nil
	}
	return raw, true, nil
}

func (s *JSONStore) SetRaw(key string, data json.RawMessage) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Collections[key] = data
	return s.save()
}

func (s *JSONStore) ClearAll() error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Collections = make(map[string]json.RawMessage)
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
