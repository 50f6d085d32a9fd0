package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/daybook/internal/record"
	"github.com/julianstephens/daybook/internal/schema"
)

// Store is the on-disk shape of the JSON backend. FormData mirrors the
// key-value layout the form persists to: date key to flat record.
// Suggestions is keyed by suggestion group, then field identifier.
type Store struct {
	Version     int                            `json:"version"`
	FormData    map[string]record.Record       `json:"formData"`
	Suggestions map[string]map[string][]string `json:"suggestions"`
}

type JSONStore struct {
	path  string
	store *Store
	guard *fileGuard
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

	guard, err := acquireGuard(s.path, 5*time.Second)
	if err != nil {
		return err
	}
	s.guard = guard

	s.store = &Store{
		Version:     1,
		FormData:    make(map[string]record.Record),
		Suggestions: make(map[string]map[string][]string),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	if s.store != nil {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'daybook init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	if s.guard == nil {
		guard, err := acquireGuard(s.path, 5*time.Second)
		if err != nil {
			return err
		}
		s.guard = guard
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		s.store = nil
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure maps are initialized
	if s.store.FormData == nil {
		s.store.FormData = make(map[string]record.Record)
	}
	if s.store.Suggestions == nil {
		s.store.Suggestions = make(map[string]map[string][]string)
	}

	return nil
}

func (s *JSONStore) Close() error {
	if s.guard != nil {
		err := s.guard.release()
		s.guard = nil
		return err
	}
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

func (s *JSONStore) GetRecord(date string) (record.Record, error) {
	if s.store == nil {
		return nil, ErrNotLoaded
	}

	rec, ok := s.store.FormData[date]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoRecord, date)
	}

	return rec.Clone(), nil
}

func (s *JSONStore) PutRecord(date string, rec record.Record) error {
	if s.store == nil {
		return ErrNotLoaded
	}

	stored := rec.Clone()
	stored[schema.DateField] = date
	s.store.FormData[date] = stored
	if err := s.save(); err != nil {
		// Roll the in-memory map back so a failed write is not presented
		// as committed on the next read.
		delete(s.store.FormData, date)
		return &WriteError{Op: "put", Key: date, Err: err}
	}
	return nil
}

func (s *JSONStore) DeleteRecord(date string) error {
	if s.store == nil {
		return ErrNotLoaded
	}

	rec, ok := s.store.FormData[date]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoRecord, date)
	}

	delete(s.store.FormData, date)
	if err := s.save(); err != nil {
		s.store.FormData[date] = rec
		return &WriteError{Op: "delete", Key: date, Err: err}
	}
	return nil
}

func (s *JSONStore) ListDates() ([]string, error) {
	if s.store == nil {
		return nil, ErrNotLoaded
	}

	dates := make([]string, 0, len(s.store.FormData))
	for d := range s.store.FormData {
		dates = append(dates, d)
	}
	SortDatesDescending(dates)
	return dates, nil
}

func (s *JSONStore) GetSuggestions(group string) (map[string][]string, error) {
	if s.store == nil {
		return nil, ErrNotLoaded
	}

	values, ok := s.store.Suggestions[group]
	if !ok {
		return map[string][]string{}, nil
	}

	out := make(map[string][]string, len(values))
	for field, vs := range values {
		out[field] = append([]string(nil), vs...)
	}
	return out, nil
}

func (s *JSONStore) PutSuggestions(group string, values map[string][]string) error {
	if s.store == nil {
		return ErrNotLoaded
	}

	prev, had := s.store.Suggestions[group]
	s.store.Suggestions[group] = values
	if err := s.save(); err != nil {
		if had {
			s.store.Suggestions[group] = prev
		} else {
			delete(s.store.Suggestions, group)
		}
		return &WriteError{Op: "put suggestions", Key: group, Err: err}
	}
	return nil
}

// GetConfigPath returns the path to the underlying storage file.
//
// Concurrency note:
//   - JSONStore is not safe for concurrent use by multiple goroutines
//     without external synchronization.
//   - Cross-process access is guarded by a flock on <path>.lock; a second
//     daybook process fails to load rather than corrupting data.
func (s *JSONStore) GetConfigPath() string {
	return s.path
}
