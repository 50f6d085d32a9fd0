package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"github.com/julianstephens/daybook/internal/record"
	"github.com/julianstephens/daybook/internal/schema"
)

const (
	diskvRecordPrefix  = "formData/"
	diskvSuggestPrefix = "suggestions/"
	diskvCacheSizeMax  = 1024 * 1024 // 1MB
)

// DiskvStore keeps one file per record under a base directory: records at
// formData/<date>, suggestion groups at suggestions/<group>.
type DiskvStore struct {
	basePath string
	d        *diskv.Diskv
	guard    *fileGuard
}

func NewDiskvStore(basePath string) *DiskvStore {
	return &DiskvStore{basePath: basePath}
}

func (s *DiskvStore) Init() error {
	if err := os.MkdirAll(s.basePath, 0700); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}
	return s.Load()
}

func (s *DiskvStore) Load() error {
	if s.d != nil {
		return nil
	}

	if _, err := os.Stat(s.basePath); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'daybook init' first")
	}

	guard, err := acquireGuard(filepath.Join(s.basePath, "daybook"), 5*time.Second)
	if err != nil {
		return err
	}
	s.guard = guard

	s.d = diskv.New(diskv.Options{
		BasePath:          s.basePath,
		AdvancedTransform: diskvKeyToPath,
		InverseTransform:  diskvPathToKey,
		CacheSizeMax:      diskvCacheSizeMax,
	})
	return nil
}

func (s *DiskvStore) Close() error {
	s.d = nil
	if s.guard != nil {
		err := s.guard.release()
		s.guard = nil
		return err
	}
	return nil
}

func diskvKeyToPath(key string) *diskv.PathKey {
	parts := strings.Split(key, "/")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1] + ".json",
	}
}

func diskvPathToKey(pk *diskv.PathKey) string {
	name := strings.TrimSuffix(pk.FileName, ".json")
	return strings.Join(append(append([]string(nil), pk.Path...), name), "/")
}

func (s *DiskvStore) GetRecord(date string) (record.Record, error) {
	if s.d == nil {
		return nil, ErrNotLoaded
	}

	data, err := s.d.Read(diskvRecordPrefix + date)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoRecord, date)
		}
		return nil, fmt.Errorf("failed to read record %s: %w", date, err)
	}

	var rec record.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w (%s): %v", ErrCorruptRecord, date, err)
	}
	return rec, nil
}

func (s *DiskvStore) PutRecord(date string, rec record.Record) error {
	if s.d == nil {
		return ErrNotLoaded
	}

	stored := rec.Clone()
	stored[schema.DateField] = date
	data, err := json.Marshal(stored)
	if err != nil {
		return &WriteError{Op: "put", Key: date, Err: err}
	}
	if err := s.d.Write(diskvRecordPrefix+date, data); err != nil {
		return &WriteError{Op: "put", Key: date, Err: err}
	}
	return nil
}

func (s *DiskvStore) DeleteRecord(date string) error {
	if s.d == nil {
		return ErrNotLoaded
	}

	key := diskvRecordPrefix + date
	if !s.d.Has(key) {
		return fmt.Errorf("%w: %s", ErrNoRecord, date)
	}
	if err := s.d.Erase(key); err != nil {
		return &WriteError{Op: "delete", Key: date, Err: err}
	}
	return nil
}

func (s *DiskvStore) ListDates() ([]string, error) {
	if s.d == nil {
		return nil, ErrNotLoaded
	}

	var dates []string
	for key := range s.d.Keys(nil) {
		if strings.HasPrefix(key, diskvRecordPrefix) {
			dates = append(dates, strings.TrimPrefix(key, diskvRecordPrefix))
		}
	}
	SortDatesDescending(dates)
	return dates, nil
}

func (s *DiskvStore) GetSuggestions(group string) (map[string][]string, error) {
	if s.d == nil {
		return nil, ErrNotLoaded
	}

	data, err := s.d.Read(diskvSuggestPrefix + group)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string][]string{}, nil
		}
		return nil, fmt.Errorf("failed to read suggestions %s: %w", group, err)
	}

	out := make(map[string][]string)
	if err := json.Unmarshal(data, &out); err != nil {
		// A corrupt suggestion group reads as empty, not fatal.
		return map[string][]string{}, nil
	}
	return out, nil
}

func (s *DiskvStore) PutSuggestions(group string, values map[string][]string) error {
	if s.d == nil {
		return ErrNotLoaded
	}

	data, err := json.Marshal(values)
	if err != nil {
		return &WriteError{Op: "put suggestions", Key: group, Err: err}
	}
	if err := s.d.Write(diskvSuggestPrefix+group, data); err != nil {
		return &WriteError{Op: "put suggestions", Key: group, Err: err}
	}
	return nil
}

func (s *DiskvStore) GetConfigPath() string {
	return s.basePath
}
