package storage

import "github.com/julianstephens/daybook/internal/record"

// Provider is the date-keyed persistence contract. All operations are
// synchronous; a single process is assumed to own the store exclusively.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Records
	GetRecord(date string) (record.Record, error)
	PutRecord(date string, rec record.Record) error
	DeleteRecord(date string) error
	// ListDates returns every stored date key in descending chronological
	// order (compared as calendar dates, not byte strings).
	ListDates() ([]string, error)

	// Suggestions
	GetSuggestions(group string) (map[string][]string, error)
	PutSuggestions(group string, values map[string][]string) error

	// Utils
	GetConfigPath() string
}

// ForPath picks a backend from the storage path: .json files use the JSON
// store, .db files use SQLite, and anything else (a directory path) uses
// the diskv store.
func ForPath(path string) Provider {
	switch {
	case hasExt(path, ".json"):
		return NewJSONStore(path)
	case hasExt(path, ".db"):
		return NewSQLiteStore(path)
	default:
		return NewDiskvStore(path)
	}
}

func hasExt(path, ext string) bool {
	return len(path) > len(ext) && path[len(path)-len(ext):] == ext
}
