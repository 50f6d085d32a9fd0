package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/daybook/internal/record"
	"github.com/julianstephens/daybook/internal/schema"
	_ "modernc.org/sqlite"
)

const sqliteSchemaVersion = 1

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := s.open()
	if err != nil {
		return err
	}
	s.db = db

	if err := s.migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'daybook init' first")
	}

	db, err := s.open()
	if err != nil {
		return err
	}
	s.db = db

	return s.migrate()
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *SQLiteStore) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to exec %q: %w", pragma, err)
		}
	}
	return db, nil
}

func (s *SQLiteStore) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read user_version: %w", err)
	}
	if version >= sqliteSchemaVersion {
		return nil
	}

	const ddl = `
	CREATE TABLE IF NOT EXISTS records (
		date  TEXT PRIMARY KEY,
		data  TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS suggestions (
		grp     TEXT NOT NULL,
		field   TEXT NOT NULL,
		values_ TEXT NOT NULL,
		PRIMARY KEY (grp, field)
	);`
	if _, err := s.db.Exec(ddl); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	_, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", sqliteSchemaVersion))
	return err
}

func (s *SQLiteStore) GetRecord(date string) (record.Record, error) {
	if s.db == nil {
		return nil, ErrNotLoaded
	}

	var data string
	err := s.db.QueryRow("SELECT data FROM records WHERE date = ?", date).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNoRecord, date)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read record %s: %w", date, err)
	}

	var rec record.Record
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("%w (%s): %v", ErrCorruptRecord, date, err)
	}
	return rec, nil
}

func (s *SQLiteStore) PutRecord(date string, rec record.Record) error {
	if s.db == nil {
		return ErrNotLoaded
	}

	stored := rec.Clone()
	stored[schema.DateField] = date
	data, err := json.Marshal(stored)
	if err != nil {
		return &WriteError{Op: "put", Key: date, Err: err}
	}

	_, err = s.db.Exec(
		"INSERT INTO records (date, data) VALUES (?, ?) ON CONFLICT(date) DO UPDATE SET data = excluded.data",
		date, string(data),
	)
	if err != nil {
		return &WriteError{Op: "put", Key: date, Err: err}
	}
	return nil
}

func (s *SQLiteStore) DeleteRecord(date string) error {
	if s.db == nil {
		return ErrNotLoaded
	}

	res, err := s.db.Exec("DELETE FROM records WHERE date = ?", date)
	if err != nil {
		return &WriteError{Op: "delete", Key: date, Err: err}
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNoRecord, date)
	}
	return nil
}

func (s *SQLiteStore) ListDates() ([]string, error) {
	if s.db == nil {
		return nil, ErrNotLoaded
	}

	rows, err := s.db.Query("SELECT date FROM records")
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan date: %w", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	SortDatesDescending(dates)
	return dates, nil
}

func (s *SQLiteStore) GetSuggestions(group string) (map[string][]string, error) {
	if s.db == nil {
		return nil, ErrNotLoaded
	}

	rows, err := s.db.Query("SELECT field, values_ FROM suggestions WHERE grp = ?", group)
	if err != nil {
		return nil, fmt.Errorf("failed to read suggestions: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var field, data string
		if err := rows.Scan(&field, &data); err != nil {
			return nil, fmt.Errorf("failed to scan suggestion row: %w", err)
		}
		var values []string
		if err := json.Unmarshal([]byte(data), &values); err != nil {
			// A corrupt suggestion list is dropped, not fatal.
			continue
		}
		out[field] = values
	}
	return out, rows.Err()
}

func (s *SQLiteStore) PutSuggestions(group string, values map[string][]string) error {
	if s.db == nil {
		return ErrNotLoaded
	}

	tx, err := s.db.Begin()
	if err != nil {
		return &WriteError{Op: "put suggestions", Key: group, Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM suggestions WHERE grp = ?", group); err != nil {
		return &WriteError{Op: "put suggestions", Key: group, Err: err}
	}
	for field, vs := range values {
		data, err := json.Marshal(vs)
		if err != nil {
			return &WriteError{Op: "put suggestions", Key: group, Err: err}
		}
		if _, err := tx.Exec(
			"INSERT INTO suggestions (grp, field, values_) VALUES (?, ?, ?)",
			group, field, string(data),
		); err != nil {
			return &WriteError{Op: "put suggestions", Key: group, Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &WriteError{Op: "put suggestions", Key: group, Err: err}
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
