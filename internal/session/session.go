// Package session holds the reconciliation engine: the live in-memory
// record for one date, merged from the default snapshot and the stored
// overlay, plus the derived per-section completeness state.
package session

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/daybook/internal/record"
	"github.com/julianstephens/daybook/internal/schema"
	"github.com/julianstephens/daybook/internal/storage"
	"github.com/julianstephens/daybook/internal/suggest"
)

// MissingDateError blocks a commit attempted without a date key. The caller
// must surface it and keep the save blocked until a date is supplied.
type MissingDateError struct{}

func (e *MissingDateError) Error() string {
	return "record has no date key; set a date before saving"
}

// Session is the explicit context object for one editing session. All UI
// adapters (CLI, TUI) operate through it; it never observes the
// environment directly; lifecycle hooks are called by a thin adapter.
type Session struct {
	store storage.Provider
	reg   *schema.Registry

	date         string
	rec          record.Record
	completeness map[schema.Section]bool
	dirty        bool

	// warnf receives non-fatal conditions (corrupt stored records,
	// suggestion write failures). Defaults to stderr.
	warnf func(format string, args ...any)
}

func New(store storage.Provider, reg *schema.Registry) *Session {
	return &Session{
		store: store,
		reg:   reg,
		warnf: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
		},
	}
}

// SetWarnFunc redirects non-fatal warnings, mainly for tests and the TUI.
func (s *Session) SetWarnFunc(f func(format string, args ...any)) {
	if f != nil {
		s.warnf = f
	}
}

// LoadEffective computes the effective record for a date without touching
// the session's own state: defaults first, then the date key, then every
// stored field overlaid, including explicit empty strings, which is what
// keeps a user-cleared field cleared instead of re-defaulted. A corrupt
// stored record reads as absent, with a warning.
func (s *Session) LoadEffective(date string) (record.Record, error) {
	return s.loadMerged(date, false)
}

func (s *Session) loadMerged(date string, reset bool) (record.Record, error) {
	rec := record.New()
	record.ApplyDefaults(s.reg, rec)
	rec[schema.DateField] = date

	if reset {
		// Explicit reset: the stored overlay is deliberately skipped.
		return rec, nil
	}

	stored, err := s.store.GetRecord(date)
	switch {
	case err == nil:
		for id, v := range stored {
			if id == schema.DateField {
				continue
			}
			rec[id] = v
		}
	case errors.Is(err, storage.ErrNoRecord):
		// Fresh date: defaults only.
	case errors.Is(err, storage.ErrCorruptRecord):
		s.warnf("stored record for %s could not be read and was ignored: %v", date, err)
	default:
		return nil, err
	}

	return rec, nil
}

// SwitchDate discards the entire previous in-memory record, then loads the
// effective record for the new date. Nothing survives the switch unless it
// comes back through defaults or the new date's stored overlay; an
// uncommitted edit on the outgoing date is dropped (the lifecycle hooks
// exist to flush it first when that is wanted).
func (s *Session) SwitchDate(date string) error {
	s.rec = nil
	s.completeness = nil
	s.dirty = false

	rec, err := s.loadMerged(date, false)
	if err != nil {
		return err
	}

	s.date = date
	s.rec = rec
	s.completeness = record.Completeness(s.reg, rec)
	return nil
}

// Date returns the session's current date key ("" before the first switch).
func (s *Session) Date() string {
	return s.date
}

// Record returns a copy of the current in-memory record. Mutation goes
// through SetField so completeness stays synchronized.
func (s *Session) Record() record.Record {
	if s.rec == nil {
		return record.New()
	}
	return s.rec.Clone()
}

// Field returns the current in-memory value for a field.
func (s *Session) Field(id string) string {
	if s.rec == nil {
		return ""
	}
	return s.rec[id]
}

// SetField mutates the in-memory record and recomputes completeness. Only
// registered identifiers are accepted; the date key changes via SwitchDate.
func (s *Session) SetField(id, value string) error {
	if s.rec == nil {
		return fmt.Errorf("no date loaded")
	}
	if id == schema.DateField {
		return fmt.Errorf("the date key cannot be edited; switch dates instead")
	}
	if _, ok := s.reg.Lookup(id); !ok {
		return fmt.Errorf("unknown field identifier: %s", id)
	}

	s.rec[id] = value
	s.completeness = record.Completeness(s.reg, s.rec)
	s.dirty = true
	return nil
}

// Completeness reports, per section, whether any field is still empty.
func (s *Session) Completeness() map[schema.Section]bool {
	out := make(map[schema.Section]bool, len(s.completeness))
	for k, v := range s.completeness {
		out[k] = v
	}
	return out
}

// Dirty reports whether the in-memory record has uncommitted edits.
func (s *Session) Dirty() bool {
	return s.dirty
}

// Commit validates and persists the in-memory record, then feeds the
// suggestion store. A suggestion write failure is warned about but does not
// un-commit the record.
func (s *Session) Commit() error {
	if s.rec == nil || s.rec.Date() == "" {
		return &MissingDateError{}
	}

	if err := s.store.PutRecord(s.rec.Date(), s.rec); err != nil {
		return err
	}
	s.dirty = false

	if err := suggest.Capture(s.store, s.reg, s.rec); err != nil {
		s.warnf("failed to record suggestions: %v", err)
	}
	return nil
}

// Clear deletes the stored record for the current date and rebuilds a
// fresh default-only record in memory. Suggestions are untouched.
func (s *Session) Clear() error {
	if s.date == "" {
		return fmt.Errorf("no date loaded")
	}

	if err := s.store.DeleteRecord(s.date); err != nil && !errors.Is(err, storage.ErrNoRecord) {
		return err
	}

	rec, err := s.loadMerged(s.date, true)
	if err != nil {
		return err
	}
	s.rec = rec
	s.completeness = record.Completeness(s.reg, rec)
	s.dirty = false
	return nil
}

// Reload re-runs reconciliation for the current date against the store,
// discarding in-memory edits. Used after a batch delete removed the open
// date so stale in-memory data is not presented as stored.
func (s *Session) Reload() error {
	if s.date == "" {
		return nil
	}
	return s.SwitchDate(s.date)
}

// OnFocusLost is the explicit lifecycle hook for blur-style triggers: flush
// a dirty record and report the outcome.
func (s *Session) OnFocusLost() error {
	if !s.dirty {
		return nil
	}
	return s.Commit()
}

// OnEnvironmentTeardown is the best-effort flush for visibility/teardown
// signals. Failures are warned about, never propagated; teardown is not a
// transaction.
func (s *Session) OnEnvironmentTeardown() {
	if !s.dirty {
		return
	}
	if err := s.Commit(); err != nil {
		s.warnf("failed to flush record for %s on teardown: %v", s.date, err)
	}
}
