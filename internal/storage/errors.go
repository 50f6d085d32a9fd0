package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrNoRecord is returned by GetRecord/DeleteRecord when the store holds
	// nothing for the requested date key.
	ErrNoRecord = errors.New("no record for date")

	// ErrCorruptRecord is returned when a stored value fails to parse as a
	// record. Callers treat it the same as ErrNoRecord (reconciliation falls
	// back to defaults) but should warn the user.
	ErrCorruptRecord = errors.New("stored record is corrupt")

	// ErrNotLoaded is returned when an operation runs before Load.
	ErrNotLoaded = errors.New("storage not loaded")
)

// WriteError wraps a rejected write from the underlying medium (quota, I/O,
// constraint). The operation is treated as not-committed; records under
// other keys are unaffected.
type WriteError struct {
	Op  string
	Key string
	Err error
}

func (e *WriteError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("storage write failed (%s %s): %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("storage write failed (%s): %v", e.Op, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
