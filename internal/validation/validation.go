package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/daybook/internal/record"
	"github.com/julianstephens/daybook/internal/schema"
	"github.com/julianstephens/daybook/internal/storage"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictInvalidDateKey ConflictType = "invalid_date_key"
	ConflictDateMismatch   ConflictType = "date_mismatch"
	ConflictInvalidNumber  ConflictType = "invalid_number"
	ConflictUnknownField   ConflictType = "unknown_field"
	ConflictCorruptRecord  ConflictType = "corrupt_record"
)

// Conflict represents a detected problem in stored data
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD store key (if applicable)
	Fields      []string // Field identifiers involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator checks stored records against the field registry. Conflicts
// are reported, never fatal: a broken record still loads as defaults.
type Validator struct {
	reg *schema.Registry
}

// New creates a new Validator
func New(reg *schema.Registry) *Validator {
	return &Validator{reg: reg}
}

// ValidateRecord checks one record under its store key.
func (v *Validator) ValidateRecord(key string, rec record.Record) []Conflict {
	var conflicts []Conflict

	if !storage.ValidDateKey(key) {
		conflicts = append(conflicts, Conflict{
			Type:        ConflictInvalidDateKey,
			Description: fmt.Sprintf("Store key %q is not a zero-padded ISO date", key),
			Date:        key,
		})
	}

	if d := rec.Date(); d != key {
		conflicts = append(conflicts, Conflict{
			Type:        ConflictDateMismatch,
			Description: fmt.Sprintf("Record under key %s carries date %q", key, d),
			Date:        key,
			Fields:      []string{schema.DateField},
		})
	}

	for id, value := range rec {
		if id == schema.DateField {
			continue
		}
		f, ok := v.reg.Lookup(id)
		if !ok {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictUnknownField,
				Description: fmt.Sprintf("Record %s has unknown field identifier %q", key, id),
				Date:        key,
				Fields:      []string{id},
			})
			continue
		}

		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			// Empty is a valid user-cleared value for every type.
			continue
		}

		var parseErr error
		switch f.Type {
		case schema.TypeFloat:
			_, parseErr = strconv.ParseFloat(trimmed, 64)
		case schema.TypeInt, schema.TypeScale:
			_, parseErr = strconv.ParseInt(trimmed, 10, 64)
		case schema.TypeBool:
			_, parseErr = strconv.ParseBool(trimmed)
		}
		if parseErr != nil {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictInvalidNumber,
				Description: fmt.Sprintf("Record %s field %s: %q does not parse as %s", key, id, value, f.Type),
				Date:        key,
				Fields:      []string{id},
			})
		}
	}

	return conflicts
}

// ValidateStore scans every stored record.
func (v *Validator) ValidateStore(store storage.Provider) (ValidationResult, error) {
	result := ValidationResult{Conflicts: []Conflict{}}

	dates, err := store.ListDates()
	if err != nil {
		return result, err
	}

	for _, date := range dates {
		rec, err := store.GetRecord(date)
		if err != nil {
			if errors.Is(err, storage.ErrCorruptRecord) {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictCorruptRecord,
					Description: fmt.Sprintf("Record %s failed to parse and reads as empty", date),
					Date:        date,
				})
				continue
			}
			return result, err
		}
		result.Conflicts = append(result.Conflicts, v.ValidateRecord(date, rec)...)
	}

	return result, nil
}
