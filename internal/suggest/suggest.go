// Package suggest maintains the per-field recent-value lists that back
// entry autocompletion. Suggestions accumulate on every save and survive
// record clears and deletes; only wiping the whole store removes them.
package suggest

import (
	"strings"

	"github.com/julianstephens/daybook/internal/record"
	"github.com/julianstephens/daybook/internal/schema"
	"github.com/julianstephens/daybook/internal/storage"
)

// MaxPerField caps how many recent values are kept per field.
const MaxPerField = 7

// Remember pushes a value to the front of a field's suggestion list,
// dropping any existing case-insensitive duplicate and trimming to
// MaxPerField. Empty (after trimming) values are ignored.
func Remember(values []string, value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return values
	}

	out := make([]string, 0, len(values)+1)
	out = append(out, value)
	for _, v := range values {
		if strings.EqualFold(v, value) {
			continue
		}
		out = append(out, v)
	}
	if len(out) > MaxPerField {
		out = out[:MaxPerField]
	}
	return out
}

// Capture records every tracked, non-empty field value of rec into its
// suggestion group on the store. Called on every commit; a failure on one
// group does not block the others, and the first error is returned.
func Capture(store storage.Provider, reg *schema.Registry, rec record.Record) error {
	var firstErr error
	for _, group := range reg.SuggestGroups() {
		fields := reg.SuggestFields(group)

		changed := false
		values, err := store.GetSuggestions(group)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		for _, f := range fields {
			v := strings.TrimSpace(rec[f.ID])
			if v == "" {
				continue
			}
			updated := Remember(values[f.ID], v)
			if len(updated) != len(values[f.ID]) || updated[0] != firstOf(values[f.ID]) {
				values[f.ID] = updated
				changed = true
			}
		}

		if !changed {
			continue
		}
		if err := store.PutSuggestions(group, values); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// For returns the stored suggestions for one field, most recent first.
func For(store storage.Provider, reg *schema.Registry, fieldID string) ([]string, error) {
	f, ok := reg.Lookup(fieldID)
	if !ok || f.SuggestGroup == "" {
		return nil, nil
	}
	values, err := store.GetSuggestions(f.SuggestGroup)
	if err != nil {
		return nil, err
	}
	return values[fieldID], nil
}

func firstOf(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
