package record

import (
	"strings"

	"github.com/julianstephens/daybook/internal/schema"
)

// Record is the flat per-date diary entry: field identifier to value, with
// every value held in its string form. Typing lives in the schema registry,
// not in the storage encoding. The "date" key always equals the store key
// for any record that exists in the store.
type Record map[string]string

// New returns an empty record.
func New() Record {
	return make(Record)
}

// Clone returns an independent copy of r.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Date returns the record's date key.
func (r Record) Date() string {
	return r[schema.DateField]
}

// Has reports whether the field has ever been set on this record,
// distinguishing "never set" from "explicitly cleared to empty".
func (r Record) Has(id string) bool {
	_, ok := r[id]
	return ok
}

// ApplyDefaults fills every field with a configured default that is absent
// from r. Values already present are never overwritten, including explicit
// empty strings: a user-cleared field stays cleared.
func ApplyDefaults(reg *schema.Registry, r Record) {
	for id, def := range reg.Defaults() {
		if _, ok := r[id]; !ok {
			r[id] = def
		}
	}
}

// Completeness reports, per section, whether any of its configured fields is
// empty (after trimming) on r. A field absent from r counts as empty. A
// section with no configured fields always reports false.
func Completeness(reg *schema.Registry, r Record) map[schema.Section]bool {
	out := make(map[schema.Section]bool, len(schema.Sections()))
	for _, sec := range schema.Sections() {
		hasEmpty := false
		for _, f := range reg.SectionFields(sec) {
			if strings.TrimSpace(r[f.ID]) == "" {
				hasEmpty = true
				break
			}
		}
		out[sec] = hasEmpty
	}
	return out
}
