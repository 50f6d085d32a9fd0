package schema

import "fmt"

// Registry holds the static field configuration. Construct with Default();
// tests may build smaller registries with New.
type Registry struct {
	fields []Field
	byID   map[string]Field
}

// New builds a registry from an explicit field list. Duplicate identifiers
// and use of the reserved date identifier are configuration errors.
func New(fields []Field) (*Registry, error) {
	byID := make(map[string]Field, len(fields))
	for _, f := range fields {
		if f.ID == DateField {
			return nil, fmt.Errorf("field identifier %q is reserved", DateField)
		}
		if _, ok := byID[f.ID]; ok {
			return nil, fmt.Errorf("duplicate field identifier: %s", f.ID)
		}
		byID[f.ID] = f
	}
	return &Registry{fields: fields, byID: byID}, nil
}

// Fields returns every configured field in declaration order.
func (r *Registry) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// FieldIDs returns the set of configured field identifiers in declaration order.
func (r *Registry) FieldIDs() []string {
	ids := make([]string, 0, len(r.fields))
	for _, f := range r.fields {
		ids = append(ids, f.ID)
	}
	return ids
}

// Lookup returns the field configuration for id.
func (r *Registry) Lookup(id string) (Field, bool) {
	f, ok := r.byID[id]
	return f, ok
}

// SectionOf returns the section a field identifier belongs to.
func (r *Registry) SectionOf(id string) (Section, bool) {
	f, ok := r.byID[id]
	return f.Section, ok
}

// SectionFields returns the fields of one section in declaration order.
func (r *Registry) SectionFields(sec Section) []Field {
	var out []Field
	for _, f := range r.fields {
		if f.Section == sec {
			out = append(out, f)
		}
	}
	return out
}

// Defaults returns the default snapshot: field identifier to baseline value,
// for every field with a configured default.
func (r *Registry) Defaults() map[string]string {
	out := make(map[string]string)
	for _, f := range r.fields {
		if f.Default != "" {
			out[f.ID] = f.Default
		}
	}
	return out
}

// SuggestFields returns the fields tracked by the named suggestion group.
func (r *Registry) SuggestFields(group string) []Field {
	var out []Field
	for _, f := range r.fields {
		if f.SuggestGroup == group {
			out = append(out, f)
		}
	}
	return out
}

// SuggestGroups returns the fixed set of suggestion group keys in use.
func (r *Registry) SuggestGroups() []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range r.fields {
		if f.SuggestGroup != "" && !seen[f.SuggestGroup] {
			seen[f.SuggestGroup] = true
			out = append(out, f.SuggestGroup)
		}
	}
	return out
}
