package schema

// Section is one of the five logical groupings a field belongs to.
type Section string

const (
	SectionBasic   Section = "basic"
	SectionBody    Section = "body"
	SectionMind    Section = "mind"
	SectionDiet    Section = "diet"
	SectionSummary Section = "summary"
)

// Sections lists every section in display order.
func Sections() []Section {
	return []Section{SectionBasic, SectionBody, SectionMind, SectionDiet, SectionSummary}
}

type FieldType string

const (
	TypeText  FieldType = "text"
	TypeFloat FieldType = "float"
	TypeInt   FieldType = "int"
	TypeBool  FieldType = "bool"
	// TypeScale is an integer slider value, 0-10.
	TypeScale FieldType = "scale"
)

// FieldID is the reserved identifier of the date key. It lives outside
// every section and is never subject to defaulting or completeness.
const DateField = "date"

// Field describes one entry in the registry. The registry is the single
// authority on typing, sectioning, defaults, export mapping, and
// suggestion tracking; nothing else in the codebase hard-codes a field.
type Field struct {
	ID      string
	Type    FieldType
	Section Section
	// Default is the baseline value applied when a date has no stored
	// counterpart for this field. Empty means no configured default.
	Default string
	// ExportGroup / ExportKey place the field in the nested export
	// document. ExportGroup "" means the field maps to a top-level key.
	ExportGroup string
	ExportKey   string
	// SuggestGroup names the suggestion group that tracks recent values
	// for this field. Empty means the field is not suggestion-tracked.
	SuggestGroup string
	Label        string
}
