// Package export maps flat records to and from the nested, versioned
// document shape used for file interchange.
package export

import (
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/daybook/internal/record"
	"github.com/julianstephens/daybook/internal/schema"
)

// Epoch is the fixed reference date for day_id computation. day_id is the
// inclusive day count starting at 1 on the epoch itself.
const Epoch = "2023-01-01"

const dateLayout = "2006-01-02"

// Document is the nested export shape. Group maps hold string, float64,
// int64, bool, or nil values; nil encodes a numeric field whose stored
// content did not parse.
type Document struct {
	Date                      string         `json:"date"`
	DayID                     *int64         `json:"day_id"`
	Environment               map[string]any `json:"environment"`
	BodyMeasurements          map[string]any `json:"body_measurements"`
	HealthAndFitness          map[string]any `json:"health_and_fitness"`
	MentalAndEmotionalHealth  map[string]any `json:"mental_and_emotional_health"`
	PersonalCare              map[string]any `json:"personal_care"`
	DietAndNutrition          map[string]any `json:"diet_and_nutrition"`
	ActivitiesAndProductivity map[string]any `json:"activities_and_productivity"`
	AdditionalNotes           map[string]any `json:"additional_notes"`
	DailyActivitySummary      *string        `json:"daily_activity_summary"`
}

// group returns the named section map, allocating it on first use. An
// unknown group name returns nil and the field is skipped.
func (d *Document) group(name string, create bool) map[string]any {
	var target *map[string]any
	switch name {
	case "environment":
		target = &d.Environment
	case "body_measurements":
		target = &d.BodyMeasurements
	case "health_and_fitness":
		target = &d.HealthAndFitness
	case "mental_and_emotional_health":
		target = &d.MentalAndEmotionalHealth
	case "personal_care":
		target = &d.PersonalCare
	case "diet_and_nutrition":
		target = &d.DietAndNutrition
	case "activities_and_productivity":
		target = &d.ActivitiesAndProductivity
	case "additional_notes":
		target = &d.AdditionalNotes
	default:
		return nil
	}
	if *target == nil && create {
		*target = make(map[string]any)
	}
	return *target
}

// DayID computes the ordinal day count since the epoch for a date key:
// 1 on the epoch itself, counting up. Dates before the epoch, and keys
// that fail to parse, yield nil.
func DayID(date string) *int64 {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil
	}
	epoch, _ := time.Parse(dateLayout, Epoch)
	days := int64(t.Sub(epoch).Hours()/24) + 1
	if days < 1 {
		return nil
	}
	return &days
}

// ToDocument derives the export document for one record. Section grouping
// and per-field numeric semantics come from the registry; a numeric field
// whose stored value does not parse exports as null rather than failing
// the whole document.
func ToDocument(reg *schema.Registry, rec record.Record) Document {
	doc := Document{
		Date:  rec.Date(),
		DayID: DayID(rec.Date()),
	}

	for _, f := range reg.Fields() {
		value := exportValue(f, rec[f.ID])

		if f.ExportGroup == "" {
			if f.ExportKey == "daily_activity_summary" {
				s, _ := value.(string)
				doc.DailyActivitySummary = &s
			}
			continue
		}

		if g := doc.group(f.ExportGroup, true); g != nil {
			g[f.ExportKey] = value
		}
	}

	return doc
}

// ToDocuments maps records independently through ToDocument, preserving order.
func ToDocuments(reg *schema.Registry, recs []record.Record) []Document {
	docs := make([]Document, 0, len(recs))
	for _, rec := range recs {
		docs = append(docs, ToDocument(reg, rec))
	}
	return docs
}

// ApplyDocument overlays a document onto rec using the inverse field
// mapping. The caller applies the default policy first: a section or key
// missing from the document leaves the record field untouched, so
// "untouched" means "left at default". Null values and unknown keys are
// ignored. The document's date wins over any date already on rec.
func ApplyDocument(reg *schema.Registry, doc Document, rec record.Record) {
	if doc.Date != "" {
		rec[schema.DateField] = doc.Date
	}

	for _, f := range reg.Fields() {
		var raw any
		var ok bool
		if f.ExportGroup == "" {
			if f.ExportKey == "daily_activity_summary" && doc.DailyActivitySummary != nil {
				raw, ok = *doc.DailyActivitySummary, true
			}
		} else if g := doc.group(f.ExportGroup, false); g != nil {
			raw, ok = g[f.ExportKey]
		}
		if !ok || raw == nil {
			continue
		}
		if v, ok := importValue(f, raw); ok {
			rec[f.ID] = v
		}
	}
}

// exportValue converts a stored string to its typed export form.
func exportValue(f schema.Field, v string) any {
	trimmed := strings.TrimSpace(v)
	switch f.Type {
	case schema.TypeFloat:
		n, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil
		}
		return n
	case schema.TypeInt, schema.TypeScale:
		n, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return nil
		}
		return n
	case schema.TypeBool:
		b, err := strconv.ParseBool(trimmed)
		if err != nil {
			return nil
		}
		return b
	default:
		return v
	}
}

// importValue converts a decoded JSON value back to the flat string form.
// Values of an unexpected shape (arrays, objects) report false and leave
// the record field untouched.
func importValue(f schema.Field, raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case float64:
		// encoding/json decodes every number as float64; integer-typed
		// fields round-trip without a fraction.
		switch f.Type {
		case schema.TypeInt, schema.TypeScale:
			return strconv.FormatInt(int64(v), 10), true
		default:
			return strconv.FormatFloat(v, 'f', -1, 64), true
		}
	default:
		return "", false
	}
}
