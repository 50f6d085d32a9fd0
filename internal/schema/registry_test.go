package schema

import "testing"

func TestDefaultRegistryFields(t *testing.T) {
	reg := Default()

	for _, sec := range Sections() {
		if len(reg.SectionFields(sec)) == 0 {
			t.Errorf("section %q has no fields", sec)
		}
	}

	f, ok := reg.Lookup("weightKg")
	if !ok {
		t.Fatal("expected weightKg to be registered")
	}
	if f.Section != SectionBody {
		t.Errorf("weightKg section = %q, want %q", f.Section, SectionBody)
	}
	if f.Default != "72" {
		t.Errorf("weightKg default = %q, want 72", f.Default)
	}

	if _, ok := reg.Lookup(DateField); ok {
		t.Errorf("%q must not be a registered field", DateField)
	}
}

func TestNewRejectsDuplicateIDs(t *testing.T) {
	fields := []Field{
		{ID: "mood", Type: TypeScale, Section: SectionMind, Label: "Mood"},
		{ID: "mood", Type: TypeScale, Section: SectionMind, Label: "Mood again"},
	}
	if _, err := New(fields); err == nil {
		t.Error("expected error for duplicate field ID")
	}
}

func TestNewRejectsReservedDateID(t *testing.T) {
	fields := []Field{
		{ID: DateField, Type: TypeText, Section: SectionBasic, Label: "Date"},
	}
	if _, err := New(fields); err == nil {
		t.Errorf("expected error for reserved ID %q", DateField)
	}
}

func TestSectionFieldsPreserveOrder(t *testing.T) {
	reg := Default()

	fields := reg.SectionFields(SectionDiet)
	var got []string
	for _, f := range fields {
		got = append(got, f.ID)
	}

	want := []string{"breakfast", "lunch", "dinner", "snacks", "caffeineCups", "activities", "productivityScore"}
	if len(got) != len(want) {
		t.Fatalf("diet fields = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("diet field %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDefaultsOnlyIncludeConfiguredValues(t *testing.T) {
	reg := Default()
	defaults := reg.Defaults()

	if defaults["mood"] != "5" {
		t.Errorf("mood default = %q, want 5", defaults["mood"])
	}
	if v, ok := defaults["breakfast"]; ok {
		t.Errorf("breakfast should have no default, got %q", v)
	}
}

func TestSuggestGroups(t *testing.T) {
	reg := Default()

	groups := map[string]bool{}
	for _, g := range reg.SuggestGroups() {
		groups[g] = true
	}
	for _, g := range []string{SuggestMeals, SuggestActivities, SuggestPersonalCare} {
		if !groups[g] {
			t.Errorf("missing suggestion group %q", g)
		}
	}

	// skincare and haircare share a group so values cross-suggest.
	skin, _ := reg.Lookup("skincare")
	hair, _ := reg.Lookup("haircare")
	if skin.SuggestGroup != hair.SuggestGroup {
		t.Errorf("skincare group %q != haircare group %q", skin.SuggestGroup, hair.SuggestGroup)
	}
}
