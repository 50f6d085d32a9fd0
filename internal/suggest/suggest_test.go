package suggest

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/daybook/internal/record"
	"github.com/julianstephens/daybook/internal/schema"
	"github.com/julianstephens/daybook/internal/storage"
)

func TestRememberMostRecentFirst(t *testing.T) {
	values := Remember(nil, "oatmeal")
	values = Remember(values, "eggs")
	values = Remember(values, "toast")

	want := []string{"toast", "eggs", "oatmeal"}
	if len(values) != len(want) {
		t.Fatalf("values = %v, want %v", values, want)
	}
	for i := range want {
		if values[i] != want[i] {
			t.Errorf("values[%d] = %q, want %q", i, values[i], want[i])
		}
	}
}

func TestRememberDedupesCaseInsensitively(t *testing.T) {
	values := Remember(nil, "Oatmeal")
	values = Remember(values, "eggs")
	values = Remember(values, "OATMEAL")

	if len(values) != 2 {
		t.Fatalf("values = %v, want 2 entries", values)
	}
	// The newest spelling wins and moves to the front.
	if values[0] != "OATMEAL" {
		t.Errorf("values[0] = %q, want OATMEAL", values[0])
	}
	if values[1] != "eggs" {
		t.Errorf("values[1] = %q, want eggs", values[1])
	}
}

func TestRememberCapsAtMaxPerField(t *testing.T) {
	var values []string
	for _, v := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"} {
		values = Remember(values, v)
	}

	if len(values) != MaxPerField {
		t.Fatalf("len = %d, want %d", len(values), MaxPerField)
	}
	if values[0] != "i" {
		t.Errorf("values[0] = %q, want the most recent value", values[0])
	}
	for _, v := range values {
		if v == "a" || v == "b" {
			t.Errorf("oldest values should have been evicted, found %q", v)
		}
	}
}

func TestRememberIgnoresBlankValues(t *testing.T) {
	values := Remember(nil, "   ")
	if len(values) != 0 {
		t.Errorf("blank value should be ignored, got %v", values)
	}
}

func TestCaptureAndFor(t *testing.T) {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "daybook.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	defer store.Close()

	reg := schema.Default()
	rec := record.Record{
		"breakfast":  "oatmeal",
		"lunch":      "  ", // blank, not captured
		"activities": "climbing",
		"skincare":   "sunscreen",
	}

	if err := Capture(store, reg, rec); err != nil {
		t.Fatalf("Capture failed: %v", err)
	}

	got, err := For(store, reg, "breakfast")
	if err != nil {
		t.Fatalf("For failed: %v", err)
	}
	if len(got) != 1 || got[0] != "oatmeal" {
		t.Errorf("breakfast suggestions = %v", got)
	}

	got, err = For(store, reg, "lunch")
	if err != nil {
		t.Fatalf("For failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("blank lunch should not be captured, got %v", got)
	}

	got, err = For(store, reg, "skincare")
	if err != nil {
		t.Fatalf("For failed: %v", err)
	}
	if len(got) != 1 || got[0] != "sunscreen" {
		t.Errorf("skincare suggestions = %v", got)
	}
}

func TestForUntrackedFieldReturnsNothing(t *testing.T) {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "daybook.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	defer store.Close()

	got, err := For(store, schema.Default(), "mood")
	if err != nil {
		t.Fatalf("For failed: %v", err)
	}
	if got != nil {
		t.Errorf("untracked field should yield nil, got %v", got)
	}
}
