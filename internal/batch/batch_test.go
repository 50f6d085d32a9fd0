package batch

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/daybook/internal/record"
	"github.com/julianstephens/daybook/internal/schema"
	"github.com/julianstephens/daybook/internal/storage"
)

func newTestController(t *testing.T) (*Controller, storage.Provider) {
	t.Helper()

	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "daybook.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return New(store, schema.Default()), store
}

func TestToggleIsIdempotentPairwise(t *testing.T) {
	ctl, _ := newTestController(t)
	ctl.Enable()

	ctl.Toggle("2024-03-15")
	if !ctl.Selected("2024-03-15") {
		t.Error("first toggle should select")
	}
	ctl.Toggle("2024-03-15")
	if ctl.Selected("2024-03-15") {
		t.Error("second toggle should deselect")
	}
	if len(ctl.Selection()) != 0 {
		t.Errorf("selection should be empty, got %v", ctl.Selection())
	}
}

func TestToggleNoOpWhileInactive(t *testing.T) {
	ctl, _ := newTestController(t)

	ctl.Toggle("2024-03-15")
	if len(ctl.Selection()) != 0 {
		t.Error("toggle while inactive must not select")
	}
}

func TestEnableStartsEmptyAndDisableDrops(t *testing.T) {
	ctl, _ := newTestController(t)

	ctl.Enable()
	ctl.Toggle("2024-03-15")
	ctl.Disable()
	if ctl.Active() {
		t.Error("controller should be inactive after Disable")
	}

	ctl.Enable()
	if len(ctl.Selection()) != 0 {
		t.Errorf("re-enabling should start from an empty selection, got %v", ctl.Selection())
	}
}

func TestDeletePartialFailureAccounting(t *testing.T) {
	ctl, store := newTestController(t)

	stored := []string{"2024-03-11", "2024-03-12", "2024-03-13"}
	for _, d := range stored {
		if err := store.PutRecord(d, record.Record{"mood": "5"}); err != nil {
			t.Fatalf("PutRecord failed: %v", err)
		}
	}

	ctl.Enable()
	for _, d := range append(stored, "2024-03-14", "2024-03-15") {
		ctl.Toggle(d)
	}

	res := ctl.Delete()
	if res.Succeeded != 3 {
		t.Errorf("Succeeded = %d, want 3", res.Succeeded)
	}
	if res.Failed != 2 {
		t.Errorf("Failed = %d, want 2", res.Failed)
	}
	if len(res.Deleted) != 3 {
		t.Errorf("Deleted = %v, want the 3 stored keys", res.Deleted)
	}

	// The mode ends and the selection is gone even after partial failure.
	if ctl.Active() {
		t.Error("controller should be inactive after Delete")
	}
	if len(ctl.Selection()) != 0 {
		t.Errorf("selection should be cleared after Delete, got %v", ctl.Selection())
	}

	dates, err := store.ListDates()
	if err != nil {
		t.Fatalf("ListDates failed: %v", err)
	}
	if len(dates) != 0 {
		t.Errorf("stored records remain after delete: %v", dates)
	}
}

func TestExportSkipsMissingKeys(t *testing.T) {
	ctl, store := newTestController(t)

	if err := store.PutRecord("2024-03-11", record.Record{"mood": "5"}); err != nil {
		t.Fatalf("PutRecord failed: %v", err)
	}
	if err := store.PutRecord("2024-03-12", record.Record{"mood": "6"}); err != nil {
		t.Fatalf("PutRecord failed: %v", err)
	}

	ctl.Enable()
	ctl.Toggle("2024-03-11")
	ctl.Toggle("2024-03-12")
	ctl.Toggle("2024-03-13") // not stored; skipped, not failed

	docs, err := ctl.Export()
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("exported %d documents, want 2", len(docs))
	}
	if docs[0].Date != "2024-03-11" || docs[1].Date != "2024-03-12" {
		t.Errorf("unexpected export order: %s, %s", docs[0].Date, docs[1].Date)
	}

	if ctl.Active() || len(ctl.Selection()) != 0 {
		t.Error("export should end multi-select mode and clear the selection")
	}
}
