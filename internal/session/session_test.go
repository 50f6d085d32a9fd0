package session

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/daybook/internal/record"
	"github.com/julianstephens/daybook/internal/schema"
	"github.com/julianstephens/daybook/internal/storage"
)

func newTestSession(t *testing.T) (*Session, storage.Provider) {
	t.Helper()

	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "daybook.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	sess := New(store, schema.Default())
	sess.SetWarnFunc(func(format string, args ...any) {})
	return sess, store
}

func TestLoadEffectiveFreshDateGetsDefaults(t *testing.T) {
	sess, _ := newTestSession(t)

	rec, err := sess.LoadEffective("2024-03-15")
	if err != nil {
		t.Fatalf("LoadEffective failed: %v", err)
	}

	if rec[schema.DateField] != "2024-03-15" {
		t.Errorf("date key = %q, want 2024-03-15", rec[schema.DateField])
	}
	if rec["mood"] != "5" {
		t.Errorf("mood default = %q, want 5", rec["mood"])
	}
	if rec.Has("breakfast") {
		t.Error("field without a default should be absent on a fresh date")
	}
}

func TestLoadEffectiveStoredOverlayWins(t *testing.T) {
	sess, store := newTestSession(t)

	stored := record.Record{"mood": "9", "breakfast": "toast"}
	if err := store.PutRecord("2024-03-15", stored); err != nil {
		t.Fatalf("PutRecord failed: %v", err)
	}

	rec, err := sess.LoadEffective("2024-03-15")
	if err != nil {
		t.Fatalf("LoadEffective failed: %v", err)
	}
	if rec["mood"] != "9" {
		t.Errorf("stored value should beat default, got %q", rec["mood"])
	}
	if rec["breakfast"] != "toast" {
		t.Errorf("breakfast = %q, want toast", rec["breakfast"])
	}
}

func TestLoadEffectiveKeepsUserClearedFieldsEmpty(t *testing.T) {
	sess, store := newTestSession(t)

	// The user cleared a field that has a default. The stored empty string
	// must survive reconciliation; re-applying the default would undo a
	// deliberate edit.
	stored := record.Record{"mood": ""}
	if err := store.PutRecord("2024-03-15", stored); err != nil {
		t.Fatalf("PutRecord failed: %v", err)
	}

	rec, err := sess.LoadEffective("2024-03-15")
	if err != nil {
		t.Fatalf("LoadEffective failed: %v", err)
	}
	if rec["mood"] != "" {
		t.Errorf("cleared field was re-defaulted to %q", rec["mood"])
	}
}

func TestSwitchDateNoLeakage(t *testing.T) {
	sess, _ := newTestSession(t)

	if err := sess.SwitchDate("2024-03-15"); err != nil {
		t.Fatalf("SwitchDate failed: %v", err)
	}
	if err := sess.SetField("breakfast", "pancakes"); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}

	// An uncommitted edit must not follow the session to another date.
	if err := sess.SwitchDate("2024-03-16"); err != nil {
		t.Fatalf("SwitchDate failed: %v", err)
	}
	if got := sess.Field("breakfast"); got != "" {
		t.Errorf("edit leaked across dates: breakfast = %q", got)
	}
	if sess.Dirty() {
		t.Error("session should not be dirty after a switch")
	}

	// Nor should it have been silently committed.
	if err := sess.SwitchDate("2024-03-15"); err != nil {
		t.Fatalf("SwitchDate failed: %v", err)
	}
	if got := sess.Field("breakfast"); got != "" {
		t.Errorf("uncommitted edit reappeared after switch back: %q", got)
	}
}

func TestCommitWithoutDateReturnsMissingDateError(t *testing.T) {
	sess, _ := newTestSession(t)

	err := sess.Commit()
	var mde *MissingDateError
	if !errors.As(err, &mde) {
		t.Errorf("Commit before any switch = %v, want MissingDateError", err)
	}
}

func TestCommitPersistsAndRoundTrips(t *testing.T) {
	sess, store := newTestSession(t)

	if err := sess.SwitchDate("2024-03-15"); err != nil {
		t.Fatalf("SwitchDate failed: %v", err)
	}
	if err := sess.SetField("breakfast", "pancakes"); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}
	if err := sess.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if sess.Dirty() {
		t.Error("session should be clean after commit")
	}

	stored, err := store.GetRecord("2024-03-15")
	if err != nil {
		t.Fatalf("GetRecord failed: %v", err)
	}
	if stored["breakfast"] != "pancakes" {
		t.Errorf("committed value = %q, want pancakes", stored["breakfast"])
	}
}

func TestCommitCapturesSuggestions(t *testing.T) {
	sess, store := newTestSession(t)

	if err := sess.SwitchDate("2024-03-15"); err != nil {
		t.Fatalf("SwitchDate failed: %v", err)
	}
	if err := sess.SetField("breakfast", "Pancakes"); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}
	if err := sess.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	got, err := store.GetSuggestions(schema.SuggestMeals)
	if err != nil {
		t.Fatalf("GetSuggestions failed: %v", err)
	}
	if len(got["breakfast"]) != 1 || got["breakfast"][0] != "Pancakes" {
		t.Errorf("suggestion not captured: %v", got["breakfast"])
	}
}

func TestSetFieldRejectsDateKeyAndUnknownIDs(t *testing.T) {
	sess, _ := newTestSession(t)

	if err := sess.SwitchDate("2024-03-15"); err != nil {
		t.Fatalf("SwitchDate failed: %v", err)
	}
	if err := sess.SetField(schema.DateField, "2024-01-01"); err == nil {
		t.Error("SetField should reject the date key")
	}
	if err := sess.SetField("notAField", "x"); err == nil {
		t.Error("SetField should reject unknown identifiers")
	}
}

func TestClearDeletesStoreAndRebuildsDefaults(t *testing.T) {
	sess, store := newTestSession(t)

	if err := sess.SwitchDate("2024-03-15"); err != nil {
		t.Fatalf("SwitchDate failed: %v", err)
	}
	if err := sess.SetField("mood", "9"); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}
	if err := sess.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	if err := sess.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	if _, err := store.GetRecord("2024-03-15"); !errors.Is(err, storage.ErrNoRecord) {
		t.Errorf("stored record should be gone, got %v", err)
	}
	if got := sess.Field("mood"); got != "5" {
		t.Errorf("mood after clear = %q, want default 5", got)
	}
	if sess.Dirty() {
		t.Error("session should be clean after clear")
	}

	// Clearing a never-committed date is not an error.
	if err := sess.SwitchDate("2024-03-16"); err != nil {
		t.Fatalf("SwitchDate failed: %v", err)
	}
	if err := sess.Clear(); err != nil {
		t.Errorf("Clear on unstored date failed: %v", err)
	}
}

func TestClearDoesNotTouchSuggestions(t *testing.T) {
	sess, store := newTestSession(t)

	if err := sess.SwitchDate("2024-03-15"); err != nil {
		t.Fatalf("SwitchDate failed: %v", err)
	}
	if err := sess.SetField("breakfast", "waffles"); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}
	if err := sess.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if err := sess.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	got, err := store.GetSuggestions(schema.SuggestMeals)
	if err != nil {
		t.Fatalf("GetSuggestions failed: %v", err)
	}
	if len(got["breakfast"]) != 1 {
		t.Errorf("suggestions should survive a record clear: %v", got["breakfast"])
	}
}

func TestOnFocusLostCommitsOnlyWhenDirty(t *testing.T) {
	sess, store := newTestSession(t)

	if err := sess.SwitchDate("2024-03-15"); err != nil {
		t.Fatalf("SwitchDate failed: %v", err)
	}

	if err := sess.OnFocusLost(); err != nil {
		t.Errorf("OnFocusLost on clean session failed: %v", err)
	}
	if _, err := store.GetRecord("2024-03-15"); !errors.Is(err, storage.ErrNoRecord) {
		t.Error("clean session should not write on focus loss")
	}

	if err := sess.SetField("mood", "8"); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}
	if err := sess.OnFocusLost(); err != nil {
		t.Fatalf("OnFocusLost failed: %v", err)
	}
	stored, err := store.GetRecord("2024-03-15")
	if err != nil {
		t.Fatalf("GetRecord failed: %v", err)
	}
	if stored["mood"] != "8" {
		t.Errorf("focus loss did not flush edit, mood = %q", stored["mood"])
	}
}

func TestOnEnvironmentTeardownFlushesBestEffort(t *testing.T) {
	sess, store := newTestSession(t)

	if err := sess.SwitchDate("2024-03-15"); err != nil {
		t.Fatalf("SwitchDate failed: %v", err)
	}
	if err := sess.SetField("mood", "3"); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}

	sess.OnEnvironmentTeardown()

	stored, err := store.GetRecord("2024-03-15")
	if err != nil {
		t.Fatalf("GetRecord failed: %v", err)
	}
	if stored["mood"] != "3" {
		t.Errorf("teardown did not flush edit, mood = %q", stored["mood"])
	}
}

func TestCorruptStoredRecordReadsAsDefaultsWithWarning(t *testing.T) {
	store := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "daybook.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	// corruptingStore wraps the real provider so reads for one date report
	// a corrupt record without needing to poke at the database file.
	wrapped := &corruptingStore{Provider: store, corruptDate: "2024-03-15"}

	var warned []string
	sess := New(wrapped, schema.Default())
	sess.SetWarnFunc(func(format string, args ...any) {
		warned = append(warned, format)
	})

	rec, err := sess.LoadEffective("2024-03-15")
	if err != nil {
		t.Fatalf("LoadEffective should not fail on a corrupt record: %v", err)
	}
	if rec["mood"] != "5" {
		t.Errorf("corrupt record should read as defaults, mood = %q", rec["mood"])
	}
	if len(warned) == 0 {
		t.Error("expected a warning for the corrupt record")
	}
}

type corruptingStore struct {
	storage.Provider
	corruptDate string
}

func (c *corruptingStore) GetRecord(date string) (record.Record, error) {
	if date == c.corruptDate {
		return nil, storage.ErrCorruptRecord
	}
	return c.Provider.GetRecord(date)
}

func TestMissingDateErrorMessage(t *testing.T) {
	err := &MissingDateError{}
	if !strings.Contains(err.Error(), "date") {
		t.Errorf("error message should mention the date key: %q", err.Error())
	}
}
