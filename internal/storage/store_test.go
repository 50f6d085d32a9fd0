package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/daybook/internal/record"
	"github.com/julianstephens/daybook/internal/schema"
)

type providerFactory struct {
	name string
	open func(t *testing.T) Provider
}

func backends() []providerFactory {
	return []providerFactory{
		{"json", func(t *testing.T) Provider {
			return NewJSONStore(filepath.Join(t.TempDir(), "daybook.json"))
		}},
		{"sqlite", func(t *testing.T) Provider {
			return NewSQLiteStore(filepath.Join(t.TempDir(), "daybook.db"))
		}},
		{"diskv", func(t *testing.T) Provider {
			return NewDiskvStore(filepath.Join(t.TempDir(), "store"))
		}},
	}
}

func TestProviderRecordRoundTrip(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			store := b.open(t)
			if err := store.Init(); err != nil {
				t.Fatalf("Init failed: %v", err)
			}
			defer store.Close()

			rec := record.Record{"mood": "7", "breakfast": "oatmeal"}
			if err := store.PutRecord("2024-03-15", rec); err != nil {
				t.Fatalf("PutRecord failed: %v", err)
			}

			got, err := store.GetRecord("2024-03-15")
			if err != nil {
				t.Fatalf("GetRecord failed: %v", err)
			}
			if got["mood"] != "7" || got["breakfast"] != "oatmeal" {
				t.Errorf("unexpected record: %v", got)
			}
			if got[schema.DateField] != "2024-03-15" {
				t.Errorf("stored record should carry its date key, got %q", got[schema.DateField])
			}
		})
	}
}

func TestProviderMissingRecord(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			store := b.open(t)
			if err := store.Init(); err != nil {
				t.Fatalf("Init failed: %v", err)
			}
			defer store.Close()

			if _, err := store.GetRecord("2024-01-01"); !errors.Is(err, ErrNoRecord) {
				t.Errorf("GetRecord on missing date = %v, want ErrNoRecord", err)
			}
			if err := store.DeleteRecord("2024-01-01"); !errors.Is(err, ErrNoRecord) {
				t.Errorf("DeleteRecord on missing date = %v, want ErrNoRecord", err)
			}
		})
	}
}

func TestProviderDeleteRecord(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			store := b.open(t)
			if err := store.Init(); err != nil {
				t.Fatalf("Init failed: %v", err)
			}
			defer store.Close()

			if err := store.PutRecord("2024-03-15", record.Record{"mood": "7"}); err != nil {
				t.Fatalf("PutRecord failed: %v", err)
			}
			if err := store.DeleteRecord("2024-03-15"); err != nil {
				t.Fatalf("DeleteRecord failed: %v", err)
			}
			if _, err := store.GetRecord("2024-03-15"); !errors.Is(err, ErrNoRecord) {
				t.Errorf("record still readable after delete: %v", err)
			}
		})
	}
}

func TestProviderListDatesDescending(t *testing.T) {
	dates := []string{"2024-01-05", "2023-12-31", "2024-03-15", "2024-01-06"}
	want := []string{"2024-03-15", "2024-01-06", "2024-01-05", "2023-12-31"}

	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			store := b.open(t)
			if err := store.Init(); err != nil {
				t.Fatalf("Init failed: %v", err)
			}
			defer store.Close()

			for _, d := range dates {
				if err := store.PutRecord(d, record.Record{"mood": "5"}); err != nil {
					t.Fatalf("PutRecord %s failed: %v", d, err)
				}
			}

			got, err := store.ListDates()
			if err != nil {
				t.Fatalf("ListDates failed: %v", err)
			}
			if len(got) != len(want) {
				t.Fatalf("ListDates returned %v, want %v", got, want)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("ListDates[%d] = %q, want %q", i, got[i], want[i])
				}
			}
		})
	}
}

func TestProviderSuggestions(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			store := b.open(t)
			if err := store.Init(); err != nil {
				t.Fatalf("Init failed: %v", err)
			}
			defer store.Close()

			empty, err := store.GetSuggestions("meals")
			if err != nil {
				t.Fatalf("GetSuggestions on fresh store failed: %v", err)
			}
			if len(empty) != 0 {
				t.Errorf("expected empty suggestions, got %v", empty)
			}

			values := map[string][]string{
				"breakfast": {"oatmeal", "eggs"},
				"lunch":     {"salad"},
			}
			if err := store.PutSuggestions("meals", values); err != nil {
				t.Fatalf("PutSuggestions failed: %v", err)
			}

			got, err := store.GetSuggestions("meals")
			if err != nil {
				t.Fatalf("GetSuggestions failed: %v", err)
			}
			if len(got["breakfast"]) != 2 || got["breakfast"][0] != "oatmeal" {
				t.Errorf("unexpected breakfast suggestions: %v", got["breakfast"])
			}
			if len(got["lunch"]) != 1 || got["lunch"][0] != "salad" {
				t.Errorf("unexpected lunch suggestions: %v", got["lunch"])
			}
		})
	}
}

func TestProviderPersistsAcrossReopen(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			store := b.open(t)
			path := store.GetConfigPath()

			if err := store.Init(); err != nil {
				t.Fatalf("Init failed: %v", err)
			}
			if err := store.PutRecord("2024-03-15", record.Record{"mood": "7"}); err != nil {
				t.Fatalf("PutRecord failed: %v", err)
			}
			if err := store.Close(); err != nil {
				t.Fatalf("Close failed: %v", err)
			}

			reopened := ForPath(path)
			if err := reopened.Load(); err != nil {
				t.Fatalf("Load after reopen failed: %v", err)
			}
			defer reopened.Close()

			got, err := reopened.GetRecord("2024-03-15")
			if err != nil {
				t.Fatalf("GetRecord after reopen failed: %v", err)
			}
			if got["mood"] != "7" {
				t.Errorf("record lost across reopen: %v", got)
			}
		})
	}
}

func TestProviderNotLoaded(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "daybook.json"))
	if _, err := store.GetRecord("2024-03-15"); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("GetRecord before Load = %v, want ErrNotLoaded", err)
	}
	if err := store.PutRecord("2024-03-15", record.Record{}); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("PutRecord before Load = %v, want ErrNotLoaded", err)
	}
}

func TestForPathBackendSelection(t *testing.T) {
	if _, ok := ForPath("/tmp/x/daybook.json").(*JSONStore); !ok {
		t.Error(".json path should select the JSON store")
	}
	if _, ok := ForPath("/tmp/x/daybook.db").(*SQLiteStore); !ok {
		t.Error(".db path should select the SQLite store")
	}
	if _, ok := ForPath("/tmp/x/daybook").(*DiskvStore); !ok {
		t.Error("extensionless path should select the diskv store")
	}
}

func TestJSONStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daybook.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	store := NewJSONStore(path)
	if err := store.Load(); err == nil {
		store.Close()
		t.Error("Load should fail on a corrupt storage file")
	}
}

func TestSQLiteCorruptRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daybook.db")
	store := NewSQLiteStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := store.PutRecord("2024-03-15", record.Record{"mood": "7"}); err != nil {
		t.Fatalf("PutRecord failed: %v", err)
	}
	store.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`UPDATE records SET data = 'not json' WHERE date = '2024-03-15'`); err != nil {
		t.Fatalf("failed to corrupt row: %v", err)
	}
	db.Close()

	store = NewSQLiteStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer store.Close()

	if _, err := store.GetRecord("2024-03-15"); !errors.Is(err, ErrCorruptRecord) {
		t.Errorf("GetRecord on corrupt row = %v, want ErrCorruptRecord", err)
	}
}

func TestDiskvCorruptRecord(t *testing.T) {
	base := filepath.Join(t.TempDir(), "store")
	store := NewDiskvStore(base)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := store.PutRecord("2024-03-15", record.Record{"mood": "7"}); err != nil {
		t.Fatalf("PutRecord failed: %v", err)
	}

	path := filepath.Join(base, "formData", "2024-03-15.json")
	if err := os.WriteFile(path, []byte("not json"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := store.GetRecord("2024-03-15"); !errors.Is(err, ErrCorruptRecord) {
		t.Errorf("GetRecord on corrupt file = %v, want ErrCorruptRecord", err)
	}
	store.Close()
}

func TestValidDateKey(t *testing.T) {
	valid := []string{"2024-03-15", "2023-01-01", "2024-02-29"}
	invalid := []string{"", "2024-3-5", "15-03-2024", "2024-13-01", "2023-02-29", "yesterday"}

	for _, d := range valid {
		if !ValidDateKey(d) {
			t.Errorf("ValidDateKey(%q) = false, want true", d)
		}
	}
	for _, d := range invalid {
		if ValidDateKey(d) {
			t.Errorf("ValidDateKey(%q) = true, want false", d)
		}
	}
}

func TestSortDatesDescendingPutsInvalidKeysLast(t *testing.T) {
	dates := []string{"garbage", "2024-01-05", "2024-03-15"}
	SortDatesDescending(dates)

	if dates[0] != "2024-03-15" || dates[1] != "2024-01-05" {
		t.Errorf("unexpected order: %v", dates)
	}
	if dates[2] != "garbage" {
		t.Errorf("invalid key should sort last, got %v", dates)
	}
}
