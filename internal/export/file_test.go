package export

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestReadDocumentWrapsParseError(t *testing.T) {
	_, err := ReadDocument([]byte("oops"))
	if !errors.Is(err, ErrImportParse) {
		t.Errorf("error = %v, want ErrImportParse", err)
	}

	_, err = ReadDocument([]byte("  \n\t[]"))
	if !errors.Is(err, ErrImportParse) {
		t.Errorf("array with leading whitespace should still be rejected, got %v", err)
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

	got := Filename("2024-03-14", now)
	if got != "daybook-2024-03-14-20240315-093000.json" {
		t.Errorf("Filename = %q", got)
	}
}

func TestBatchFilenameDistinctWithinSecond(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

	a := BatchFilename(now)
	b := BatchFilename(now)
	if a == b {
		t.Errorf("two batch filenames in the same second collide: %q", a)
	}
	if !strings.HasPrefix(a, "daybook-export-20240315-093000-") || !strings.HasSuffix(a, ".json") {
		t.Errorf("unexpected batch filename shape: %q", a)
	}
}
