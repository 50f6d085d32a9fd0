package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// ErrImportParse marks an uploaded file that is not a valid export
// document. The import is aborted entirely; no record fields are mutated.
var ErrImportParse = errors.New("import file is not a valid export document")

// Marshal renders a single document as 2-space-indented UTF-8 JSON.
func Marshal(doc Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// MarshalBatch renders a sequence of documents as a top-level JSON array.
func MarshalBatch(docs []Document) ([]byte, error) {
	return json.MarshalIndent(docs, "", "  ")
}

// WriteFile writes a single export document to path.
func WriteFile(doc Document, path string) error {
	data, err := Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize export: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}

// WriteBatchFile writes a batch export to path.
func WriteBatchFile(docs []Document, path string) error {
	data, err := MarshalBatch(docs)
	if err != nil {
		return fmt.Errorf("failed to serialize export: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}

// ReadDocument parses a single export document. Top-level arrays are
// rejected: import accepts one document at a time.
func ReadDocument(data []byte) (Document, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return Document{}, fmt.Errorf("%w: batch files cannot be imported; pick a single entry", ErrImportParse)
	}

	var doc Document
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrImportParse, err)
	}
	return doc, nil
}

// Filename builds the download name for a single-record export:
// daybook-<date>-20060102-150405.json.
func Filename(date string, now time.Time) string {
	return fmt.Sprintf("daybook-%s-%s.json", date, now.Format("20060102-150405"))
}

// BatchFilename builds the download name for a batch export, embedding a
// short export id so two batches cut in the same second stay distinct:
// daybook-export-20060102-150405-<id>.json.
func BatchFilename(now time.Time) string {
	id := uuid.New().String()[:8]
	return fmt.Sprintf("daybook-export-%s-%s.json", now.Format("20060102-150405"), id)
}
