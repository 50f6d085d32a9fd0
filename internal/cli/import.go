package cli

import (
	"fmt"
	"os"

	"github.com/julianstephens/daybook/internal/export"
	"github.com/julianstephens/daybook/internal/schema"
)

type ImportCmd struct {
	File string `arg:"" help:"Export document to import (.json; a single document, not a batch array)." type:"existingfile"`
}

func (c *ImportCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	// Parse before mutating anything; a bad file aborts the import whole.
	doc, err := export.ReadDocument(data)
	if err != nil {
		return err
	}
	if doc.Date == "" {
		return fmt.Errorf("import document has no date")
	}
	date, err := resolveDate(doc.Date)
	if err != nil {
		return fmt.Errorf("import document has an invalid date: %w", err)
	}

	// Reconcile first so missing sections land on defaults, then overlay
	// the document and save. Importing the same file twice is a no-op.
	if err := ctx.Session.SwitchDate(date); err != nil {
		return err
	}
	rec := ctx.Session.Record()
	export.ApplyDocument(ctx.Registry, doc, rec)
	for id, value := range rec {
		if id == schema.DateField {
			continue
		}
		if err := ctx.Session.SetField(id, value); err != nil {
			return err
		}
	}
	if err := ctx.Session.Commit(); err != nil {
		return err
	}

	fmt.Printf("✓ Imported entry for %s\n", date)
	return nil
}
