package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/julianstephens/daybook/internal/export"
)

type ExportCmd struct {
	Dates []string `arg:"" optional:"" help:"Dates to export (YYYY-MM-DD). Omit with --all to export everything."`
	All   bool     `help:"Export every stored entry."`
	Out   string   `help:"Output directory." type:"path" default:"."`
}

func (c *ExportCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	dates := c.Dates
	if c.All {
		var err error
		dates, err = ctx.Store.ListDates()
		if err != nil {
			return err
		}
	}
	if len(dates) == 0 {
		return fmt.Errorf("nothing to export: pass dates or --all")
	}

	now := time.Now()

	// Single-date export writes a single document, not an array.
	if len(dates) == 1 {
		date, err := resolveDate(dates[0])
		if err != nil {
			return err
		}
		rec, err := ctx.Session.LoadEffective(date)
		if err != nil {
			return err
		}
		path := filepath.Join(c.Out, export.Filename(date, now))
		if err := export.WriteFile(export.ToDocument(ctx.Registry, rec), path); err != nil {
			return err
		}
		fmt.Printf("✓ Exported %s to %s\n", date, path)
		return nil
	}

	ctx.Batch.Enable()
	for _, raw := range dates {
		date, err := resolveDate(raw)
		if err != nil {
			ctx.Batch.Disable()
			return err
		}
		ctx.Batch.Toggle(date)
	}

	docs, err := ctx.Batch.Export()
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("none of the selected dates has a stored entry")
	}

	path := filepath.Join(c.Out, export.BatchFilename(now))
	if err := export.WriteBatchFile(docs, path); err != nil {
		return err
	}
	fmt.Printf("✓ Exported %d entr%s to %s\n", len(docs), plural(len(docs), "y", "ies"), path)
	return nil
}
