// Package batch implements the multi-select controller used by the
// history view: a selection set over stored date keys plus bulk delete and
// export with partial-failure accounting.
package batch

import (
	"errors"

	"github.com/julianstephens/daybook/internal/export"
	"github.com/julianstephens/daybook/internal/schema"
	"github.com/julianstephens/daybook/internal/storage"
)

// Result aggregates a bulk delete. One key's failure never aborts the
// others; a delete of a key with no stored record counts as failed.
type Result struct {
	Succeeded int
	Failed    int
	// Deleted lists the keys actually removed, so the caller can
	// re-reconcile the open date if it was among them.
	Deleted []string
}

// Controller tracks multi-select state. It is Inactive until explicitly
// enabled; enabling starts from an empty selection. The selection only
// exists while Active and is cleared whenever the mode ends, including
// automatically after any batch action, partial failure or not.
type Controller struct {
	store     storage.Provider
	reg       *schema.Registry
	active    bool
	selection []string
}

func New(store storage.Provider, reg *schema.Registry) *Controller {
	return &Controller{store: store, reg: reg}
}

// Active reports whether multi-select mode is on.
func (c *Controller) Active() bool {
	return c.active
}

// Enable turns multi-select mode on with an empty selection.
func (c *Controller) Enable() {
	c.active = true
	c.selection = nil
}

// Disable turns multi-select mode off and drops the selection. Callers
// also invoke it when navigation leaves the history view.
func (c *Controller) Disable() {
	c.active = false
	c.selection = nil
}

// Toggle adds the key to the selection, or removes it if already selected.
// A no-op while Inactive.
func (c *Controller) Toggle(date string) {
	if !c.active {
		return
	}
	for i, d := range c.selection {
		if d == date {
			c.selection = append(c.selection[:i], c.selection[i+1:]...)
			return
		}
	}
	c.selection = append(c.selection, date)
}

// Selected reports whether a key is in the selection set.
func (c *Controller) Selected(date string) bool {
	for _, d := range c.selection {
		if d == date {
			return true
		}
	}
	return false
}

// Selection returns the selected keys in toggle order.
func (c *Controller) Selection() []string {
	return append([]string(nil), c.selection...)
}

// Delete removes every selected record independently, counting successes
// and failures instead of aborting on the first error. Afterward the
// selection is cleared and the mode returns to Inactive regardless of the
// outcome.
func (c *Controller) Delete() Result {
	var res Result
	for _, date := range c.selection {
		if err := c.store.DeleteRecord(date); err != nil {
			res.Failed++
			continue
		}
		res.Succeeded++
		res.Deleted = append(res.Deleted, date)
	}
	c.Disable()
	return res
}

// Export reads every selected record and maps it through the codec. Keys
// with no stored record are skipped, not failed; corrupt records are
// skipped the same way. The selection is cleared and the mode returns to
// Inactive afterward.
func (c *Controller) Export() ([]export.Document, error) {
	var docs []export.Document
	var firstErr error
	for _, date := range c.selection {
		rec, err := c.store.GetRecord(date)
		if err != nil {
			if errors.Is(err, storage.ErrNoRecord) || errors.Is(err, storage.ErrCorruptRecord) {
				continue
			}
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		docs = append(docs, export.ToDocument(c.reg, rec))
	}
	c.Disable()
	return docs, firstErr
}
