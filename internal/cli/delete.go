package cli

import "fmt"

type DeleteCmd struct {
	Dates []string `arg:"" help:"Dates to delete (YYYY-MM-DD)."`
}

func (c *DeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	ctx.Batch.Enable()
	for _, raw := range c.Dates {
		date, err := resolveDate(raw)
		if err != nil {
			ctx.Batch.Disable()
			return err
		}
		ctx.Batch.Toggle(date)
	}

	res := ctx.Batch.Delete()
	fmt.Printf("Deleted %d entr%s, %d failed\n", res.Succeeded, plural(res.Succeeded, "y", "ies"), res.Failed)

	// If the session had one of the deleted dates open, drop the stale
	// in-memory state.
	for _, d := range res.Deleted {
		if d == ctx.Session.Date() {
			if err := ctx.Session.Reload(); err != nil {
				return err
			}
			break
		}
	}

	if res.Failed > 0 {
		return fmt.Errorf("%d entr%s could not be deleted", res.Failed, plural(res.Failed, "y", "ies"))
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
