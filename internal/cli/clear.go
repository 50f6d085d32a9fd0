package cli

import "fmt"

type ClearCmd struct {
	Date string `arg:"" help:"Date to clear (YYYY-MM-DD, 'today', or 'yesterday')." default:"today"`
}

func (c *ClearCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	date, err := resolveDate(c.Date)
	if err != nil {
		return err
	}

	if err := ctx.Session.SwitchDate(date); err != nil {
		return err
	}
	if err := ctx.Session.Clear(); err != nil {
		return err
	}

	fmt.Printf("✓ Cleared entry for %s (suggestions kept)\n", date)
	return nil
}
