package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/daybook/internal/session"
)

type SetCmd struct {
	Date   string   `help:"Date to edit (YYYY-MM-DD, 'today', or 'yesterday')." default:"today"`
	Fields []string `arg:"" help:"Field assignments, e.g. breakfast=oats mood=7. Use field= to clear."`
}

func (c *SetCmd) Run(ctx *Context) error {
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

	for _, assignment := range c.Fields {
		id, value, ok := strings.Cut(assignment, "=")
		if !ok {
			return fmt.Errorf("invalid assignment %q, expected field=value", assignment)
		}
		if err := ctx.Session.SetField(id, value); err != nil {
			return err
		}
	}

	if err := ctx.Session.Commit(); err != nil {
		var missing *session.MissingDateError
		if errors.As(err, &missing) {
			return fmt.Errorf("save blocked: %w", err)
		}
		return err
	}

	fmt.Printf("✓ Saved %d field(s) for %s\n", len(c.Fields), date)
	return nil
}
