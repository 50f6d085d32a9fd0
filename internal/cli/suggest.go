package cli

import (
	"fmt"

	"github.com/julianstephens/daybook/internal/suggest"
)

type SuggestCmd struct {
	Field string `arg:"" help:"Field identifier to show recent values for (e.g. breakfast)."`
}

func (c *SuggestCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	f, ok := ctx.Registry.Lookup(c.Field)
	if !ok {
		return fmt.Errorf("unknown field identifier: %s", c.Field)
	}
	if f.SuggestGroup == "" {
		return fmt.Errorf("field %s does not track suggestions", c.Field)
	}

	values, err := suggest.For(ctx.Store, ctx.Registry, c.Field)
	if err != nil {
		return err
	}

	if len(values) == 0 {
		fmt.Printf("No suggestions yet for %s.\n", c.Field)
		return nil
	}

	fmt.Printf("Recent values for %s (newest first):\n", c.Field)
	for _, v := range values {
		fmt.Printf("  %s\n", v)
	}
	return nil
}
