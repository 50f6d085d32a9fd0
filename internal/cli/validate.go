package cli

import (
	"fmt"

	"github.com/julianstephens/daybook/internal/validation"
)

type ValidateCmd struct{}

func (cmd *ValidateCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	defer ctx.Store.Close()

	fmt.Println("Validating stored entries...")
	validator := validation.New(ctx.Registry)
	result, err := validator.ValidateStore(ctx.Store)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(result.FormatReport())

	if result.HasConflicts() {
		return fmt.Errorf("%d conflict(s) found", len(result.Conflicts))
	}
	return nil
}
