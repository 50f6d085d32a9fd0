package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/daybook/internal/schema"
)

type ShowCmd struct {
	Date string `arg:"" help:"Date to show (YYYY-MM-DD, 'today', or 'yesterday')." default:"today"`
}

func (c *ShowCmd) Run(ctx *Context) error {
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

	rec := ctx.Session.Record()
	completeness := ctx.Session.Completeness()

	fmt.Printf("Entry for %s:\n\n", date)

	for _, sec := range schema.Sections() {
		fmt.Printf("%s %s\n", sectionMark(completeness[sec]), strings.ToUpper(string(sec)))
		for _, f := range ctx.Registry.SectionFields(sec) {
			value := rec[f.ID]
			if strings.TrimSpace(value) == "" {
				value = "(empty)"
			}
			fmt.Printf("  %-20s %s\n", f.Label, value)
		}
		fmt.Println()
	}

	return nil
}
