package cli

import (
	"fmt"

	"github.com/julianstephens/daybook/internal/record"
	"github.com/julianstephens/daybook/internal/schema"
)

type HistoryCmd struct {
	Limit int `help:"Show at most this many entries (0 = all)." default:"0"`
}

func (c *HistoryCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	dates, err := ctx.Store.ListDates()
	if err != nil {
		return err
	}

	if len(dates) == 0 {
		fmt.Println("No entries yet.")
		return nil
	}

	if c.Limit > 0 && len(dates) > c.Limit {
		dates = dates[:c.Limit]
	}

	fmt.Printf("%d entr%s (newest first):\n\n", len(dates), plural(len(dates), "y", "ies"))
	for _, date := range dates {
		rec, err := ctx.Session.LoadEffective(date)
		if err != nil {
			return err
		}

		completeness := record.Completeness(ctx.Registry, rec)
		marks := ""
		for _, sec := range schema.Sections() {
			marks += sectionMark(completeness[sec])
		}
		fmt.Printf("  %s  %s\n", date, marks)
	}

	return nil
}
