package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/daybook/internal/backup"
	"github.com/julianstephens/daybook/internal/batch"
	"github.com/julianstephens/daybook/internal/schema"
	"github.com/julianstephens/daybook/internal/session"
	"github.com/julianstephens/daybook/internal/storage"
)

type Context struct {
	Store    storage.Provider
	Registry *schema.Registry
	Session  *session.Session
	Batch    *batch.Controller
}

// resolveDate turns "today", "yesterday", or a YYYY-MM-DD string into a
// normalized date key.
func resolveDate(s string) (string, error) {
	switch s {
	case "", "today":
		return time.Now().Format("2006-01-02"), nil
	case "yesterday":
		return time.Now().AddDate(0, 0, -1).Format("2006-01-02"), nil
	}

	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return "", fmt.Errorf("invalid date format, use YYYY-MM-DD, 'today', or 'yesterday': %w", err)
	}
	return t.Format("2006-01-02"), nil
}

// sectionMark renders a section's completeness indicator: the same dot the
// form tabs show.
func sectionMark(hasEmpty bool) string {
	if hasEmpty {
		return "○"
	}
	return "●"
}

// PerformAutomaticBackup snapshots file-backed stores before long-running
// sessions. Failures are warnings; a missed backup never blocks the app.
func (ctx *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: automatic backup failed: %v\n", err)
	}
}
