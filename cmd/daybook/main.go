package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/daybook/internal/batch"
	"github.com/julianstephens/daybook/internal/cli"
	"github.com/julianstephens/daybook/internal/schema"
	"github.com/julianstephens/daybook/internal/session"
	"github.com/julianstephens/daybook/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage path (.json, .db, or a directory)." type:"path" default:"~/.config/daybook/daybook.db"`

	Init     cli.InitCmd     `cmd:"" help:"Initialize daybook storage."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive diary form." default:"1"`
	Show     cli.ShowCmd     `cmd:"" help:"Show the entry for a date."`
	Set      cli.SetCmd      `cmd:"" help:"Set fields on a date's entry."`
	Clear    cli.ClearCmd    `cmd:"" help:"Reset a date's entry to defaults."`
	Delete   cli.DeleteCmd   `cmd:"" help:"Delete stored entries for one or more dates."`
	History  cli.HistoryCmd  `cmd:"" help:"List stored entries with completeness markers."`
	Export   cli.ExportCmd   `cmd:"" help:"Export entries to a JSON document."`
	Import   cli.ImportCmd   `cmd:"" help:"Import an exported JSON document."`
	Suggest  cli.SuggestCmd  `cmd:"" help:"Show recent values for a field."`
	Validate cli.ValidateCmd `cmd:"" help:"Check stored entries against the field registry."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health diagnostics."`
	Shell    struct {
		Install cli.ShellInstallCmd `cmd:"" help:"Fetch and cache the offline app shell."`
		Serve   cli.ShellServeCmd   `cmd:"" help:"Resolve a shell asset, cached-first."`
	} `cmd:"" help:"Manage the offline app shell cache."`
	Backup   struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a backup of the store."`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore the store from a backup."`
	} `cmd:"" help:"Manage store backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("daybook"),
		kong.Description("Structured personal diary with per-date entries, offline-first"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.3.0"},
	)

	store := storage.ForPath(CLI.Config)
	registry := schema.Default()
	sess := session.New(store, registry)

	appCtx := &cli.Context{
		Store:    store,
		Registry: registry,
		Session:  sess,
		Batch:    batch.New(store, registry),
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
