package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/daybook/internal/assetcache"
)

// defaultManifest is the app shell: everything needed to render the form
// with no network.
var defaultManifest = []string{"/", "/app.js", "/style.css", "/manifest.json"}

type shellFlags struct {
	Version string `help:"Shell version tag." default:"v1"`
	URL     string `help:"Base URL the shell assets are served from." default:"http://localhost:8420"`
	Root    string `help:"Cache root directory." type:"path" default:"~/.cache/daybook/shell"`
}

func (f *shellFlags) manager() *assetcache.Manager {
	return assetcache.New(f.Version, f.URL, f.Root)
}

type ShellInstallCmd struct {
	shellFlags
	Assets []string `help:"Asset paths to cache instead of the default manifest." optional:""`
}

func (cmd *ShellInstallCmd) Run(ctx *Context) error {
	manifest := cmd.Assets
	if len(manifest) == 0 {
		manifest = defaultManifest
	}

	mgr := cmd.manager()
	if err := mgr.Install(context.Background(), manifest); err != nil {
		return fmt.Errorf("failed to install shell %s: %w", cmd.Version, err)
	}
	if err := mgr.Activate(); err != nil {
		return fmt.Errorf("failed to activate shell %s: %w", cmd.Version, err)
	}

	fmt.Printf("✓ Cached %d assets for shell %s at %s\n", len(manifest), cmd.Version, mgr.Dir())
	return nil
}

type ShellServeCmd struct {
	shellFlags
	Path string `arg:"" help:"Asset path to resolve, e.g. /app.js."`
	Out  string `help:"Write the asset to a file instead of stdout." optional:"" type:"path"`
}

func (cmd *ShellServeCmd) Run(ctx *Context) error {
	data, err := cmd.manager().Serve(context.Background(), cmd.Path)
	if err != nil {
		return fmt.Errorf("failed to serve %s: %w", cmd.Path, err)
	}

	if cmd.Out != "" {
		if err := os.MkdirAll(filepath.Dir(cmd.Out), 0700); err != nil {
			return err
		}
		return os.WriteFile(cmd.Out, data, 0600)
	}
	_, err = os.Stdout.Write(data)
	return err
}
