// Package cli implements the reflow command-line interface.
//
// This package provides commands for laying out scene files, replaying edit
// scripts against them and inspecting the incremental generations the
// layout engine produces. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - run: Lay out a scene, replay an optional script and export the result
//   - watch: Re-lay out a scene every time the file changes
//   - step: Browse the generations of a script interactively
//   - cache: Manage the local run cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which
// includes one line per edit and per generation.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/reflow/pkg/buildinfo"
	"github.com/matzehuels/reflow/pkg/cache"
	"github.com/matzehuels/reflow/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "reflow"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Reflow lays out trees of boxes incrementally",
		Long:         `Reflow computes rectangles for nested boxes and, after every edit, recomputes only the part of the layout the edit can affect.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.runCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.stepCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// cacheFlags selects the cache backing a runner.
type cacheFlags struct {
	noCache bool
	url     string
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the run cache")
	cmd.Flags().StringVar(&f.url, "cache-url", "", "shared cache (redis://... or mongodb://...) instead of the local directory")
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, flags cacheFlags) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, flags)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

// newCache falls back to no caching when the local cache directory is
// unavailable. A remote cache that cannot be reached is an error.
func (c *CLI) newCache(ctx context.Context, flags cacheFlags) (cache.Cache, error) {
	switch {
	case flags.noCache:
		return cache.NewNullCache(), nil
	case flags.url != "":
		return cache.Open(ctx, flags.url)
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("cache disabled", "dir", dir, "err", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

// cacheDir returns the cache directory using XDG standard (~/.cache/reflow/).
func cacheDir() (string, error) {
	return cache.Dir(appName)
}
