// Package cli implements the treeize command-line interface.
//
// Commands load tree graphs from JSON files, compute top-to-bottom
// layouts, render them to SVG/PNG/DOT, open them in the interactive
// terminal widget, serve them over HTTP, and manage the local cache
// and saved snapshots. All commands support --verbose (-v) for
// debug-level logging; loggers travel through context.Context.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treeize/pkg/buildinfo"
	"github.com/matzehuels/treeize/pkg/cache"
	"github.com/matzehuels/treeize/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "treeize"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config
}

// New creates a new CLI instance with a default logger and the config
// file (if any) loaded.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{Logger: newLogger(w, level)}
	cfg, err := LoadConfig("")
	if err != nil {
		c.Logger.Warn("ignoring config file", "err", err)
		cfg = DefaultConfig()
	}
	c.Config = cfg
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Treeize renders tree graphs with top-to-bottom wiring",
		Long:         `Treeize is a tool for laying out, rendering, and interactively browsing tree-shaped node graphs. Every node has one input pin on top and one output pin below, and wires always flow downward.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.snapshotCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(cmd *cobra.Command, noCache bool) *pipeline.Runner {
	backend, err := c.newCache(cmd, noCache)
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		backend = cache.NewNullCache()
	}
	var keyer cache.Keyer
	if c.Config.CachePrefix != "" {
		keyer = cache.NewScopedKeyer(nil, c.Config.CachePrefix)
	}
	return pipeline.NewRunner(backend, keyer, loggerFromContext(cmd.Context()))
}

func (c *CLI) newCache(cmd *cobra.Command, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if c.Config.RedisAddr != "" {
		return cache.NewRedisCache(cmd.Context(), c.Config.RedisAddr)
	}
	dir, err := c.cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory, preferring the config file,
// then the XDG standard (~/.cache/treeize/).
func (c *CLI) cacheDir() (string, error) {
	if c.Config.CacheDir != "" {
		return c.Config.CacheDir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// pipelineOptions builds pipeline options from config defaults.
func (c *CLI) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		HorizontalSpacing: c.Config.HorizontalSpacing,
		VerticalSpacing:   c.Config.VerticalSpacing,
		StylePath:         c.Config.StylePath,
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
