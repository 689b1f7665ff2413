package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/beltgrid/pkg/buildinfo"
	"github.com/matzehuels/beltgrid/pkg/cache"
	"github.com/matzehuels/beltgrid/pkg/config"
	"github.com/matzehuels/beltgrid/pkg/pipeline"
)

const appName = "beltgrid"

// CLI is the state shared by every command. Config is loaded from
// ConfigPath, or the default location, before any command runs.
type CLI struct {
	Logger     *log.Logger
	Config     config.Config
	ConfigPath string
}

// New returns a CLI that logs to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), Config: config.Default()}
}

func (c *CLI) SetLogLevel(level log.Level) { c.Logger.SetLevel(level) }

// RootCommand assembles the command tree.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "A conveyor belt sandbox",
		Long: `Beltgrid is a conveyor belt sandbox on a 128×128 grid.

Belts orient themselves as they are placed: a new belt takes its input from
a neighbor already pointing into it, and re-points the belt in front of it.
Lay belts interactively with "play", or write a TOML or YAML placement
script and "render" it to SVG, PNG, PDF, JSON, DOT or text, or "serve" a
live preview that follows your edits.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger.WithPrefix(cmd.Name())))
			if err := c.loadConfig(); err != nil {
				return err
			}
			installHooks(c.Logger)
			return nil
		},
	}
	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "",
		"config file (default $XDG_CONFIG_HOME/beltgrid/config.toml)")

	root.AddGroup(
		&cobra.Group{ID: "grid", Title: "Grid commands:"},
		&cobra.Group{ID: "tools", Title: "Tools:"},
	)
	for _, cmd := range []*cobra.Command{c.playCommand(), c.renderCommand(), c.serveCommand()} {
		cmd.GroupID = "grid"
		root.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{c.cacheCommand(), c.completionCommand()} {
		cmd.GroupID = "tools"
		root.AddCommand(cmd)
	}
	root.SetHelpCommandGroupID("tools")
	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

// newRunner returns a pipeline runner backed by the user cache, or by no
// cache when noCache is set or the cache directory is unusable.
func (c *CLI) newRunner(noCache bool, keyer cache.Keyer) (*pipeline.Runner, error) {
	var cc cache.Cache = cache.NewNullCache()
	if !noCache {
		dir, err := cacheDir()
		if err != nil {
			c.Logger.Warn("render cache disabled", "error", err)
		} else if cc, err = cache.NewFileCache(dir); err != nil {
			return nil, fmt.Errorf("open cache: %w", err)
		}
	}
	return pipeline.NewRunner(cc, keyer, c.Logger), nil
}

// cacheDir is $XDG_CACHE_HOME/beltgrid, else ~/.cache/beltgrid on Linux.
func cacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appName), nil
}

// pipelineOptions seeds render options from the config file; flags
// override them afterwards.
func (c *CLI) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		TileSize:  c.Config.TileSize,
		Scale:     c.Config.Scale,
		GridLines: c.Config.ShowGrid,
		TTL:       c.Config.CacheTTL.Duration,
		Logger:    c.Logger,
	}
}

// parseFormats splits the --format flag; empty means svg.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
