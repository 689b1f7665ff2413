// Package config loads the user configuration file.
//
// The file is TOML and every key is optional:
//
//	tile_size = 32        # SVG pixels per tile
//	show_grid = true      # grid lines in renders and the sandbox
//	show_timing = false   # frame timing in the sandbox status line
//	scale = 2.0           # PNG scale factor
//	cache_ttl = "24h"     # lifetime of cached render artifacts
//	listen = "127.0.0.1:8080"
//
// The default location follows XDG: $XDG_CONFIG_HOME/beltgrid/config.toml,
// else ~/.config/beltgrid/config.toml. A missing file yields [Default].
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/beltgrid/pkg/errors"
)

const (
	appName  = "beltgrid"
	fileName = "config.toml"
)

// Config holds user preferences. Command-line flags override these values.
type Config struct {
	TileSize   int      `toml:"tile_size"`
	ShowGrid   bool     `toml:"show_grid"`
	ShowTiming bool     `toml:"show_timing"`
	Scale      float64  `toml:"scale"`
	CacheTTL   Duration `toml:"cache_ttl"`
	Listen     string   `toml:"listen"`
}

// Duration is a time.Duration written as a Go duration string ("90m", "24h").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TileSize: 32,
		ShowGrid: true,
		Scale:    2.0,
		CacheTTL: Duration{24 * time.Hour},
		Listen:   "127.0.0.1:8080",
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Parse decodes data over the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String())
	}
	return cfg, cfg.Validate()
}

// Load reads the config file at path. An empty path means [Path]. A missing
// file is not an error when path is empty.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return Default(), nil
	}
	if os.IsNotExist(err) {
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch {
	case c.TileSize < 4 || c.TileSize > 256:
		return errors.New(errors.ErrCodeInvalidConfig, "tile_size must be between 4 and 256, got %d", c.TileSize)
	case c.Scale <= 0 || c.Scale > 16:
		return errors.New(errors.ErrCodeInvalidConfig, "scale must be in (0, 16], got %g", c.Scale)
	case c.CacheTTL.Duration < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "cache_ttl must not be negative")
	case c.Listen == "":
		return errors.New(errors.ErrCodeInvalidConfig, "listen must not be empty")
	}
	return nil
}
