// Package pipeline turns placement scripts into rendered artifacts.
//
// The pipeline has two stages:
//
//  1. Build: parse the TOML script and replay it onto a fresh grid
//  2. Render: draw the grid in every requested format
//
// Rendered artifacts are cached per script content, format and render
// options, so re-rendering an unchanged script is a cache read. Building is
// always done since it is cheap and supplies the run statistics.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Script:  data,
//	    Formats: []string{"svg", "json"},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	g, report, err := runner.Build(ctx, opts)
//	artifacts, err := runner.Render(ctx, g, opts)
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/beltgrid/pkg/cache"
	"github.com/matzehuels/beltgrid/pkg/errors"
	"github.com/matzehuels/beltgrid/pkg/grid"
	bgio "github.com/matzehuels/beltgrid/pkg/io"
	"github.com/matzehuels/beltgrid/pkg/render/tiles"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultTileSize is the SVG side of one tile in pixels.
	DefaultTileSize = tiles.DefaultTileSize

	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0

	// DefaultTTL is how long rendered artifacts stay cached.
	DefaultTTL = 24 * time.Hour

	minTileSize = 4
	maxTileSize = 256
)

// Format constants for output formats.
const (
	FormatSVG   = "svg"   // tile picture
	FormatPNG   = "png"   // tile picture via rsvg-convert
	FormatPDF   = "pdf"   // tile picture via rsvg-convert
	FormatJSON  = "json"  // belt list
	FormatDOT   = "dot"   // feed network as Graphviz source
	FormatGraph = "graph" // feed network drawn by Graphviz, SVG
	FormatText  = "text"  // two-character-per-cell text view
)

// ValidFormats lists the supported output formats in display order.
var ValidFormats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatDOT, FormatGraph, FormatText}

// Extension returns the file extension used when an artifact is written to disk.
func Extension(format string) string {
	switch format {
	case FormatGraph:
		return "graph.svg"
	case FormatText:
		return "txt"
	}
	return format
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// Script is the placement script source.
	Script []byte `json:"-"`
	// ScriptFormat is the syntax of Script. Empty means TOML.
	ScriptFormat bgio.Format `json:"script_format,omitempty"`

	// Render options
	Formats   []string `json:"formats,omitempty"`
	TileSize  int      `json:"tile_size,omitempty"`
	Scale     float64  `json:"scale,omitempty"`
	GridLines bool     `json:"grid_lines,omitempty"`
	FullGrid  bool     `json:"full_grid,omitempty"`

	// Cache options
	Refresh bool          `json:"refresh,omitempty"` // ignore cached artifacts and overwrite them
	TTL     time.Duration `json:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Grid is the grid built from the script.
	Grid *grid.Grid

	// ScriptHash is the content hash of the script.
	ScriptHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Steps      int
	Belts      int
	Placed     int
	Adjusted   int
	Cleared    int
	Ignored    int
	BuildTime  time.Duration
	RenderTime time.Duration
}

func (s *Stats) addReport(r bgio.Report) {
	s.Steps = r.Steps
	s.Placed = r.Placed
	s.Adjusted = r.Adjusted
	s.Cleared = r.Cleared
	s.Ignored = r.Ignored
}

// CacheInfo tracks cache hits for the render stage.
type CacheInfo struct {
	Hits      []string // formats served from the cache
	RenderHit bool     // whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !slices.Contains(ValidFormats, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(ValidFormats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.TileSize < minTileSize || o.TileSize > maxTileSize {
		return errors.New(errors.ErrCodeInvalidInput, "tile size must be between %d and %d, got %d", minTileSize, maxTileSize, o.TileSize)
	}
	if o.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	o.validated = true
	return nil
}

// SetDefaults fills unset fields with their defaults.
func (o *Options) SetDefaults() {
	o.Formats = dedupe(o.Formats)
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.TileSize == 0 {
		o.TileSize = DefaultTileSize
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.TTL == 0 {
		o.TTL = DefaultTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ArtifactKeyOpts returns cache key options for one format. Settings that
// cannot change the format's output are left zero so they share entries.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG, FormatPNG, FormatPDF:
		k.TileSize = o.TileSize
		k.GridLines = o.GridLines
		k.FullGrid = o.FullGrid
		if format == FormatPNG {
			k.Scale = o.Scale
		}
	}
	return k
}

func dedupe(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}
