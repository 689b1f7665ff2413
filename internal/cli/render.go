package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/beltgrid/pkg/errors"
	bgio "github.com/matzehuels/beltgrid/pkg/io"
	"github.com/matzehuels/beltgrid/pkg/observability"
	"github.com/matzehuels/beltgrid/pkg/pipeline"
)

// renderFlags holds the command-line flags for the render command.
type renderFlags struct {
	output   string // output file (single format) or base path
	formats  string // comma-separated output formats
	tileSize int    // SVG pixels per tile
	scale    float64
	grid     bool // draw grid lines
	full     bool // frame the whole grid instead of the occupied area
	noCache  bool
	refresh  bool
}

// renderCommand creates the render command for turning a script into files.
func (c *CLI) renderCommand() *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "render [script.toml|script.yaml]",
		Short: "Render a placement script",
		Long: `Render a placement script.

The script is replayed onto an empty grid with the same auto-orientation
rules as the sandbox, then drawn in each requested format:

  svg    tile picture (default)
  png    tile picture, rasterized with rsvg-convert
  pdf    tile picture, converted with rsvg-convert
  json   belt list
  dot    feed network as Graphviz source
  graph  feed network drawn by Graphviz (SVG)
  text   two characters per cell

Rendered files are cached by script content and options.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeScripts,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions()
			opts.Formats = parseFormats(f.formats)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if f.output == "-" && len(opts.Formats) > 1 {
				return errors.New(errors.ErrCodeInvalidInput, "stdout output (-o -) takes a single format")
			}
			flags := cmd.Flags()
			if flags.Changed("tile-size") {
				opts.TileSize = f.tileSize
			}
			if flags.Changed("scale") {
				opts.Scale = f.scale
			}
			if flags.Changed("grid") {
				opts.GridLines = f.grid
			}
			opts.FullGrid = f.full
			opts.Refresh = f.refresh
			return c.runRender(cmd.Context(), args[0], opts, f)
		},
	}

	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): "+strings.Join(pipeline.ValidFormats, ", ")+" (comma-separated)")
	cmd.Flags().IntVar(&f.tileSize, "tile-size", pipeline.DefaultTileSize, "SVG pixels per tile")
	cmd.Flags().Float64Var(&f.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().BoolVar(&f.grid, "grid", true, "draw grid lines")
	cmd.Flags().BoolVar(&f.full, "full", false, "frame the whole 128×128 grid")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "re-render and overwrite cached artifacts")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

// runRender executes the pipeline for input and writes every artifact.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, f renderFlags) error {
	prog := newProgress(loggerFromContext(ctx))

	script, err := readScript(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(f.noCache, nil)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	var spinner *Spinner
	if needsSpinner(opts.Formats) {
		spinner = newSpinner(ctx, fmt.Sprintf("Reading %s...", filepath.Base(input)))
		defer observability.SwapPipelineHooks(spinner)()
		spinner.Start()
	}

	opts.Script = script
	opts.ScriptFormat = bgio.FormatForPath(input)
	result, err := runner.Execute(ctx, opts)
	if spinner != nil {
		if err != nil {
			spinner.StopWithError("Render failed")
		} else {
			spinner.Stop()
		}
	}
	if err != nil {
		return err
	}

	paths := outputPaths(f.output, input, opts.Formats)
	rows := make([][]string, 0, len(opts.Formats))
	for _, format := range opts.Formats {
		data := result.Artifacts[format]
		if err := writeArtifact(paths[format], data); err != nil {
			return err
		}
		source := iconFresh
		if slices.Contains(result.CacheInfo.Hits, format) {
			source = iconCached
		}
		rows = append(rows, []string{format, paths[format], formatBytes(len(data)), source})
	}

	if f.output == "-" {
		return nil
	}

	prog.done("rendered", "script", input, "formats", len(opts.Formats))
	printSuccess("Rendered %s", input)
	printStats(result.Stats.Belts, result.Stats.Adjusted, result.CacheInfo.RenderHit)
	if result.Stats.Ignored > 0 {
		printWarning("%d placement(s) outside the grid were ignored", result.Stats.Ignored)
	}
	if len(rows) == 1 {
		printFile(paths[opts.Formats[0]])
	} else {
		printArtifactTable(rows)
	}
	printNextStep("Preview live", fmt.Sprintf("%s serve %s", appName, input))
	return nil
}

// readScript reads a script file, mapping failures to structured errors.
func readScript(path string) ([]byte, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "script %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	return data, nil
}

// needsSpinner reports whether any format shells out or runs Graphviz.
func needsSpinner(formats []string) bool {
	for _, f := range formats {
		switch f {
		case pipeline.FormatPNG, pipeline.FormatPDF, pipeline.FormatGraph:
			return true
		}
	}
	return false
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output ends in a known format extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	exts := make([]string, 0, len(pipeline.ValidFormats))
	for _, format := range pipeline.ValidFormats {
		exts = append(exts, "."+pipeline.Extension(format))
	}
	// Longest first so ".graph.svg" wins over ".svg".
	slices.SortFunc(exts, func(a, b string) int { return len(b) - len(a) })
	for _, ext := range exts {
		if strings.HasSuffix(output, ext) {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

// outputPaths maps each format to the file it is written to. A single format
// with an explicit output writes exactly there; "-" means stdout.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, format := range formats {
		paths[format] = base + "." + pipeline.Extension(format)
	}
	return paths
}

// writeArtifact writes data to path, or to stdout when path is "-".
func writeArtifact(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
