package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/beltgrid/pkg/grid"
	bgio "github.com/matzehuels/beltgrid/pkg/io"
	"github.com/matzehuels/beltgrid/pkg/render"
	"github.com/matzehuels/beltgrid/pkg/render/nodelink"
	"github.com/matzehuels/beltgrid/pkg/render/term"
	"github.com/matzehuels/beltgrid/pkg/render/tiles"
)

// Render generates output artifacts for g in the requested formats.
// Options must already have defaults applied.
func Render(ctx context.Context, g *grid.Grid, opts Options) (map[string][]byte, error) {
	return renderFormats(ctx, g, opts, opts.Formats)
}

func renderFormats(ctx context.Context, g *grid.Grid, opts Options, formats []string) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))

	// The tile SVG feeds png and pdf, so draw it at most once.
	var svg []byte
	tileSVG := func() []byte {
		if svg == nil {
			svg = tiles.RenderSVG(g, buildSVGOptions(opts)...)
		}
		return svg
	}

	for _, format := range formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = tileSVG()
		case FormatPNG:
			data, err = render.ToPNG(ctx, tileSVG(), opts.Scale)
		case FormatPDF:
			data, err = render.ToPDF(ctx, tileSVG())
		case FormatJSON:
			var buf bytes.Buffer
			err = bgio.WriteJSON(g, &buf)
			data = buf.Bytes()
		case FormatDOT:
			data = []byte(nodelink.ToDOT(g, nodelink.Options{Detailed: true}))
		case FormatGraph:
			data, err = nodelink.RenderSVG(ctx, nodelink.ToDOT(g, nodelink.Options{}))
		case FormatText:
			data = []byte(term.RenderAll(g, term.Options{Plain: true, Grid: opts.GridLines}))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions maps pipeline options onto tile renderer options.
func buildSVGOptions(opts Options) []tiles.SVGOption {
	svgOpts := []tiles.SVGOption{tiles.WithTileSize(opts.TileSize)}
	if opts.GridLines {
		svgOpts = append(svgOpts, tiles.WithGridLines())
	}
	if opts.FullGrid {
		svgOpts = append(svgOpts, tiles.WithFullGrid())
	}
	return svgOpts
}
