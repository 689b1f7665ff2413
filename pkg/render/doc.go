// Package render draws belt grids.
//
// # Overview
//
// Three renderers live in subpackages:
//
//   - [tiles]: an SVG image with one sprite per belt, the same picture the
//     sandbox shows
//   - [term]: a two-character-per-cell text view for terminals and files
//   - [nodelink]: the feed network as a Graphviz diagram
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG to other formats using the external
// rsvg-convert tool (from librsvg):
//
//	svg := tiles.RenderSVG(g, tiles.WithGridLines())
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [tiles]: github.com/matzehuels/beltgrid/pkg/render/tiles
// [term]: github.com/matzehuels/beltgrid/pkg/render/term
// [nodelink]: github.com/matzehuels/beltgrid/pkg/render/nodelink
package render
