package tiles

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/beltgrid/pkg/belt"
	"github.com/matzehuels/beltgrid/pkg/grid"
)

// DefaultTileSize is the side of one tile in SVG pixels.
const DefaultTileSize = 32

// margin is the number of empty tiles around the occupied area when cropping.
const margin = 1

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	tileSize  int
	gridLines bool
	fullGrid  bool
	ghost     *ghost
}

type ghost struct {
	pos  grid.Pos
	belt belt.Belt
}

func WithTileSize(px int) SVGOption {
	return func(r *svgRenderer) {
		if px > 0 {
			r.tileSize = px
		}
	}
}
func WithGridLines() SVGOption { return func(r *svgRenderer) { r.gridLines = true } }
func WithFullGrid() SVGOption  { return func(r *svgRenderer) { r.fullGrid = true } }

// WithGhost draws b at (x, y) at reduced opacity, the way the sandbox shows
// the belt that would be placed under the cursor.
func WithGhost(x, y int, b belt.Belt) SVGOption {
	return func(r *svgRenderer) { r.ghost = &ghost{pos: grid.Pos{X: x, Y: y}, belt: b} }
}

// Frame is the rectangle of grid cells an image covers, inclusive.
type Frame struct {
	Min, Max grid.Pos
}

// Width returns the frame width in tiles.
func (f Frame) Width() int { return f.Max.X - f.Min.X + 1 }

// Height returns the frame height in tiles.
func (f Frame) Height() int { return f.Max.Y - f.Min.Y + 1 }

// FrameFor returns the cells RenderSVG would draw for g.
func FrameFor(g *grid.Grid, opts ...SVGOption) Frame {
	return newSVGRenderer(opts...).frame(g)
}

// RenderSVG draws g as an SVG document.
func RenderSVG(g *grid.Grid, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	f := r.frame(g)
	ts := r.tileSize
	w, h := f.Width()*ts, f.Height()*ts

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		w, h, w, h)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", spriteCSS)
	writeDefs(&buf)
	fmt.Fprintf(&buf, "  <rect class=\"bg\" width=\"%d\" height=\"%d\"/>\n", w, h)

	if r.gridLines {
		writeGridLines(&buf, f, ts)
	}
	for p, b := range g.All() {
		writeTile(&buf, f, ts, p, b, "")
	}
	if r.ghost != nil && r.ghost.belt.Valid() {
		writeTile(&buf, f, ts, r.ghost.pos, r.ghost.belt, "ghost")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{tileSize: DefaultTileSize}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r svgRenderer) frame(g *grid.Grid) Frame {
	if r.fullGrid {
		return Frame{Max: grid.Pos{X: grid.Size - 1, Y: grid.Size - 1}}
	}

	lo, hi, ok := g.Bounds()
	if r.ghost != nil {
		gp := r.ghost.pos
		if !ok {
			lo, hi, ok = gp, gp, true
		}
		lo = grid.Pos{X: min(lo.X, gp.X), Y: min(lo.Y, gp.Y)}
		hi = grid.Pos{X: max(hi.X, gp.X), Y: max(hi.Y, gp.Y)}
	}
	return Frame{
		Min: grid.Pos{X: lo.X - margin, Y: lo.Y - margin},
		Max: grid.Pos{X: hi.X + margin, Y: hi.Y + margin},
	}
}

// origin returns the top-left pixel of cell p. Grid y grows north, SVG y
// grows down.
func origin(f Frame, ts int, p grid.Pos) (int, int) {
	return (p.X - f.Min.X) * ts, (f.Max.Y - p.Y) * ts
}

func writeTile(buf *bytes.Buffer, f Frame, ts int, p grid.Pos, b belt.Belt, class string) {
	x, y := origin(f, ts, p)
	attrs := fmt.Sprintf(`xlink:href="#%s" transform="translate(%d %d) scale(%g) rotate(%d %d %d)"`,
		spriteIDs[b.Turn()], x, y, float64(ts)/spriteSize, rotation(b.Input), spriteSize/2, spriteSize/2)
	if class != "" {
		attrs += fmt.Sprintf(" class=%q", class)
	}
	fmt.Fprintf(buf, "  <use %s/>\n", attrs)
}

func writeGridLines(buf *bytes.Buffer, f Frame, ts int) {
	w, h := f.Width()*ts, f.Height()*ts
	var d bytes.Buffer
	for i := 0; i <= f.Width(); i++ {
		fmt.Fprintf(&d, "M%d 0V%d", i*ts, h)
	}
	for j := 0; j <= f.Height(); j++ {
		fmt.Fprintf(&d, "M0 %dH%d", j*ts, w)
	}
	fmt.Fprintf(buf, "  <path class=\"gridline\" d=%q/>\n", d.String())
}
