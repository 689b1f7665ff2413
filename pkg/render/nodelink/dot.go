package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/beltgrid/pkg/belt"
	"github.com/matzehuels/beltgrid/pkg/grid"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the belt directions and turn to node labels.
	// When false, only the cell is shown.
	Detailed bool
}

var turnFill = map[belt.Turn]string{
	belt.Left:    "#dbeafe",
	belt.Forward: "white",
	belt.Right:   "#fde68a",
}

// NodeID returns the node name used for the belt at p.
func NodeID(p grid.Pos) string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// Feeds reports whether the belt b at p feeds the belt in front of it and
// returns that belt's position.
func Feeds(g *grid.Grid, p grid.Pos, b belt.Belt) (grid.Pos, bool) {
	front := g.Front(p.X, p.Y, b)
	return front.Pos, front.OK && front.Belt.Input == b.Output.Flip()
}

// ToDOT converts the grid to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
func ToDOT(g *grid.Grid, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.15,0.05\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("\n")

	for p, b := range g.All() {
		attrs := []string{
			fmt.Sprintf("label=%q", fmtLabel(p, b, opts.Detailed)),
			fmt.Sprintf("pos=\"%d,%d!\"", p.X, p.Y),
		}
		if fill := turnFill[b.Turn()]; fill != "white" {
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", fill))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", NodeID(p), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for p, b := range g.All() {
		if to, ok := Feeds(g, p, b); ok {
			fmt.Fprintf(&buf, "  %q -> %q;\n", NodeID(p), NodeID(to))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(p grid.Pos, b belt.Belt, detailed bool) string {
	if !detailed {
		return NodeID(p)
	}
	return NodeID(p) + "\n" + b.String() + "\n" + b.Turn().String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-based svg header with a plain
// pixel one so browsers and rsvg-convert size it the same way.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
