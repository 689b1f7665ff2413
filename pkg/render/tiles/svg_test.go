package tiles

import (
	"strings"
	"testing"

	"github.com/matzehuels/beltgrid/pkg/belt"
	"github.com/matzehuels/beltgrid/pkg/grid"
)

func TestRenderSVG_OneUsePerBelt(t *testing.T) {
	g := grid.New()
	for x := 0; x < 4; x++ {
		g.Place(x, 2, belt.New())
	}
	g.Place(4, 2, belt.Straight(belt.North))

	svg := string(RenderSVG(g))
	if got := strings.Count(svg, "<use "); got != g.Len() {
		t.Errorf("<use> count = %d, want %d", got, g.Len())
	}
	for _, id := range []string{"belt-left", "belt-forward", "belt-right"} {
		if !strings.Contains(svg, `id="`+id+`"`) {
			t.Errorf("defs missing sprite %s", id)
		}
	}
	if !strings.Contains(svg, `#belt-left`) {
		t.Error("corner belt not drawn with the left sprite")
	}
}

func TestRenderSVG_Frame(t *testing.T) {
	g := grid.New()
	g.Place(10, 10, belt.New())
	g.Place(12, 11, belt.New())

	tests := []struct {
		name string
		opts []SVGOption
		want string
	}{
		{"cropped", nil, `viewBox="0 0 160 128"`},
		{"tile size", []SVGOption{WithTileSize(10)}, `width="50" height="40"`},
		{"full grid", []SVGOption{WithFullGrid(), WithTileSize(8)}, `viewBox="0 0 1024 1024"`},
		{"zero tile size keeps default", []SVGOption{WithTileSize(0)}, `width="160"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svg := string(RenderSVG(g, tt.opts...))
			if !strings.Contains(svg, tt.want) {
				t.Errorf("RenderSVG() header missing %s:\n%s", tt.want, strings.SplitN(svg, "\n", 2)[0])
			}
		})
	}
}

func TestRenderSVG_Rotation(t *testing.T) {
	tests := []struct {
		in    belt.Direction
		angle string
	}{
		{belt.South, "rotate(0 16 16)"},
		{belt.West, "rotate(90 16 16)"},
		{belt.North, "rotate(180 16 16)"},
		{belt.East, "rotate(270 16 16)"},
	}
	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			g := grid.New()
			g.Set(0, 0, belt.Straight(tt.in.Flip()))
			svg := string(RenderSVG(g))
			if !strings.Contains(svg, tt.angle) {
				t.Errorf("belt with input %s not rotated by %s", tt.in, tt.angle)
			}
		})
	}
}

func TestRenderSVG_NorthIsUp(t *testing.T) {
	g := grid.New()
	g.Set(0, 0, belt.New())
	g.Set(0, 1, belt.New())

	svg := string(RenderSVG(g, WithTileSize(10)))
	// Frame spans y -1..2, so y=1 sits in the second row and y=0 in the third.
	upper := strings.Index(svg, "translate(10 10)")
	lower := strings.Index(svg, "translate(10 20)")
	if upper < 0 || lower < 0 {
		t.Fatalf("tiles not at expected offsets:\n%s", svg)
	}
}

func TestRenderSVG_Ghost(t *testing.T) {
	g := grid.New()
	svg := string(RenderSVG(g, WithGhost(3, 3, belt.New())))
	if !strings.Contains(svg, `class="ghost"`) {
		t.Error("ghost belt not drawn")
	}
	if !strings.Contains(svg, "opacity: 0.4") {
		t.Error("ghost style missing")
	}
	if strings.Count(svg, "<use ") != 1 {
		t.Error("ghost should add exactly one <use>")
	}
}

func TestRenderSVG_GridLines(t *testing.T) {
	g := grid.New()
	g.Set(0, 0, belt.New())
	if strings.Contains(string(RenderSVG(g)), `class="gridline"`) {
		t.Error("grid lines drawn without WithGridLines")
	}
	if !strings.Contains(string(RenderSVG(g, WithGridLines())), `class="gridline"`) {
		t.Error("grid lines missing")
	}
}

func TestFrameFor_Empty(t *testing.T) {
	f := FrameFor(grid.New())
	if f.Width() != 1+2*margin || f.Height() != 1+2*margin {
		t.Errorf("empty frame = %dx%d, want %dx%d", f.Width(), f.Height(), 1+2*margin, 1+2*margin)
	}
}
