package term

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/beltgrid/pkg/belt"
	"github.com/matzehuels/beltgrid/pkg/grid"
)

var arrows = map[belt.Direction]rune{
	belt.West:  '←',
	belt.North: '↑',
	belt.East:  '→',
	belt.South: '↓',
}

// Path returns the box-drawing rune joining the two sides of b.
func Path(b belt.Belt) rune {
	has := func(d belt.Direction) bool { return b.Input == d || b.Output == d }
	switch {
	case has(belt.West) && has(belt.East):
		return '─'
	case has(belt.North) && has(belt.South):
		return '│'
	case has(belt.North) && has(belt.West):
		return '┘'
	case has(belt.North) && has(belt.East):
		return '└'
	case has(belt.South) && has(belt.East):
		return '┌'
	default:
		return '┐'
	}
}

// Arrow returns the arrow rune pointing along d.
func Arrow(d belt.Direction) rune {
	return arrows[d]
}

// Cell returns the two-rune text for b.
func Cell(b belt.Belt) string {
	return string([]rune{Path(b), Arrow(b.Output)})
}

const (
	emptyCell = "  "
	dotCell   = "· "
)

var (
	turnStyles = map[belt.Turn]lipgloss.Style{
		belt.Left:    lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
		belt.Forward: lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		belt.Right:   lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	}
	styleDot   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	styleGhost = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Faint(true)
)

// Viewport is a window onto the grid. X and Y are the bottom-left cell.
type Viewport struct {
	X, Y int
	W, H int
}

// Contains reports whether p lies inside the viewport.
func (v Viewport) Contains(p grid.Pos) bool {
	return p.X >= v.X && p.X < v.X+v.W && p.Y >= v.Y && p.Y < v.Y+v.H
}

// Follow returns v shifted the least amount that brings p into view,
// clamped so the viewport stays on the grid.
func (v Viewport) Follow(p grid.Pos) Viewport {
	v.W = min(max(v.W, 1), grid.Size)
	v.H = min(max(v.H, 1), grid.Size)
	if p.X < v.X {
		v.X = p.X
	} else if p.X >= v.X+v.W {
		v.X = p.X - v.W + 1
	}
	if p.Y < v.Y {
		v.Y = p.Y
	} else if p.Y >= v.Y+v.H {
		v.Y = p.Y - v.H + 1
	}
	v.X = min(max(v.X, 0), grid.Size-v.W)
	v.Y = min(max(v.Y, 0), grid.Size-v.H)
	return v
}

// Options configures text rendering.
type Options struct {
	// Plain disables terminal styling.
	Plain bool
	// Grid marks empty cells with a dot.
	Grid bool
	// Cursor highlights one cell.
	Cursor *grid.Pos
	// Ghost is drawn at Cursor in a faded style.
	Ghost *belt.Belt
}

// Render draws the cells of g inside v, top row first.
func Render(g *grid.Grid, v Viewport, opts Options) string {
	var sb strings.Builder
	for y := v.Y + v.H - 1; y >= v.Y; y-- {
		for x := v.X; x < v.X+v.W; x++ {
			sb.WriteString(cell(g, grid.Pos{X: x, Y: y}, opts))
		}
		if y > v.Y {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// RenderAll draws the occupied area of g. An empty grid renders as "".
func RenderAll(g *grid.Grid, opts Options) string {
	lo, hi, ok := g.Bounds()
	if !ok {
		return ""
	}
	v := Viewport{X: lo.X, Y: lo.Y, W: hi.X - lo.X + 1, H: hi.Y - lo.Y + 1}
	out := Render(g, v, opts)
	lines := strings.Split(out, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n") + "\n"
}

func cell(g *grid.Grid, p grid.Pos, opts Options) string {
	atCursor := opts.Cursor != nil && *opts.Cursor == p

	var text string
	var style lipgloss.Style
	switch b, ok := g.Get(p.X, p.Y); {
	case atCursor && opts.Ghost != nil && opts.Ghost.Valid():
		text, style = Cell(*opts.Ghost), styleGhost
	case ok:
		text, style = Cell(b), turnStyles[b.Turn()]
	case opts.Grid:
		text, style = dotCell, styleDot
	default:
		text, style = emptyCell, lipgloss.NewStyle()
	}

	if opts.Plain {
		return text
	}
	if atCursor {
		style = style.Reverse(true)
	}
	return style.Render(text)
}
