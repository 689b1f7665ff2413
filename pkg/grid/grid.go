package grid

import (
	"iter"

	"github.com/matzehuels/beltgrid/pkg/belt"
	"github.com/matzehuels/beltgrid/pkg/observability"
)

// Size is the width and height of every grid.
const Size = 128

// Pos is a cell coordinate.
type Pos struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p moved one step in direction d.
func (p Pos) Add(d belt.Direction) Pos {
	dx, dy := d.Delta()
	return Pos{X: p.X + dx, Y: p.Y + dy}
}

type cell struct {
	belt     belt.Belt
	occupied bool
}

// Grid is a Size×Size field of optional belts.
type Grid struct {
	cells [Size * Size]cell
	count int
}

// New returns an empty grid.
func New() *Grid {
	return &Grid{}
}

// InBounds reports whether (x, y) addresses a cell of the grid.
func InBounds(x, y int) bool {
	return x >= 0 && x < Size && y >= 0 && y < Size
}

func index(x, y int) int {
	return y*Size + x
}

// Get returns the belt at (x, y). Out-of-range cells are always empty.
func (g *Grid) Get(x, y int) (belt.Belt, bool) {
	if !InBounds(x, y) {
		return belt.Belt{}, false
	}
	c := g.cells[index(x, y)]
	return c.belt, c.occupied
}

// Set writes b at (x, y) without running placement rules.
// Writes outside the grid are ignored.
func (g *Grid) Set(x, y int, b belt.Belt) {
	if !InBounds(x, y) {
		return
	}
	c := &g.cells[index(x, y)]
	if !c.occupied {
		g.count++
	}
	c.belt = b
	c.occupied = true
}

// Clear removes the belt at (x, y), if any. Neighbors are left as they are.
func (g *Grid) Clear(x, y int) {
	if !InBounds(x, y) {
		return
	}
	c := &g.cells[index(x, y)]
	had := c.occupied
	if had {
		g.count--
	}
	*c = cell{}
	observability.Grid().OnClear(x, y, had)
}

// Len returns the number of occupied cells.
func (g *Grid) Len() int {
	return g.count
}

// All iterates occupied cells row by row, from y = 0 upward and x = 0 rightward.
func (g *Grid) All() iter.Seq2[Pos, belt.Belt] {
	return func(yield func(Pos, belt.Belt) bool) {
		for i, c := range g.cells {
			if !c.occupied {
				continue
			}
			if !yield(Pos{X: i % Size, Y: i / Size}, c.belt) {
				return
			}
		}
	}
}

// Bounds returns the smallest rectangle containing every belt.
// ok is false for an empty grid.
func (g *Grid) Bounds() (lo, hi Pos, ok bool) {
	for p := range g.All() {
		if !ok {
			lo, hi, ok = p, p, true
			continue
		}
		lo.X = min(lo.X, p.X)
		lo.Y = min(lo.Y, p.Y)
		hi.X = max(hi.X, p.X)
		hi.Y = max(hi.Y, p.Y)
	}
	return lo, hi, ok
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := *g
	return &c
}
