package grid

import "github.com/matzehuels/beltgrid/pkg/belt"

// Neighbor is the result of looking up a cell adjacent to a belt.
type Neighbor struct {
	Belt belt.Belt
	Pos  Pos
	OK   bool
}

func (g *Grid) neighbor(p Pos) Neighbor {
	b, ok := g.Get(p.X, p.Y)
	return Neighbor{Belt: b, Pos: p, OK: ok}
}

// Front returns the cell b's output points into when b sits at (x, y).
func (g *Grid) Front(x, y int, b belt.Belt) Neighbor {
	return g.neighbor(Pos{X: x, Y: y}.Add(b.Output))
}

// Behind returns the cell b's input faces when b sits at (x, y).
func (g *Grid) Behind(x, y int, b belt.Belt) Neighbor {
	return g.neighbor(Pos{X: x, Y: y}.Add(b.Input))
}

// Left returns the cell on the left of b, looking along its output.
func (g *Grid) Left(x, y int, b belt.Belt) Neighbor {
	return g.neighbor(Pos{X: x, Y: y}.Add(b.Output.RotateAntiClockwise()))
}

// Right returns the cell on the right of b, looking along its output.
func (g *Grid) Right(x, y int, b belt.Belt) Neighbor {
	return g.neighbor(Pos{X: x, Y: y}.Add(b.Output.RotateClockwise()))
}
