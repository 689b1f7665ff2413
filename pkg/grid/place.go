package grid

import (
	"github.com/matzehuels/beltgrid/pkg/belt"
	"github.com/matzehuels/beltgrid/pkg/observability"
)

// CalculatePosition returns candidate with the input side it would adopt if
// placed at (x, y). The grid is not modified and the output is never changed.
//
// A belt behind the candidate that already feeds straight into it wins.
// Otherwise a single side neighbor pointing into the tile becomes the input.
// When both sides or neither point in, the candidate keeps its input.
func (g *Grid) CalculatePosition(x, y int, candidate belt.Belt) belt.Belt {
	if behind := g.Behind(x, y, candidate); behind.OK && behind.Belt.Output == candidate.Input.Flip() {
		return candidate
	}

	left := g.Left(x, y, candidate)
	right := g.Right(x, y, candidate)
	leftIn := left.OK && left.Belt.Output == candidate.Output.RotateClockwise()
	rightIn := right.OK && right.Belt.Output == candidate.Output.RotateAntiClockwise()

	switch {
	case leftIn && !rightIn:
		candidate.Input = left.Belt.Output.Flip()
	case rightIn && !leftIn:
		candidate.Input = right.Belt.Output.Flip()
	}
	return candidate
}

// Place resolves candidate with CalculatePosition, reconciles the belt in
// front of it and writes the result at (x, y), replacing any previous belt.
// It returns the belt that was written. Placing outside the grid does nothing
// and returns candidate unchanged.
func (g *Grid) Place(x, y int, candidate belt.Belt) belt.Belt {
	if !InBounds(x, y) {
		return candidate
	}
	placed := g.CalculatePosition(x, y, candidate)

	if front := g.Front(x, y, placed); front.OK {
		if adjusted, ok := g.reconcileFront(front, placed); ok {
			g.Set(front.Pos.X, front.Pos.Y, adjusted)
			observability.Grid().OnAdjust(front.Pos.X, front.Pos.Y, front.Belt, adjusted)
		}
	}

	g.Set(x, y, placed)
	observability.Grid().OnPlace(x, y, placed)
	return placed
}

// reconcileFront decides how the belt in front of placed changes its input.
// The first matching rule wins:
//
//  1. A front belt fed from the side with nothing behind it is claimed.
//  2. A front belt turning into placed's output is straightened.
//  3. A front belt parallel to placed runs straight through.
func (g *Grid) reconcileFront(front Neighbor, placed belt.Belt) (belt.Belt, bool) {
	fb := front.Belt

	// Head-on belts cannot feed each other, so a claim never makes the front
	// belt's input equal its output.
	if placed.Output.Perpendicular(fb.Input) && fb.Output != placed.Output.Flip() &&
		!g.Behind(front.Pos.X, front.Pos.Y, fb).OK {
		fb.Input = placed.Output.Flip()
		return fb, true
	}

	if placed.Output.Perpendicular(fb.Output) {
		if fb.Input == placed.Output {
			fb.Input = fb.Output.Flip()
			return fb, true
		}
		return fb, false
	}

	if fb.Output == placed.Output && fb.Input != placed.Output.Flip() {
		fb.Input = fb.Output.Flip()
		return fb, true
	}
	return fb, false
}
