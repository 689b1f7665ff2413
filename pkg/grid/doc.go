// Package grid holds the fixed-size belt grid and the placement rules that
// keep a belt network consistent as new belts are laid down.
//
// # Storage
//
// A [Grid] is a dense row-major buffer of [Size]×[Size] optional belts. Any
// coordinate outside [0, Size) is permanently empty: [Grid.Get] reports no
// belt and [Grid.Set] does nothing. Placement rules rely on this to probe
// neighbors at the edge without special cases.
//
// # Neighbors
//
// Neighbors are named relative to a belt's output. The front cell is the one
// the output points into, the behind cell is the one the input faces, and
// left/right are the cells beside the belt as seen when travelling along the
// output:
//
//	output  left    right   front
//	West    (0,-1)  (0,+1)  (-1,0)
//	North   (-1,0)  (+1,0)  (0,+1)
//	East    (0,+1)  (0,-1)  (+1,0)
//	South   (+1,0)  (-1,0)  (0,-1)
//
// # Placement
//
// [Grid.CalculatePosition] picks the input side a belt should adopt from its
// neighbors without touching the grid, which makes it suitable for previews.
// [Grid.Place] runs the same resolution, may re-point the input of the belt in
// front, and then writes the belt:
//
//	g := grid.New()
//	g.Place(4, 5, belt.Belt{Input: belt.West, Output: belt.East})
//	g.Place(5, 5, belt.Belt{Input: belt.West, Output: belt.North})
//
// Clearing a tile never re-runs placement rules on its neighbors.
//
// A Grid is not safe for concurrent use. It is meant to be owned by a single
// update loop.
package grid
