// Package term draws belt grids as text.
//
// Every cell is two runes wide: a path rune joining the input side to the
// output side and an arrow pointing at the output.
//
//	─→   │↑   ┘←   └→   ┌↓
//
// North is up. [Render] draws a [Viewport] of the grid for the interactive
// sandbox, with optional cursor highlight, ghost preview and dotted grid.
// [RenderAll] draws the occupied area for files and pipes. With
// [Options.Plain] the output carries no terminal styling.
package term
