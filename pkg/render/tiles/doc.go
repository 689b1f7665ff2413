// Package tiles renders a belt grid as an SVG picture.
//
// Three sprites, one per [belt.Turn], are defined once in <defs>. Each is
// drawn for a belt entering from the bottom edge (input south) and every
// belt on the grid is a single <use> of its sprite rotated by the input
// side: south 0°, west 90°, north 180°, east 270°.
//
// North is up. By default the image is cropped to the occupied cells plus a
// one-tile margin; [WithFullGrid] frames the whole 128×128 grid instead.
//
//	svg := tiles.RenderSVG(g, tiles.WithTileSize(32), tiles.WithGridLines())
//
// [belt.Turn]: github.com/matzehuels/beltgrid/pkg/belt.Turn
package tiles
