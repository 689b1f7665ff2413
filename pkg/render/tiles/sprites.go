package tiles

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/beltgrid/pkg/belt"
)

// spriteSize is the side of the square sprites are drawn in.
const spriteSize = 32

var spriteIDs = map[belt.Turn]string{
	belt.Left:    "belt-left",
	belt.Forward: "belt-forward",
	belt.Right:   "belt-right",
}

// Each sprite is a 20-unit wide track from the bottom edge to the output
// edge, a dashed centre line and an arrowhead at the output.
var sprites = map[belt.Turn]struct{ track, arrow string }{
	belt.Forward: {
		track: "M16 32 L16 0",
		arrow: "M10 13 L16 6 L22 13",
	},
	belt.Left: {
		track: "M16 32 A16 16 0 0 0 0 16",
		arrow: "M13 10 L6 16 L13 22",
	},
	belt.Right: {
		track: "M16 32 A16 16 0 0 1 32 16",
		arrow: "M19 10 L26 16 L19 22",
	},
}

// rotation returns the angle, in degrees clockwise, that turns a sprite drawn
// for input south into one for input d.
func rotation(d belt.Direction) int {
	switch d {
	case belt.West:
		return 90
	case belt.North:
		return 180
	case belt.East:
		return 270
	}
	return 0
}

func writeDefs(buf *bytes.Buffer) {
	buf.WriteString("  <defs>\n")
	for _, t := range []belt.Turn{belt.Left, belt.Forward, belt.Right} {
		s := sprites[t]
		fmt.Fprintf(buf, "    <g id=%q>\n", spriteIDs[t])
		fmt.Fprintf(buf, "      <path d=%q class=\"track\"/>\n", s.track)
		fmt.Fprintf(buf, "      <path d=%q class=\"lane\"/>\n", s.track)
		fmt.Fprintf(buf, "      <path d=%q class=\"arrow\"/>\n", s.arrow)
		buf.WriteString("    </g>\n")
	}
	buf.WriteString("  </defs>\n")
}

const spriteCSS = `
    .bg { fill: #f8fafc; }
    .gridline { stroke: #cbd5e1; stroke-width: 1; fill: none; }
    .track { fill: none; stroke: #475569; stroke-width: 20; }
    .lane { fill: none; stroke: #facc15; stroke-width: 2; stroke-dasharray: 4 4; }
    .arrow { fill: none; stroke: #f8fafc; stroke-width: 3; stroke-linecap: round; stroke-linejoin: round; }
    .ghost { opacity: 0.4; }`
