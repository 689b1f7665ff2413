package belt

import (
	"strings"

	"github.com/matzehuels/beltgrid/pkg/errors"
)

// Direction is one of the four compass directions a belt side can face.
type Direction uint8

const (
	West Direction = iota
	North
	East
	South
)

// Directions returns all directions in clockwise order starting at West.
func Directions() []Direction {
	return []Direction{West, North, East, South}
}

// RotateClockwise returns the next direction clockwise.
func (d Direction) RotateClockwise() Direction {
	switch d {
	case West:
		return North
	case North:
		return East
	case East:
		return South
	default:
		return West
	}
}

// RotateAntiClockwise returns the next direction anti-clockwise.
func (d Direction) RotateAntiClockwise() Direction {
	switch d {
	case West:
		return South
	case North:
		return West
	case East:
		return North
	default:
		return East
	}
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	return d.RotateClockwise().RotateClockwise()
}

// Perpendicular reports whether d and o lie on different axes.
func (d Direction) Perpendicular(o Direction) bool {
	return o == d.RotateClockwise() || o == d.RotateAntiClockwise()
}

// Delta returns the cell offset one step in direction d.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case West:
		return -1, 0
	case North:
		return 0, 1
	case East:
		return 1, 0
	default:
		return 0, -1
	}
}

func (d Direction) String() string {
	switch d {
	case West:
		return "west"
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	}
	return "unknown"
}

// ParseDirection parses a direction name. Matching is case-insensitive and
// accepts the single-letter shorthands w, n, e and s.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "west", "w":
		return West, nil
	case "north", "n":
		return North, nil
	case "east", "e":
		return East, nil
	case "south", "s":
		return South, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidDirection, "unknown direction %q (must be west, north, east or south)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	if d > South {
		return nil, errors.New(errors.ErrCodeInvalidDirection, "invalid direction value %d", uint8(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
