package belt

import "fmt"

// Belt is a single conveyor tile. Items enter through Input and leave
// through Output.
type Belt struct {
	Input  Direction `json:"input" toml:"input"`
	Output Direction `json:"output" toml:"output"`
}

// New returns a straight belt running from West to East.
func New() Belt {
	return Belt{Input: West, Output: East}
}

// Straight returns the straight belt that leaves through out.
func Straight(out Direction) Belt {
	return Belt{Input: out.Flip(), Output: out}
}

// Valid reports whether the belt has a Turn.
func (b Belt) Valid() bool {
	return b.Input != b.Output
}

// Turn returns the belt's bend. It panics if Input equals Output.
func (b Belt) Turn() Turn {
	dir := b.Input
	for _, t := range []Turn{Left, Forward, Right} {
		dir = dir.RotateClockwise()
		if dir == b.Output {
			return t
		}
	}
	panic(fmt.Sprintf("belt: %s has no turn (input equals output)", b))
}

// RotateClockwise rotates both ends of the belt a quarter turn.
func (b Belt) RotateClockwise() Belt {
	return Belt{Input: b.Input.RotateClockwise(), Output: b.Output.RotateClockwise()}
}

func (b Belt) String() string {
	return b.Input.String() + "→" + b.Output.String()
}
