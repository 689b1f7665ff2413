package belt

// Turn classifies how a belt bends between its input and output.
type Turn uint8

const (
	Left Turn = iota
	Forward
	Right
)

func (t Turn) String() string {
	switch t {
	case Left:
		return "left"
	case Forward:
		return "forward"
	case Right:
		return "right"
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (t Turn) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
