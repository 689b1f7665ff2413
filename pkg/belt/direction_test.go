package belt

import (
	"encoding/json"
	"testing"

	"github.com/matzehuels/beltgrid/pkg/errors"
)

func TestRotateClockwise(t *testing.T) {
	tests := []struct {
		in, want Direction
	}{
		{West, North},
		{North, East},
		{East, South},
		{South, West},
	}

	for _, tt := range tests {
		if got := tt.in.RotateClockwise(); got != tt.want {
			t.Errorf("%v.RotateClockwise() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRotationInverses(t *testing.T) {
	for _, d := range Directions() {
		if got := d.RotateClockwise().RotateAntiClockwise(); got != d {
			t.Errorf("%v cw then anti-cw = %v", d, got)
		}
		if got := d.RotateAntiClockwise().RotateClockwise(); got != d {
			t.Errorf("%v anti-cw then cw = %v", d, got)
		}
		if got := d.Flip().Flip(); got != d {
			t.Errorf("%v flipped twice = %v", d, got)
		}
		got := d
		for i := 0; i < 4; i++ {
			got = got.RotateClockwise()
		}
		if got != d {
			t.Errorf("%v rotated four times = %v", d, got)
		}
	}
}

func TestFlip(t *testing.T) {
	tests := map[Direction]Direction{
		West:  East,
		North: South,
		East:  West,
		South: North,
	}
	for in, want := range tests {
		if got := in.Flip(); got != want {
			t.Errorf("%v.Flip() = %v, want %v", in, got, want)
		}
	}
}

func TestPerpendicular(t *testing.T) {
	if !North.Perpendicular(East) || !North.Perpendicular(West) {
		t.Error("North should be perpendicular to East and West")
	}
	if North.Perpendicular(South) || North.Perpendicular(North) {
		t.Error("North should not be perpendicular to North or South")
	}
}

func TestDelta(t *testing.T) {
	tests := []struct {
		d      Direction
		dx, dy int
	}{
		{West, -1, 0},
		{North, 0, 1},
		{East, 1, 0},
		{South, 0, -1},
	}
	for _, tt := range tests {
		dx, dy := tt.d.Delta()
		if dx != tt.dx || dy != tt.dy {
			t.Errorf("%v.Delta() = (%d,%d), want (%d,%d)", tt.d, dx, dy, tt.dx, tt.dy)
		}
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input   string
		want    Direction
		wantErr bool
	}{
		{"west", West, false},
		{"North", North, false},
		{" EAST ", East, false},
		{"s", South, false},
		{"n", North, false},
		{"up", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDirection(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDirection(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidDirection) {
					t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidDirection)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseDirection(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDirectionJSON(t *testing.T) {
	data, err := json.Marshal(New())
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(data) != `{"input":"west","output":"east"}` {
		t.Errorf("Marshal = %s", data)
	}

	var b Belt
	if err := json.Unmarshal([]byte(`{"input":"south","output":"n"}`), &b); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if b.Input != South || b.Output != North {
		t.Errorf("Unmarshal = %v, want south→north", b)
	}

	if err := json.Unmarshal([]byte(`{"input":"sideways"}`), &b); err == nil {
		t.Error("Unmarshal should reject unknown direction")
	}
}
