package belt

import "testing"

func TestNew(t *testing.T) {
	b := New()
	if b.Input != West || b.Output != East {
		t.Errorf("New() = %v, want west→east", b)
	}
	if b.Turn() != Forward {
		t.Errorf("New().Turn() = %v, want forward", b.Turn())
	}
}

func TestTurn(t *testing.T) {
	for _, in := range Directions() {
		tests := []struct {
			out  Direction
			want Turn
		}{
			{in.RotateClockwise(), Left},
			{in.Flip(), Forward},
			{in.RotateAntiClockwise(), Right},
		}
		for _, tt := range tests {
			b := Belt{Input: in, Output: tt.out}
			if got := b.Turn(); got != tt.want {
				t.Errorf("%v.Turn() = %v, want %v", b, got, tt.want)
			}
		}
	}
}

func TestTurnExamples(t *testing.T) {
	tests := []struct {
		b    Belt
		want Turn
	}{
		{Belt{Input: South, Output: West}, Left},
		{Belt{Input: South, Output: North}, Forward},
		{Belt{Input: South, Output: East}, Right},
		{Belt{Input: West, Output: North}, Left},
	}
	for _, tt := range tests {
		if got := tt.b.Turn(); got != tt.want {
			t.Errorf("%v.Turn() = %v, want %v", tt.b, got, tt.want)
		}
	}
}

func TestTurnPanicsWithoutTurn(t *testing.T) {
	for _, d := range Directions() {
		b := Belt{Input: d, Output: d}
		if b.Valid() {
			t.Errorf("%v.Valid() = true, want false", b)
		}
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%v.Turn() did not panic", b)
				}
			}()
			_ = b.Turn()
		}()
	}
}

func TestBeltRotateClockwise(t *testing.T) {
	b := New().RotateClockwise()
	if b.Input != North || b.Output != South {
		t.Errorf("RotateClockwise() = %v, want north→south", b)
	}
	if b.Turn() != Forward {
		t.Errorf("rotated belt should stay forward, got %v", b.Turn())
	}
}

func TestStraight(t *testing.T) {
	for _, d := range Directions() {
		b := Straight(d)
		if b.Output != d || b.Turn() != Forward {
			t.Errorf("Straight(%v) = %v", d, b)
		}
	}
}

func TestBeltString(t *testing.T) {
	if got := New().String(); got != "west→east" {
		t.Errorf("String() = %q", got)
	}
}
