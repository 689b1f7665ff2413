package io

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/beltgrid/pkg/belt"
	"github.com/matzehuels/beltgrid/pkg/errors"
	"github.com/matzehuels/beltgrid/pkg/grid"
)

func TestParseScript(t *testing.T) {
	src := `
name = "demo"

[[steps]]
op = "run"
x = 0
y = 5
output = "east"
length = 3

[[steps]]
op = "place"
x = 3
y = 5
output = "N"
input = "west"

[[steps]]
op = "clear"
x = 1
y = 5
`
	s, err := ParseScript([]byte(src))
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	if s.Name != "demo" {
		t.Errorf("Name = %q, want %q", s.Name, "demo")
	}
	if len(s.Steps) != 3 {
		t.Fatalf("len(Steps) = %d, want 3", len(s.Steps))
	}
	if got := s.Steps[1].Belt(); got != (belt.Belt{Input: belt.West, Output: belt.North}) {
		t.Errorf("Steps[1].Belt() = %v, want west→north", got)
	}
	if got := s.Steps[0].Belt(); got != belt.New() {
		t.Errorf("Steps[0].Belt() = %v, want west→east", got)
	}
}

func TestParseScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"bad toml", `[[steps]`, "decode script"},
		{"unknown key", "[[steps]]\nop = \"place\"\noutput = \"east\"\ncolour = 1", "unknown key"},
		{"bad direction", "[[steps]]\nop = \"place\"\noutput = \"up\"", "decode script"},
		{"missing op", "[[steps]]\nx = 1", "step 1: missing op"},
		{"unknown op", "[[steps]]\nop = \"rotate\"", `unknown op "rotate"`},
		{"missing output", "[[steps]]\nop = \"clear\"\n[[steps]]\nop = \"place\"", "step 2: place needs an output"},
		{"input equals output", "[[steps]]\nop = \"place\"\noutput = \"east\"\ninput = \"east\"", "input and output are both east"},
		{"zero length run", "[[steps]]\nop = \"run\"\noutput = \"east\"", "run length must be at least 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript([]byte(tt.src))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidScript) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidScript)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.want)
			}
		})
	}
}

func TestParseScriptYAML(t *testing.T) {
	src := `
name: demo
steps:
  - op: run
    x: 0
    y: 5
    output: east
    length: 3
  - {op: place, x: 3, y: 5, output: n, input: west}
  - {op: clear, x: 1, y: 5}
`
	s, err := ParseScriptAs([]byte(src), FormatYAML)
	if err != nil {
		t.Fatalf("ParseScriptAs: %v", err)
	}
	if s.Name != "demo" || len(s.Steps) != 3 {
		t.Fatalf("script = %q with %d steps, want demo with 3", s.Name, len(s.Steps))
	}
	if got := s.Steps[1].Belt(); got != (belt.Belt{Input: belt.West, Output: belt.North}) {
		t.Errorf("Steps[1].Belt() = %v, want west→north", got)
	}
	if s.Steps[0].Length != 3 {
		t.Errorf("Steps[0].Length = %d, want 3", s.Steps[0].Length)
	}
}

func TestParseScriptYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown key", "steps:\n  - {op: place, x: 1, y: 1, output: east, speed: 2}\n"},
		{"bad direction", "steps:\n  - {op: place, x: 1, y: 1, output: up}\n"},
		{"validation", "steps:\n  - {op: place, x: 1, y: 1}\n"},
		{"not a mapping", "- 1\n- 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScriptAs([]byte(tt.src), FormatYAML)
			if !errors.Is(err, errors.ErrCodeInvalidScript) {
				t.Errorf("ParseScriptAs() error = %v, want INVALID_SCRIPT", err)
			}
		})
	}
}

func TestParseScriptEmpty(t *testing.T) {
	for _, f := range []Format{FormatTOML, FormatYAML} {
		s, err := ParseScriptAs(nil, f)
		if err != nil {
			t.Errorf("ParseScriptAs(nil, %s) error = %v", f, err)
			continue
		}
		if len(s.Steps) != 0 {
			t.Errorf("ParseScriptAs(nil, %s) has %d steps, want 0", f, len(s.Steps))
		}
	}
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"loop.toml", FormatTOML},
		{"loop.yaml", FormatYAML},
		{"dir/LOOP.YML", FormatYAML},
		{"loop", FormatTOML},
	}
	for _, tt := range tests {
		if got := FormatForPath(tt.path); got != tt.want {
			t.Errorf("FormatForPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestLoadScriptYAMLMatchesTOML(t *testing.T) {
	yamlScript, err := LoadScript("../../examples/scripts/spiral.yaml")
	if err != nil {
		t.Fatalf("LoadScript(yaml): %v", err)
	}
	g, report := yamlScript.Build()
	if report.Placed != 24 {
		t.Errorf("Placed = %d, want 24", report.Placed)
	}
	if g.Len() != 24 {
		t.Errorf("Len() = %d, want 24", g.Len())
	}
	// The run leaving (16,10) northwards turns the corner belt.
	if got, _ := g.Get(16, 10); got != (belt.Belt{Input: belt.West, Output: belt.North}) {
		t.Errorf("corner (16,10) = %v, want west→north", got)
	}
}

func TestLoadScript(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "line.toml")
	if err := os.WriteFile(path, []byte("[[steps]]\nop = \"place\"\noutput = \"south\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadScript(path)
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if len(s.Steps) != 1 {
		t.Errorf("len(Steps) = %d, want 1", len(s.Steps))
	}

	_, err = LoadScript(filepath.Join(dir, "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}

	_, err = LoadScript("")
	if !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("empty path code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidPath)
	}
}

func TestReadScript(t *testing.T) {
	s, err := ReadScript(strings.NewReader("name = \"empty\""))
	if err != nil {
		t.Fatalf("ReadScript: %v", err)
	}
	if len(s.Steps) != 0 {
		t.Errorf("len(Steps) = %d, want 0", len(s.Steps))
	}
}

func TestApplyRunAndCorner(t *testing.T) {
	east, north := belt.East, belt.North
	s := &Script{Steps: []Step{
		{Op: OpRun, X: 0, Y: 5, Output: &east, Length: 5},
		{Op: OpPlace, X: 5, Y: 5, Output: &north},
	}}
	g, r := s.Build()

	if r.Steps != 2 || r.Placed != 6 || r.Ignored != 0 {
		t.Errorf("Report = %+v, want 2 steps, 6 placed", r)
	}
	if g.Len() != 6 {
		t.Errorf("Len() = %d, want 6", g.Len())
	}
	for x := 0; x < 5; x++ {
		if b, _ := g.Get(x, 5); b != belt.New() {
			t.Errorf("Get(%d, 5) = %v, want west→east", x, b)
		}
	}
	corner, ok := g.Get(5, 5)
	if !ok || corner != (belt.Belt{Input: belt.West, Output: belt.North}) {
		t.Errorf("corner = %v, want west→north", corner)
	}
	if corner.Turn() != belt.Left {
		t.Errorf("corner.Turn() = %v, want left", corner.Turn())
	}
}

func TestApplyCountsAdjustedFront(t *testing.T) {
	east, north := belt.East, belt.North
	s := &Script{Steps: []Step{
		{Op: OpPlace, X: 6, Y: 5, Output: &north},
		{Op: OpPlace, X: 5, Y: 5, Output: &east},
	}}
	g, r := s.Build()

	if r.Adjusted != 1 {
		t.Errorf("Adjusted = %d, want 1", r.Adjusted)
	}
	if b, _ := g.Get(6, 5); b != (belt.Belt{Input: belt.West, Output: belt.North}) {
		t.Errorf("front = %v, want west→north", b)
	}
}

func TestApplyIgnoresOutOfBounds(t *testing.T) {
	west := belt.West
	s := &Script{Steps: []Step{
		{Op: OpRun, X: 1, Y: 0, Output: &west, Length: 4},
		{Op: OpClear, X: -1, Y: 0},
		{Op: OpClear, X: 0, Y: 0},
		{Op: OpPlace, X: grid.Size, Y: 3, Output: &west},
	}}
	g, r := s.Build()

	want := Report{Steps: 4, Placed: 2, Cleared: 1, Ignored: 4}
	if r != want {
		t.Errorf("Report = %+v, want %+v", r, want)
	}
	if g.Len() != 1 {
		t.Errorf("Len() = %d, want 1", g.Len())
	}
	if _, ok := g.Get(1, 0); !ok {
		t.Error("expected belt at (1, 0)")
	}
}

func TestApplyDeterministic(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "examples", "scripts", "loop.toml"))
	if err != nil {
		t.Skipf("example script unavailable: %v", err)
	}
	s, err := ParseScript(data)
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	a, _ := s.Build()
	b, _ := s.Build()
	if *a != *b {
		t.Error("replaying the same script produced different grids")
	}
}
