package io

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/beltgrid/pkg/belt"
	"github.com/matzehuels/beltgrid/pkg/errors"
	"github.com/matzehuels/beltgrid/pkg/grid"
)

// Op names a script step.
type Op string

const (
	OpPlace Op = "place"
	OpClear Op = "clear"
	OpRun   Op = "run"
)

// Step is a single scripted action.
type Step struct {
	Op     Op              `toml:"op" yaml:"op"`
	X      int             `toml:"x" yaml:"x"`
	Y      int             `toml:"y" yaml:"y"`
	Output *belt.Direction `toml:"output" yaml:"output"`
	Input  *belt.Direction `toml:"input" yaml:"input"`
	Length int             `toml:"length" yaml:"length"`
}

// Belt returns the candidate belt for a place or run step.
func (s Step) Belt() belt.Belt {
	if s.Output == nil {
		return belt.New()
	}
	b := belt.Straight(*s.Output)
	if s.Input != nil {
		b.Input = *s.Input
	}
	return b
}

// Script is an ordered list of placement steps.
type Script struct {
	Name  string `toml:"name" yaml:"name"`
	Steps []Step `toml:"steps" yaml:"steps"`
}

// Format is a script source syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the syntax from a file extension. Anything other than
// .yaml or .yml is TOML.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatTOML
}

// Report summarizes a script replay.
type Report struct {
	Steps    int // steps replayed
	Placed   int // belts written inside the grid
	Adjusted int // front neighbors re-pointed by a placement
	Cleared  int // clear steps inside the grid
	Ignored  int // placements or clears outside the grid
}

// ParseScript decodes and validates a TOML script.
func ParseScript(data []byte) (*Script, error) {
	return ParseScriptAs(data, FormatTOML)
}

// ParseScriptAs decodes and validates a script written in format.
// Unknown keys are rejected in both syntaxes.
func ParseScriptAs(data []byte, format Format) (*Script, error) {
	var s Script
	switch format {
	case FormatTOML, "":
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&s)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScript, err, "decode script")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidScript, "unknown key %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil && err != io.EOF {
			return nil, errors.Wrap(errors.ErrCodeInvalidScript, err, "decode script")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidScript, "unknown script format %q", format)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// ReadScript reads and parses a script from r. It does not close r.
func ReadScript(r io.Reader) (*Script, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScript, err, "read script")
	}
	return ParseScript(data)
}

// LoadScript reads and parses the script file at path, choosing the syntax
// from its extension.
func LoadScript(path string) (*Script, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "script %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	return ParseScriptAs(data, FormatForPath(path))
}

// Validate checks every step. Step numbers in errors are 1-based.
func (s *Script) Validate() error {
	for i, st := range s.Steps {
		n := i + 1
		switch st.Op {
		case OpPlace, OpRun:
			if st.Output == nil {
				return errors.New(errors.ErrCodeInvalidScript, "step %d: %s needs an output direction", n, st.Op)
			}
			if !st.Belt().Valid() {
				return errors.New(errors.ErrCodeInvalidScript, "step %d: input and output are both %s", n, *st.Output)
			}
			if st.Op == OpRun && st.Length < 1 {
				return errors.New(errors.ErrCodeInvalidScript, "step %d: run length must be at least 1", n)
			}
		case OpClear:
		case "":
			return errors.New(errors.ErrCodeInvalidScript, "step %d: missing op", n)
		default:
			return errors.New(errors.ErrCodeInvalidScript, "step %d: unknown op %q (must be place, clear or run)", n, st.Op)
		}
	}
	return nil
}

// Apply replays the script onto g.
func (s *Script) Apply(g *grid.Grid) Report {
	var r Report
	for _, st := range s.Steps {
		r.Steps++
		switch st.Op {
		case OpPlace:
			r.place(g, st.X, st.Y, st.Belt())
		case OpRun:
			b := st.Belt()
			p := grid.Pos{X: st.X, Y: st.Y}
			for i := 0; i < st.Length; i++ {
				r.place(g, p.X, p.Y, b)
				p = p.Add(b.Output)
			}
		case OpClear:
			if !grid.InBounds(st.X, st.Y) {
				r.Ignored++
				continue
			}
			g.Clear(st.X, st.Y)
			r.Cleared++
		}
	}
	return r
}

func (r *Report) place(g *grid.Grid, x, y int, b belt.Belt) {
	if !grid.InBounds(x, y) {
		r.Ignored++
		return
	}
	front := grid.Pos{X: x, Y: y}.Add(b.Output)
	before, _ := g.Get(front.X, front.Y)
	g.Place(x, y, b)
	r.Placed++
	if after, ok := g.Get(front.X, front.Y); ok && after != before {
		r.Adjusted++
	}
}

// Build replays the script onto a new grid.
func (s *Script) Build() (*grid.Grid, Report) {
	g := grid.New()
	return g, s.Apply(g)
}
