package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/beltgrid/pkg/belt"
	"github.com/matzehuels/beltgrid/pkg/grid"
)

type snapshot struct {
	Size  int         `json:"size"`
	Belts []beltEntry `json:"belts"`
}

type beltEntry struct {
	X      int            `json:"x"`
	Y      int            `json:"y"`
	Input  belt.Direction `json:"input"`
	Output belt.Direction `json:"output"`
	Turn   belt.Turn      `json:"turn"`
}

// WriteJSON encodes the occupied cells of g as JSON and writes them to w.
func WriteJSON(g *grid.Grid, w io.Writer) error {
	out := snapshot{Size: grid.Size, Belts: make([]beltEntry, 0, g.Len())}
	for p, b := range g.All() {
		out.Belts = append(out.Belts, beltEntry{
			X:      p.X,
			Y:      p.Y,
			Input:  b.Input,
			Output: b.Output,
			Turn:   b.Turn(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes g to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *grid.Grid, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}
