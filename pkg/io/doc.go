// Package io reads placement scripts and writes grid snapshots.
//
// # Scripts
//
// A script is a TOML document listing placement steps. Steps are replayed in
// order onto a fresh grid through the same placement rules the interactive
// sandbox uses, so a script reproduces exactly what a player clicking the
// same cells in the same order would get.
//
//	name = "merge demo"
//
//	[[steps]]
//	op = "run"          # place the same belt on consecutive cells
//	x = 0
//	y = 5
//	output = "east"
//	length = 5
//
//	[[steps]]
//	op = "place"
//	x = 5
//	y = 5
//	output = "north"
//	input = "west"      # optional, defaults to the side opposite output
//
//	[[steps]]
//	op = "clear"
//	x = 2
//	y = 5
//
// The same script can be written in YAML; [LoadScript] picks the syntax from
// the file extension (.yaml or .yml):
//
//	name: merge demo
//	steps:
//	  - {op: run, x: 0, y: 5, output: east, length: 5}
//	  - {op: clear, x: 2, y: 5}
//
// Directions accept west, north, east, south and their first letters.
// A step whose input equals its output is rejected, since such a belt has
// no turn and could never be drawn.
//
// # Export
//
// [WriteJSON] emits the occupied cells in row-major order:
//
//	{
//	  "size": 128,
//	  "belts": [
//	    {"x": 0, "y": 5, "input": "west", "output": "east", "turn": "forward"}
//	  ]
//	}
//
// [Schema] is the JSON Schema of this document and [ValidateJSON] checks a
// document against it. The export is an output artifact for other tools. Grids are always rebuilt
// from scripts; there is no JSON import.
package io
