// Package pkg provides the core libraries for the Beltgrid conveyor sandbox.
//
// # Overview
//
// Beltgrid keeps conveyor belts on a fixed 128×128 grid. Each belt has an
// input side and an output side; placing a belt orients it from its
// neighbors and may re-point the belt in front of it. The pkg directory is
// organized into three areas:
//
//  1. Domain: [belt] and [grid] (directions, belts, placement rules)
//  2. Output: [io] and [render] (scripts, JSON, SVG, DOT, text)
//  3. Orchestration: [pipeline], [cache] and [config]
//
// # Architecture
//
// The typical data flow through Beltgrid:
//
//	TOML/YAML placement script
//	         ↓
//	    [io] package (parse, validate, replay)
//	         ↓
//	    [grid] package (auto-orienting placement)
//	         ↓
//	    [render] packages (tiles, nodelink, term)
//	         ↓
//	    SVG/PNG/PDF/JSON/DOT/text output
//
// # Quick Start
//
// Place a few belts and draw them as text:
//
//	import (
//	    "github.com/matzehuels/beltgrid/pkg/belt"
//	    "github.com/matzehuels/beltgrid/pkg/grid"
//	    "github.com/matzehuels/beltgrid/pkg/render/term"
//	)
//
//	g := grid.New()
//	g.Place(0, 0, belt.Straight(belt.East))
//	g.Place(1, 0, belt.Straight(belt.North))
//	fmt.Print(term.RenderAll(g, term.Options{Plain: true}))
//
// # Main Packages
//
// [belt] - Directions, turns and the belt value type.
//
// [grid] - The 128×128 grid, neighbor lookup, CalculatePosition and Place.
//
// [io] - Placement scripts (TOML or YAML), JSON export and its JSON Schema.
//
// [render] - SVG to PDF/PNG conversion. Subpackages draw the grid:
//
//   - [render/tiles]: sprite-based SVG tile picture
//   - [render/nodelink]: feed network as DOT, laid out by Graphviz
//   - [render/term]: two characters per cell, for terminals and files
//
// [pipeline] - Build then render with caching, shared by the render and serve
// commands.
//
// [cache] - File-backed, zstd-compressed artifact cache with TTLs.
//
// [config] - User configuration file.
//
// [observability] - Hooks for grid, pipeline, cache and HTTP events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/grid/...       # Specific package
//
// [belt]: https://pkg.go.dev/github.com/matzehuels/beltgrid/pkg/belt
// [grid]: https://pkg.go.dev/github.com/matzehuels/beltgrid/pkg/grid
// [io]: https://pkg.go.dev/github.com/matzehuels/beltgrid/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/beltgrid/pkg/render
// [render/tiles]: https://pkg.go.dev/github.com/matzehuels/beltgrid/pkg/render/tiles
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/beltgrid/pkg/render/nodelink
// [render/term]: https://pkg.go.dev/github.com/matzehuels/beltgrid/pkg/render/term
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/beltgrid/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/beltgrid/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/beltgrid/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/beltgrid/pkg/observability
package pkg
