// Package cli implements the beltgrid command-line interface.
//
// # Commands
//
//   - play: place and clear belts interactively in the terminal
//   - render: render a placement script to SVG, PNG, PDF, JSON, DOT or text
//   - serve: serve live previews of a script over HTTP
//   - cache: inspect and clear the render cache
//   - completion: generate shell completion scripts
//
// # Logging
//
// Commands log through charmbracelet/log. The logger travels in the command
// context, prefixed with the command name. --verbose lowers the level to
// debug, which also logs every placement, front adjustment and cache lookup
// through the observability hooks.
package cli
