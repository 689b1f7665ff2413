package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/beltgrid/pkg/belt"
	"github.com/matzehuels/beltgrid/pkg/grid"
	bgio "github.com/matzehuels/beltgrid/pkg/io"
	"github.com/matzehuels/beltgrid/pkg/observability"
	"github.com/matzehuels/beltgrid/pkg/render/term"
)

// Sandbox styles
var (
	sandboxHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	sandboxStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	sandboxModeStyle   = StyleSuccess.Bold(true)
)

// chromeLines is the number of terminal rows used around the grid view.
const chromeLines = 5

// playFlags holds the command-line flags for the play command.
type playFlags struct {
	saveJSON string
	plain    bool
}

// playCommand creates the interactive sandbox command.
func (c *CLI) playCommand() *cobra.Command {
	var f playFlags

	cmd := &cobra.Command{
		Use:   "play [script.toml|script.yaml]",
		Short: "Place belts interactively",
		Long: `Place belts interactively in the terminal.

Move the cursor with the arrow keys (or hjkl), rotate the belt in hand with r
and place it with enter. The faded belt under the cursor shows how it will
orient itself before you place it.

An optional script seeds the grid before the sandbox opens.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeScripts,
		RunE: func(cmd *cobra.Command, args []string) error {
			script := ""
			if len(args) == 1 {
				script = args[0]
			}
			return c.runPlay(cmd.Context(), script, f)
		},
	}

	cmd.Flags().StringVar(&f.saveJSON, "save-json", "", "write the final grid as JSON on exit")
	cmd.Flags().BoolVar(&f.plain, "plain", false, "disable colors")

	return cmd
}

// runPlay runs the sandbox until the user quits.
func (c *CLI) runPlay(ctx context.Context, script string, f playFlags) error {
	logger := loggerFromContext(ctx)

	g := grid.New()
	if script != "" {
		s, err := bgio.LoadScript(script)
		if err != nil {
			return err
		}
		r := s.Apply(g)
		logger.Debug("seeded grid", "script", script, "belts", g.Len(), "ignored", r.Ignored)
	}

	m := NewSandboxModel(g)
	m.ShowGrid = c.Config.ShowGrid
	m.ShowTiming = c.Config.ShowTiming
	m.Plain = f.plain

	// Grid hooks log every placement, which would tear the alt screen.
	defer observability.SwapGridHooks(observability.NoopGridHooks{})()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("sandbox: %w", err)
	}
	if fm, ok := final.(SandboxModel); ok {
		g = fm.Grid
	}

	printSuccess("Left sandbox with %s belts", StyleNumber.Render(fmt.Sprint(g.Len())))
	if f.saveJSON != "" {
		if err := bgio.ExportJSON(g, f.saveJSON); err != nil {
			return err
		}
		printFile(f.saveJSON)
	}
	return nil
}

// =============================================================================
// SandboxModel - Interactive belt placement
// =============================================================================

// SandboxModel is the bubbletea model for the belt sandbox.
type SandboxModel struct {
	Grid       *grid.Grid
	Cursor     grid.Pos
	Hand       belt.Belt
	Placing    bool
	ShowGrid   bool
	ShowTiming bool
	Plain      bool
	Viewport   term.Viewport
}

// NewSandboxModel creates a sandbox over g with the cursor in the middle of
// the grid and a west-to-east belt in hand.
func NewSandboxModel(g *grid.Grid) SandboxModel {
	center := grid.Pos{X: grid.Size / 2, Y: grid.Size / 2}
	m := SandboxModel{
		Grid:     g,
		Cursor:   center,
		Hand:     belt.New(),
		Placing:  true,
		ShowGrid: true,
		Viewport: term.Viewport{W: 32, H: 16},
	}
	m.Viewport = m.Viewport.Follow(center)
	return m
}

func (m SandboxModel) Init() tea.Cmd {
	return nil
}

func (m SandboxModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(belt.North)
		case "down", "j":
			m.move(belt.South)
		case "left", "h":
			m.move(belt.West)
		case "right", "l":
			m.move(belt.East)
		case "r":
			m.Hand = m.Hand.RotateClockwise()
		case " ":
			m.Placing = !m.Placing
		case "enter", "p":
			if m.Placing {
				m.Grid.Place(m.Cursor.X, m.Cursor.Y, m.Hand)
			}
		case "x", "backspace", "delete":
			m.Grid.Clear(m.Cursor.X, m.Cursor.Y)
		case "g":
			m.ShowGrid = !m.ShowGrid
		case "f":
			m.ShowTiming = !m.ShowTiming
		}
	case tea.WindowSizeMsg:
		m.Viewport.W = max(msg.Width/2, 1)
		m.Viewport.H = max(msg.Height-chromeLines, 1)
		m.Viewport = m.Viewport.Follow(m.Cursor)
	}
	return m, nil
}

// move steps the cursor one cell, staying on the grid.
func (m *SandboxModel) move(d belt.Direction) {
	next := m.Cursor.Add(d)
	if !grid.InBounds(next.X, next.Y) {
		return
	}
	m.Cursor = next
	m.Viewport = m.Viewport.Follow(next)
}

// Preview returns the belt that placing now would put under the cursor.
func (m SandboxModel) Preview() belt.Belt {
	return m.Grid.CalculatePosition(m.Cursor.X, m.Cursor.Y, m.Hand)
}

func (m SandboxModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Belt Sandbox"))
	b.WriteString("\n")
	b.WriteString(sandboxHelpStyle.Render("←↓↑→ move  r rotate  ⏎ place  x clear  space placing  g grid  f timing  q quit"))
	b.WriteString("\n\n")

	cursor := m.Cursor
	opts := term.Options{Plain: m.Plain, Grid: m.ShowGrid, Cursor: &cursor}
	if m.Placing {
		preview := m.Preview()
		opts.Ghost = &preview
	}

	start := time.Now()
	b.WriteString(term.Render(m.Grid, m.Viewport, opts))
	elapsed := time.Since(start)

	b.WriteString("\n")
	b.WriteString(m.status(elapsed))
	return b.String()
}

// status renders the line under the grid.
func (m SandboxModel) status(elapsed time.Duration) string {
	parts := []string{
		fmt.Sprintf("(%d,%d)", m.Cursor.X, m.Cursor.Y),
		"hand " + m.Hand.String(),
		fmt.Sprintf("%d belts", m.Grid.Len()),
	}
	if under, ok := m.Grid.Get(m.Cursor.X, m.Cursor.Y); ok {
		parts = append(parts, "under "+under.String())
	}
	if m.ShowTiming {
		parts = append(parts, "frame "+elapsed.Round(time.Microsecond).String())
	}
	line := sandboxStatusStyle.Render(strings.Join(parts, " · "))
	if m.Placing {
		line = sandboxModeStyle.Render("PLACING") + " " + line
	}
	return line
}
