package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// stdout receives every human-facing line. Tests swap it for a buffer.
var stdout io.Writer = os.Stdout

// Palette, ANSI 256 colors.
var (
	colorTeal  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorAmber = lipgloss.Color("220")
	colorRed   = lipgloss.Color("167")
	colorBlue  = lipgloss.Color("75")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

// Styles shared with the sandbox view.
var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorTeal)
	StyleLink    = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber  = lipgloss.NewStyle().Foreground(colorTeal)
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	StyleWarning = lipgloss.NewStyle().Foreground(colorAmber)
)

var (
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorTeal)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleCached      = lipgloss.NewStyle().Foreground(colorGreen)
)

const (
	iconArrow  = "→"
	iconCached = "cached"
	iconFresh  = "fresh"
)

// statusIcons pairs each status line kind with its glyph.
var statusIcons = map[string]string{
	"success": lipgloss.NewStyle().Foreground(colorGreen).Render("✓"),
	"error":   lipgloss.NewStyle().Foreground(colorRed).Render("✗"),
	"warning": lipgloss.NewStyle().Foreground(colorAmber).Render("!"),
	"info":    lipgloss.NewStyle().Foreground(colorGray).Render("›"),
}

func printStatus(kind string, msg string) {
	fmt.Fprintln(stdout, statusIcons[kind]+" "+msg)
}

func printSuccess(format string, args ...any) {
	printStatus("success", fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	printStatus("error", fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	printStatus("warning", StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	printStatus("info", fmt.Sprintf(format, args...))
}

// printDetail prints an indented, muted line under a status line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints the path of a written artifact.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printStats prints "N belts · M adjusted · cached|fresh" for a build.
func printStats(belts, adjusted int, cached bool) {
	sep := StyleDim.Render(" · ")
	parts := []string{StyleNumber.Render(fmt.Sprint(belts)) + StyleDim.Render(" belts")}
	if adjusted > 0 {
		parts = append(parts, StyleNumber.Render(fmt.Sprint(adjusted))+StyleDim.Render(" adjusted"))
	}
	if cached {
		parts = append(parts, styleCached.Render(iconCached))
	} else {
		parts = append(parts, StyleDim.Render(iconFresh))
	}
	fmt.Fprintln(stdout, "  "+strings.Join(parts, sep))
}

// printArtifactTable prints one row per written artifact: format, file,
// size and whether it came from the cache.
func printArtifactTable(rows [][]string) {
	header := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("Format", "File", "Size", "Source").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1: // header
				return header
			case col == 1:
				return StyleValue
			case col == 3 && rows[row][3] == iconCached:
				return styleCached
			}
			return StyleDim
		})
	fmt.Fprintln(stdout, t.Render())
}

// formatBytes renders n with a binary unit: "512 B", "1.5 KiB".
func formatBytes(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	v := float64(n)
	for _, unit := range []string{"KiB", "MiB", "GiB"} {
		v /= 1024
		if v < 1024 {
			return fmt.Sprintf("%.1f %s", v, unit)
		}
	}
	return fmt.Sprintf("%.1f TiB", v/1024)
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}
