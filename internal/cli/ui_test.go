package cli

import (
	"bytes"
	"strings"
	"testing"
)

// captureStdout redirects the status printers to a buffer for one test.
func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })
	return &buf
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 << 20, "5.0 MiB"},
		{3 << 30, "3.0 GiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestPrintStats(t *testing.T) {
	tests := []struct {
		name     string
		belts    int
		adjusted int
		cached   bool
		want     []string
		absent   string
	}{
		{"fresh", 12, 0, false, []string{"12", "belts", "fresh"}, "adjusted"},
		{"cached with adjustments", 7, 2, true, []string{"7", "2", "adjusted", "cached"}, "fresh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureStdout(t)
			printStats(tt.belts, tt.adjusted, tt.cached)
			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("printStats() = %q, missing %q", out, w)
				}
			}
			if strings.Contains(out, tt.absent) {
				t.Errorf("printStats() = %q, should not contain %q", out, tt.absent)
			}
		})
	}
}

func TestPrintArtifactTable(t *testing.T) {
	buf := captureStdout(t)
	printArtifactTable([][]string{
		{"svg", "loop.svg", "2.1 KiB", iconCached},
		{"txt", "loop.txt", "96 B", iconFresh},
	})
	for _, want := range []string{"Format", "loop.svg", "loop.txt", "cached", "fresh"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("table missing %q:\n%s", want, buf.String())
		}
	}
}

func TestStatusLines(t *testing.T) {
	buf := captureStdout(t)
	printSuccess("Rendered %s", "loop.toml")
	printWarning("%d placement(s) outside the grid were ignored", 2)
	printNextStep("Preview live", "beltgrid serve loop.toml")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), buf.String())
	}
	if !strings.HasSuffix(lines[0], "Rendered loop.toml") {
		t.Errorf("success line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "2 placement(s)") {
		t.Errorf("warning line = %q", lines[1])
	}
	if !strings.Contains(lines[2], "beltgrid serve loop.toml") {
		t.Errorf("next step line = %q", lines[2])
	}
}
