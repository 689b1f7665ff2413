package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/beltgrid/pkg/errors"
)

func TestRootCommandTree(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()

	want := map[string]string{
		"play":       "grid",
		"render":     "grid",
		"serve":      "grid",
		"cache":      "tools",
		"completion": "tools",
	}
	for _, cmd := range root.Commands() {
		group, ok := want[cmd.Name()]
		if !ok {
			continue
		}
		if cmd.GroupID != group {
			t.Errorf("%s group = %q, want %q", cmd.Name(), cmd.GroupID, group)
		}
		delete(want, cmd.Name())
	}
	for name := range want {
		t.Errorf("command %q not registered", name)
	}
}

func TestRootCommandLoadsConfig(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("tile_size = 48\nshow_grid = false\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(&bytes.Buffer{}, LogInfo)
	root := c.RootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--config", path, "cache", "path"})
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if c.Config.TileSize != 48 || c.Config.ShowGrid {
		t.Errorf("Config = %+v, want tile_size 48 without grid", c.Config)
	}
	if opts := c.pipelineOptions(); opts.TileSize != 48 || opts.GridLines {
		t.Errorf("pipelineOptions() = %+v, want config values", opts)
	}
}

func TestRootCommandBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("tile_size = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--config", path, "cache", "path"})
	err := root.Execute()
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Fatalf("Execute() error = %v, want INVALID_CONFIG", err)
	}
	if !strings.Contains(errors.UserMessage(err), "tile_size") {
		t.Errorf("UserMessage() = %q, want the offending key", errors.UserMessage(err))
	}
}

func TestNewRunnerWithoutCache(t *testing.T) {
	r, err := New(&bytes.Buffer{}, LogInfo).newRunner(true, nil)
	if err != nil {
		t.Fatalf("newRunner: %v", err)
	}
	defer r.Close()
	if r.Cache == nil {
		t.Error("runner has no cache, want the null cache")
	}
}
