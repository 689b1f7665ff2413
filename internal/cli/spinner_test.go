package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/beltgrid/pkg/observability"
)

func TestSpinnerDrawsStatus(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinnerTo(context.Background(), &buf, true, "Rendering loop.toml...")
	s.Start()
	time.Sleep(3 * spinnerInterval)
	s.Stop()

	out := buf.String()
	if !strings.Contains(out, "Rendering loop.toml...") {
		t.Errorf("output %q does not contain the status", out)
	}
	if !strings.HasSuffix(out, "\r") {
		t.Errorf("output %q does not end by clearing the line", out)
	}
}

func TestSpinnerSilentWithoutTerminal(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinnerTo(context.Background(), &buf, false, "Rendering...")
	s.Start()
	time.Sleep(2 * spinnerInterval)
	s.Stop()

	if buf.Len() != 0 {
		t.Errorf("output = %q, want nothing", buf.String())
	}
}

func TestSpinnerStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerTo(ctx, &bytes.Buffer{}, true, "Rendering...")
	s.Start()
	cancel()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop() blocked after the context was cancelled")
	}
}

func TestSpinnerStop(t *testing.T) {
	t.Run("repeated", func(t *testing.T) {
		s := newSpinnerTo(context.Background(), &bytes.Buffer{}, true, "Rendering...")
		s.Start()
		s.Stop()
		s.Stop()
	})
	t.Run("never started", func(t *testing.T) {
		s := newSpinnerTo(context.Background(), &bytes.Buffer{}, true, "Rendering...")
		s.Stop()
	})
	t.Run("with error", func(t *testing.T) {
		s := newSpinnerTo(context.Background(), &bytes.Buffer{}, false, "Rendering...")
		s.Start()
		s.StopWithError("Render failed")
	})
}

func TestSpinnerFollowsPipeline(t *testing.T) {
	s := newSpinnerTo(context.Background(), &bytes.Buffer{}, false, "Reading loop.toml...")
	observability.SetPipelineHooks(s)
	t.Cleanup(observability.Reset)

	hooks := observability.Pipeline()
	hooks.OnBuildStart(context.Background(), 4)
	if got, want := s.Status(), "Placing 4 step(s)..."; got != want {
		t.Errorf("Status() after build start = %q, want %q", got, want)
	}
	hooks.OnRenderStart(context.Background(), []string{"png", "pdf"})
	if got, want := s.Status(), "Rendering png, pdf..."; got != want {
		t.Errorf("Status() after render start = %q, want %q", got, want)
	}
}
