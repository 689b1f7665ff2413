package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/matzehuels/beltgrid/pkg/observability"
)

const spinnerInterval = 80 * time.Millisecond

var spinnerFrames = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

// Spinner animates a status line on a terminal while a render runs. It
// implements observability.PipelineHooks, so installing it as the pipeline
// hook makes the line follow the build and render stages.
type Spinner struct {
	observability.NoopPipelineHooks

	out     io.Writer
	animate bool

	mu      sync.Mutex
	status  string
	started time.Time
	width   int

	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
	once    sync.Once
}

// newSpinner returns a stderr spinner that stops with ctx. It draws nothing
// when stderr is not a terminal.
func newSpinner(ctx context.Context, status string) *Spinner {
	return newSpinnerTo(ctx, os.Stderr, isTerminal(os.Stderr), status)
}

func newSpinnerTo(ctx context.Context, w io.Writer, animate bool, status string) *Spinner {
	ctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		out:     w,
		animate: animate,
		status:  status,
		ctx:     ctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Start draws a frame every spinnerInterval until Stop or ctx ends.
func (s *Spinner) Start() {
	s.mu.Lock()
	s.started = time.Now()
	s.mu.Unlock()

	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()
		for frame := 0; ; frame++ {
			select {
			case <-s.ctx.Done():
				s.clear()
				return
			case <-ticker.C:
				s.draw(spinnerFrames[frame%len(spinnerFrames)])
			}
		}
	}()
}

// SetStatus replaces the text next to the spinner.
func (s *Spinner) SetStatus(format string, args ...any) {
	s.mu.Lock()
	s.status = fmt.Sprintf(format, args...)
	s.mu.Unlock()
}

// Status returns the current text.
func (s *Spinner) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Spinner) draw(frame rune) {
	if !s.animate {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	line := fmt.Sprintf("%s %s %s",
		styleIconSpinner.Render(string(frame)),
		StyleDim.Render(s.status),
		StyleDim.Render(time.Since(s.started).Truncate(100*time.Millisecond).String()))
	// Pad over a longer previous status.
	pad := max(s.width-len(line), 0)
	s.width = len(line)
	fmt.Fprintf(s.out, "\r%s%s", line, strings.Repeat(" ", pad))
}

func (s *Spinner) clear() {
	if !s.animate {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", s.width))
	}
}

// Stop ends the animation and clears the line. Repeated calls are no-ops.
func (s *Spinner) Stop() {
	s.once.Do(s.cancel)
	s.mu.Lock()
	running := !s.started.IsZero()
	s.mu.Unlock()
	if running {
		<-s.stopped
	}
}

// StopWithError stops the spinner and prints message as an error.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// OnBuildStart implements observability.PipelineHooks.
func (s *Spinner) OnBuildStart(_ context.Context, steps int) {
	s.SetStatus("Placing %d step(s)...", steps)
}

// OnRenderStart implements observability.PipelineHooks.
func (s *Spinner) OnRenderStart(_ context.Context, formats []string) {
	s.SetStatus("Rendering %s...", strings.Join(formats, ", "))
}
