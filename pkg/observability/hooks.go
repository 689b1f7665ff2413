// Package observability lets the outer layers watch beltgrid without the
// inner packages importing a logger.
//
// Each event category has a hook interface, a no-op implementation and a
// process-wide slot. Package grid reports every placement, front adjustment
// and clear through [Grid]; the pipeline, cache and preview server report
// through [Pipeline], [Cache] and [HTTP]. The CLI fills the slots at startup:
//
//	observability.SetGridHooks(logHooks{logger})
//
// and a command that owns the terminal can mute a slot for its lifetime:
//
//	defer observability.SwapGridHooks(observability.NoopGridHooks{})()
//
// Grid hooks run synchronously inside placement calls and must not call back
// into the grid that emitted them.
package observability

import (
	"context"
	"sync"
	"time"

	"github.com/matzehuels/beltgrid/pkg/belt"
)

// GridHooks receives events from belt placement on a grid.
type GridHooks interface {
	// OnPlace reports the belt written at (x, y) after auto-orientation.
	OnPlace(x, y int, placed belt.Belt)
	// OnAdjust reports a front belt whose input a placement changed.
	OnAdjust(x, y int, before, after belt.Belt)
	// OnClear reports a cleared cell; had is false if it was already empty.
	OnClear(x, y int, had bool)
}

// PipelineHooks receives the stages of a script → grid → artifacts run.
type PipelineHooks interface {
	OnBuildStart(ctx context.Context, steps int)
	OnBuildComplete(ctx context.Context, belts int, duration time.Duration, err error)
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives artifact cache lookups and writes, keyed by format.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, format string)
	OnCacheMiss(ctx context.Context, format string)
	OnCacheSet(ctx context.Context, format string, size int)
}

// HTTPHooks receives preview server traffic.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, status int, duration time.Duration)
}

type NoopGridHooks struct{}

func (NoopGridHooks) OnPlace(int, int, belt.Belt)             {}
func (NoopGridHooks) OnAdjust(int, int, belt.Belt, belt.Belt) {}
func (NoopGridHooks) OnClear(int, int, bool)                  {}

type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnBuildStart(context.Context, int)                                {}
func (NoopPipelineHooks) OnBuildComplete(context.Context, int, time.Duration, error)       {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// slot holds the registered hooks of one category.
type slot[T any] struct {
	mu   sync.RWMutex
	cur  T
	noop T
}

func newSlot[T any](noop T) *slot[T] {
	return &slot[T]{cur: noop, noop: noop}
}

func (s *slot[T]) get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// set installs h; a nil h is ignored.
func (s *slot[T]) set(h T) {
	if any(h) == nil {
		return
	}
	s.mu.Lock()
	s.cur = h
	s.mu.Unlock()
}

// swap installs h and returns a func that puts the previous hooks back.
func (s *slot[T]) swap(h T) (restore func()) {
	prev := s.get()
	s.set(h)
	return func() { s.set(prev) }
}

func (s *slot[T]) reset() {
	s.mu.Lock()
	s.cur = s.noop
	s.mu.Unlock()
}

var (
	gridSlot     = newSlot[GridHooks](NoopGridHooks{})
	pipelineSlot = newSlot[PipelineHooks](NoopPipelineHooks{})
	cacheSlot    = newSlot[CacheHooks](NoopCacheHooks{})
	httpSlot     = newSlot[HTTPHooks](NoopHTTPHooks{})
)

func Grid() GridHooks         { return gridSlot.get() }
func Pipeline() PipelineHooks { return pipelineSlot.get() }
func Cache() CacheHooks       { return cacheSlot.get() }
func HTTP() HTTPHooks         { return httpSlot.get() }

func SetGridHooks(h GridHooks)         { gridSlot.set(h) }
func SetPipelineHooks(h PipelineHooks) { pipelineSlot.set(h) }
func SetCacheHooks(h CacheHooks)       { cacheSlot.set(h) }
func SetHTTPHooks(h HTTPHooks)         { httpSlot.set(h) }

// SwapGridHooks installs h until the returned func is called.
func SwapGridHooks(h GridHooks) (restore func()) { return gridSlot.swap(h) }

// SwapPipelineHooks installs h until the returned func is called.
func SwapPipelineHooks(h PipelineHooks) (restore func()) { return pipelineSlot.swap(h) }

// Reset restores every category to its no-op hooks.
func Reset() {
	gridSlot.reset()
	pipelineSlot.reset()
	cacheSlot.reset()
	httpSlot.reset()
}
