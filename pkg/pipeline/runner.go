package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/beltgrid/pkg/cache"
	"github.com/matzehuels/beltgrid/pkg/grid"
	bgio "github.com/matzehuels/beltgrid/pkg/io"
	"github.com/matzehuels/beltgrid/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the build → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		ScriptHash: cache.HashScript(opts.Script),
	}

	// Stage 1: Build
	buildStart := time.Now()
	g, report, err := r.Build(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Grid = g
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.Belts = g.Len()
	result.Stats.addReport(report)

	r.Logger.Info("built grid",
		"steps", report.Steps,
		"belts", g.Len(),
		"adjusted", report.Adjusted,
		"duration", result.Stats.BuildTime)
	if report.Ignored > 0 {
		r.Logger.Warn("ignored out-of-range steps", "count", report.Ignored)
	}

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, hits, err := r.RenderWithCacheInfo(ctx, g, result.ScriptHash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.Hits = hits
	result.CacheInfo.RenderHit = len(hits) == len(opts.Formats)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", len(hits),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Build parses the script in opts and replays it onto a new grid.
func (r *Runner) Build(ctx context.Context, opts Options) (*grid.Grid, bgio.Report, error) {
	hooks := observability.Pipeline()
	start := time.Now()

	script, err := bgio.ParseScriptAs(opts.Script, opts.ScriptFormat)
	if err != nil {
		hooks.OnBuildComplete(ctx, 0, time.Since(start), err)
		return nil, bgio.Report{}, err
	}
	hooks.OnBuildStart(ctx, len(script.Steps))

	g, report := script.Build()
	hooks.OnBuildComplete(ctx, g.Len(), time.Since(start), nil)
	return g, report, nil
}

// RenderWithCacheInfo renders every format in opts, reading and writing the
// artifact cache under scriptHash. It returns the formats served from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *grid.Grid, scriptHash string, opts Options) (map[string][]byte, []string, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, err
	}

	hooks := observability.Pipeline()
	cacheHooks := observability.Cache()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(opts.Formats))
	var hits, missing []string

	for _, format := range opts.Formats {
		if !opts.Refresh {
			key := r.Keyer.ArtifactKey(scriptHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				cacheHooks.OnCacheHit(ctx, format)
				artifacts[format] = data
				hits = append(hits, format)
				continue
			}
			cacheHooks.OnCacheMiss(ctx, format)
		}
		missing = append(missing, format)
	}

	if len(missing) > 0 {
		rendered, err := renderFormats(ctx, g, opts, missing)
		if err != nil {
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, nil, err
		}
		for format, data := range rendered {
			artifacts[format] = data
			key := r.Keyer.ArtifactKey(scriptHash, opts.ArtifactKeyOpts(format))
			if err := r.Cache.Set(ctx, key, data, opts.TTL); err != nil {
				opts.Logger.Debug("cache write failed", "format", format, "error", err)
				continue
			}
			cacheHooks.OnCacheSet(ctx, format, len(data))
		}
	}

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return artifacts, hits, nil
}

// Render renders g without touching the cache.
func (r *Runner) Render(ctx context.Context, g *grid.Grid, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return Render(ctx, g, opts)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
