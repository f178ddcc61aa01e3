package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/reeflab/reefplan/pkg/bench"
	"github.com/reeflab/reefplan/pkg/cache"
	"github.com/reeflab/reefplan/pkg/io"
	"github.com/reeflab/reefplan/pkg/observability"
	"github.com/reeflab/reefplan/pkg/solve"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
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

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this pipeline run.
	RunID string

	// Allocation is the solved fragment allocation.
	Allocation *solve.Allocation

	// AllocationHash is the content hash of the allocation.
	AllocationHash string

	// Layout is the placed site grid.
	Layout *io.Layout

	// Benchmarks compares expected densities against restoration guidelines.
	Benchmarks []bench.Benchmark

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	FormCount  int
	TotalUnits int // allocated fragments
	StarCount  int // placement units
	Unplaced   int
	SolveTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SolveHit  bool // Whether the allocation came from cache
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// Execute runs the complete solve → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Solve
	solveStart := time.Now()
	allocation, solveHit, err := r.SolveWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	result.Allocation = allocation
	result.Stats.SolveTime = time.Since(solveStart)
	result.Stats.FormCount = len(allocation.Forms)
	result.Stats.TotalUnits = allocation.Total
	result.CacheInfo.SolveHit = solveHit

	if hash, err := cache.HashJSON(allocation); err == nil {
		result.AllocationHash = hash
	}

	r.Logger.Info("solved allocation",
		"forms", len(allocation.Forms),
		"total", allocation.Total,
		"score", allocation.Score,
		"duration", result.Stats.SolveTime)

	// Benchmarks derive directly from the allocation; cheap, never cached.
	result.Benchmarks = r.Benchmarks(allocation, opts)

	// Stage 2: Layout
	layoutStart := time.Now()
	layout, layoutHit, err := r.LayoutWithCacheInfo(ctx, allocation, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = layout
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.StarCount = layout.Grid.Occupied() + layout.Unplaced
	result.Stats.Unplaced = layout.Unplaced
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("placed layout",
		"grid", fmt.Sprintf("%dx%d", layout.Grid.Height, layout.Grid.Width),
		"stars", result.Stats.StarCount,
		"unplaced", layout.Unplaced,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// SolveWithCacheInfo solves the allocation model with caching and returns
// cache hit info.
func (r *Runner) SolveWithCacheInfo(ctx context.Context, opts Options) (*solve.Allocation, bool, error) {
	if err := opts.Scenario.Validate(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	problem := solve.FromScenario(&opts.Scenario)
	problemHash, err := cache.HashJSON(problem)
	if err != nil {
		return nil, false, fmt.Errorf("hash problem: %w", err)
	}
	cacheKey := r.Keyer.SolveKey(problemHash)

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached solve.Allocation
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "solve")
				return &cached, true, nil // Cache hit
			}
		}
		observability.Cache().OnCacheMiss(ctx, "solve")
	}

	observability.Pipeline().OnSolveStart(ctx, len(problem.Forms))
	start := time.Now()
	allocation, err := problem.Solve()
	total := 0
	if allocation != nil {
		total = allocation.Total
	}
	observability.Pipeline().OnSolveComplete(ctx, len(problem.Forms), total, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if data, err := json.Marshal(allocation); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLSolve); err == nil {
			observability.Cache().OnCacheSet(ctx, "solve", len(data))
		}
	}

	return allocation, false, nil // Cache miss
}

// Solve is a convenience wrapper that calls SolveWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Solve(ctx context.Context, opts Options) (*solve.Allocation, error) {
	allocation, _, err := r.SolveWithCacheInfo(ctx, opts)
	return allocation, err
}

// LayoutWithCacheInfo builds a layout with caching and returns cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, allocation *solve.Allocation, opts Options) (*io.Layout, bool, error) {
	opts.SetLayoutDefaults()
	r.applyLogger(&opts)

	allocationHash, err := cache.HashJSON(allocation)
	if err != nil {
		return nil, false, fmt.Errorf("hash allocation: %w", err)
	}
	cacheKey := r.Keyer.LayoutKey(allocationHash, opts.LayoutKeyOpts())

	// Try cache first
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := io.ReadLayout(bytes.NewReader(data))
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	unitCount := allocation.Total
	observability.Pipeline().OnLayoutStart(ctx, unitCount)
	start := time.Now()
	layout := BuildLayout(allocation, opts.Scenario.Options, opts.Scenario.ClusterWeights())
	observability.Pipeline().OnLayoutComplete(ctx, unitCount, layout.Unplaced, time.Since(start), nil)

	// Cache the result
	var buf bytes.Buffer
	if err := io.WriteLayout(layout, &buf); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, buf.Bytes(), cache.TTLLayout); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", buf.Len())
		}
	}

	return layout, false, nil // Cache miss
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, allocation *solve.Allocation, opts Options) (*io.Layout, error) {
	layout, _, err := r.LayoutWithCacheInfo(ctx, allocation, opts)
	return layout, err
}

// RenderWithCacheInfo renders artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, layout *io.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	var buf bytes.Buffer
	if err := io.WriteLayout(layout, &buf); err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(buf.Bytes())

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil // All artifacts from cache
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	// Render all formats
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := RenderLayout(layout, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, layout *io.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, layout, opts)
	return artifacts, err
}

// Benchmarks compares the allocation against published outplanting density
// guidelines using the scenario's survival rate and site area.
func (r *Runner) Benchmarks(allocation *solve.Allocation, opts Options) []bench.Benchmark {
	inputs := make([]bench.Input, len(allocation.Forms))
	for i, f := range allocation.Forms {
		inputs[i] = bench.Input{Form: f.Name, Allocated: f.Allocated}
	}
	return bench.Compute(inputs, opts.Scenario.Options.SurvivalRate, opts.Scenario.Options.SiteArea)
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
