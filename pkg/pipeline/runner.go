package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/reflow/pkg/buildinfo"
	"github.com/matzehuels/reflow/pkg/cache"
	pkgio "github.com/matzehuels/reflow/pkg/io"
	"github.com/matzehuels/reflow/pkg/observability"
	"github.com/matzehuels/reflow/pkg/session"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger: it doesn't
// store pipeline results. Multiple goroutines can use the same Runner with
// different options as long as the cache is safe for concurrent use.
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

// Run executes the complete load → run → render pipeline.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{RunID: uuid.NewString()}
	logger := r.Logger.With("run", result.RunID)

	// Stage 1: Load
	loadStart := time.Now()
	in, err := Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Nodes = len(in.Scene.Nodes)
	result.Stats.Statements = in.Script.Len()

	logger.Debug("loaded inputs",
		"scene", opts.ScenePath,
		"nodes", result.Stats.Nodes,
		"statements", result.Stats.Statements,
		"duration", result.Stats.LoadTime)

	// Stage 2: Run
	runStart := time.Now()
	snap, hit, err := r.ExecuteWithCacheInfo(ctx, result.RunID, in, opts)
	if err != nil {
		return nil, fmt.Errorf("run: %w", err)
	}
	result.Snapshot = snap
	result.Stats.RunTime = time.Since(runStart)
	result.Stats.Generations = len(snap.Changed)
	for _, g := range snap.Changed {
		result.Stats.Changed += len(g.Rects)
	}
	result.CacheInfo.RunHit = hit

	logger.Info("computed layout",
		"rects", len(snap.Rects),
		"generations", result.Stats.Generations,
		"changed", result.Stats.Changed,
		"cached", hit,
		"duration", result.Stats.RunTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, snapHash, renderHit, err := r.RenderWithCacheInfo(ctx, snap, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.SnapshotHash = snapHash
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ExecuteWithCacheInfo replays in on a fresh session, or returns the cached
// snapshot of an identical earlier run. It reports whether the cache hit.
func (r *Runner) ExecuteWithCacheInfo(ctx context.Context, runID string, in *Input, opts Options) (snap *pkgio.Snapshot, hit bool, err error) {
	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnRunStart(ctx, runID, in.Script.Len())
	defer func() {
		n := 0
		if snap != nil {
			n = len(snap.Changed)
		}
		hooks.OnRunComplete(ctx, runID, n, time.Since(start), err)
	}()

	key := r.Keyer.RunKey(cache.Hash(in.SceneData), cache.Hash(in.ScriptData), cache.RunKeyOpts{
		SceneFormat: string(in.SceneFormat),
		Version:     buildinfo.CacheTag(),
	})

	if !opts.Refresh {
		if data, ok := r.cacheGet(ctx, cache.KeyTypeRun, key); ok {
			if cached, err := pkgio.ReadJSON(bytes.NewReader(data)); err == nil {
				return cached, true, nil
			}
		}
	}

	snap, err = Execute(in, opts.Logger)
	if err != nil {
		return nil, false, err
	}

	var buf bytes.Buffer
	if err := pkgio.WriteJSON(snap, &buf); err == nil {
		r.cacheSet(ctx, cache.KeyTypeRun, key, buf.Bytes(), cache.TTLRun)
	}
	return snap, false, nil
}

// Execute replays the script of in on a fresh session built from its scene.
// The returned snapshot records every generation the script ran.
func Execute(in *Input, logger *log.Logger) (*pkgio.Snapshot, error) {
	sess, err := session.FromScene(in.Scene, session.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	results, err := in.Script.Apply(sess)
	if err != nil {
		return nil, err
	}
	return pkgio.NewSnapshot(sess, results), nil
}

// RenderWithCacheInfo renders every requested format, serving them from the
// cache when all of them are present. It also returns the snapshot hash the
// artifact keys were derived from.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, snap *pkgio.Snapshot, opts Options) (map[string][]byte, string, bool, error) {
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, "", false, err
	}
	opts.SetRenderDefaults()

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnExportStart(ctx, opts.Formats)

	var buf bytes.Buffer
	if err := pkgio.WriteJSON(snap, &buf); err != nil {
		hooks.OnExportComplete(ctx, opts.Formats, time.Since(start), err)
		return nil, "", false, fmt.Errorf("serialize snapshot for cache key: %w", err)
	}
	snapHash := cache.Hash(buf.Bytes())

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, ok := r.cacheGet(ctx, cache.KeyTypeArtifact, r.Keyer.ArtifactKey(snapHash, opts.ArtifactKeyOpts(format)))
		if !ok {
			break
		}
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		hooks.OnExportComplete(ctx, opts.Formats, time.Since(start), nil)
		return artifacts, snapHash, true, nil
	}

	rendered, err := RenderFromSnapshot(ctx, snap, opts)
	hooks.OnExportComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, "", false, err
	}
	for format, data := range rendered {
		r.cacheSet(ctx, cache.KeyTypeArtifact, r.Keyer.ArtifactKey(snapHash, opts.ArtifactKeyOpts(format)), data, cache.TTLArtifact)
	}
	return rendered, snapHash, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) cacheGet(ctx context.Context, keyType, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

func (r *Runner) cacheSet(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
