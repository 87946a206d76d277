package engine

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/learnpath/pkg/cache"
	"github.com/matzehuels/learnpath/pkg/observability"
	"github.com/matzehuels/learnpath/pkg/resolve"

	lperrors "github.com/matzehuels/learnpath/pkg/errors"
)

// Runner wraps [Generate] with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store results. Multiple goroutines can safely use the same Runner with
// different inputs.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is how long generated paths stay cached.
	TTL time.Duration
}

// Run is one execution of the engine through a [Runner].
type Run struct {
	ID       uuid.UUID     `json:"id" yaml:"id"`
	Result   *Result       `json:"result" yaml:"result"`
	CacheHit bool          `json:"cache_hit" yaml:"cache_hit"`
	Duration time.Duration `json:"duration_ns" yaml:"duration_ns"`
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
		TTL:    cache.TTLPath,
	}
}

// Execute returns the learning path for in, from the cache when possible.
//
// Cache failures are logged and otherwise ignored: a broken cache costs a
// recomputation, never a failed run.
func (r *Runner) Execute(ctx context.Context, in Input, opts Options) (*Run, error) {
	start := time.Now()
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, lperrors.Wrap(lperrors.ErrCodeInvalidConstraints, err, "invalid options")
	}

	hooks := observability.Engine()
	hooks.OnGenerateStart(ctx, len(in.Nodes), len(in.Edges))

	run := &Run{ID: uuid.New()}
	digest, derr := Digest(in, opts)
	key := r.Keyer.PathKey(digest)

	if derr == nil && !opts.Refresh {
		var cached Result
		if r.lookup(ctx, key, "path", &cached) {
			run.Result = &cached
			run.CacheHit = true
		}
	}

	if run.Result == nil {
		res, err := Generate(in, opts)
		if err != nil {
			hooks.OnGenerateComplete(ctx, observability.RunStats{Nodes: len(in.Nodes), Edges: len(in.Edges)}, time.Since(start), err)
			return nil, err
		}
		run.Result = res
		if derr == nil {
			r.store(ctx, key, "path", res, r.TTL)
		}
	}

	run.Duration = time.Since(start)
	s := run.Result.Stats
	hooks.OnGenerateComplete(ctx, observability.RunStats{
		Nodes:         s.Nodes,
		Edges:         s.InputEdges,
		Milestones:    s.Milestones,
		EdgesRemoved:  s.EdgesRemoved,
		ForcedRemoved: s.ForcedRemoved,
		CacheHit:      run.CacheHit,
	}, run.Duration, nil)

	r.Logger.Info("generated learning path",
		"run", run.ID,
		"milestones", s.Milestones,
		"removed", s.EdgesRemoved,
		"cached", run.CacheHit,
		"duration", run.Duration)
	return run, nil
}

// Cycles returns the cycle resolution report for in, from the cache when
// possible. The bool result reports a cache hit.
func (r *Runner) Cycles(ctx context.Context, in Input, refresh bool) (*resolve.Report, bool, error) {
	digest, derr := cache.CanonicalHash(in)
	key := r.Keyer.CyclesKey(digest)

	if derr == nil && !refresh {
		var cached resolve.Report
		if r.lookup(ctx, key, "cycles", &cached) {
			return &cached, true, nil
		}
	}

	report, err := Cycles(in)
	if err != nil {
		return nil, false, err
	}
	if derr == nil {
		r.store(ctx, key, "cycles", report, cache.TTLCycles)
	}
	return &report, false, nil
}

func (r *Runner) lookup(ctx context.Context, key, keyType string, v any) bool {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache lookup failed", "key", key, "error", err)
		return false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		r.Logger.Debug("discarding unreadable cache entry", "key", key, "error", err)
		observability.Cache().OnCacheMiss(ctx, keyType)
		return false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return true
}

func (r *Runner) store(ctx context.Context, key, keyType string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		r.Logger.Debug("result not cacheable", "key", key, "error", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}
