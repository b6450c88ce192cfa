package schedule

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/katalvlaran/purgeplan/cache"
	"github.com/katalvlaran/purgeplan/flush"
	"github.com/katalvlaran/purgeplan/grouping"
	"github.com/katalvlaran/purgeplan/metrics"
)

// DefaultCacheTTL is how long a cached plan stays valid.
const DefaultCacheTTL = 24 * time.Hour

// Runner solves jobs with caching, metrics and logging.
//
// A Runner is stateless apart from its collaborators; many goroutines may
// share one.
type Runner struct {
	Cache   cache.Cache
	TTL     time.Duration
	Metrics *metrics.Collector // optional
	Logger  *log.Logger
}

// NewRunner fills nil collaborators: NullCache, DefaultCacheTTL, log.Default.
func NewRunner(c cache.Cache, m *metrics.Collector, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, TTL: DefaultCacheTTL, Metrics: m, Logger: logger}
}

// Plan solves job, serving identical (job, opts) pairs from the cache.
// The boolean reports a cache hit. A context deadline shorter than
// opts.Timeout shrinks the clustering budget.
func (r *Runner) Plan(ctx context.Context, job Job, opts Options) (*Plan, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	key, err := cache.Key("plan", job, opts)
	if err != nil {
		return nil, false, flush.Wrap(flush.KindInvalidInput, err, "job is not serializable")
	}

	// 1) Cache lookup; unreadable entries are recomputed.
	if data, hit, err := r.Cache.Get(ctx, key); err != nil {
		r.Logger.Warn("cache lookup failed", "err", err)
	} else if hit {
		var p Plan
		if err := json.Unmarshal(data, &p); err == nil {
			r.recordCache(true)
			r.Logger.Debug("plan from cache", "cost", p.Cost, "cache_hit", true)
			return &p, true, nil
		}
	}
	r.recordCache(false)

	// 2) Solve.
	if deadline, ok := ctx.Deadline(); ok {
		limit := opts.Timeout
		if limit <= 0 {
			limit = grouping.DefaultTimeout
		}
		if budget := time.Until(deadline); budget < limit {
			opts.Timeout = max(budget, time.Millisecond)
		}
	}
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	p, err := Solve(job, opts)
	if err != nil {
		if r.Metrics != nil {
			r.Metrics.RecordError(string(flush.KindOf(err)))
		}
		return nil, false, err
	}
	if r.Metrics != nil {
		r.Metrics.RecordSolve(string(p.Method), p.Elapsed, p.Restarts)
	}
	r.Logger.Info("plan solved",
		"filaments", len(p.Filaments),
		"strategy", p.Method,
		"cost", p.Cost,
		"restarts", p.Restarts,
		"duration", p.Elapsed,
		"cache_hit", false)

	// 3) Store.
	if data, err := json.Marshal(p); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			r.Logger.Warn("cache write failed", "err", err)
		}
	}
	return p, false, nil
}

func (r *Runner) recordCache(hit bool) {
	if r.Metrics != nil {
		r.Metrics.RecordCache(hit)
	}
}
