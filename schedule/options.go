package schedule

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/katalvlaran/purgeplan/grouping"
)

// Options tunes a solve. Everything but Logger is a plain value, so Options
// can be hashed into a cache key.
type Options struct {
	// Method forces a grouping method ("" picks by filament count).
	Method grouping.Method `json:"method,omitempty"`
	// Timeout bounds the k-medoid restarts (0 → grouping default).
	Timeout time.Duration `json:"timeout,omitempty"`
	// Seed drives restart selection.
	Seed int64 `json:"seed,omitempty"`
	// GapThreshold is the relative cost gap of remembered alternatives.
	GapThreshold float64 `json:"gap_threshold,omitempty"`
	// MaxAlternatives caps remembered alternatives.
	MaxAlternatives int `json:"max_alternatives,omitempty"`
	// Strategy is grouping.BestCost or grouping.BestFit.
	Strategy grouping.FitStrategy `json:"strategy,omitempty"`
	// MasterGroup receives the larger group when free (grouping.NoMaster disables).
	MasterGroup int `json:"master_group"`
	// Logger receives grouping diagnostics; not part of the cache key.
	Logger *log.Logger `json:"-"`
}

// DefaultOptions mirrors grouping.DefaultOptions.
func DefaultOptions() Options {
	g := grouping.DefaultOptions()
	return Options{
		Timeout:         g.Timeout,
		GapThreshold:    g.GapThreshold,
		MaxAlternatives: g.MaxAlternatives,
		MasterGroup:     g.MasterGroup,
	}
}

// grouping builds the grouping options for job.
func (o Options) grouping(job Job) grouping.Options {
	g := grouping.DefaultOptions()
	g.MaxGroupSize = job.MaxGroupSize
	g.Unprintable = job.Unprintable
	g.Loaded = job.Loaded
	if len(job.Sequences) > 0 {
		g.Custom = job.Sequences
	}
	g.Timeout = o.Timeout
	g.Seed = o.Seed
	g.GapThreshold = o.GapThreshold
	g.MaxAlternatives = o.MaxAlternatives
	g.Strategy = o.Strategy
	g.MasterGroup = o.MasterGroup
	g.Logger = o.Logger
	return g
}
