package grouping

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/katalvlaran/purgeplan/reorder"
)

const (
	// DefaultTimeout bounds the k-medoid restart loop.
	DefaultTimeout = 300 * time.Millisecond
	// DefaultGapThreshold keeps labelings within 5% of the best cost.
	DefaultGapThreshold = 0.05
	// DefaultMaxAlternatives caps the near-optimal memory.
	DefaultMaxAlternatives = 32
	// NoMaster disables the master-group preference.
	NoMaster = -1
	// ExhaustiveLimit is the first filament count handled by KMedoids.
	ExhaustiveLimit = 10
)

// FitStrategy decides how hard the search tries to fill both groups.
type FitStrategy int

const (
	// BestCost only minimizes flush cost.
	BestCost FitStrategy = iota
	// BestFit prefers labelings that fill both groups to capacity.
	BestFit
)

// Options configures Group, Exhaustive and KMedoids.
type Options struct {
	// MaxGroupSize is the hard capacity of each group.
	MaxGroupSize [2]int
	// Timeout bounds the k-medoid restarts (0 → DefaultTimeout).
	Timeout time.Duration
	// Clock returns the current time (nil → time.Now).
	Clock func() time.Time
	// Seed drives restart selection (0 → fixed default seed).
	Seed int64
	// GapThreshold is the relative cost gap for remembered labelings.
	GapThreshold float64
	// MaxAlternatives caps remembered labelings (0 → default).
	MaxAlternatives int
	// Strategy selects BestCost or BestFit.
	Strategy FitStrategy
	// Unprintable[g] lists filament ids group g cannot print.
	Unprintable [2][]int
	// MasterGroup receives the larger group when a swap is free (NoMaster disables).
	MasterGroup int
	// Loaded describes the filaments already in the printer (optional).
	Loaded *Loaded
	// Custom overrides layer orders in every reorder pass.
	Custom reorder.CustomSequence
	// Logger receives debug diagnostics (nil → discard).
	Logger *log.Logger
}

// DefaultOptions returns options with every tunable at its default and
// MasterGroup 0. MaxGroupSize must still be set by the caller.
func DefaultOptions() Options {
	return Options{
		Timeout:         DefaultTimeout,
		GapThreshold:    DefaultGapThreshold,
		MaxAlternatives: DefaultMaxAlternatives,
		MasterGroup:     0,
	}
}

// normalize fills zero values with defaults.
func (o *Options) normalize() {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.GapThreshold <= 0 {
		o.GapThreshold = DefaultGapThreshold
	}
	if o.MaxAlternatives <= 0 {
		o.MaxAlternatives = DefaultMaxAlternatives
	}
	if o.MasterGroup != 0 && o.MasterGroup != 1 {
		o.MasterGroup = NoMaster
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}
