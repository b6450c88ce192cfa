package grouping

import (
	"slices"
	"time"

	"github.com/katalvlaran/purgeplan/flush"
	"github.com/katalvlaran/purgeplan/reorder"
)

// Method names the search that produced a Result.
type Method string

const (
	MethodTrivial    Method = "trivial"
	MethodExhaustive Method = "exhaustive"
	MethodKMedoids   Method = "kmedoids"
)

// Result is a two-way grouping.
type Result struct {
	Filaments    []int         `json:"filaments"`              // used filaments, ascending
	Labels       []int         `json:"labels"`                 // group of Filaments[i]
	Cost         float64       `json:"cost"`                   // reorder cost of Labels
	Method       Method        `json:"method"`                 // search that ran
	Alternatives [][]int       `json:"alternatives,omitempty"` // near-optimal labelings, best first
	Restarts     int           `json:"restarts,omitempty"`     // completed k-medoid restarts
	Elapsed      time.Duration `json:"elapsed"`
}

// Assignment maps filament id → group.
func (r Result) Assignment() map[int]int {
	out := make(map[int]int, len(r.Filaments))
	for i, f := range r.Filaments {
		out[f] = r.Labels[i]
	}
	return out
}

// Members returns the filaments of group g, ascending.
func (r Result) Members(g int) []int {
	var out []int
	for i, f := range r.Filaments {
		if r.Labels[i] == g {
			out = append(out, f)
		}
	}
	return out
}

// Group picks the method by filament count and returns the best grouping.
func Group(layers [][]int, matrices []*flush.Matrix, opts Options) (Result, error) {
	return run(layers, matrices, opts, "")
}

// Exhaustive forces the enumeration method regardless of size.
// It is exponential: keep n small.
func Exhaustive(layers [][]int, matrices []*flush.Matrix, opts Options) (Result, error) {
	return run(layers, matrices, opts, MethodExhaustive)
}

// KMedoids forces the clustering method regardless of size.
func KMedoids(layers [][]int, matrices []*flush.Matrix, opts Options) (Result, error) {
	return run(layers, matrices, opts, MethodKMedoids)
}

// job is the state shared by the methods for one call.
type job struct {
	opts     Options
	planner  *reorder.Planner
	matrices []*flush.Matrix
	used     []int
	pins     map[int]int // filament index → group it must go to
	memory   *memory
}

func run(layers [][]int, matrices []*flush.Matrix, opts Options, force Method) (Result, error) {
	opts.normalize()
	start := opts.Clock()

	// 1) Validate before any search.
	if opts.MaxGroupSize[0] < 0 || opts.MaxGroupSize[1] < 0 {
		return Result{}, flush.Errorf(flush.KindInvalidInput, "negative group size %v", opts.MaxGroupSize)
	}
	planner, err := reorder.NewPlanner(layers, matrices, opts.Custom)
	if err != nil {
		return Result{}, err
	}
	used := flush.UsedFilaments(planner.Layers())
	n := len(used)
	if capacity := opts.MaxGroupSize[0] + opts.MaxGroupSize[1]; n > capacity {
		return Result{}, flush.Errorf(flush.KindInfeasible, "%d filaments exceed group capacity %d+%d",
			n, opts.MaxGroupSize[0], opts.MaxGroupSize[1])
	}

	j := &job{
		opts:     opts,
		planner:  planner,
		matrices: matrices,
		used:     used,
		pins:     pins(used, opts.Unprintable, opts.MaxGroupSize),
		memory:   newMemory(opts.GapThreshold, opts.MaxAlternatives),
	}

	// 2) Search.
	var (
		res    = Result{Filaments: used}
		labels []int
	)
	switch {
	case n == 0:
		res.Method, labels = MethodTrivial, []int{}
	case force == "" && (n == 1 || opts.MaxGroupSize[0] == 0 || opts.MaxGroupSize[1] == 0):
		res.Method, labels = MethodTrivial, j.trivial()
	case force == MethodExhaustive || (force == "" && n < ExhaustiveLimit):
		res.Method = MethodExhaustive
		if labels, err = j.exhaustive(); err != nil {
			return Result{}, err
		}
	default:
		res.Method = MethodKMedoids
		labels, res.Restarts = j.kmedoids()
	}

	// 3) Post-process: master preference, then loaded-filament fit.
	cost, err := j.cost(labels)
	if err != nil {
		return Result{}, err
	}
	candidates := [][]int{labels}
	if swapped, ok := j.preferMaster(labels, cost); ok {
		candidates = [][]int{swapped, labels}
		labels = swapped
	}
	for _, alt := range j.memory.labels() {
		if !containsLabels(candidates, alt) {
			candidates = append(candidates, alt)
		}
	}
	if opts.Loaded != nil && len(candidates) > 1 {
		labels = selectLoaded(candidates, used, *opts.Loaded)
	}
	if res.Cost, err = j.cost(labels); err != nil {
		return Result{}, err
	}

	res.Labels = labels
	for _, c := range candidates {
		if !slices.Equal(c, labels) {
			res.Alternatives = append(res.Alternatives, c)
		}
	}
	res.Elapsed = opts.Clock().Sub(start)

	opts.Logger.Debug("grouping done",
		"filaments", n, "method", res.Method, "cost", res.Cost,
		"restarts", res.Restarts, "alternatives", len(res.Alternatives))
	return res, nil
}

// cost prices labels with a reorder pass.
func (j *job) cost(labels []int) (float64, error) {
	sol, err := j.planner.Run(j.used, labels, false)
	if err != nil {
		return 0, err
	}
	return sol.Cost, nil
}

// trivial fills groups in order, honoring pins where capacity allows.
func (j *job) trivial() []int {
	size := j.opts.MaxGroupSize
	labels := make([]int, len(j.used))
	var count [2]int
	for i := range labels {
		labels[i] = -1
		if g, ok := j.pins[i]; ok {
			labels[i] = g
			count[g]++
		}
	}
	for i := range labels {
		if labels[i] >= 0 {
			continue
		}
		g := 0
		if count[0] >= size[0] {
			g = 1
		}
		labels[i] = g
		count[g]++
	}
	return labels
}

func containsLabels(list [][]int, labels []int) bool {
	return slices.ContainsFunc(list, func(l []int) bool { return slices.Equal(l, labels) })
}
