package schedule

import (
	"time"

	"github.com/katalvlaran/purgeplan/grouping"
)

// Plan is a solved job.
type Plan struct {
	// Filaments are the used filament ids, ascending.
	Filaments []int `json:"filaments"`
	// Labels[i] is the group of Filaments[i].
	Labels []int `json:"labels"`
	// Groups lists the filaments of each group.
	Groups [2][]int `json:"groups"`
	// Cost is the total flush cost of Sequences.
	Cost float64 `json:"cost"`
	// Sequences is the filament order of every layer.
	Sequences [][]int `json:"sequences"`
	// Method is the grouping search that ran.
	Method grouping.Method `json:"method"`
	// Alternatives are other near-optimal labelings, best first.
	Alternatives [][]int `json:"alternatives,omitempty"`
	// Restarts is the number of completed k-medoid restarts.
	Restarts int `json:"restarts,omitempty"`
	// Elapsed is the solve wall time.
	Elapsed time.Duration `json:"elapsed"`
}

// Assignment maps filament id → group.
func (p *Plan) Assignment() map[int]int {
	out := make(map[int]int, len(p.Filaments))
	for i, f := range p.Filaments {
		out[f] = p.Labels[i]
	}
	return out
}

// Changes counts filament switches across the whole print.
func (p *Plan) Changes() int {
	var (
		n    int
		last = -1
	)
	for _, seq := range p.Sequences {
		for _, f := range seq {
			if last >= 0 && f != last {
				n++
			}
			last = f
		}
	}
	return n
}
