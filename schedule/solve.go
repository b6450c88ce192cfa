package schedule

import (
	"time"

	"github.com/katalvlaran/purgeplan/grouping"
	"github.com/katalvlaran/purgeplan/reorder"
)

// Solve groups the filaments of job and orders every layer.
//
// Steps:
//  1. Convert and validate the flush matrices.
//  2. Group with the method opts asks for (or the size-based default).
//  3. Run the reorder pass of the chosen labeling with sequences.
//
// Errors are *flush.Error values (see flush.KindOf).
func Solve(job Job, opts Options) (*Plan, error) {
	start := time.Now()

	// 1) Matrices.
	matrices, err := job.FlushMatrices()
	if err != nil {
		return nil, err
	}

	// 2) Grouping.
	gopts := opts.grouping(job)
	var res grouping.Result
	switch opts.Method {
	case grouping.MethodExhaustive:
		res, err = grouping.Exhaustive(job.Layers, matrices, gopts)
	case grouping.MethodKMedoids:
		res, err = grouping.KMedoids(job.Layers, matrices, gopts)
	default:
		res, err = grouping.Group(job.Layers, matrices, gopts)
	}
	if err != nil {
		return nil, err
	}

	// 3) Sequences of the chosen labeling.
	in := reorder.Input{
		Filaments: res.Filaments,
		Labels:    res.Labels,
		Layers:    job.Layers,
		Matrices:  matrices,
		Sequences: true,
	}
	if len(job.Sequences) > 0 {
		in.Custom = job.Sequences
	}
	sol, err := reorder.Reorder(in)
	if err != nil {
		return nil, err
	}

	return &Plan{
		Filaments:    res.Filaments,
		Labels:       res.Labels,
		Groups:       [2][]int{res.Members(0), res.Members(1)},
		Cost:         sol.Cost,
		Sequences:    sol.Sequences,
		Method:       res.Method,
		Alternatives: res.Alternatives,
		Restarts:     res.Restarts,
		Elapsed:      time.Since(start),
	}, nil
}
