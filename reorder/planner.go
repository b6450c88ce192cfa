package reorder

import (
	"github.com/katalvlaran/purgeplan/flush"
	"github.com/katalvlaran/purgeplan/sequence"
)

// Groups is the number of groups a labeling may use.
const Groups = 2

// Input is a complete reorder request.
type Input struct {
	Filaments []int           // de-duplicated used filaments
	Labels    []int           // group of Filaments[i], 0 or 1
	Layers    [][]int         // filaments per layer, in print order
	Matrices  []*flush.Matrix // one per nozzle; group g uses matrix g, else 0
	Custom    CustomSequence  // optional
	Sequences bool            // also return the per-layer sequences
}

// Reorder validates in and runs a single pass.
func Reorder(in Input) (flush.Solution, error) {
	p, err := NewPlanner(in.Layers, in.Matrices, in.Custom)
	if err != nil {
		return flush.Solution{}, err
	}
	return p.Run(in.Filaments, in.Labels, in.Sequences)
}

// Planner holds a validated job. Run may be called for many labelings;
// solved layer sub-problems are remembered across calls.
// A Planner is not safe for concurrent use.
type Planner struct {
	layers    [][]int
	overrides [][]int
	matrices  []*flush.Matrix
	memo      [Groups]map[string]sequence.Result
}

// NewPlanner normalizes layers and checks them against the matrices.
// Errors: KindInvalidInput, KindMatrixOutOfBounds.
func NewPlanner(layers [][]int, matrices []*flush.Matrix, custom CustomSequence) (*Planner, error) {
	norm := flush.NormalizeLayers(layers)
	used := flush.UsedFilaments(norm)
	if len(used) > 0 && len(matrices) == 0 {
		return nil, flush.Errorf(flush.KindInvalidInput, "no flush matrix for %d filaments", len(used))
	}
	if err := flush.CheckLayers(norm, matrices); err != nil {
		return nil, err
	}

	p := &Planner{
		layers:    norm,
		overrides: resolveOverrides(custom, norm),
		matrices:  matrices,
	}
	for g := range p.memo {
		p.memo[g] = make(map[string]sequence.Result)
	}
	return p, nil
}

// Layers returns the normalized layers the planner works on.
func (p *Planner) Layers() [][]int { return p.layers }

// Run prices a labeling and, when sequences is true, returns the merged
// per-layer order.
// Errors: KindInvalidInput for malformed labels or layers using a filament
// missing from filaments.
func (p *Planner) Run(filaments, labels []int, sequences bool) (flush.Solution, error) {
	group, err := p.groupOf(filaments, labels)
	if err != nil {
		return flush.Solution{}, err
	}

	var (
		sol      flush.Solution
		timeline [Groups][][]int
	)
	for g := 0; g < Groups; g++ {
		seqs, cost := p.walk(g, group)
		timeline[g] = seqs
		sol.Cost += cost
	}
	if sequences {
		sol.Sequences = p.merge(timeline, group)
	}
	return sol, nil
}

// groupOf maps filament → group and checks that every used filament has one.
func (p *Planner) groupOf(filaments, labels []int) (map[int]int, error) {
	if len(filaments) != len(labels) {
		return nil, flush.Errorf(flush.KindInvalidInput, "%d labels for %d filaments", len(labels), len(filaments))
	}
	group := make(map[int]int, len(filaments))
	for i, f := range filaments {
		if labels[i] < 0 || labels[i] >= Groups {
			return nil, flush.Errorf(flush.KindInvalidInput, "filament %d: group %d out of range", f, labels[i])
		}
		if _, dup := group[f]; dup {
			return nil, flush.Errorf(flush.KindInvalidInput, "filament %d listed twice", f)
		}
		group[f] = labels[i]
	}
	for li, layer := range p.layers {
		for _, f := range layer {
			if _, ok := group[f]; !ok {
				return nil, flush.Errorf(flush.KindInvalidInput, "layer %d: filament %d has no group", li, f)
			}
		}
	}
	return group, nil
}
