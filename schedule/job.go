package schedule

import (
	"github.com/katalvlaran/purgeplan/flush"
	"github.com/katalvlaran/purgeplan/grouping"
	"github.com/katalvlaran/purgeplan/reorder"
)

// Job is a serializable scheduling request.
type Job struct {
	// Layers lists the filament ids printed on each layer, bottom first.
	Layers [][]int `json:"layers" yaml:"layers"`
	// Matrices holds one square flush matrix per nozzle; group g uses
	// Matrices[g] when present, Matrices[0] otherwise.
	Matrices [][][]float64 `json:"matrices" yaml:"matrices"`
	// MaxGroupSize is the capacity of each group.
	MaxGroupSize [2]int `json:"max_group_size" yaml:"max_group_size"`
	// Sequences pins the order of some layers (1-based ranges and ids).
	Sequences reorder.LayerRanges `json:"sequences,omitempty" yaml:"sequences,omitempty"`
	// Unprintable[g] lists filament ids group g cannot print.
	Unprintable [2][]int `json:"unprintable,omitempty" yaml:"unprintable,omitempty"`
	// Loaded describes the filaments already in the printer.
	Loaded *grouping.Loaded `json:"loaded,omitempty" yaml:"loaded,omitempty"`
}

// FlushMatrices validates and converts the raw matrices.
func (j Job) FlushMatrices() ([]*flush.Matrix, error) {
	out := make([]*flush.Matrix, len(j.Matrices))
	for i, rows := range j.Matrices {
		m, err := flush.NewMatrix(rows)
		if err != nil {
			return nil, flush.Wrap(flush.KindInvalidInput, err, "flush matrix %d", i)
		}
		out[i] = m
	}
	return out, nil
}
