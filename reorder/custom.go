package reorder

import "slices"

// CustomSequence supplies manual per-layer orders.
// Sequence returns 1-based extruder numbers for the 0-based layer index,
// or ok=false when the layer has no override.
type CustomSequence interface {
	Sequence(layer int) (extruders []int, ok bool)
}

// CustomSequenceFunc adapts a function to CustomSequence.
type CustomSequenceFunc func(layer int) ([]int, bool)

// Sequence calls f(layer).
func (f CustomSequenceFunc) Sequence(layer int) ([]int, bool) { return f(layer) }

// LayerRange pins an extruder order to layers From..To.
// Layers and extruders are 1-based, bounds inclusive.
type LayerRange struct {
	From      int   `json:"from" yaml:"from" toml:"from"`
	To        int   `json:"to" yaml:"to" toml:"to"`
	Extruders []int `json:"extruders" yaml:"extruders" toml:"extruders"`
}

// LayerRanges is a CustomSequence; when ranges overlap the last one wins.
type LayerRanges []LayerRange

// Sequence implements CustomSequence.
func (r LayerRanges) Sequence(layer int) ([]int, bool) {
	n := layer + 1
	for i := len(r) - 1; i >= 0; i-- {
		if n >= r[i].From && n <= r[i].To {
			return slices.Clone(r[i].Extruders), true
		}
	}
	return nil, false
}

// resolveOverrides converts every override to 0-based ids, keeps only the
// first occurrence of ids used on that layer, and drops the rest. A layer
// whose override filters down to nothing has no override.
func resolveOverrides(custom CustomSequence, layers [][]int) [][]int {
	out := make([][]int, len(layers))
	if custom == nil {
		return out
	}
	for i, layer := range layers {
		if len(layer) == 0 {
			continue
		}
		ext, ok := custom.Sequence(i)
		if !ok || len(ext) == 0 {
			continue
		}
		var seq []int
		for _, e := range ext {
			f := e - 1
			if !slices.Contains(layer, f) || slices.Contains(seq, f) {
				continue
			}
			seq = append(seq, f)
		}
		out[i] = seq
	}
	return out
}
