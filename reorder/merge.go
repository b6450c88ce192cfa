package reorder

import "slices"

// merge interleaves the group timelines. On each layer the group that
// printed last goes first. Override layers keep the caller's order and
// append whatever the override did not name.
func (p *Planner) merge(timeline [Groups][][]int, group map[int]int) [][]int {
	last := p.seedGroup(group)
	out := make([][]int, len(p.layers))
	for i := range p.layers {
		layer := []int{}
		order := [Groups]int{last, 1 - last}

		if ov := p.overrides[i]; ov != nil {
			layer = append(layer, ov...)
			for _, g := range order {
				layer = append(layer, missing(timeline[g][i], ov)...)
			}
		} else {
			for _, g := range order {
				layer = append(layer, timeline[g][i]...)
			}
		}

		if len(layer) > 0 {
			last = group[layer[len(layer)-1]]
		}
		out[i] = slices.Clip(layer)
	}
	return out
}

// seedGroup is the group of the first filament of the first override, or 0.
func (p *Planner) seedGroup(group map[int]int) int {
	for _, ov := range p.overrides {
		if len(ov) > 0 {
			return group[ov[0]]
		}
	}
	return 0
}
