package grouping

import "slices"

// pins maps a filament index to the only group able to print it.
// Filaments neither group can print stay free. If honoring every pin would
// overfill a group, no pins are returned.
func pins(used []int, unprintable [2][]int, size [2]int) map[int]int {
	out := make(map[int]int)
	var count [2]int
	for i, f := range used {
		no0 := slices.Contains(unprintable[0], f)
		no1 := slices.Contains(unprintable[1], f)
		switch {
		case no0 && !no1:
			out[i] = 1
			count[1]++
		case no1 && !no0:
			out[i] = 0
			count[0]++
		}
	}
	if count[0] > size[0] || count[1] > size[1] {
		return map[int]int{}
	}
	return out
}

// printable reports whether no filament sits in a group that cannot print it.
func (j *job) printable(labels []int) bool {
	for i, g := range labels {
		if slices.Contains(j.opts.Unprintable[g], j.used[i]) {
			return false
		}
	}
	return true
}

// preferMaster swaps the two groups when the master group is the smaller
// one, the swap fits both capacities, does not break printability and does
// not raise the flush cost.
func (j *job) preferMaster(labels []int, cost float64) ([]int, bool) {
	master := j.opts.MasterGroup
	if master == NoMaster || len(labels) == 0 {
		return nil, false
	}
	other := 1 - master

	var count [2]int
	for _, g := range labels {
		count[g]++
	}
	size := j.opts.MaxGroupSize
	if count[other] <= count[master] || count[other] > size[master] || count[master] > size[other] {
		return nil, false
	}

	swapped := make([]int, len(labels))
	for i, g := range labels {
		swapped[i] = 1 - g
	}
	if j.printable(labels) && !j.printable(swapped) {
		return nil, false
	}
	c, err := j.cost(swapped)
	if err != nil || c > cost+costEps {
		return nil, false
	}
	return swapped, true
}
