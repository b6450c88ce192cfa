package grouping

import (
	"slices"

	"github.com/katalvlaran/purgeplan/flush"
)

// Preference rewards; a labeling with a higher level beats any cost.
const (
	rewardPrintable = 100 // every filament sits in a group that can print it
	rewardBestFit   = 1   // BestFit only: both groups filled to capacity
)

// maxExhaustive bounds forced enumeration; 2ⁿ labelings are priced.
const maxExhaustive = 20

// exhaustive prices every labeling within capacity and keeps the one with
// the highest preference level, then the lowest cost. Masks are visited in
// ascending order and ties keep the first, so the result is deterministic.
//
// Complexity: O(2ⁿ · reorder pass).
func (j *job) exhaustive() ([]int, error) {
	n := len(j.used)
	if n > maxExhaustive {
		return nil, flush.Errorf(flush.KindInvalidInput, "%d filaments is too many for exhaustive search (max %d)", n, maxExhaustive)
	}

	var (
		size      = j.opts.MaxGroupSize
		labels    = make([]int, n)
		best      []int
		bestCost  float64
		bestLevel = -1
	)
	for mask := uint64(0); mask < uint64(1)<<n; mask++ {
		// 1) Decode and enforce the hard capacity.
		var count [2]int
		for b := 0; b < n; b++ {
			labels[b] = int(mask >> b & 1)
			count[labels[b]]++
		}
		if count[0] > size[0] || count[1] > size[1] {
			continue
		}

		// 2) Preference level.
		level := 0
		if j.printable(labels) {
			level += rewardPrintable
		}
		if j.opts.Strategy == BestFit && count[0] >= size[0] && count[1] >= size[1] {
			level += rewardBestFit
		}

		// 3) Price with a full reorder pass.
		cost, err := j.cost(labels)
		if err != nil {
			return nil, err
		}
		if level > bestLevel || (level == bestLevel && cost < bestCost-costEps) {
			best, bestCost, bestLevel = slices.Clone(labels), cost, level
		}
		j.memory.offer(candidate{labels: slices.Clone(labels), cost: cost, level: level})
	}
	return best, nil
}
