package sequence

import "github.com/katalvlaran/purgeplan/flush"

// Greedy repeatedly appends the unplaced filament cheapest to switch to from
// the previous one. Among equally cheap candidates the previous filament
// itself wins, otherwise the earliest in input order. Without a start
// filament the first input filament opens the layer.
//
// Complexity: O(k²).
func Greedy(c Coster, filaments []int, start int) Result {
	k := len(filaments)
	order := make([]int, 0, k)
	placed := make([]bool, k)
	prev := start

	var total float64
	for len(order) < k {
		pick := -1
		var pickCost float64
		for i, f := range filaments {
			if placed[i] {
				continue
			}
			if prev == flush.NoFilament {
				pick = i
				break
			}
			w := c.Cost(prev, f)
			switch {
			case pick < 0, w < pickCost-costEps:
				pick, pickCost = i, w
			case w <= pickCost+costEps && f == prev:
				pick, pickCost = i, w
			}
		}
		placed[pick] = true
		total += entry(c, prev, filaments[pick])
		prev = filaments[pick]
		order = append(order, prev)
	}

	return Result{Order: order, Cost: total}
}
