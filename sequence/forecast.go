package sequence

import "slices"

// Forecast searches every permutation of current chained from start,
// followed by every permutation of next chained from the last current
// filament. The lowest two-layer total wins; ties go to fewer filament
// changes, then to the earliest candidate. Only the current permutation is
// returned, priced on its own.
//
// The next-layer search depends only on the filament it is entered from, so
// it is run once per distinct last filament.
//
// Complexity: O(k!·k + k·k2!·k2) for k = len(current), k2 = len(next).
func Forecast(c Coster, current, next []int, start int) Result {
	if len(current) == 0 {
		return Result{Order: []int{}}
	}

	type tail struct {
		cost    float64
		changes int
	}
	tails := make(map[int]tail, len(current))
	bestTail := func(from int) tail {
		if t, ok := tails[from]; ok {
			return t
		}
		var (
			t     tail
			found bool
		)
		permute(next, func(p []int) {
			cost, changes := chain(c, from, p)
			if !found || better(cost, changes, t.cost, t.changes) {
				t, found = tail{cost: cost, changes: changes}, true
			}
		})
		tails[from] = t
		return t
	}

	var (
		bestOrder   []int
		bestCost    float64
		bestTotal   float64
		bestChanges int
	)
	permute(current, func(p []int) {
		cost, changes := chain(c, start, p)
		t := bestTail(p[len(p)-1])
		total := cost + t.cost
		if bestOrder == nil || better(total, changes+t.changes, bestTotal, bestChanges) {
			bestOrder = slices.Clone(p)
			bestCost, bestTotal, bestChanges = cost, total, changes+t.changes
		}
	})

	return Result{Order: bestOrder, Cost: bestCost}
}
