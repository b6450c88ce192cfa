package sequence

import (
	"math"

	"github.com/katalvlaran/purgeplan/flush"
)

const (
	// MaxExact is the largest layer solved by the subset DP.
	MaxExact = 20
	// MaxForecast bounds both layers for the forecast search.
	MaxForecast = 5
)

// costEps treats float sums closer than this as equal.
const costEps = 1e-9

// Coster prices a switch between two filaments. *flush.Matrix implements it.
type Coster interface {
	Cost(from, to int) float64
}

// Request describes one layer sub-problem.
// Current and Next are sets: no duplicates.
type Request struct {
	Current  []int
	Next     []int
	Start    int  // filament loaded before the layer, or flush.NoFilament
	Forecast bool // enable the two-layer permutation search
}

// Result is an ordered layer and its standalone cost (including the entry
// from Start).
type Result struct {
	Order []int
	Cost  float64
}

// UseForecast reports whether a layer pair is small enough for Forecast.
func UseForecast(current, next int) bool {
	return current <= MaxForecast && next <= MaxForecast
}

// Solve dispatches req to the algorithm matching its size.
func Solve(c Coster, req Request) Result {
	k := len(req.Current)
	switch {
	case k == 0:
		return Result{Order: []int{}}
	case k == 1:
		f := req.Current[0]
		return Result{Order: []int{f}, Cost: entry(c, req.Start, f)}
	case req.Forecast:
		return Forecast(c, req.Current, req.Next, req.Start)
	case k <= MaxExact:
		return Exact(c, req.Current, req.Start)
	default:
		return Greedy(c, req.Current, req.Start)
	}
}

// entry prices loading f when start was loaded; nothing loaded is free.
func entry(c Coster, start, f int) float64 {
	if start == flush.NoFilament {
		return 0
	}
	return c.Cost(start, f)
}

// chain returns the cost of walking order from start and the number of
// filament changes along the way.
func chain(c Coster, start int, order []int) (float64, int) {
	var (
		total   float64
		changes int
	)
	prev := start
	for _, f := range order {
		if prev != flush.NoFilament {
			total += c.Cost(prev, f)
			if prev != f {
				changes++
			}
		}
		prev = f
	}
	return total, changes
}

// better orders (cost, changes) pairs with a float tolerance on cost.
func better(cost float64, changes int, bestCost float64, bestChanges int) bool {
	if cost < bestCost-costEps {
		return true
	}
	return math.Abs(cost-bestCost) <= costEps && changes < bestChanges
}
