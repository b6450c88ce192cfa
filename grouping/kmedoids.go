package grouping

import (
	"math"
	"math/rand"
	"slices"
	"sort"
	"time"
)

// costEps treats float costs closer than this as equal.
const costEps = 1e-9

// randomPairTries bounds rejection sampling before scanning for a fresh pair.
const randomPairTries = 64

// pam holds the state of one two-medoid clustering call.
type pam struct {
	n        int
	dist     []float64 // n×n row-major
	size     [2]int
	pins     map[int]int
	strict   bool // medoids must be printable in their group
	rng      *rand.Rand
	clock    func() time.Time
	deadline time.Time
	visited  map[[2]int]struct{} // ordered medoid pairs already tried
	level    func([]int) int
}

// kmedoids clusters the used filaments and returns the best labeling by
// clustering cost with the number of completed restarts.
func (j *job) kmedoids() ([]int, int) {
	n := len(j.used)
	if n < 2 {
		return j.trivial(), 0
	}

	e := &pam{
		n:        n,
		dist:     distances(j.planner.Layers(), j.used, j.matrices[0]),
		size:     j.opts.MaxGroupSize,
		pins:     j.pins,
		rng:      rngFromSeed(j.opts.Seed),
		clock:    j.opts.Clock,
		deadline: j.opts.Clock().Add(j.opts.Timeout),
		visited:  make(map[[2]int]struct{}),
		level: func(labels []int) int {
			if j.printable(labels) {
				return rewardPrintable
			}
			return 0
		},
	}
	e.strict = e.hasValidPair()

	var (
		best     []int
		bestCost = math.Inf(1)
		restarts int
	)
	for {
		// 1) Initial medoids: farthest pair first, then fresh random pairs.
		m, ok := e.initial(restarts == 0)
		if !ok {
			break // every ordered pair was tried
		}

		// 2) Assign and improve by medoid swaps.
		labels, cost := e.localSearch(m)
		restarts++
		if cost < bestCost-costEps {
			best, bestCost = labels, cost
		}
		j.memory.offer(candidate{labels: labels, cost: cost, level: e.level(labels)})

		// 3) The budget is polled only between restarts.
		if !e.clock().Before(e.deadline) {
			break
		}
	}
	return best, restarts
}

// valid reports whether m is an admissible (group 0, group 1) medoid pair.
func (e *pam) valid(m [2]int) bool {
	if m[0] == m[1] {
		return false
	}
	if !e.strict {
		return true
	}
	if g, ok := e.pins[m[0]]; ok && g != 0 {
		return false
	}
	if g, ok := e.pins[m[1]]; ok && g != 1 {
		return false
	}
	return true
}

func (e *pam) hasValidPair() bool {
	e.strict = true
	for a := 0; a < e.n; a++ {
		for b := 0; b < e.n; b++ {
			if e.valid([2]int{a, b}) {
				return true
			}
		}
	}
	return false
}

// initial picks the medoids of the next restart and marks them visited.
func (e *pam) initial(first bool) ([2]int, bool) {
	mark := func(m [2]int) ([2]int, bool) {
		e.visited[m] = struct{}{}
		return m, true
	}

	if first {
		var (
			best  [2]int
			bestD = -1.0
		)
		for a := 0; a < e.n; a++ {
			for b := a + 1; b < e.n; b++ {
				d := e.dist[a*e.n+b]
				for _, m := range [][2]int{{a, b}, {b, a}} {
					if d > bestD && e.valid(m) {
						best, bestD = m, d
					}
				}
			}
		}
		return mark(best)
	}

	for try := 0; try < randomPairTries; try++ {
		m := [2]int{e.rng.Intn(e.n), e.rng.Intn(e.n)}
		if _, seen := e.visited[m]; !seen && e.valid(m) {
			return mark(m)
		}
	}
	for a := 0; a < e.n; a++ {
		for b := 0; b < e.n; b++ {
			m := [2]int{a, b}
			if _, seen := e.visited[m]; !seen && e.valid(m) {
				return mark(m)
			}
		}
	}
	return [2]int{}, false
}

// assign labels every filament for medoids m. Pinned filaments go to their
// group; the rest are taken in ascending order of d(i,m0)-d(i,m1) and fill
// group 0 while it has room and the preference is not positive (or group 1
// is full), otherwise group 1.
func (e *pam) assign(m [2]int) []int {
	type pref struct {
		i   int
		gap float64
	}
	var (
		labels = make([]int, e.n)
		count  [2]int
		prefs  = make([]pref, 0, e.n)
	)
	for i := 0; i < e.n; i++ {
		if g, ok := e.pins[i]; ok {
			labels[i] = g
			count[g]++
			continue
		}
		prefs = append(prefs, pref{i: i, gap: e.dist[i*e.n+m[0]] - e.dist[i*e.n+m[1]]})
	}
	sort.SliceStable(prefs, func(a, b int) bool { return prefs[a].gap < prefs[b].gap })

	for _, p := range prefs {
		var g int
		switch {
		case count[0] < e.size[0] && (p.gap <= 0 || count[1] >= e.size[1]):
			g = 0
		case count[1] < e.size[1] && (p.gap > 0 || count[0] >= e.size[0]):
			g = 1
		case p.gap <= 0:
			g = 0
		default:
			g = 1
		}
		labels[p.i] = g
		count[g]++
	}
	return labels
}

// clusterCost sums the distance of every filament to its medoid.
func (e *pam) clusterCost(labels []int, m [2]int) float64 {
	var total float64
	for i, g := range labels {
		total += e.dist[i*e.n+m[g]]
	}
	return total
}

// localSearch swaps each non-medoid into each medoid slot and keeps any
// strict improvement until a full pass finds none.
func (e *pam) localSearch(m [2]int) ([]int, float64) {
	labels := e.assign(m)
	cost := e.clusterCost(labels, m)
	for improved := true; improved; {
		improved = false
		for p := 0; p < e.n; p++ {
			if p == m[0] || p == m[1] {
				continue
			}
			for pos := 0; pos < 2; pos++ {
				cand := m
				cand[pos] = p
				if !e.valid(cand) {
					continue
				}
				l := e.assign(cand)
				if c := e.clusterCost(l, cand); c < cost-costEps {
					m, labels, cost, improved = cand, l, c, true
					e.visited[cand] = struct{}{}
				}
			}
		}
	}
	return slices.Clip(labels), cost
}
