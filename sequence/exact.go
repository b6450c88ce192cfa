package sequence

import (
	"math"
)

// Exact finds the cheapest Hamiltonian path through filaments, entered from
// start, with the subset DP:
//
//	dp[mask][j] = cheapest cost to have loaded exactly the filaments in mask,
//	              ending with filaments[j].
//
// There is no return leg, so the answer is min_j dp[full][j]. Ties keep the
// first candidate in index order, so the result is fully deterministic.
//
// Callers keep k ≤ MaxExact; the tables grow as k·2ᵏ.
//
// Time complexity:   O(k² · 2ᵏ)
// Memory complexity: O(k · 2ᵏ)
func Exact(c Coster, filaments []int, start int) Result {
	k := len(filaments)
	if k <= 1 {
		return Solve(c, Request{Current: filaments, Start: start})
	}

	// --- 1. Transition table, built once ---
	w := make([]float64, k*k)
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			w[i*k+j] = c.Cost(filaments[i], filaments[j])
		}
	}

	// --- 2. Allocate DP and parent tables ---
	full := (1 << k) - 1
	dp := make([]float64, (full+1)*k)
	parent := make([]int8, (full+1)*k)
	for i := range dp {
		dp[i] = math.Inf(1)
		parent[i] = -1
	}
	// Base case: a single loaded filament costs its entry from start.
	for j := 0; j < k; j++ {
		dp[(1<<j)*k+j] = entry(c, start, filaments[j])
	}

	// --- 3. Push every reachable state forward ---
	for mask := 1; mask <= full; mask++ {
		for j := 0; j < k; j++ {
			if mask&(1<<j) == 0 {
				continue // j not in subset
			}
			cur := dp[mask*k+j]
			if math.IsInf(cur, 1) {
				continue
			}
			for nx := 0; nx < k; nx++ {
				if mask&(1<<nx) != 0 {
					continue // already loaded
				}
				next := mask | 1<<nx
				if cand := cur + w[j*k+nx]; cand < dp[next*k+nx] {
					dp[next*k+nx] = cand
					parent[next*k+nx] = int8(j)
				}
			}
		}
	}

	// --- 4. Pick the cheapest final state ---
	best, last := math.Inf(1), 0
	for j := 0; j < k; j++ {
		if v := dp[full*k+j]; v < best {
			best, last = v, j
		}
	}

	// --- 5. Reconstruct from the parent table ---
	order := make([]int, k)
	mask, j := full, last
	for i := k - 1; i >= 0; i-- {
		order[i] = filaments[j]
		p := int(parent[mask*k+j])
		mask ^= 1 << j
		j = p
	}

	return Result{Order: order, Cost: best}
}
