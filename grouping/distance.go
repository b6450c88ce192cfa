package grouping

import (
	"github.com/katalvlaran/purgeplan/flush"
)

// maxWeight is the share of the costlier flush direction in a pair
// distance; the cheaper direction gets 1-maxWeight. Pinned at 1.
const maxWeight = 1.0

// distances builds the n×n clustering distance over used:
//
//	d(i,j) = (max(f_ij, f_ji)·w + min(f_ij, f_ji)·(1-w)) · cooccur(i,j)
//
// Filaments that never share a layer are at distance 0.
//
// Complexity: O(n² + Σ|layer|²).
func distances(layers [][]int, used []int, m *flush.Matrix) []float64 {
	n := len(used)
	co := flush.CoOccurrence(layers, used)
	d := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			c := co[i*n+j]
			if i == j || c == 0 {
				continue
			}
			a, b := m.Cost(used[i], used[j]), m.Cost(used[j], used[i])
			hi, lo := max(a, b), min(a, b)
			d[i*n+j] = (hi*maxWeight + lo*(1-maxWeight)) * float64(c)
		}
	}
	return d
}
