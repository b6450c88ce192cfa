package flush

import (
	"slices"
)

// NormalizeLayers returns a copy of layers with every layer sorted ascending
// and de-duplicated. The input is not modified.
func NormalizeLayers(layers [][]int) [][]int {
	out := make([][]int, len(layers))
	for i, l := range layers {
		c := slices.Clone(l)
		slices.Sort(c)
		out[i] = slices.Compact(c)
	}
	return out
}

// UsedFilaments returns every filament id appearing in layers, ascending.
func UsedFilaments(layers [][]int) []int {
	seen := make(map[int]struct{})
	var used []int
	for _, l := range layers {
		for _, f := range l {
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			used = append(used, f)
		}
	}
	slices.Sort(used)
	return used
}

// CheckLayers fails fast on the first id that is negative or falls outside
// any of the matrices.
func CheckLayers(layers [][]int, matrices []*Matrix) error {
	for li, l := range layers {
		for _, f := range l {
			if f < 0 {
				return Errorf(KindInvalidInput, "layer %d: negative filament id %d", li, f)
			}
			for mi, m := range matrices {
				if m == nil {
					return Errorf(KindInvalidInput, "flush matrix %d is nil", mi)
				}
				if !m.Contains(f) {
					return Errorf(KindMatrixOutOfBounds, "layer %d: filament %d outside flush matrix %d (size %d)", li, f, mi, m.Size())
				}
			}
		}
	}
	return nil
}

// CoOccurrence counts, for every pair of positions in used, the layers in
// which both filaments appear. Layers must be normalized. The result is
// symmetric and row-major.
func CoOccurrence(layers [][]int, used []int) []int {
	n := len(used)
	pos := make(map[int]int, n)
	for i, f := range used {
		pos[f] = i
	}
	counts := make([]int, n*n)
	idx := make([]int, 0, n)
	for _, l := range layers {
		idx = idx[:0]
		for _, f := range l {
			if p, ok := pos[f]; ok {
				idx = append(idx, p)
			}
		}
		for a := 0; a < len(idx); a++ {
			for b := a + 1; b < len(idx); b++ {
				counts[idx[a]*n+idx[b]]++
				counts[idx[b]*n+idx[a]]++
			}
		}
	}
	return counts
}
