package grouping

import (
	"math"
	"slices"
	"sort"
)

// absoluteGapTolerance replaces the relative gap when the best cost is 0.
const absoluteGapTolerance = 1.0

// candidate is a remembered labeling.
type candidate struct {
	labels []int
	cost   float64
	level  int
}

// memory keeps labelings of the best preference level whose cost is
// within a relative gap of the best one. items[0] is always the best.
type memory struct {
	gap   float64
	limit int
	items []candidate
}

func newMemory(gap float64, limit int) *memory {
	return &memory{gap: gap, limit: limit}
}

// acceptable reports whether c is close enough to best to be kept.
func (m *memory) acceptable(c, best candidate) bool {
	diff := math.Abs(c.cost - best.cost)
	if best.cost == 0 {
		return diff <= absoluteGapTolerance
	}
	return diff/best.cost < m.gap
}

// offer records c when it belongs to the best level and cost band.
func (m *memory) offer(c candidate) {
	if len(m.items) == 0 {
		m.items = []candidate{c}
		return
	}
	top := m.items[0]
	switch {
	case top.level > c.level:
		return
	case top.level < c.level:
		// 1) Higher level: start over.
		m.items = []candidate{c}
	case top.cost <= c.cost:
		// 2) Same level, not better: keep if close.
		if !m.acceptable(c, top) {
			return
		}
		m.items = append(m.items, c)
	default:
		// 3) New best: re-filter everything against it.
		kept := []candidate{c}
		for _, old := range m.items {
			if m.acceptable(old, c) {
				kept = append(kept, old)
			}
		}
		m.items = kept
	}

	sort.SliceStable(m.items, func(a, b int) bool { return m.items[a].cost < m.items[b].cost })
	if len(m.items) > m.limit {
		m.items = m.items[:m.limit]
	}
}

// labels returns the remembered labelings, best first, without duplicates.
func (m *memory) labels() [][]int {
	var out [][]int
	for _, c := range m.items {
		if !containsLabels(out, c.labels) {
			out = append(out, slices.Clone(c.labels))
		}
	}
	return out
}
