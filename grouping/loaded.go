package grouping

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/katalvlaran/purgeplan/flow"
)

const (
	// failCost prices a filament with no acceptable loaded slot.
	failCost = 9999
	// DefaultColorThreshold is the largest accepted colour distance (ΔE00).
	DefaultColorThreshold = 20.0
)

// Filament describes a filament by what matters for matching.
type Filament struct {
	Color   string `json:"color" yaml:"color"` // hex, e.g. "#FF8800"
	Type    string `json:"type" yaml:"type"`   // material, e.g. "PLA"
	Support bool   `json:"support,omitempty" yaml:"support,omitempty"`
}

// Loaded is the state of the printer before the job.
type Loaded struct {
	// Filaments describes every used filament id.
	Filaments map[int]Filament `json:"filaments" yaml:"filaments"`
	// Slots lists the filaments physically loaded for each group.
	Slots [2][]Filament `json:"slots" yaml:"slots"`
	// ColorThreshold caps accepted colour distance (0 → default).
	ColorThreshold float64 `json:"color_threshold,omitempty" yaml:"color_threshold,omitempty"`
}

// selectLoaded returns the candidate whose groups best match the loaded
// slots; the first candidate wins ties.
func selectLoaded(candidates [][]int, used []int, l Loaded) []int {
	if l.ColorThreshold <= 0 {
		l.ColorThreshold = DefaultColorThreshold
	}
	var (
		best     []int
		bestCost float64
	)
	for _, labels := range candidates {
		if c := loadedCost(labels, used, l); best == nil || c < bestCost {
			best, bestCost = labels, c
		}
	}
	return best
}

// loadedCost matches each group's filaments to that group's slots with a
// min-cost flow over colour distance. Material or support mismatches are
// not admissible; unmatched or too distant filaments cost failCost.
func loadedCost(labels []int, used []int, l Loaded) float64 {
	var total float64
	for g := 0; g < 2; g++ {
		var members []Filament
		for i, lab := range labels {
			if lab == g {
				members = append(members, l.Filaments[used[i]])
			}
		}
		if len(members) == 0 {
			continue
		}
		slots := l.Slots[g]
		if len(slots) == 0 {
			total += failCost * float64(len(members))
			continue
		}

		left := make([]int, len(members))
		right := make([]int, len(slots))
		dist := make([][]float64, len(members))
		opts := flow.Options{
			UnlinkLimits:  make(map[int][]int),
			RightCapacity: make(map[int]int, len(slots)),
		}
		for s := range slots {
			right[s] = s
			opts.RightCapacity[s] = len(members)
		}
		for i, f := range members {
			left[i] = i
			dist[i] = make([]float64, len(slots))
			for s, slot := range slots {
				dist[i][s] = colorDistance(f.Color, slot.Color)
				if f.Type != slot.Type || f.Support != slot.Support {
					opts.UnlinkLimits[i] = append(opts.UnlinkLimits[i], s)
				}
			}
		}

		mcf, err := flow.NewMinCostFlow(left, right, func(a, b int) float64 { return dist[a][b] }, opts)
		if err != nil {
			total += failCost * float64(len(members))
			continue
		}
		for i, s := range mcf.Solve().Match {
			if s == flow.Unmatched || dist[i][s] > l.ColorThreshold {
				total += failCost
				continue
			}
			total += dist[i][s]
		}
	}
	return total
}

// colorDistance is the CIEDE2000 distance scaled to the usual 0..100 range.
// Unparseable colours are as far apart as possible.
func colorDistance(a, b string) float64 {
	ca, err := colorful.Hex(a)
	if err != nil {
		return failCost
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return failCost
	}
	return ca.DistanceCIEDE2000(cb) * 100
}
