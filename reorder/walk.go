package reorder

import (
	"slices"
	"strconv"
	"strings"

	"github.com/katalvlaran/purgeplan/flush"
	"github.com/katalvlaran/purgeplan/sequence"
)

// walk runs group g through every layer and returns its per-layer orders
// (nil where the group prints nothing) with their summed cost.
func (p *Planner) walk(g int, group map[int]int) ([][]int, float64) {
	var (
		m     = flush.MatrixFor(p.matrices, g)
		out   = make([][]int, len(p.layers))
		cur   = flush.NoFilament
		total float64
	)
	for i, layer := range p.layers {
		mine := members(layer, group, g)
		if len(mine) == 0 {
			continue
		}

		var seq []int
		if ov := p.overrides[i]; ov != nil {
			// 1) Override: caller order first, then anything it forgot.
			seq = members(ov, group, g)
			if rest := missing(mine, seq); len(rest) > 0 {
				from := cur
				if len(seq) > 0 {
					from = seq[len(seq)-1]
				}
				seq = append(seq, sequence.Solve(m, sequence.Request{Current: rest, Start: from}).Order...)
			}
			total += flush.SequenceCost(m, cur, seq)
		} else {
			// 2) Optimize with a one-layer look-ahead.
			var next []int
			if i+1 < len(p.layers) {
				next = members(p.layers[i+1], group, g)
			}
			req := sequence.Request{
				Current:  mine,
				Next:     next,
				Start:    cur,
				Forecast: sequence.UseForecast(len(mine), len(next)),
			}
			res := p.solve(g, m, req)
			seq = res.Order
			total += res.Cost
		}

		out[i] = seq
		cur = seq[len(seq)-1]
	}
	return out, total
}

// solve answers req from the memo or the solver.
func (p *Planner) solve(g int, m *flush.Matrix, req sequence.Request) sequence.Result {
	key := memoKey(req)
	if res, ok := p.memo[g][key]; ok {
		return res
	}
	res := sequence.Solve(m, req)
	p.memo[g][key] = res
	return res
}

// memoKey encodes (current set, next set, start, forecast).
func memoKey(req sequence.Request) string {
	var sb strings.Builder
	sb.Grow(4 * (len(req.Current) + len(req.Next) + 2))
	for _, f := range req.Current {
		sb.WriteString(strconv.Itoa(f))
		sb.WriteByte(',')
	}
	sb.WriteByte('|')
	for _, f := range req.Next {
		sb.WriteString(strconv.Itoa(f))
		sb.WriteByte(',')
	}
	sb.WriteByte('|')
	sb.WriteString(strconv.Itoa(req.Start))
	if req.Forecast {
		sb.WriteString("|f")
	}
	return sb.String()
}

// members keeps the ids of items that belong to group g, in order.
func members(items []int, group map[int]int, g int) []int {
	var out []int
	for _, f := range items {
		if group[f] == g {
			out = append(out, f)
		}
	}
	return out
}

// missing returns the ids of want not present in have.
func missing(want, have []int) []int {
	var out []int
	for _, f := range want {
		if !slices.Contains(have, f) {
			out = append(out, f)
		}
	}
	return out
}
