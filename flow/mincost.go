package flow

import "math"

// costEps absorbs float rounding when comparing path costs.
const costEps = 1e-9

// MinCostFlow finds a maximum bipartite assignment of minimum total cost.
type MinCostFlow struct {
	net *network
}

// NewMinCostFlow builds the network with left→right edges priced by cost.
// A nil cost prices every pair at 0.
// Errors: ErrDuplicateNode, CapacityError.
func NewMinCostFlow(left, right []int, cost CostFunc, opts Options) (*MinCostFlow, error) {
	n, err := newNetwork(left, right, opts, cost)
	if err != nil {
		return nil, err
	}
	return &MinCostFlow{net: n}, nil
}

// Solve repeatedly augments along the cheapest residual path (SPFA) until
// the sink becomes unreachable. Result.Cost is Σ flow(e)·cost(e).
//
// Complexity: O(F · V · E).
func (m *MinCostFlow) Solve() Result {
	n := m.net
	n.reset()

	var (
		total   int
		nodes   = len(n.adj)
		via     = make([]int, nodes)
		dist    = make([]float64, nodes)
		inQueue = make([]bool, nodes)
		queue   = make([]int, 0, nodes)
	)
	for {
		// 1) SPFA: FIFO relaxation from the source.
		for i := range dist {
			dist[i] = math.Inf(1)
			via[i] = -1
			inQueue[i] = false
		}
		dist[n.source] = 0
		queue = append(queue[:0], n.source)
		inQueue[n.source] = true
		for head := 0; head < len(queue); head++ {
			u := queue[head]
			inQueue[u] = false
			for _, id := range n.adj[u] {
				e := n.edges[id]
				if e.cap <= 0 {
					continue
				}
				if d := dist[u] + e.cost; d < dist[e.to]-costEps {
					dist[e.to] = d
					via[e.to] = id
					if !inQueue[e.to] {
						inQueue[e.to] = true
						queue = append(queue, e.to)
					}
				}
			}
		}
		if via[n.sink] < 0 {
			break
		}

		// 2) Push the bottleneck along the cheapest path.
		total += n.augment(via)
	}

	return n.result(total)
}
