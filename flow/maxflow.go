package flow

// MaxFlow finds a maximum bipartite matching with Edmonds–Karp.
type MaxFlow struct {
	net *network
}

// NewMaxFlow builds the network for left and right ids under opts.
// Errors: ErrDuplicateNode, CapacityError.
func NewMaxFlow(left, right []int, opts Options) (*MaxFlow, error) {
	n, err := newNetwork(left, right, opts, nil)
	if err != nil {
		return nil, err
	}
	return &MaxFlow{net: n}, nil
}

// Solve augments along BFS shortest paths until the sink is unreachable.
// Every call starts from the initial capacities, so repeated calls agree.
//
// Complexity: O(V · E²).
func (m *MaxFlow) Solve() Result {
	n := m.net
	n.reset()

	var (
		total int
		nodes = len(n.adj)
		via   = make([]int, nodes)
		queue = make([]int, 0, nodes)
	)
	for {
		// 1) BFS from the source over edges with residual capacity.
		for i := range via {
			via[i] = -1
		}
		queue = append(queue[:0], n.source)
		for head := 0; head < len(queue) && via[n.sink] < 0; head++ {
			u := queue[head]
			for _, id := range n.adj[u] {
				e := n.edges[id]
				if e.cap <= 0 || e.to == n.source || via[e.to] >= 0 {
					continue
				}
				via[e.to] = id
				queue = append(queue, e.to)
			}
		}
		if via[n.sink] < 0 {
			break
		}

		// 2) Push the bottleneck.
		total += n.augment(via)
	}

	return n.result(total)
}
