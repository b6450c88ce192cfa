package flow

import (
	"fmt"
	"slices"
)

// edge is one residual arc. rev is the index of its paired twin in
// network.edges: forward edges point at their reverse and vice versa.
type edge struct {
	to   int
	cap  int
	cost float64
	rev  int
}

// network is the shared bipartite layout.
// Node numbering: 0 = source, 1..L = left, L+1..L+R = right, L+R+1 = sink.
type network struct {
	left, right  []int
	edges        []edge
	base         []int   // initial capacities, restored before each solve
	adj          [][]int // node → edge indices in insertion order
	pairs        [][]int // left index → forward left→right edge indices
	source, sink int
}

// newNetwork builds the layout; cost may be nil for the uncosted variant.
func newNetwork(left, right []int, opts Options, cost CostFunc) (*network, error) {
	if err := checkUnique(left); err != nil {
		return nil, err
	}
	if err := checkUnique(right); err != nil {
		return nil, err
	}

	nl, nr := len(left), len(right)
	n := &network{
		left:   left,
		right:  right,
		adj:    make([][]int, nl+nr+2),
		pairs:  make([][]int, nl),
		source: 0,
		sink:   nl + nr + 1,
	}

	// 1) source → left
	for i, l := range left {
		c, err := capacityOf(opts.LeftCapacity, l)
		if err != nil {
			return nil, err
		}
		n.addEdge(n.source, 1+i, c, 0)
	}

	// 2) left → right, honoring whitelist then blacklist
	for i, l := range left {
		allowed, hasLink := opts.LinkLimits[l]
		banned := opts.UnlinkLimits[l]
		for j, r := range right {
			if hasLink && !slices.Contains(allowed, r) {
				continue
			}
			if slices.Contains(banned, r) {
				continue
			}
			var w float64
			if cost != nil {
				w = cost(l, r)
			}
			n.pairs[i] = append(n.pairs[i], n.addEdge(1+i, 1+nl+j, 1, w))
		}
	}

	// 3) right → sink
	for j, r := range right {
		c, err := capacityOf(opts.RightCapacity, r)
		if err != nil {
			return nil, err
		}
		n.addEdge(1+nl+j, n.sink, c, 0)
	}

	n.base = make([]int, len(n.edges))
	for i := range n.edges {
		n.base[i] = n.edges[i].cap
	}

	return n, nil
}

// addEdge appends a forward edge and its zero-capacity, negated-cost twin,
// returning the forward index.
func (n *network) addEdge(u, v, c int, cost float64) int {
	fwd := len(n.edges)
	n.edges = append(n.edges,
		edge{to: v, cap: c, cost: cost, rev: fwd + 1},
		edge{to: u, cap: 0, cost: -cost, rev: fwd},
	)
	n.adj[u] = append(n.adj[u], fwd)
	n.adj[v] = append(n.adj[v], fwd+1)
	return fwd
}

// reset restores the residual capacities to their initial values.
func (n *network) reset() {
	for i := range n.edges {
		n.edges[i].cap = n.base[i]
	}
}

// augment pushes the bottleneck along the path recorded in via
// (node → edge used to reach it) and returns the pushed amount.
func (n *network) augment(via []int) int {
	push := -1
	for v := n.sink; v != n.source; {
		e := n.edges[via[v]]
		if push < 0 || e.cap < push {
			push = e.cap
		}
		v = n.edges[e.rev].to
	}
	for v := n.sink; v != n.source; {
		id := via[v]
		n.edges[id].cap -= push
		n.edges[n.edges[id].rev].cap += push
		v = n.edges[n.edges[id].rev].to
	}
	return push
}

// result reads the matching back from the saturated left→right edges.
func (n *network) result(flow int) Result {
	res := Result{
		Match:    make([]int, len(n.left)),
		Assigned: make([][]int, len(n.left)),
		Flow:     flow,
	}
	nl := len(n.left)
	for i := range n.left {
		res.Match[i] = Unmatched
		for _, id := range n.pairs[i] {
			e := n.edges[id]
			if e.cap >= n.base[id] {
				continue // no flow on this pair
			}
			r := n.right[e.to-1-nl]
			if res.Match[i] == Unmatched {
				res.Match[i] = r
			}
			res.Assigned[i] = append(res.Assigned[i], r)
			res.Cost += e.cost * float64(n.base[id]-e.cap)
		}
	}
	return res
}

func checkUnique(ids []int) error {
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: %d", ErrDuplicateNode, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func capacityOf(caps map[int]int, id int) (int, error) {
	c, ok := caps[id]
	if !ok {
		return 1, nil
	}
	if c < 0 {
		return 0, CapacityError{Node: id, Cap: c}
	}
	return c, nil
}
