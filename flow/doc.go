// Package flow implements bipartite assignment on small flow networks.
//
// Two solvers share one network layout:
//
//	source → left nodes → right nodes → sink
//
//   - MaxFlow
//
//   - Method: Edmonds–Karp, BFS for shortest augmenting paths.
//
//   - Time:   O(V · E²).
//
//   - Use to find a maximum matching when every admissible pair is equal.
//
//   - MinCostFlow
//
//   - Method: successive shortest paths found with SPFA (queue-based
//     Bellman–Ford), which tolerates the negative costs of reverse edges.
//
//   - Time:   O(F · V · E) where F is the total flow.
//
//   - Use when pairs carry a cost and the cheapest maximum assignment is wanted.
//
// # Constraints
//
// Options narrows the admissible pairs and sets node capacities:
//
//	LinkLimits   – left id → whitelist of right ids
//	UnlinkLimits – left id → blacklist of right ids
//	LeftCapacity / RightCapacity – per node, default 1
//
// A left node with no admissible partner, or one that lost the competition
// for capacity, resolves to Unmatched. That is a normal outcome, not an error.
//
// # Determinism
//
// Edges are inserted in the order of the left and right id slices and both
// searches scan adjacency lists in insertion order, so identical inputs yield
// identical matchings. Every edge stores the index of its reverse twin.
//
// # Example
//
//	mf, _ := flow.NewMaxFlow([]int{0, 1}, []int{10, 11}, flow.Options{
//	    LinkLimits: map[int][]int{1: {10}},
//	})
//	res := mf.Solve()
//	// res.Match == []int{11, 10}
package flow
