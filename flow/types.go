package flow

import (
	"errors"
	"fmt"
)

// Unmatched is reported for a left node that received no flow.
const Unmatched = -1

// ErrDuplicateNode is returned when a node id appears twice on one side.
var ErrDuplicateNode = errors.New("flow: duplicate node id")

// CapacityError is returned when a node capacity is negative.
type CapacityError struct {
	Node int
	Cap  int
}

func (e CapacityError) Error() string {
	return fmt.Sprintf("flow: negative capacity on node %d: %d", e.Node, e.Cap)
}

// Options configures the admissible pairs and node capacities.
// All maps are keyed by node id; missing keys mean "no constraint" and
// capacity 1.
type Options struct {
	LinkLimits    map[int][]int // left id → allowed right ids
	UnlinkLimits  map[int][]int // left id → forbidden right ids
	LeftCapacity  map[int]int   // left id → source edge capacity
	RightCapacity map[int]int   // right id → sink edge capacity
}

// CostFunc prices assigning left id l to right id r.
type CostFunc func(l, r int) float64

// Result is the outcome of a solve.
type Result struct {
	// Match holds, per left node in input order, the first right id it was
	// assigned to, or Unmatched.
	Match []int
	// Assigned holds every right id per left node (more than one only when
	// the left capacity exceeds 1).
	Assigned [][]int
	// Flow is the number of units pushed.
	Flow int
	// Cost is the sum of cost over the used left→right edges.
	Cost float64
}
