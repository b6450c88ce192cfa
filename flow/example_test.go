package flow_test

import (
	"fmt"

	"github.com/katalvlaran/purgeplan/flow"
)

func ExampleMaxFlow() {
	mf, _ := flow.NewMaxFlow([]int{0, 1}, []int{10, 11}, flow.Options{
		LinkLimits: map[int][]int{1: {10}},
	})
	res := mf.Solve()
	fmt.Println(res.Match, res.Flow)
	// Output: [11 10] 2
}

func ExampleMinCostFlow() {
	cost := [][]float64{{1, 2}, {3, 100}}
	mcf, _ := flow.NewMinCostFlow([]int{0, 1}, []int{0, 1}, func(l, r int) float64 {
		return cost[l][r]
	}, flow.Options{})
	res := mcf.Solve()
	fmt.Println(res.Match, res.Cost)
	// Output: [1 0] 5
}
