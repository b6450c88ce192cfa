package grouping_test

import (
	"fmt"

	"github.com/katalvlaran/purgeplan/flush"
	"github.com/katalvlaran/purgeplan/grouping"
)

func ExampleGroup() {
	opts := grouping.DefaultOptions()
	opts.MaxGroupSize = [2]int{2, 2}
	res, _ := grouping.Group([][]int{{0, 1, 2}}, []*flush.Matrix{flush.Uniform(3, 1)}, opts)
	fmt.Println(res.Method, res.Labels, res.Cost)
	// Output: exhaustive [1 0 0] 1
}
