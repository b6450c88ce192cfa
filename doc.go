// Package purgeplan plans filament changes for multi-material 3D prints.
//
// A print is a stack of layers, each using a set of filaments. Switching
// filament on a nozzle wastes material (the flush, or purge, volume) that
// depends on the pair of filaments. purgeplan splits the filaments between
// two groups (nozzles) and orders every layer so that the total flush
// volume is as small as possible.
//
// Packages:
//
//	matrix/    dense float64 tables and their validators
//	flush/     flush matrices, layers, solutions and scheduler errors
//	flow/      bipartite max-flow and min-cost-flow
//	sequence/  order of one layer (exact DP, look-ahead, greedy)
//	reorder/   per-group walk over all layers and the merged timeline
//	grouping/  two-way split: enumeration or k-medoids
//	schedule/  end-to-end solve, plan cache, metrics and logging
//
// cache/, store/, metrics/, jobfile/, config/, server/ and viz/ carry the
// service plumbing around schedule.
//
// Quick example:
//
//	job := schedule.Job{
//		Layers:       [][]int{{0, 1}, {1, 2}},
//		Matrices:     [][][]float64{{{0, 1, 1}, {1, 0, 1}, {1, 1, 0}}},
//		MaxGroupSize: [2]int{2, 2},
//	}
//	plan, err := schedule.Solve(job, schedule.DefaultOptions())
//
// The command line lives in cmd/purgeplan.
package purgeplan
