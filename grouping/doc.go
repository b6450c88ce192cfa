// Package grouping splits the filaments of a job between two groups (two
// nozzles, or two lanes feeding one nozzle) so that the flush cost of the
// resulting reorder pass is as low as possible.
//
// Method is chosen by the number n of distinct filaments:
//
//   - n ≤ 1, or a group with capacity 0: trivial, no search.
//   - 1 < n < 10: Exhaustive. All 2ⁿ labelings within the group capacities
//     are priced with a full reorder pass; the cheapest wins.
//   - n ≥ 10: KMedoids. Two-medoid PAM on a co-occurrence weighted flush
//     distance, with random restarts and medoid-swap local search, bounded
//     by a wall-clock budget (300ms by default). At least one restart always
//     completes, so a feasible grouping is always returned.
//
// Both methods remember near-optimal labelings (Result.Alternatives). When
// the loaded filaments of the printer are known (Options.Loaded), the
// labeling whose groups best match the loaded colours and materials is
// chosen among them.
//
// Errors:
//   - flush.KindInfeasible when n exceeds MaxGroupSize[0]+MaxGroupSize[1].
//   - flush.KindInvalidInput / flush.KindMatrixOutOfBounds from validation.
package grouping
