// Package sequence orders the filaments of one layer to minimize flush cost.
//
// Given the filaments needed on the current layer, an optional look-ahead
// layer, and the filament left loaded by the previous layer, Solve returns a
// permutation of the current filaments minimizing
//
//	cost(start, o[0]) + cost(o[0], o[1]) + ... + cost(o[k-2], o[k-1])
//
// The algorithm is selected by size:
//
//   - k == 0, k == 1: trivial.
//   - Forecast (caller opt-in, see UseForecast): every permutation of the
//     current layer combined with every permutation of the next one; the
//     lowest two-layer total wins, ties go to fewer filament changes.
//   - k ≤ MaxExact: exact Hamiltonian-path DP over (subset, last) states.
//   - k > MaxExact: greedy nearest-cost insertion.
//
// Every path returns a permutation of the input and never mutates it.
// Only the greedy path is approximate; the others are exact for what they
// optimize, and every path is deterministic.
package sequence
