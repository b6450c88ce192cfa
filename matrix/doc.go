// SPDX-License-Identifier: MIT

// Package matrix provides the dense numeric storage used for flush-cost tables.
//
// The package offers:
//
//   - Dense, a row-major float64 matrix with bounds-checked accessors.
//   - NewDenseFromRows for ingesting caller-supplied [][]float64 tables.
//   - Validators (ValidateSquare, ValidateNonNegative, ValidateFinite) that
//     return sentinel errors so callers can wrap them uniformly.
//
// All public accessors return errors instead of panicking. Loops run in a
// fixed row-major order, so every operation is deterministic.
//
// Complexity quicksheet:
//   - NewDense: O(r*c); At/Set: O(1); Clone/Flat: O(r*c); validators: O(r*c).
package matrix
