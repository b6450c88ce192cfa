// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// Every message is prefixed with "matrix: ..." so it can be grepped in logs.
// Callers match with errors.Is; context is added with fmt.Errorf("ctx: %w", ErrX).

package matrix

import "errors"

var (
	// ErrInvalidDimensions is returned when a requested shape has a non-positive side.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrRaggedRows signals rows of unequal length in a [][]float64 source.
	ErrRaggedRows = errors.New("matrix: rows have unequal length")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNegative signals a negative entry where costs must be >= 0.
	ErrNegative = errors.New("matrix: negative entry")

	// ErrNilMatrix indicates that a nil *Dense was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")
)
