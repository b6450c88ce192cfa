// Package flush holds the shared vocabulary of the filament scheduler.
//
// A job is a sequence of layers, each a set of filament ids, plus one flush
// matrix per physical nozzle. Matrix.Cost(a, b) is the purge volume spent when
// the active filament switches from a to b; it is asymmetric in general.
//
// The package also defines Error, the coded error returned by every
// scheduling entry point:
//
//   - KindInfeasible: the filaments do not fit into the configured groups.
//   - KindMatrixOutOfBounds: a layer references an id outside a flush matrix.
//   - KindInvalidInput: anything else the caller got wrong (shapes, labels).
//
//	if errors.Is(err, flush.ErrInfeasible) { ... }
//	if flush.KindOf(err) == flush.KindMatrixOutOfBounds { ... }
package flush
