package flush

import (
	"github.com/katalvlaran/purgeplan/matrix"
)

// NoFilament marks "nothing loaded yet" wherever a filament id is expected.
const NoFilament = -1

// Matrix is a validated square flush-cost table for one nozzle.
// Cost lookups read a flat row-major copy of the table, so Matrix is
// immutable and safe for concurrent readers.
type Matrix struct {
	n int
	w []float64
}

// NewMatrix validates rows (square, finite, non-negative) and wraps them.
func NewMatrix(rows [][]float64) (*Matrix, error) {
	d, err := matrix.NewDenseFromRows(rows)
	if err != nil {
		return nil, Wrap(KindInvalidInput, err, "flush matrix")
	}
	return FromDense(d)
}

// FromDense wraps an existing dense table after the same validation as NewMatrix.
func FromDense(d *matrix.Dense) (*Matrix, error) {
	if err := matrix.ValidateSquare(d); err != nil {
		return nil, Wrap(KindInvalidInput, err, "flush matrix")
	}
	if err := matrix.ValidateNonNegative(d); err != nil {
		return nil, Wrap(KindInvalidInput, err, "flush matrix")
	}
	return &Matrix{n: d.Rows(), w: d.Flat()}, nil
}

// MustMatrix is NewMatrix for literals in tests and examples; it panics on error.
func MustMatrix(rows [][]float64) *Matrix {
	m, err := NewMatrix(rows)
	if err != nil {
		panic(err)
	}
	return m
}

// Uniform returns an n×n matrix with 0 on the diagonal and c elsewhere.
func Uniform(n int, c float64) *Matrix {
	w := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				w[i*n+j] = c
			}
		}
	}
	return &Matrix{n: n, w: w}
}

// Size is the number of filaments the matrix covers.
func (m *Matrix) Size() int { return m.n }

// Contains reports whether id has a row and a column.
func (m *Matrix) Contains(id int) bool { return id >= 0 && id < m.n }

// Cost is the flush volume for switching from -> to.
// Switching from NoFilament is free. Ids must be in range; see Contains.
func (m *Matrix) Cost(from, to int) float64 {
	if from == NoFilament {
		return 0
	}
	return m.w[from*m.n+to]
}

// Rows returns a copy of the table as nested slices.
func (m *Matrix) Rows() [][]float64 {
	out := make([][]float64, m.n)
	for i := range out {
		out[i] = append([]float64(nil), m.w[i*m.n:(i+1)*m.n]...)
	}
	return out
}

// SequenceCost replays seq starting from start and sums every transition.
func SequenceCost(m *Matrix, start int, seq []int) float64 {
	var total float64
	prev := start
	for _, f := range seq {
		total += m.Cost(prev, f)
		prev = f
	}
	return total
}
