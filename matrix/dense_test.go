// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/purgeplan/matrix"
)

func TestNewDense_InvalidDimensions(t *testing.T) {
	_, err := matrix.NewDense(0, 3)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	_, err = matrix.NewDense(2, -1)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestDense_AtSet(t *testing.T) {
	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	require.Equal(t, 2, m.Rows())
	require.Equal(t, 3, m.Cols())

	require.NoError(t, m.Set(1, 2, 7.5))
	v, err := m.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, 7.5, v)

	_, err = m.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, 3, 1), matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, 0, math.NaN()), matrix.ErrNaNInf)
}

func TestNewDenseFromRows(t *testing.T) {
	m, err := matrix.NewDenseFromRows([][]float64{{0, 1}, {2, 0}})
	require.NoError(t, err)
	require.Equal(t, []float64{0, 1, 2, 0}, m.Flat())
	require.Equal(t, "[0, 1]\n[2, 0]\n", m.String())

	_, err = matrix.NewDenseFromRows(nil)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	_, err = matrix.NewDenseFromRows([][]float64{{0, 1}, {2}})
	require.ErrorIs(t, err, matrix.ErrRaggedRows)
	_, err = matrix.NewDenseFromRows([][]float64{{0, math.Inf(1)}, {2, 0}})
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestDense_CloneIsIndependent(t *testing.T) {
	m, err := matrix.NewDenseFromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	c := m.Clone()
	require.NoError(t, c.Set(0, 0, 9))
	v, _ := m.At(0, 0)
	require.Equal(t, 1.0, v)
}

func TestValidators(t *testing.T) {
	require.ErrorIs(t, matrix.ValidateSquare(nil), matrix.ErrNilMatrix)

	rect, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	require.ErrorIs(t, matrix.ValidateSquare(rect), matrix.ErrNonSquare)

	neg, err := matrix.NewDenseFromRows([][]float64{{0, -1}, {1, 0}})
	require.NoError(t, err)
	require.NoError(t, matrix.ValidateSquare(neg))
	require.ErrorIs(t, matrix.ValidateNonNegative(neg), matrix.ErrNegative)
}
