package flush_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/purgeplan/flush"
	"github.com/katalvlaran/purgeplan/matrix"
)

func TestNewMatrix_Validation(t *testing.T) {
	_, err := flush.NewMatrix([][]float64{{0, 1, 2}, {1, 0, 2}})
	require.ErrorIs(t, err, flush.ErrInvalidInput)
	require.ErrorIs(t, err, matrix.ErrNonSquare)

	_, err = flush.NewMatrix([][]float64{{0, -3}, {1, 0}})
	require.ErrorIs(t, err, matrix.ErrNegative)

	m, err := flush.NewMatrix([][]float64{{0, 4}, {7, 0}})
	require.NoError(t, err)
	require.Equal(t, 2, m.Size())
	require.Equal(t, 4.0, m.Cost(0, 1))
	require.Equal(t, 7.0, m.Cost(1, 0))
	require.Equal(t, 0.0, m.Cost(flush.NoFilament, 1))
	require.Equal(t, [][]float64{{0, 4}, {7, 0}}, m.Rows())
}

func TestSequenceCost(t *testing.T) {
	m := flush.MustMatrix([][]float64{
		{0, 1, 2},
		{3, 0, 4},
		{5, 6, 0},
	})
	require.Equal(t, 0.0, flush.SequenceCost(m, flush.NoFilament, nil))
	require.Equal(t, 1.0+4.0, flush.SequenceCost(m, flush.NoFilament, []int{0, 1, 2}))
	require.Equal(t, 5.0+1.0, flush.SequenceCost(m, 2, []int{0, 1}))
}

func TestNormalizeAndUsed(t *testing.T) {
	in := [][]int{{3, 1, 3}, {}, {2, 1}}
	out := flush.NormalizeLayers(in)
	require.Equal(t, [][]int{{1, 3}, {}, {1, 2}}, out)
	require.Equal(t, []int{3, 1, 3}, in[0], "input must not be modified")
	require.Equal(t, []int{1, 2, 3}, flush.UsedFilaments(out))
	require.Nil(t, flush.UsedFilaments(nil))
}

func TestCheckLayers(t *testing.T) {
	ms := []*flush.Matrix{flush.Uniform(3, 1), flush.Uniform(2, 1)}
	require.NoError(t, flush.CheckLayers([][]int{{0, 1}}, ms))

	err := flush.CheckLayers([][]int{{0}, {2}}, ms)
	require.ErrorIs(t, err, flush.ErrMatrixOutOfBounds)
	require.Contains(t, err.Error(), "filament 2")

	err = flush.CheckLayers([][]int{{-1}}, ms)
	require.Equal(t, flush.KindInvalidInput, flush.KindOf(err))
}

func TestCoOccurrence(t *testing.T) {
	used := []int{0, 4, 7}
	c := flush.CoOccurrence([][]int{{0, 4}, {0, 4, 7}, {7}}, used)
	require.Equal(t, []int{
		0, 2, 1,
		2, 0, 1,
		1, 1, 0,
	}, c)
}

func TestErrorKinds(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("outer: %w", flush.Wrap(flush.KindInfeasible, cause, "5 filaments, capacity %d", 4))
	require.ErrorIs(t, err, flush.ErrInfeasible)
	require.ErrorIs(t, err, cause)
	require.NotErrorIs(t, err, flush.ErrInvalidInput)
	require.Equal(t, flush.KindInfeasible, flush.KindOf(err))
	require.Equal(t, flush.Kind(""), flush.KindOf(cause))
	require.Equal(t, "INFEASIBLE: 5 filaments, capacity 4: boom", errors.Unwrap(err).Error())
}

func TestMatrixFor(t *testing.T) {
	a, b := flush.Uniform(2, 1), flush.Uniform(2, 2)
	require.Same(t, a, flush.MatrixFor([]*flush.Matrix{a, b}, 0))
	require.Same(t, b, flush.MatrixFor([]*flush.Matrix{a, b}, 1))
	require.Same(t, a, flush.MatrixFor([]*flush.Matrix{a}, 1))
}
