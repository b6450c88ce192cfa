package grouping_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/purgeplan/flush"
	"github.com/katalvlaran/purgeplan/grouping"
	"github.com/katalvlaran/purgeplan/reorder"
)

type GroupingSuite struct {
	suite.Suite
}

// oneLayer is three filaments printed together with unit flush costs.
// Every 1/2 split costs 1, keeping all three in one group costs 2.
func oneLayer() ([][]int, []*flush.Matrix) {
	return [][]int{{0, 1, 2}}, []*flush.Matrix{flush.Uniform(3, 1)}
}

func counts(labels []int) [2]int {
	var c [2]int
	for _, g := range labels {
		c[g]++
	}
	return c
}

func (s *GroupingSuite) TestInfeasibleBeforeSearch() {
	opts := grouping.DefaultOptions()
	opts.MaxGroupSize = [2]int{2, 2}
	_, err := grouping.Group([][]int{{0, 1, 2, 3, 4}}, []*flush.Matrix{flush.Uniform(5, 1)}, opts)
	require.ErrorIs(s.T(), err, flush.ErrInfeasible)
	require.Equal(s.T(), flush.KindInfeasible, flush.KindOf(err))
}

func (s *GroupingSuite) TestInvalidInput() {
	opts := grouping.DefaultOptions()
	opts.MaxGroupSize = [2]int{-1, 3}
	layers, ms := oneLayer()
	_, err := grouping.Group(layers, ms, opts)
	require.ErrorIs(s.T(), err, flush.ErrInvalidInput)

	// Forced enumeration refuses sizes it cannot finish.
	big := make([]int, 21)
	for i := range big {
		big[i] = i
	}
	opts.MaxGroupSize = [2]int{21, 21}
	_, err = grouping.Exhaustive([][]int{big}, []*flush.Matrix{flush.Uniform(21, 1)}, opts)
	require.ErrorIs(s.T(), err, flush.ErrInvalidInput)

	// Layers must fit the matrix.
	opts.MaxGroupSize = [2]int{3, 3}
	_, err = grouping.Group([][]int{{0, 7}}, ms, opts)
	require.Error(s.T(), err)
}

func (s *GroupingSuite) TestSingleGroupIsTrivial() {
	opts := grouping.DefaultOptions()
	opts.MaxGroupSize = [2]int{3, 0}
	res, err := grouping.Group([][]int{{0, 1}, {1, 2}}, []*flush.Matrix{flush.Uniform(3, 1)}, opts)
	require.NoError(s.T(), err)
	require.Equal(s.T(), grouping.MethodTrivial, res.Method)
	require.Equal(s.T(), []int{0, 0, 0}, res.Labels)
	require.Equal(s.T(), 2.0, res.Cost)
}

func (s *GroupingSuite) TestEmptyJob() {
	opts := grouping.DefaultOptions()
	opts.MaxGroupSize = [2]int{2, 2}
	res, err := grouping.Group(nil, []*flush.Matrix{flush.Uniform(1, 1)}, opts)
	require.NoError(s.T(), err)
	require.Equal(s.T(), grouping.MethodTrivial, res.Method)
	require.Empty(s.T(), res.Labels)
	require.Zero(s.T(), res.Cost)
}

func (s *GroupingSuite) TestExhaustiveIsOptimal() {
	layers := [][]int{{0, 1, 2}, {2, 3}, {0, 3, 4}, {1, 4}, {0, 2, 4}}
	m := flush.MustMatrix([][]float64{
		{0, 4, 9, 2, 7},
		{3, 0, 1, 8, 5},
		{6, 2, 0, 4, 1},
		{9, 7, 3, 0, 2},
		{1, 5, 8, 6, 0},
	})
	matrices := []*flush.Matrix{m}
	size := [2]int{3, 3}

	opts := grouping.DefaultOptions()
	opts.MaxGroupSize = size
	res, err := grouping.Group(layers, matrices, opts)
	require.NoError(s.T(), err)
	require.Equal(s.T(), grouping.MethodExhaustive, res.Method)

	// Brute force over every labeling within capacity.
	used := []int{0, 1, 2, 3, 4}
	best := -1.0
	for mask := 0; mask < 1<<len(used); mask++ {
		labels := make([]int, len(used))
		for b := range labels {
			labels[b] = mask >> b & 1
		}
		if c := counts(labels); c[0] > size[0] || c[1] > size[1] {
			continue
		}
		sol, err := reorder.Reorder(reorder.Input{Filaments: used, Labels: labels, Layers: layers, Matrices: matrices})
		require.NoError(s.T(), err)
		if best < 0 || sol.Cost < best {
			best = sol.Cost
		}
	}
	require.InDelta(s.T(), best, res.Cost, 1e-9)
	c := counts(res.Labels)
	require.LessOrEqual(s.T(), c[0], size[0])
	require.LessOrEqual(s.T(), c[1], size[1])
	for _, alt := range res.Alternatives {
		require.NotEqual(s.T(), res.Labels, alt)
	}
}

func (s *GroupingSuite) TestBestFitFillsBothGroups() {
	layers, ms := oneLayer()
	opts := grouping.DefaultOptions()
	opts.MaxGroupSize = [2]int{1, 2}
	opts.Strategy = grouping.BestFit
	res, err := grouping.Group(layers, ms, opts)
	require.NoError(s.T(), err)
	require.Equal(s.T(), [2]int{1, 2}, counts(res.Labels))
}

func (s *GroupingSuite) TestUnprintablePinsFilament() {
	layers, ms := oneLayer()
	for _, run := range []func([][]int, []*flush.Matrix, grouping.Options) (grouping.Result, error){
		grouping.Group, grouping.KMedoids,
	} {
		opts := grouping.DefaultOptions()
		opts.MaxGroupSize = [2]int{2, 2}
		opts.Unprintable = [2][]int{{2}, nil}
		res, err := run(layers, ms, opts)
		require.NoError(s.T(), err)
		require.Equal(s.T(), 1, res.Assignment()[2], "method %s", res.Method)
	}
}

func (s *GroupingSuite) TestMasterGroupGetsLargerSide() {
	layers, ms := oneLayer()
	opts := grouping.DefaultOptions()
	opts.MaxGroupSize = [2]int{3, 3}

	opts.MasterGroup = grouping.NoMaster
	res, err := grouping.Group(layers, ms, opts)
	require.NoError(s.T(), err)
	require.Equal(s.T(), []int{1, 0, 0}, res.Labels)

	opts.MasterGroup = 1
	res, err = grouping.Group(layers, ms, opts)
	require.NoError(s.T(), err)
	require.Equal(s.T(), []int{0, 1, 1}, res.Labels)
	require.Equal(s.T(), []int{1, 2}, res.Members(1))
	require.Equal(s.T(), 1.0, res.Cost)
	require.Contains(s.T(), res.Alternatives, []int{1, 0, 0})
}

func (s *GroupingSuite) TestMasterSwapRespectsCapacity() {
	layers, ms := oneLayer()
	opts := grouping.DefaultOptions()
	opts.MaxGroupSize = [2]int{3, 1}
	opts.MasterGroup = 1
	res, err := grouping.Group(layers, ms, opts)
	require.NoError(s.T(), err)
	require.LessOrEqual(s.T(), len(res.Members(1)), 1)
}

func (s *GroupingSuite) TestAlternativesWithinGap() {
	layers, ms := oneLayer()
	opts := grouping.DefaultOptions()
	opts.MaxGroupSize = [2]int{3, 3}
	opts.MasterGroup = grouping.NoMaster
	res, err := grouping.Group(layers, ms, opts)
	require.NoError(s.T(), err)
	// The six 1/2 splits cost 1; the two 0/3 splits cost 2 and fall outside 5%.
	require.Len(s.T(), res.Alternatives, 5)
	for _, alt := range res.Alternatives {
		c := counts(alt)
		require.NotZero(s.T(), c[0])
		require.NotZero(s.T(), c[1])
	}
}

func TestGroupingSuite(t *testing.T) {
	suite.Run(t, new(GroupingSuite))
}

// pairedLayers has filaments i and i+5 always printed together with a high
// flush cost between them; every other change costs 1.
func pairedLayers() ([][]int, []*flush.Matrix) {
	layers := make([][]int, 20)
	for k := range layers {
		layers[k] = []int{k % 5, k%5 + 5}
	}
	rows := make([][]float64, 10)
	for i := range rows {
		rows[i] = make([]float64, 10)
		for j := range rows[i] {
			switch {
			case i == j:
			case i%5 == j%5:
				rows[i][j] = 100
			default:
				rows[i][j] = 1
			}
		}
	}
	return layers, []*flush.Matrix{flush.MustMatrix(rows)}
}

func TestKMedoids_SplitsConflictingPairs(t *testing.T) {
	layers, ms := pairedLayers()
	opts := grouping.DefaultOptions()
	opts.MaxGroupSize = [2]int{5, 5}

	km, err := grouping.Group(layers, ms, opts)
	require.NoError(t, err)
	require.Equal(t, grouping.MethodKMedoids, km.Method)
	require.GreaterOrEqual(t, km.Restarts, 1)
	require.Equal(t, 38.0, km.Cost)
	for i := 0; i < 5; i++ {
		require.NotEqual(t, km.Labels[i], km.Labels[i+5])
	}

	ex, err := grouping.Exhaustive(layers, ms, opts)
	require.NoError(t, err)
	require.LessOrEqual(t, ex.Cost, km.Cost+1e-9)
	require.LessOrEqual(t, km.Cost, 2*ex.Cost)
}

func TestKMedoids_BudgetPolledAfterRestart(t *testing.T) {
	layers, ms := pairedLayers()
	now := time.Unix(0, 0)
	opts := grouping.DefaultOptions()
	opts.MaxGroupSize = [2]int{5, 5}
	opts.Clock = func() time.Time {
		now = now.Add(time.Second)
		return now
	}
	res, err := grouping.KMedoids(layers, ms, opts)
	require.NoError(t, err)
	require.Equal(t, 1, res.Restarts)
	require.Len(t, res.Labels, 10)
}

func TestKMedoids_Deterministic(t *testing.T) {
	layers, ms := pairedLayers()
	frozen := time.Unix(0, 0)
	opts := grouping.DefaultOptions()
	opts.MaxGroupSize = [2]int{6, 4}
	opts.Seed = 7
	opts.Clock = func() time.Time { return frozen }

	a, err := grouping.KMedoids(layers, ms, opts)
	require.NoError(t, err)
	b, err := grouping.KMedoids(layers, ms, opts)
	require.NoError(t, err)
	require.Equal(t, a.Labels, b.Labels)
	require.Equal(t, a.Restarts, b.Restarts)
	require.LessOrEqual(t, a.Restarts, 90)
	c := counts(a.Labels)
	require.LessOrEqual(t, c[0], 6)
	require.LessOrEqual(t, c[1], 4)
}
