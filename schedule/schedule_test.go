package schedule_test

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/purgeplan/cache"
	"github.com/katalvlaran/purgeplan/flush"
	"github.com/katalvlaran/purgeplan/grouping"
	"github.com/katalvlaran/purgeplan/metrics"
	"github.com/katalvlaran/purgeplan/reorder"
	"github.com/katalvlaran/purgeplan/schedule"
)

func unit(n int) [][]float64 {
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		for j := range rows[i] {
			if i != j {
				rows[i][j] = 1
			}
		}
	}
	return rows
}

type SolveSuite struct {
	suite.Suite
}

func (s *SolveSuite) TestSingleGroupTwoLayers() {
	p, err := schedule.Solve(schedule.Job{
		Layers:       [][]int{{0, 1}, {1, 2}},
		Matrices:     [][][]float64{unit(3)},
		MaxGroupSize: [2]int{3, 0},
	}, schedule.DefaultOptions())
	require.NoError(s.T(), err)
	require.Equal(s.T(), 2.0, p.Cost)
	require.Equal(s.T(), grouping.MethodTrivial, p.Method)
	require.ElementsMatch(s.T(), []int{0, 1}, p.Sequences[0])
	require.Equal(s.T(), []int{1, 2}, p.Sequences[1])
	require.Equal(s.T(), []int{0, 1, 2}, p.Groups[0])
	require.Empty(s.T(), p.Groups[1])
	require.Equal(s.T(), 2, p.Changes())
}

func (s *SolveSuite) TestInfeasible() {
	_, err := schedule.Solve(schedule.Job{
		Layers:       [][]int{{0, 1, 2, 3, 4}},
		Matrices:     [][][]float64{unit(5)},
		MaxGroupSize: [2]int{2, 2},
	}, schedule.DefaultOptions())
	require.ErrorIs(s.T(), err, flush.ErrInfeasible)
}

func (s *SolveSuite) TestCustomSequence() {
	rows := [][]float64{
		{0, 3, 8},
		{2, 0, 4},
		{6, 1, 0},
	}
	p, err := schedule.Solve(schedule.Job{
		Layers:       [][]int{{0, 1, 2}},
		Matrices:     [][][]float64{rows},
		MaxGroupSize: [2]int{3, 0},
		Sequences:    reorder.LayerRanges{{From: 1, To: 1, Extruders: []int{3, 1, 2}}},
	}, schedule.DefaultOptions())
	require.NoError(s.T(), err)
	require.Equal(s.T(), [][]int{{2, 0, 1}}, p.Sequences)
	require.Equal(s.T(), rows[2][0]+rows[0][1], p.Cost)
}

func (s *SolveSuite) TestBadMatrix() {
	_, err := schedule.Solve(schedule.Job{
		Layers:       [][]int{{0, 1}},
		Matrices:     [][][]float64{{{0, 1}, {1}}},
		MaxGroupSize: [2]int{2, 2},
	}, schedule.DefaultOptions())
	require.ErrorIs(s.T(), err, flush.ErrInvalidInput)

	_, err = schedule.Solve(schedule.Job{
		Layers:       [][]int{{0, 4}},
		Matrices:     [][][]float64{unit(3)},
		MaxGroupSize: [2]int{2, 2},
	}, schedule.DefaultOptions())
	require.ErrorIs(s.T(), err, flush.ErrMatrixOutOfBounds)
}

func (s *SolveSuite) TestForcedMethod() {
	job := schedule.Job{
		Layers:       [][]int{{0, 1, 2}, {2, 3}},
		Matrices:     [][][]float64{unit(4)},
		MaxGroupSize: [2]int{2, 2},
	}
	opts := schedule.DefaultOptions()
	opts.Method = grouping.MethodKMedoids
	p, err := schedule.Solve(job, opts)
	require.NoError(s.T(), err)
	require.Equal(s.T(), grouping.MethodKMedoids, p.Method)
	require.GreaterOrEqual(s.T(), p.Restarts, 1)
	require.LessOrEqual(s.T(), len(p.Groups[0]), 2)
	require.LessOrEqual(s.T(), len(p.Groups[1]), 2)
}

func TestSolveSuite(t *testing.T) {
	suite.Run(t, new(SolveSuite))
}

func TestRunner_CachesPlans(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	m := metrics.NewCollector()
	r := schedule.NewRunner(fc, m, log.New(io.Discard))

	job := schedule.Job{
		Layers:       [][]int{{0, 1, 2}, {1, 2}, {0, 2}},
		Matrices:     [][][]float64{unit(3)},
		MaxGroupSize: [2]int{2, 2},
	}
	first, hit, err := r.Plan(ctx, job, schedule.DefaultOptions())
	require.NoError(t, err)
	require.False(t, hit)

	second, hit, err := r.Plan(ctx, job, schedule.DefaultOptions())
	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, first.Cost, second.Cost)
	require.Equal(t, first.Sequences, second.Sequences)
	require.Equal(t, first.Labels, second.Labels)

	// Different options are a different key.
	opts := schedule.DefaultOptions()
	opts.MasterGroup = grouping.NoMaster
	_, hit, err = r.Plan(ctx, job, opts)
	require.NoError(t, err)
	require.False(t, hit)

	n, err := testutil.GatherAndCount(m.Registry(), "purgeplan_cache_requests_total", "purgeplan_solves_total")
	require.NoError(t, err)
	require.Equal(t, 3, n) // hit, miss, exhaustive
}

func TestRunner_RecordsErrors(t *testing.T) {
	m := metrics.NewCollector()
	r := schedule.NewRunner(nil, m, log.New(io.Discard))
	_, _, err := r.Plan(context.Background(), schedule.Job{
		Layers:       [][]int{{0, 1, 2}},
		Matrices:     [][][]float64{unit(3)},
		MaxGroupSize: [2]int{1, 1},
	}, schedule.DefaultOptions())
	require.ErrorIs(t, err, flush.ErrInfeasible)

	n, err := testutil.GatherAndCount(m.Registry(), "purgeplan_errors_total")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestRunner_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := schedule.NewRunner(nil, nil, log.New(io.Discard))
	_, _, err := r.Plan(ctx, schedule.Job{}, schedule.DefaultOptions())
	require.ErrorIs(t, err, context.Canceled)
}
