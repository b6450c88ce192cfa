package sequence_test

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/purgeplan/flush"
	"github.com/katalvlaran/purgeplan/sequence"
)

// randomMatrix builds an n×n table with integer costs in [0,max) and a zero diagonal.
func randomMatrix(rng *rand.Rand, n, max int) *flush.Matrix {
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		for j := range rows[i] {
			if i != j {
				rows[i][j] = float64(rng.Intn(max))
			}
		}
	}
	return flush.MustMatrix(rows)
}

// bruteForce returns the cheapest order cost over all permutations.
func bruteForce(m *flush.Matrix, items []int, start int) float64 {
	best := -1.0
	var rec func(prefix []int, rest []int)
	rec = func(prefix []int, rest []int) {
		if len(rest) == 0 {
			if c := flush.SequenceCost(m, start, prefix); best < 0 || c < best {
				best = c
			}
			return
		}
		for i := range rest {
			next := slices.Concat(rest[:i:i], rest[i+1:])
			rec(append(slices.Clone(prefix), rest[i]), next)
		}
	}
	rec(nil, items)
	return best
}

func requirePermutation(t *testing.T, in, out []int) {
	t.Helper()
	a, b := slices.Clone(in), slices.Clone(out)
	slices.Sort(a)
	slices.Sort(b)
	require.Equal(t, a, b)
}

func TestSolve_Trivial(t *testing.T) {
	m := flush.MustMatrix([][]float64{{0, 3}, {4, 0}})

	res := sequence.Solve(m, sequence.Request{Start: flush.NoFilament})
	require.Empty(t, res.Order)
	require.Zero(t, res.Cost)

	res = sequence.Solve(m, sequence.Request{Current: []int{1}, Start: flush.NoFilament})
	require.Equal(t, []int{1}, res.Order)
	require.Zero(t, res.Cost)

	res = sequence.Solve(m, sequence.Request{Current: []int{1}, Start: 0, Forecast: true})
	require.Equal(t, []int{1}, res.Order)
	require.Equal(t, 3.0, res.Cost)
}

func TestExact_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 150; trial++ {
		const n = 8
		m := randomMatrix(rng, n, 50)
		k := 2 + rng.Intn(5) // 2..6
		items := rng.Perm(n)[:k]
		start := flush.NoFilament
		if rng.Intn(2) == 0 {
			start = rng.Intn(n)
		}
		orig := slices.Clone(items)

		res := sequence.Exact(m, items, start)
		requirePermutation(t, items, res.Order)
		require.Equal(t, orig, items, "input mutated")
		require.InDelta(t, bruteForce(m, items, start), res.Cost, 1e-9)
		require.InDelta(t, flush.SequenceCost(m, start, res.Order), res.Cost, 1e-9)
	}
}

func TestExact_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	m := randomMatrix(rng, 12, 100)
	items := []int{0, 2, 3, 5, 7, 8, 9, 11}
	a := sequence.Solve(m, sequence.Request{Current: items, Start: 4})
	b := sequence.Solve(m, sequence.Request{Current: items, Start: 4})
	require.Equal(t, a, b)
}

func TestExact_StartInsideLayer(t *testing.T) {
	m := flush.MustMatrix([][]float64{
		{0, 5, 5},
		{5, 0, 1},
		{5, 1, 0},
	})
	res := sequence.Exact(m, []int{0, 1, 2}, 1)
	require.Equal(t, 1, res.Order[0], "continuing with the loaded filament is free")
	require.Equal(t, 6.0, res.Cost)
}

func TestForecast_LooksAhead(t *testing.T) {
	m := flush.Uniform(3, 1)
	res := sequence.Solve(m, sequence.Request{
		Current:  []int{0, 1},
		Next:     []int{1, 2},
		Start:    flush.NoFilament,
		Forecast: true,
	})
	require.Equal(t, []int{0, 1}, res.Order)
	require.Equal(t, 1.0, res.Cost)
}

func TestForecast_TieBreaksOnChanges(t *testing.T) {
	m := flush.Uniform(3, 0)
	res := sequence.Forecast(m, []int{0, 1}, nil, 1)
	require.Equal(t, []int{1, 0}, res.Order)
	require.Zero(t, res.Cost)
}

func TestForecast_MatchesExactWithoutNext(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 50; trial++ {
		m := randomMatrix(rng, 6, 30)
		items := rng.Perm(6)[:1+rng.Intn(5)]
		f := sequence.Forecast(m, items, nil, 0)
		e := sequence.Exact(m, items, 0)
		requirePermutation(t, items, f.Order)
		require.InDelta(t, e.Cost, f.Cost, 1e-9)
	}
}

func TestGreedy_PrefersLoadedFilamentOnTies(t *testing.T) {
	m := flush.Uniform(3, 0)
	res := sequence.Greedy(m, []int{0, 1, 2}, 2)
	require.Equal(t, []int{2, 0, 1}, res.Order)
}

func TestGreedy_NearestNeighbour(t *testing.T) {
	m := flush.MustMatrix([][]float64{
		{0, 9, 1, 9},
		{9, 0, 9, 9},
		{9, 9, 0, 2},
		{9, 3, 9, 0},
	})
	res := sequence.Greedy(m, []int{1, 2, 3}, 0)
	require.Equal(t, []int{2, 3, 1}, res.Order)
	require.Equal(t, 6.0, res.Cost)
}

func TestSolve_LargeLayerUsesGreedy(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	m := randomMatrix(rng, 30, 40)
	items := rng.Perm(30)[:sequence.MaxExact+4]
	res := sequence.Solve(m, sequence.Request{Current: items, Start: flush.NoFilament})
	requirePermutation(t, items, res.Order)
	require.Equal(t, sequence.Greedy(m, items, flush.NoFilament), res)
	require.InDelta(t, flush.SequenceCost(m, flush.NoFilament, res.Order), res.Cost, 1e-9)
}

func TestUseForecast(t *testing.T) {
	require.True(t, sequence.UseForecast(5, 0))
	require.True(t, sequence.UseForecast(3, 5))
	require.False(t, sequence.UseForecast(6, 1))
	require.False(t, sequence.UseForecast(2, 6))
}
