package localsearch_test

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/modiv/construct"
	"github.com/katalvlaran/modiv/instance"
	"github.com/katalvlaran/modiv/localsearch"
	"github.com/katalvlaran/modiv/matrix"
	"github.com/katalvlaran/modiv/solution"
)

// randomInstance uses integer distances so objective sums stay exact.
func randomInstance(t *testing.T, n int, seed int64, budget, minCap int) *instance.Instance {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
	}
	cost := make([]int, n)
	capacity := make([]int, n)
	for i := 0; i < n; i++ {
		cost[i] = 1 + rng.Intn(4)
		capacity[i] = 1 + rng.Intn(4)
		for j := i + 1; j < n; j++ {
			v := float64(1 + rng.Intn(50))
			dist[i][j], dist[j][i] = v, v
		}
	}
	d, err := matrix.NewDenseFrom(dist)
	require.NoError(t, err)
	in, err := instance.New("ls", d, cost, capacity, budget, minCap)
	require.NoError(t, err)

	return in
}

// start builds a feasible random construction.
func start(t *testing.T, in *instance.Instance, seed int64) *solution.Solution {
	t.Helper()
	params := construct.Params{Distribution: construct.Triangular, Approach: construct.Alternate}
	out, err := construct.BiasedRandomized(in, params, rand.New(rand.NewSource(seed)), 0)
	require.NoError(t, err)

	return out.Final
}

func pairObjectives(in *instance.Instance, nodes []int) (float64, float64) {
	sum, minD := 0.0, math.Inf(1)
	for i := range nodes {
		for j := i + 1; j < len(nodes); j++ {
			d := in.Distance(nodes[i], nodes[j])
			sum += d
			minD = math.Min(minD, d)
		}
	}

	return sum, minD
}

func combos(items []int, k int) [][]int {
	var out [][]int
	var rec func(from int, cur []int)
	rec = func(from int, cur []int) {
		if len(cur) == k {
			out = append(out, append([]int(nil), cur...))
			return
		}
		for i := from; i < len(items); i++ {
			rec(i+1, append(cur, items[i]))
		}
	}
	rec(0, nil)

	return out
}

// improvingMove searches exhaustively for a feasible exchange that keeps both
// objectives and raises at least one.
func improvingMove(s *solution.Solution, nb localsearch.Neighborhood) (out, in []int, ok bool) {
	inst := s.Instance()
	sel := s.Selected()
	if len(sel)-nb.Out+nb.In < 2 {
		return nil, nil, false
	}
	for _, oc := range combos(sel, nb.Out) {
		for _, ic := range combos(s.Unselected(), nb.In) {
			if !s.SatisfiesCost(ic, oc) || !s.SatisfiesCapacity(ic, oc) {
				continue
			}
			next := make([]int, 0, len(sel))
			for _, v := range sel {
				if !contains(oc, v) {
					next = append(next, v)
				}
			}
			next = append(next, ic...)
			sum, minD := pairObjectives(inst, next)
			if sum >= s.MaxSum() && minD >= s.MaxMin() && (sum > s.MaxSum()+1e-6 || minD > s.MaxMin()+1e-6) {
				return oc, ic, true
			}
		}
	}

	return nil, nil, false
}

func contains(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}

	return false
}

func TestBestImprove_Monotone(t *testing.T) {
	crits := []localsearch.Criterion{localsearch.ByMaxSum, localsearch.ByMaxMin, localsearch.ByDominance}
	for seed := int64(1); seed <= 12; seed++ {
		in := randomInstance(t, 18, seed, 14, 4)
		s := start(t, in, seed)
		imp := localsearch.NewBestImprove()
		for round := 0; round < 30; round++ {
			nb := localsearch.DefaultNeighborhoods()[round%3]
			crit := crits[round%len(crits)]
			sum, minD := s.MaxSum(), s.MaxMin()
			if !imp.TryImprove(s, nb, crit) {
				require.Equal(t, sum, s.MaxSum(), "failed attempt must not mutate")
				require.Equal(t, minD, s.MaxMin())
				continue
			}
			require.GreaterOrEqual(t, s.MaxSum(), sum)
			require.GreaterOrEqual(t, s.MaxMin(), minD)
			require.True(t, s.MaxSum() > sum || s.MaxMin() > minD)
			require.True(t, s.Feasible())
			require.NoError(t, s.Verify())
		}
	}
}

func TestBestImprove_Deterministic(t *testing.T) {
	in := randomInstance(t, 20, 4, 16, 3)
	a := start(t, in, 9)
	b := a.Clone()
	localsearch.RunVND(a, localsearch.NewBestImprove(), localsearch.DefaultOptions())
	localsearch.RunVND(b, localsearch.NewBestImprove(), localsearch.DefaultOptions())
	require.Equal(t, a.Record(), b.Record())
}

func TestBestImprove_SimpleSwap(t *testing.T) {
	// 0 and 1 are close to everything; 2 and 3 are far apart. Budget admits
	// two nodes, so the (1,1) move replaces the weak member.
	d, err := matrix.NewDenseFrom([][]float64{
		{0, 1, 2, 2},
		{1, 0, 2, 2},
		{2, 2, 0, 9},
		{2, 2, 9, 0},
	})
	require.NoError(t, err)
	in, err := instance.New("swap", d, []int{1, 1, 1, 1}, []int{1, 1, 1, 1}, 3, 0)
	require.NoError(t, err)

	s := solution.New(in)
	s.Add(0)
	s.Add(2)
	require.True(t, localsearch.NewBestImprove().TryImprove(s, localsearch.Neighborhood{Out: 1, In: 1}, localsearch.ByMaxSum))
	require.Equal(t, []int{2, 3}, s.Selected())
	require.Equal(t, 9.0, s.MaxSum())
}

func TestVND_FirstReachesLocalOptimum(t *testing.T) {
	for seed := int64(1); seed <= 6; seed++ {
		in := randomInstance(t, 14, seed+40, 12, 3)
		s := start(t, in, seed)
		opts := localsearch.DefaultOptions()
		opts.Scheme = localsearch.First
		opts.Seed = seed
		stats, err := localsearch.Run(s, opts)
		require.NoError(t, err)
		require.False(t, stats.TimedOut)
		require.True(t, s.Feasible())
		require.NoError(t, s.Verify())

		for _, nb := range localsearch.DefaultNeighborhoods() {
			out, inc, found := improvingMove(s, nb)
			require.False(t, found, "seed %d: %s admits %v -> %v", seed, nb, out, inc)
		}
	}
}

// A Best-scheme optimum is stable under Best Improve's own pairing; other
// improving exchanges may remain, which only the First scheme rules out.
func TestVND_BestTerminatesStable(t *testing.T) {
	for seed := int64(1); seed <= 6; seed++ {
		in := randomInstance(t, 16, seed+70, 13, 3)
		s := start(t, in, seed)
		before := s.Record()
		stats, err := localsearch.Run(s, localsearch.DefaultOptions())
		require.NoError(t, err)
		require.GreaterOrEqual(t, s.MaxSum(), before.MaxSum)
		require.GreaterOrEqual(t, s.MaxMin(), before.MaxMin)
		require.LessOrEqual(t, stats.Improvements, stats.Attempts)

		imp := localsearch.NewBestImprove()
		for _, nb := range localsearch.DefaultNeighborhoods() {
			for _, crit := range []localsearch.Criterion{localsearch.ByMaxSum, localsearch.ByMaxMin} {
				require.False(t, imp.TryImprove(s.Clone(), nb, crit), "seed %d: %s/%s still improves", seed, nb, crit)
			}
		}
	}
}

func TestRunStandard_SingleNeighborhood(t *testing.T) {
	in := randomInstance(t, 15, 3, 12, 2)
	s := start(t, in, 5)
	opts := localsearch.Options{Strategy: localsearch.Standard, Approach: localsearch.MaxSumOnly}
	_, err := localsearch.Run(s, opts)
	require.NoError(t, err)
	require.False(t, localsearch.NewBestImprove().TryImprove(s.Clone(), localsearch.Neighborhood{Out: 1, In: 1}, localsearch.ByMaxSum))
}

func TestRun_IterationCap(t *testing.T) {
	in := randomInstance(t, 20, 11, 16, 2)
	s := start(t, in, 2)
	opts := localsearch.DefaultOptions()
	opts.MaxIterations = 1
	stats, err := localsearch.Run(s, opts)
	require.NoError(t, err)
	require.Equal(t, 1, stats.Attempts)
}

func TestFirstImprove_TimeBudget(t *testing.T) {
	in := randomInstance(t, 30, 17, 20, 2)
	s := start(t, in, 3)
	before := s.Record()
	imp := localsearch.NewFirstImprove(7, time.Nanosecond)
	require.False(t, imp.TryImprove(s, localsearch.Neighborhood{Out: 1, In: 2}, localsearch.ByDominance))
	require.True(t, imp.TimedOut())
	require.Equal(t, before, s.Record())

	opts := localsearch.DefaultOptions()
	opts.Scheme = localsearch.First
	opts.TimeLimit = time.Nanosecond
	stats, err := localsearch.Run(s, opts)
	require.NoError(t, err)
	require.True(t, stats.TimedOut)
	require.Equal(t, 1, stats.Attempts)
}

func TestRun_Validation(t *testing.T) {
	in := randomInstance(t, 8, 1, 10, 0)
	s := start(t, in, 1)

	_, err := localsearch.Run(nil, localsearch.DefaultOptions())
	require.ErrorIs(t, err, localsearch.ErrNilSolution)

	bad := localsearch.DefaultOptions()
	bad.Neighborhoods = []localsearch.Neighborhood{{Out: 0, In: 1}}
	_, err = localsearch.Run(s, bad)
	require.ErrorIs(t, err, localsearch.ErrInvalidNeighborhood)

	bad = localsearch.DefaultOptions()
	bad.Neighborhoods = []localsearch.Neighborhood{}
	_, err = localsearch.Run(s, bad)
	require.ErrorIs(t, err, localsearch.ErrInvalidNeighborhood)

	bad = localsearch.DefaultOptions()
	bad.MaxIterations = -1
	_, err = localsearch.Run(s, bad)
	require.ErrorIs(t, err, localsearch.ErrInvalidOptions)

	bad = localsearch.DefaultOptions()
	bad.Scheme = localsearch.Scheme(9)
	_, err = localsearch.Run(s, bad)
	require.ErrorIs(t, err, localsearch.ErrInvalidOptions)

	require.False(t, localsearch.NewBestImprove().TryImprove(s, localsearch.Neighborhood{Out: 1, In: 0}, localsearch.ByMaxSum))
}

func TestParse(t *testing.T) {
	a, err := localsearch.ParseApproach("dominance")
	require.NoError(t, err)
	require.Equal(t, localsearch.Dominance, a)
	_, err = localsearch.ParseApproach("pareto")
	require.ErrorIs(t, err, localsearch.ErrUnknownOption)

	sc, err := localsearch.ParseScheme("First")
	require.NoError(t, err)
	require.Equal(t, localsearch.First, sc)
	_, err = localsearch.ParseScheme("worst")
	require.ErrorIs(t, err, localsearch.ErrUnknownOption)

	require.Equal(t, "(1,2)", localsearch.Neighborhood{Out: 1, In: 2}.String())
}
