package grasp_test

import (
	"bytes"
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/modiv/construct"
	"github.com/katalvlaran/modiv/grasp"
	"github.com/katalvlaran/modiv/instance"
	"github.com/katalvlaran/modiv/localsearch"
	"github.com/katalvlaran/modiv/matrix"
	"github.com/katalvlaran/modiv/pareto"
)

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
			v := float64(1 + rng.Intn(60))
			dist[i][j], dist[j][i] = v, v
		}
	}
	d, err := matrix.NewDenseFrom(dist)
	require.NoError(t, err)
	in, err := instance.New("g", d, cost, capacity, budget, minCap)
	require.NoError(t, err)

	return in
}

func TestRun_FrontIsNonDominated(t *testing.T) {
	in := randomInstance(t, 25, 3, 18, 4)
	opts := grasp.DefaultOptions()
	opts.Iterations = 15
	opts.Seed = 42

	res, err := grasp.Run(context.Background(), in, opts)
	require.NoError(t, err)
	require.Equal(t, 15, res.Iterations)
	require.Len(t, res.All, res.Iterations-res.Failures)
	require.NotEmpty(t, res.Front)

	for _, r := range res.All {
		require.Less(t, r.Cost, in.Budget())
		require.Greater(t, r.Capacity, in.MinCapacity())
	}
	for _, f := range res.Front {
		for _, r := range res.All {
			require.False(t, pareto.Dominates(r.Point(), f.Point()), "%s dominated by %s", f.Key(), r.Key())
		}
	}
}

func TestRun_Deterministic(t *testing.T) {
	in := randomInstance(t, 20, 8, 15, 3)
	opts := grasp.DefaultOptions()
	opts.Iterations = 8
	opts.Seed = 7
	first := localsearch.DefaultOptions()
	first.Scheme = localsearch.First
	opts.LocalSearch = &first

	a, err := grasp.Run(context.Background(), in, opts)
	require.NoError(t, err)
	b, err := grasp.Run(context.Background(), in, opts)
	require.NoError(t, err)
	require.Equal(t, a.All, b.All)
}

func TestRun_LocalSearchNeverWorsens(t *testing.T) {
	in := randomInstance(t, 22, 5, 16, 3)
	plain := grasp.DefaultOptions()
	plain.Iterations = 10
	plain.Seed = 11
	plain.LocalSearch = nil
	base, err := grasp.Run(context.Background(), in, plain)
	require.NoError(t, err)

	improved := plain
	ls := localsearch.DefaultOptions()
	improved.LocalSearch = &ls
	res, err := grasp.Run(context.Background(), in, improved)
	require.NoError(t, err)

	// same seeds ⇒ same constructions; local search only moves up
	require.Equal(t, len(base.All), len(res.All))
	for i := range base.All {
		require.GreaterOrEqual(t, res.All[i].MaxSum, base.All[i].MaxSum)
		require.GreaterOrEqual(t, res.All[i].MaxMin, base.All[i].MaxMin)
	}
}

func TestRun_Trajectory(t *testing.T) {
	in := randomInstance(t, 18, 9, 14, 3)
	opts := grasp.DefaultOptions()
	opts.Iterations = 4
	opts.Construction.Trajectory = true
	opts.LocalSearch = nil

	res, err := grasp.Run(context.Background(), in, opts)
	require.NoError(t, err)
	require.Greater(t, len(res.All), res.Iterations-res.Failures)
}

func TestRun_Methods(t *testing.T) {
	in := randomInstance(t, 16, 2, 12, 2)
	for _, m := range []grasp.Method{grasp.Greedy, grasp.AlphaGRASP} {
		opts := grasp.DefaultOptions()
		opts.Iterations = 3
		opts.Method = m
		opts.Alpha = 0.4
		res, err := grasp.Run(context.Background(), in, opts)
		require.NoError(t, err, m.String())
		require.NotEmpty(t, res.Front)
	}
}

func TestRun_NoFeasible(t *testing.T) {
	in := randomInstance(t, 8, 1, 100, 10_000)
	opts := grasp.DefaultOptions()
	opts.Iterations = 3
	res, err := grasp.Run(context.Background(), in, opts)
	require.ErrorIs(t, err, grasp.ErrNoFeasibleSolution)
	require.Equal(t, 3, res.Failures)
	require.Empty(t, res.All)
}

func TestRun_LimitsAndCancellation(t *testing.T) {
	in := randomInstance(t, 20, 4, 15, 2)

	opts := grasp.DefaultOptions()
	opts.Iterations = 1_000_000
	opts.MaxTime = time.Nanosecond
	res, err := grasp.Run(context.Background(), in, opts)
	if err != nil {
		require.ErrorIs(t, err, grasp.ErrNoFeasibleSolution)
	}
	require.True(t, res.TimedOut)
	require.Less(t, res.Iterations, opts.Iterations)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = grasp.Run(ctx, in, grasp.DefaultOptions())
	require.ErrorIs(t, err, context.Canceled)
}

func TestRun_Validation(t *testing.T) {
	in := randomInstance(t, 6, 1, 10, 0)
	opts := grasp.DefaultOptions()
	opts.Iterations = 0
	_, err := grasp.Run(context.Background(), in, opts)
	require.ErrorIs(t, err, grasp.ErrInvalidOptions)

	_, err = grasp.Run(context.Background(), nil, grasp.DefaultOptions())
	require.ErrorIs(t, err, construct.ErrEmptyInstance)

	opts = grasp.DefaultOptions()
	bad := localsearch.DefaultOptions()
	bad.Neighborhoods = []localsearch.Neighborhood{{Out: 2, In: 0}}
	opts.LocalSearch = &bad
	_, err = grasp.Run(context.Background(), in, opts)
	require.ErrorIs(t, err, localsearch.ErrInvalidNeighborhood)

	m, err := grasp.ParseMethod("cgrasp")
	require.NoError(t, err)
	require.Equal(t, grasp.AlphaGRASP, m)
	_, err = grasp.ParseMethod("annealing")
	require.ErrorIs(t, err, grasp.ErrUnknownMethod)
}

func TestRun_MetricsAndLogging(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := grasp.NewMetrics(reg)
	require.NoError(t, err)
	again, err := grasp.NewMetrics(reg)
	require.NoError(t, err, "re-registration reuses collectors")

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.InfoLevel)

	in := randomInstance(t, 15, 6, 12, 2)
	opts := grasp.DefaultOptions()
	opts.Iterations = 5
	opts.Metrics = metrics
	opts.Logger = &logger
	res, err := grasp.Run(context.Background(), in, opts)
	require.NoError(t, err)

	require.Same(t, metrics.Iterations, again.Iterations)

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Equal(t, 5.0, counter(families, "modiv_grasp_iterations_total"))
	require.Equal(t, float64(len(res.All)), counter(families, "modiv_grasp_solutions_total"))
	require.Equal(t, float64(res.Failures), counter(families, "modiv_grasp_infeasible_constructions_total"))
	require.Contains(t, buf.String(), `"message":"grasp run finished"`)
	require.Contains(t, buf.String(), `"instance":"g"`)
}

func counter(families []*dto.MetricFamily, name string) float64 {
	for _, f := range families {
		if f.GetName() == name && len(f.GetMetric()) == 1 {
			return f.GetMetric()[0].GetCounter().GetValue()
		}
	}

	return -1
}
