package pareto_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/modiv/pareto"
)

func TestDominates_Basic(t *testing.T) {
	a := pareto.Point{MaxSum: 10, MaxMin: 3}

	require.True(t, pareto.Dominates(a, pareto.Point{MaxSum: 9, MaxMin: 3}))
	require.True(t, pareto.Dominates(a, pareto.Point{MaxSum: 10, MaxMin: 2}))
	require.False(t, pareto.Dominates(a, a), "equal points are mutually non-dominating")
	require.False(t, pareto.Dominates(a, pareto.Point{MaxSum: 11, MaxMin: 1}))
	require.False(t, pareto.Dominates(a, pareto.Point{MaxSum: math.NaN(), MaxMin: 0}))
}

func TestDominates_Antisymmetry(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for k := 0; k < 2000; k++ {
		a := pareto.Point{MaxSum: float64(rng.Intn(5)), MaxMin: float64(rng.Intn(5))}
		b := pareto.Point{MaxSum: float64(rng.Intn(5)), MaxMin: float64(rng.Intn(5))}
		require.False(t, pareto.Dominates(a, b) && pareto.Dominates(b, a), "a=%v b=%v", a, b)
	}
}

func TestNonDominated_KeepsTies(t *testing.T) {
	pts := []pareto.Point{
		{MaxSum: 10, MaxMin: 1},
		{MaxSum: 5, MaxMin: 5},
		{MaxSum: 4, MaxMin: 4}, // dominated by {5,5}
		{MaxSum: 10, MaxMin: 1},
		{MaxSum: 1, MaxMin: 9},
	}
	require.Equal(t, []bool{true, true, false, true, true}, pareto.NonDominated(pts))
	require.Len(t, pareto.Filter(pts), 4)
}

func TestFilter_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	pts := make([]pareto.Point, 60)
	for i := range pts {
		pts[i] = pareto.Point{MaxSum: rng.Float64() * 100, MaxMin: rng.Float64() * 10}
	}

	once := pareto.Filter(pts)
	require.NotEmpty(t, once)
	require.Equal(t, once, pareto.Filter(once))
}

type entry struct {
	id int
	p  pareto.Point
}

func (e entry) Point() pareto.Point { return e.p }

func TestArchive_FrontOnDemand(t *testing.T) {
	a := pareto.NewArchive[entry](4)
	require.Equal(t, 0, a.Len())
	require.Empty(t, a.Front())

	a.Add(entry{0, pareto.Point{MaxSum: 1, MaxMin: 1}})
	a.Add(entry{1, pareto.Point{MaxSum: 3, MaxMin: 2}}, entry{2, pareto.Point{MaxSum: 2, MaxMin: 5}})

	require.Equal(t, 3, a.Len())
	require.Len(t, a.All(), 3)

	front := a.Front()
	require.Len(t, front, 2)
	require.Equal(t, 1, front[0].id)
	require.Equal(t, 2, front[1].id)
	require.Equal(t, []pareto.Point{{MaxSum: 3, MaxMin: 2}, {MaxSum: 2, MaxMin: 5}}, a.Points())

	all := a.All()
	all[0] = entry{id: 99}
	require.Equal(t, 0, a.All()[0].id, "All returns a copy")
}

func TestObjective_ValueAndOther(t *testing.T) {
	p := pareto.Point{MaxSum: 12, MaxMin: 3}
	require.Equal(t, 12.0, p.Value(pareto.MaxSum))
	require.Equal(t, 3.0, p.Value(pareto.MaxMin))
	require.Equal(t, pareto.MaxMin, pareto.MaxSum.Other())
	require.Equal(t, pareto.MaxSum, pareto.MaxMin.Other())
	require.Equal(t, "MaxMin", pareto.MaxMin.String())
}
