package report_test

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/modiv/grasp"
	"github.com/katalvlaran/modiv/indicator"
	"github.com/katalvlaran/modiv/report"
	"github.com/katalvlaran/modiv/solution"
)

var recs = []solution.Record{
	{Selected: []int{0, 2, 4}, MaxSum: 21, MaxMin: 5, Cost: 3, Capacity: 3},
	{Selected: []int{1, 3}, MaxSum: 8.25, MaxMin: 8.25, Cost: 2, Capacity: 7},
}

func TestRecords_WriteRead(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteRecords(&buf, recs))
	require.Equal(t,
		"Solution,MaxSum,MaxMin,Cost,Capacity\n0 - 2 - 4,21,5,3,3\n1 - 3,8.25,8.25,2,7\n",
		buf.String())

	got, err := report.ReadRecords(&buf)
	require.NoError(t, err)
	require.Equal(t, recs, got)
	require.Equal(t, recs[1].Point(), report.Points(got)[1])
}

func TestRecords_Malformed(t *testing.T) {
	for name, doc := range map[string]string{
		"empty":      "",
		"header":     "Nodes,MaxSum,MaxMin,Cost,Capacity\n",
		"fields":     "Solution,MaxSum,MaxMin,Cost,Capacity\n1 - 2,3\n",
		"node":       "Solution,MaxSum,MaxMin,Cost,Capacity\n1 - x,3,1,1,1\n",
		"objective":  "Solution,MaxSum,MaxMin,Cost,Capacity\n1 - 2,abc,1,1,1\n",
		"resource":   "Solution,MaxSum,MaxMin,Cost,Capacity\n1 - 2,3,1,1.5,1\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := report.ReadRecords(strings.NewReader(doc))
			require.ErrorIs(t, err, report.ErrMalformed)
		})
	}
}

func TestSummary_RoundTrip(t *testing.T) {
	res := grasp.Result{
		All:        recs,
		Front:      recs[:1],
		Iterations: 4,
		Failures:   1,
		Elapsed:    1234 * time.Millisecond,
	}
	host := report.HostInfo{Platform: "linux", CPU: "test", Cores: 2, RAM: "1 GB"}
	started := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	sum := report.NewSummary("MDG-a_1", "vnd", 3, started, res, host)
	_, err := uuid.Parse(sum.ID)
	require.NoError(t, err)
	require.Equal(t, 1.23, sum.Time)
	require.Equal(t, 2, sum.AllSols)
	require.Equal(t, 1, sum.NDSols)

	var buf bytes.Buffer
	require.NoError(t, report.WriteSummary(&buf, sum))
	require.Contains(t, buf.String(), `"nd_sols": 1`)
	back, err := report.ReadSummary(&buf)
	require.NoError(t, err)
	require.Equal(t, sum, back)

	_, err = report.ReadSummary(strings.NewReader(`{"id":"nope"}`))
	require.ErrorIs(t, err, report.ErrMalformed)
}

func TestCollectHost(t *testing.T) {
	info, _ := report.CollectHost()
	require.NotEmpty(t, info.Platform)
	require.Positive(t, info.Cores)
}

func TestStore_SaveAndEvaluate(t *testing.T) {
	store := report.Store{Root: t.TempDir()}
	save := func(exp string, rep int, front ...solution.Record) {
		res := grasp.Result{All: front, Front: front}
		sum := report.NewSummary("inst", exp, rep, time.Now(), res, report.HostInfo{})
		require.NoError(t, store.Save(sum, res))
	}
	// "strong" finds the whole reference front; "weak" is dominated.
	save("strong", 0,
		solution.Record{Selected: []int{0, 1}, MaxSum: 10, MaxMin: 2},
		solution.Record{Selected: []int{2, 3}, MaxSum: 4, MaxMin: 4})
	save("strong", 1,
		solution.Record{Selected: []int{0, 1}, MaxSum: 10, MaxMin: 2},
		solution.Record{Selected: []int{2, 3}, MaxSum: 4, MaxMin: 4})
	save("weak", 0, solution.Record{Selected: []int{0, 3}, MaxSum: 5, MaxMin: 1})

	_, err := os.Stat(filepath.Join(store.Root, "strong", "inst", "run_001.json"))
	require.NoError(t, err)

	rows, err := store.Evaluate()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	strong, weak := rows[0], rows[1]
	require.Equal(t, "strong", strong.Experiment)
	require.Equal(t, 2, strong.Runs)
	require.Equal(t, 1.0, strong.SetCoverage)
	require.Equal(t, 0.0, strong.Epsilon)
	require.InDelta(t, 10*2+4*2, strong.Hypervolume, 1e-12)

	require.Equal(t, "weak", weak.Experiment)
	require.Equal(t, 0.0, weak.SetCoverage)
	require.InDelta(t, 3.0, weak.Epsilon, 1e-12) // (4-1)/1
	require.InDelta(t, 5.0, weak.Hypervolume, 1e-12)

	var buf bytes.Buffer
	require.NoError(t, report.WriteIndicators(&buf, rows))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Equal(t, "inst,alg_config,runs,HV,SC,eps", lines[0])
	require.Equal(t, "inst,strong,2,28.00,1.00,0.00", lines[1])

	means := report.MeanByExperiment(rows)
	require.Len(t, means, 2)
	require.Empty(t, means[0].Instance)
}

func TestWriteIndicators_MissingValues(t *testing.T) {
	var buf bytes.Buffer
	row := report.IndicatorRow{Instance: "i", Experiment: "e", Runs: 1,
		Values: indicator.Values{Hypervolume: 1, SetCoverage: 0.5, Epsilon: math.Inf(1)}}
	require.NoError(t, report.WriteIndicators(&buf, []report.IndicatorRow{row}))
	require.True(t, strings.HasSuffix(strings.TrimSpace(buf.String()), "i,e,1,1.00,0.50,"))
}

func TestWriteMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := grasp.NewMetrics(reg)
	require.NoError(t, err)
	m.Iterations.Add(3)

	var buf bytes.Buffer
	require.NoError(t, report.WriteMetrics(&buf, reg))
	require.Contains(t, buf.String(), "modiv_grasp_iterations_total 3")
	require.Contains(t, buf.String(), "# TYPE modiv_grasp_iteration_duration_seconds histogram")
}
