package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/modiv/report"
)

const tinyInstance = `6 3
0 1 4
0 2 7
0 3 2
0 4 9
0 5 3
1 2 5
1 3 8
1 4 1
1 5 6
2 3 3
2 4 4
2 5 8
3 4 7
3 5 5
4 5 2
`

const tinyConfig = `
experiments:
  - name: vnd
    iterations: 8
    seed: 5
  - name: greedy
    iterations: 2
    construction:
      method: Greedy
    local_search:
      scheme: None
`

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	require.Equal(t, "modiv dev\n", out)
}

func TestSolveThenEvaluate(t *testing.T) {
	dir := t.TempDir()
	instDir := filepath.Join(dir, "instances")
	require.NoError(t, os.Mkdir(instDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(instDir, "tiny.txt"), []byte(tinyInstance), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(instDir, "notes.md"), []byte("skip me"), 0o644))
	cfg := filepath.Join(dir, "exp.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(tinyConfig), 0o644))
	results := filepath.Join(dir, "results")
	prom := filepath.Join(dir, "metrics.prom")

	_, _, err := execute(t, "solve", "--config", cfg, "--out", results,
		"--workers", "2", "--repetitions", "2", "--metrics", prom, "--log-level", "warn", instDir)
	require.NoError(t, err)

	for _, exp := range []string{"vnd", "greedy"} {
		for _, run := range []string{"run_000", "run_001"} {
			f, err := os.Open(filepath.Join(results, exp, "tiny", run+".json"))
			require.NoError(t, err)
			sum, err := report.ReadSummary(f)
			require.NoError(t, f.Close())
			require.NoError(t, err)
			require.Equal(t, exp, sum.Experiment)
			require.Positive(t, sum.NDSols)
		}
	}
	metrics, err := os.ReadFile(prom)
	require.NoError(t, err)
	// 2 reps × (8 + 2) iterations
	require.Contains(t, string(metrics), "modiv_grasp_iterations_total 20")

	_, _, err = execute(t, "evaluate", "--results", results, "--log-level", "error")
	require.NoError(t, err)
	table, err := os.ReadFile(filepath.Join(results, "indicators.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(table)), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "inst,alg_config,runs,HV,SC,eps", lines[0])
	require.True(t, strings.HasPrefix(lines[1], "tiny,greedy,2,"))
	require.True(t, strings.HasPrefix(lines[2], "tiny,vnd,2,"))

	_, err = os.Stat(filepath.Join(results, "mean_indicators.csv"))
	require.NoError(t, err)
}

func TestSolve_Errors(t *testing.T) {
	_, _, err := execute(t, "solve")
	require.Error(t, err)

	_, _, err = execute(t, "solve", filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)

	_, _, err = execute(t, "solve", "--log-level", "loud", t.TempDir())
	require.Error(t, err)

	_, _, err = execute(t, "solve", t.TempDir())
	require.ErrorContains(t, err, "no instance files")
}

func TestEvaluate_Empty(t *testing.T) {
	_, _, err := execute(t, "evaluate", "--results", t.TempDir())
	require.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("MODIV_LOG_LEVEL", "nonsense")
	_, _, err := execute(t, "evaluate", "--results", t.TempDir())
	require.ErrorContains(t, err, "log level")
}
