// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/katalvlaran/modiv/grasp"
	"github.com/katalvlaran/modiv/indicator"
	"github.com/katalvlaran/modiv/pareto"
)

// Store lays results out as <Root>/<experiment>/<instance>/run_<rep>.{csv,json}.
// Each CSV holds the non-dominated records of one run.
type Store struct {
	Root string
}

// Save writes the front of res and its summary. Directories are created as
// needed; existing files for the same repetition are replaced.
func (s Store) Save(sum Summary, res grasp.Result) error {
	dir := filepath.Join(s.Root, sum.Experiment, sum.Instance)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	base := filepath.Join(dir, fmt.Sprintf("run_%03d", sum.Repetition))

	if err := writeFile(base+".csv", func(w io.Writer) error { return WriteRecords(w, res.Front) }); err != nil {
		return err
	}

	return writeFile(base+".json", func(w io.Writer) error { return WriteSummary(w, sum) })
}

func writeFile(path string, fill func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if err = fill(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("report: write %s: %w", path, err)
	}

	return f.Close()
}

// Fronts loads every stored run: fronts[instance][experiment] lists one
// front per CSV file, in file-name order.
func (s Store) Fronts() (map[string]map[string][][]pareto.Point, error) {
	out := make(map[string]map[string][][]pareto.Point)
	exps, err := os.ReadDir(s.Root)
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	for _, exp := range exps {
		if !exp.IsDir() {
			continue
		}
		insts, err := os.ReadDir(filepath.Join(s.Root, exp.Name()))
		if err != nil {
			return nil, fmt.Errorf("report: %w", err)
		}
		for _, inst := range insts {
			if !inst.IsDir() {
				continue
			}
			runs, err := s.readRuns(filepath.Join(s.Root, exp.Name(), inst.Name()))
			if err != nil {
				return nil, err
			}
			if len(runs) == 0 {
				continue
			}
			if out[inst.Name()] == nil {
				out[inst.Name()] = make(map[string][][]pareto.Point)
			}
			out[inst.Name()][exp.Name()] = runs
		}
	}

	return out, nil
}

func (s Store) readRuns(dir string) ([][]pareto.Point, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}

	var runs [][]pareto.Point
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("report: %w", err)
		}
		recs, err := ReadRecords(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("report: %s: %w", path, err)
		}
		runs = append(runs, Points(recs))
	}

	return runs, nil
}

// IndicatorRow is the mean indicator values of one experiment on one
// instance. Instance is empty for per-experiment means.
type IndicatorRow struct {
	Instance   string
	Experiment string
	Runs       int
	indicator.Values
}

// Evaluate compares every stored run against the reference front of its
// instance (the non-dominated union of all experiments' runs) and averages
// the indicators per (instance, experiment). Rows are sorted by instance,
// then experiment.
func (s Store) Evaluate() ([]IndicatorRow, error) {
	fronts, err := s.Fronts()
	if err != nil {
		return nil, err
	}

	var rows []IndicatorRow
	for inst, byExp := range fronts {
		var all [][]pareto.Point
		for _, runs := range byExp {
			all = append(all, runs...)
		}
		ref := indicator.ReferenceFront(all...)
		if len(ref) == 0 {
			continue
		}
		for exp, runs := range byExp {
			vals := make([]indicator.Values, len(runs))
			for i, front := range runs {
				vals[i] = indicator.Evaluate(front, ref, indicator.Origin)
			}
			rows = append(rows, IndicatorRow{Instance: inst, Experiment: exp, Runs: len(runs), Values: indicator.Summarize(vals)})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Instance != rows[j].Instance {
			return rows[i].Instance < rows[j].Instance
		}

		return rows[i].Experiment < rows[j].Experiment
	})

	return rows, nil
}

// MeanByExperiment averages instance rows per experiment, sorted by name.
func MeanByExperiment(rows []IndicatorRow) []IndicatorRow {
	groups := make(map[string][]indicator.Values)
	runs := make(map[string]int)
	for _, r := range rows {
		groups[r.Experiment] = append(groups[r.Experiment], r.Values)
		runs[r.Experiment] += r.Runs
	}

	out := make([]IndicatorRow, 0, len(groups))
	for exp, vals := range groups {
		out = append(out, IndicatorRow{Experiment: exp, Runs: runs[exp], Values: indicator.Summarize(vals)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Experiment < out[j].Experiment })

	return out
}

// WriteMetrics dumps everything g gathers in the Prometheus text format.
func WriteMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("report: gather: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("report: encode %s: %w", mf.GetName(), err)
		}
	}

	return nil
}
