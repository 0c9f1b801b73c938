// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/modiv/config"
	"github.com/katalvlaran/modiv/grasp"
	"github.com/katalvlaran/modiv/instance"
	"github.com/katalvlaran/modiv/report"
)

func newSolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve [flags] <instance files or directories>...",
		Short: "Run every configured experiment on every instance",
		Long: `solve runs (instance × experiment × repetition) jobs in parallel.
Each job writes its non-dominated front and a JSON summary to
<out>/<experiment>/<instance>/run_<rep>.{csv,json}. Directories are scanned
for .txt and .json instance files.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSolve,
	}
	f := cmd.Flags()
	f.String("config", "", "experiment YAML file (default: a single default experiment)")
	f.String("out", "results", "output directory")
	f.Int("workers", runtime.NumCPU(), "parallel jobs")
	f.Int("repetitions", 1, "independent runs per (instance, experiment)")
	f.String("metrics", "", "write a Prometheus text dump to this file when done")

	return cmd
}

type job struct {
	inst *instance.Instance
	exp  config.Experiment
	rep  int
}

func runSolve(cmd *cobra.Command, args []string) error {
	v, err := bindFlags(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd.ErrOrStderr(), v.GetString("log-level"))
	if err != nil {
		return err
	}

	workers, reps := v.GetInt("workers"), v.GetInt("repetitions")
	if workers < 1 || reps < 1 {
		return fmt.Errorf("workers and repetitions must be >= 1 (got %d, %d)", workers, reps)
	}

	exps := config.Default()
	if path := v.GetString("config"); path != "" {
		if exps, err = config.Load(path); err != nil {
			return err
		}
	}

	paths, err := instancePaths(args)
	if err != nil {
		return err
	}
	insts := make([]*instance.Instance, 0, len(paths))
	for _, p := range paths {
		inst, err := instance.Load(p)
		if err != nil {
			return err
		}
		logger.Debug().Str("path", p).Stringer("instance", inst).Msg("instance loaded")
		insts = append(insts, inst)
	}

	reg := prometheus.NewRegistry()
	metrics, err := grasp.NewMetrics(reg)
	if err != nil {
		return err
	}
	host, herr := report.CollectHost()
	if herr != nil {
		logger.Warn().Err(herr).Msg("host information incomplete")
	}
	store := report.Store{Root: v.GetString("out")}

	var jobs []job
	for _, inst := range insts {
		for _, exp := range exps.Experiments {
			for rep := 0; rep < reps; rep++ {
				jobs = append(jobs, job{inst: inst, exp: exp, rep: rep})
			}
		}
	}
	logger.Info().Int("jobs", len(jobs)).Int("workers", workers).Msg("solving")

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(workers)
	for _, j := range jobs {
		j := j
		g.Go(func() error { return runJob(ctx, j, logger, metrics, store, host) })
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if path := v.GetString("metrics"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := report.WriteMetrics(f, reg); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	logger.Info().Str("out", store.Root).Msg("done")

	return nil
}

func runJob(ctx context.Context, j job, logger zerolog.Logger, metrics *grasp.Metrics, store report.Store, host report.HostInfo) error {
	opts, err := j.exp.Options()
	if err != nil {
		return err
	}
	// Seed 0 means the default stream 1; repetitions count up from there.
	if opts.Seed == 0 {
		opts.Seed = 1
	}
	opts.Seed += int64(j.rep)
	log := logger.With().Str("experiment", j.exp.Name).Int("rep", j.rep).Logger()
	opts.Logger = &log
	opts.Metrics = metrics

	started := time.Now()
	res, err := grasp.Run(ctx, j.inst, opts)
	switch {
	case errors.Is(err, grasp.ErrNoFeasibleSolution):
		log.Warn().Str("instance", j.inst.Name()).Msg("no feasible solution")
	case err != nil:
		return fmt.Errorf("%s/%s/%d: %w", j.exp.Name, j.inst.Name(), j.rep, err)
	}

	sum := report.NewSummary(j.inst.Name(), j.exp.Name, j.rep, started, res, host)

	return store.Save(sum, res)
}

// instancePaths expands directories into their .txt and .json files, sorted.
func instancePaths(args []string) ([]string, error) {
	var out []string
	for _, a := range args {
		st, err := os.Stat(a)
		if err != nil {
			return nil, err
		}
		if !st.IsDir() {
			out = append(out, a)
			continue
		}
		entries, err := os.ReadDir(a)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			ext := strings.ToLower(filepath.Ext(e.Name()))
			if !e.IsDir() && (ext == ".txt" || ext == ".json") {
				out = append(out, filepath.Join(a, e.Name()))
			}
		}
	}
	if len(out) == 0 {
		return nil, errors.New("no instance files found")
	}

	return out, nil
}
