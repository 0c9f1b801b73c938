// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/modiv/report"
)

func newEvaluateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Compute HV, SC and epsilon for every stored run",
		Long: `evaluate builds, per instance, a reference front from every stored run
of every experiment, then writes indicators.csv (per instance and experiment)
and mean_indicators.csv (per experiment).`,
		Args: cobra.NoArgs,
		RunE: runEvaluate,
	}
	cmd.Flags().String("results", "results", "directory written by solve")
	cmd.Flags().String("out", "", "output directory (default: the results directory)")

	return cmd
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	v, err := bindFlags(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd.ErrOrStderr(), v.GetString("log-level"))
	if err != nil {
		return err
	}

	store := report.Store{Root: v.GetString("results")}
	out := v.GetString("out")
	if out == "" {
		out = store.Root
	}

	rows, err := store.Evaluate()
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no runs found under %s", store.Root)
	}
	if err := os.MkdirAll(out, 0o755); err != nil {
		return err
	}
	if err := writeIndicators(filepath.Join(out, "indicators.csv"), rows); err != nil {
		return err
	}
	if err := writeIndicators(filepath.Join(out, "mean_indicators.csv"), report.MeanByExperiment(rows)); err != nil {
		return err
	}
	logger.Info().Int("rows", len(rows)).Str("out", out).Msg("indicators written")

	return nil
}

func writeIndicators(path string, rows []report.IndicatorRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.WriteIndicators(f, rows); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
