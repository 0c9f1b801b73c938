// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// version is overridden at link time: -ldflags "-X main.version=v1.2.3".
var version = "dev"

const envPrefix = "MODIV"

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "modiv",
		Short:         "Bi-objective maximum diversity search (MaxSum, MaxMin)",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().String("log-level", "info", "log level (trace, debug, info, warn, error)")

	root.AddCommand(newSolveCmd(), newEvaluateCmd(), newVersionCmd())

	return root
}

// bindFlags returns a viper view of the command's flags with MODIV_ env
// overrides; dashes become underscores (--log-level ⇒ MODIV_LOG_LEVEL).
func bindFlags(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var err error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err == nil {
			err = v.BindPFlag(f.Name, f)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	return v, nil
}

// newLogger builds the console logger writing to w.
func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level %q: %w", level, err)
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "modiv %s\n", version)
		},
	}
}
