// SPDX-License-Identifier: MIT

package grasp

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/modiv/construct"
	"github.com/katalvlaran/modiv/localsearch"
)

var (
	// ErrNoFeasibleSolution is returned when every iteration failed to build a
	// feasible solution. The Result still carries the counters.
	ErrNoFeasibleSolution = errors.New("grasp: no feasible solution found")

	// ErrInvalidOptions is returned for out-of-range Options.
	ErrInvalidOptions = errors.New("grasp: invalid options")

	// ErrUnknownMethod is returned by ParseMethod.
	ErrUnknownMethod = errors.New("grasp: unknown construction method")
)

// Method selects the constructive procedure.
type Method int

const (
	// BiasedRandomized is the rank-biased construction (default).
	BiasedRandomized Method = iota
	// Greedy always takes the best MaxSum candidate; deterministic.
	Greedy
	// AlphaGRASP draws from a value-based restricted candidate list.
	AlphaGRASP
)

func (m Method) String() string {
	switch m {
	case BiasedRandomized:
		return "BiasedRandomized"
	case Greedy:
		return "Greedy"
	case AlphaGRASP:
		return "AlphaGRASP"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod maps a method name (case-insensitive) onto a Method.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(s) {
	case "biasedrandomized", "biased", "bgrasp":
		return BiasedRandomized, nil
	case "greedy":
		return Greedy, nil
	case "alphagrasp", "alpha", "cgrasp":
		return AlphaGRASP, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// Options configures one GRASP run on one instance.
type Options struct {
	// Iterations is the number of construct-then-improve rounds (>= 1).
	Iterations int
	// Seed drives every random choice; 0 selects the fixed default stream.
	Seed int64
	// MaxTime stops the run before starting a new iteration once elapsed;
	// 0 disables the limit.
	MaxTime time.Duration

	Method       Method
	Construction construct.Params
	// Alpha is the AlphaGRASP threshold in [0,1]; negative draws per run.
	Alpha float64

	// LocalSearch improves every constructed solution; nil skips the phase.
	LocalSearch *localsearch.Options

	// Logger receives per-run and per-iteration events; nil means zerolog.Nop().
	Logger *zerolog.Logger
	// Metrics, when set, is updated after every iteration.
	Metrics *Metrics
}

// DefaultOptions returns 100 iterations of biased-randomized construction
// followed by VND with Best Improve.
func DefaultOptions() Options {
	ls := localsearch.DefaultOptions()

	return Options{
		Iterations:   100,
		Method:       BiasedRandomized,
		Construction: construct.DefaultParams(),
		LocalSearch:  &ls,
	}
}

func validateOptions(opts Options) error {
	if opts.Iterations < 1 {
		return fmt.Errorf("%w: iterations %d < 1", ErrInvalidOptions, opts.Iterations)
	}
	if opts.MaxTime < 0 {
		return fmt.Errorf("%w: negative max time", ErrInvalidOptions)
	}
	if opts.Method < BiasedRandomized || opts.Method > AlphaGRASP {
		return fmt.Errorf("%w: method %d", ErrInvalidOptions, int(opts.Method))
	}
	if opts.Alpha > 1 {
		return fmt.Errorf("%w: alpha %g > 1", ErrInvalidOptions, opts.Alpha)
	}

	return nil
}
