// SPDX-License-Identifier: MIT

package localsearch

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/katalvlaran/modiv/pareto"
	"github.com/katalvlaran/modiv/solution"
)

var (
	// ErrInvalidNeighborhood is returned for neighborhoods with Out < 1 or In < 1,
	// or an empty neighborhood list.
	ErrInvalidNeighborhood = errors.New("localsearch: invalid neighborhood")

	// ErrInvalidOptions is returned for negative limits or unknown enum values.
	ErrInvalidOptions = errors.New("localsearch: invalid options")

	// ErrUnknownOption is returned by the Parse helpers.
	ErrUnknownOption = errors.New("localsearch: unknown option")
)

// Neighborhood is an exchange shape: remove Out members, insert In non-members.
type Neighborhood struct {
	Out int
	In  int
}

func (nb Neighborhood) String() string { return fmt.Sprintf("(%d,%d)", nb.Out, nb.In) }

// DefaultNeighborhoods returns the VND order (1,1), (1,2), (2,1).
func DefaultNeighborhoods() []Neighborhood {
	return []Neighborhood{{Out: 1, In: 1}, {Out: 1, In: 2}, {Out: 2, In: 1}}
}

// Criterion decides which objective must strictly improve.
type Criterion int

const (
	// ByMaxSum requires a strictly larger distance sum.
	ByMaxSum Criterion = iota
	// ByMaxMin requires a strictly larger minimum distance.
	ByMaxMin
	// ByDominance accepts a strict gain on either objective.
	ByDominance
)

// CriterionFor maps a single objective onto its criterion.
func CriterionFor(o pareto.Objective) Criterion {
	if o == pareto.MaxMin {
		return ByMaxMin
	}

	return ByMaxSum
}

func (c Criterion) String() string {
	switch c {
	case ByMaxSum:
		return "MaxSum"
	case ByMaxMin:
		return "MaxMin"
	case ByDominance:
		return "Dominance"
	default:
		return fmt.Sprintf("Criterion(%d)", int(c))
	}
}

// Approach selects the criterion sequence used by the drivers.
type Approach int

const (
	// Alternate tries both objectives, flipping the start after each move.
	Alternate Approach = iota
	// MaxSumOnly always improves by distance sum.
	MaxSumOnly
	// MaxMinOnly always improves by minimum distance.
	MaxMinOnly
	// Dominance accepts any move whose result dominates the current point.
	Dominance
)

func (a Approach) String() string {
	switch a {
	case Alternate:
		return "Alternate"
	case MaxSumOnly:
		return "MaxSum"
	case MaxMinOnly:
		return "MaxMin"
	case Dominance:
		return "Dominance"
	default:
		return fmt.Sprintf("Approach(%d)", int(a))
	}
}

// ParseApproach maps "Alternate"/"MaxSum"/"MaxMin"/"Dominance" (case-insensitive).
func ParseApproach(s string) (Approach, error) {
	switch strings.ToLower(s) {
	case "alternate", "altbwls":
		return Alternate, nil
	case "maxsum":
		return MaxSumOnly, nil
	case "maxmin":
		return MaxMinOnly, nil
	case "dominance":
		return Dominance, nil
	}

	return 0, fmt.Errorf("%w: approach %q", ErrUnknownOption, s)
}

// Scheme is the improver variant.
type Scheme int

const (
	// Best pairs the weakest out-combination with the strongest feasible in-combination.
	Best Scheme = iota
	// First commits the first accepted exchange in shuffled order.
	First
)

func (s Scheme) String() string {
	if s == First {
		return "First"
	}

	return "Best"
}

// ParseScheme maps "Best"/"First" (case-insensitive).
func ParseScheme(s string) (Scheme, error) {
	switch strings.ToLower(s) {
	case "best":
		return Best, nil
	case "first":
		return First, nil
	}

	return 0, fmt.Errorf("%w: scheme %q", ErrUnknownOption, s)
}

// Strategy is the driver used by Run.
type Strategy int

const (
	// Standard repeats the first neighborhood until it fails.
	Standard Strategy = iota
	// VND cycles through every neighborhood.
	VND
)

func (s Strategy) String() string {
	if s == VND {
		return "VND"
	}

	return "Standard"
}

// Improver attempts a single exchange in nb under crit and reports whether
// one was committed.
type Improver interface {
	TryImprove(s *solution.Solution, nb Neighborhood, crit Criterion) bool
}

// Options configures Run and the drivers.
type Options struct {
	Strategy      Strategy
	Scheme        Scheme
	Approach      Approach
	Neighborhoods []Neighborhood // nil ⇒ DefaultNeighborhoods()

	// TimeLimit bounds each FirstImprove call; 0 disables the budget.
	TimeLimit time.Duration
	// MaxIterations caps improver calls per run; 0 means until local optimum.
	MaxIterations int
	// Seed drives FirstImprove shuffles; 0 selects the fixed default stream.
	Seed int64
}

// DefaultOptions returns VND over the default neighborhoods with Best Improve
// and alternating objectives.
func DefaultOptions() Options {
	return Options{
		Strategy:      VND,
		Scheme:        Best,
		Approach:      Alternate,
		Neighborhoods: DefaultNeighborhoods(),
	}
}

// Stats summarises one driver run.
type Stats struct {
	Attempts     int  // improver calls
	Improvements int  // committed moves
	TimedOut     bool // a FirstImprove budget ran out
}
