// SPDX-License-Identifier: MIT

package construct

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/modiv/pareto"
	"github.com/katalvlaran/modiv/solution"
)

var (
	// ErrInfeasibleConstruction is returned when the candidate list runs dry
	// before the capacity floor is exceeded, or fewer than two nodes fit.
	ErrInfeasibleConstruction = errors.New("construct: infeasible construction")

	// ErrEmptyInstance is returned for a nil instance or one without nodes.
	ErrEmptyInstance = errors.New("construct: empty instance")

	// ErrUnknownOption is returned by the Parse helpers.
	ErrUnknownOption = errors.New("construct: unknown option")
)

// Distribution is the rank bias used by BiasedRandomized.
type Distribution int

const (
	// Geometric draws floor(ln U / ln(1-beta)) mod len.
	Geometric Distribution = iota
	// Triangular draws floor(len * (1 - sqrt U)).
	Triangular
)

func (d Distribution) String() string {
	switch d {
	case Geometric:
		return "Geometric"
	case Triangular:
		return "Triangular"
	default:
		return fmt.Sprintf("Distribution(%d)", int(d))
	}
}

// ParseDistribution maps "Geometric"/"Triangular" (case-insensitive).
func ParseDistribution(s string) (Distribution, error) {
	switch strings.ToLower(s) {
	case "geometric":
		return Geometric, nil
	case "triangular":
		return Triangular, nil
	}

	return 0, fmt.Errorf("%w: distribution %q", ErrUnknownOption, s)
}

// Approach decides which objective scores the candidate list at each step.
type Approach int

const (
	// Alternate uses MaxSum on even steps and MaxMin on odd ones.
	Alternate Approach = iota
	// MaxSumOnly always scores by distance sum.
	MaxSumOnly
	// MaxMinOnly always scores by minimum distance.
	MaxMinOnly
)

// ObjectiveAt returns the objective active at the given step.
func (a Approach) ObjectiveAt(step int) pareto.Objective {
	switch a {
	case MaxSumOnly:
		return pareto.MaxSum
	case MaxMinOnly:
		return pareto.MaxMin
	}
	if step%2 == 0 {
		return pareto.MaxSum
	}

	return pareto.MaxMin
}

func (a Approach) String() string {
	switch a {
	case Alternate:
		return "Alternate"
	case MaxSumOnly:
		return "MaxSum"
	case MaxMinOnly:
		return "MaxMin"
	default:
		return fmt.Sprintf("Approach(%d)", int(a))
	}
}

// ParseApproach maps "Alternate"/"MaxSum"/"MaxMin" (case-insensitive).
func ParseApproach(s string) (Approach, error) {
	switch strings.ToLower(s) {
	case "alternate", "altbwc":
		return Alternate, nil
	case "maxsum":
		return MaxSumOnly, nil
	case "maxmin":
		return MaxMinOnly, nil
	}

	return 0, fmt.Errorf("%w: approach %q", ErrUnknownOption, s)
}

// Params configures BiasedRandomized.
type Params struct {
	Distribution Distribution
	// Beta in (0,1) is the Geometric bias; 0 means uniform rank, >= 1 means
	// always the best; a negative value draws a fresh beta once per run.
	Beta       float64
	Approach   Approach
	Trajectory bool // also return every feasible intermediate solution
}

// DefaultParams returns Geometric with beta 0.3 and alternating objectives.
func DefaultParams() Params {
	return Params{Distribution: Geometric, Beta: 0.3, Approach: Alternate}
}

// Outcome is the result of one construction run.
type Outcome struct {
	// Final is the last feasible state; the caller owns it.
	Final *solution.Solution
	// Trajectory holds independent clones of every feasible intermediate
	// state (Final included) when requested, in visiting order.
	Trajectory []*solution.Solution
	// Steps is the number of insertions after the seed.
	Steps int
}
