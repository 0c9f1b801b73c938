// SPDX-License-Identifier: MIT

package construct

import (
	"math/rand"

	"github.com/katalvlaran/modiv/instance"
	"github.com/katalvlaran/modiv/pareto"
	"github.com/katalvlaran/modiv/solution"
)

// picker chooses an index into a candidate list already filtered by cost.
// It may reorder the list (e.g. sort it) before answering.
type picker func(cl *CandidateList, step int) int

// BiasedRandomized runs one biased-randomized GRASP construction.
//
// offset shifts the step counter fed to params.Approach.ObjectiveAt so that
// consecutive GRASP iterations can start on different objectives.
//
// Errors:
//   - ErrEmptyInstance for a nil or empty instance.
//   - ErrInfeasibleConstruction when no feasible state is ever reached.
//
// Complexity: O(n² log n) time (one sort per insertion), O(n) extra space.
func BiasedRandomized(inst *instance.Instance, params Params, rng *rand.Rand, offset int) (Outcome, error) {
	if inst == nil || inst.N() == 0 {
		return Outcome{}, ErrEmptyInstance
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	beta := resolveBeta(params.Beta, rng)
	pick := func(cl *CandidateList, step int) int {
		cl.Sort(params.Approach.ObjectiveAt(offset + step))
		if params.Distribution == Triangular {
			return triangularIndex(cl.Len(), rng)
		}

		return geometricIndex(cl.Len(), beta, rng)
	}

	s := solution.New(inst)
	s.Add(rng.Intn(inst.N()))

	return build(s, pick, params.Trajectory)
}

// build runs the shared insertion loop from a seeded solution.
func build(s *solution.Solution, pick picker, trajectory bool) (Outcome, error) {
	var (
		out  Outcome
		cl   = NewCandidateList(s)
		c    Candidate
		one  = make([]int, 1)
		fits = func(c Candidate) bool {
			one[0] = c.Node
			return s.SatisfiesCost(one, nil)
		}
	)
	if trajectory && s.Feasible() {
		out.Trajectory = append(out.Trajectory, s.Clone())
	}

	for cl.Len() > 0 {
		cl.Retain(fits)
		if cl.Len() == 0 {
			break
		}
		c = cl.Take(pick(cl, out.Steps))
		s.AddHinted(c.Node, c.Contribution())
		cl.Update(c.Node)
		out.Steps++

		if trajectory && s.Feasible() {
			out.Trajectory = append(out.Trajectory, s.Clone())
		}
	}

	if !s.Feasible() {
		return Outcome{Steps: out.Steps}, ErrInfeasibleConstruction
	}
	out.Final = s

	return out, nil
}

// Greedy seeds with the farthest pair and repeatedly inserts the cost-feasible
// candidate with the largest distance sum. Deterministic.
func Greedy(inst *instance.Instance) (Outcome, error) {
	if inst == nil || inst.N() == 0 {
		return Outcome{}, ErrEmptyInstance
	}
	if inst.N() < 2 {
		return Outcome{}, ErrInfeasibleConstruction
	}

	var (
		bu, bv int
		best   = -1.0
		i, j   int
	)
	for i = 0; i < inst.N(); i++ {
		for j = i + 1; j < inst.N(); j++ {
			if d := inst.Distance(i, j); d > best {
				best, bu, bv = d, i, j
			}
		}
	}

	s := solution.New(inst)
	s.Add(bu)
	s.Add(bv)

	return build(s, func(cl *CandidateList, _ int) int {
		cl.Sort(pareto.MaxSum)
		return 0
	}, false)
}

// AlphaGRASP picks uniformly from the restricted candidate list
// {c : c.Sum >= gmax - alpha·(gmax - gmin)}. alpha = 0 is greedy, alpha = 1
// uniform; a negative alpha draws a fresh value once per run.
func AlphaGRASP(inst *instance.Instance, alpha float64, rng *rand.Rand) (Outcome, error) {
	if inst == nil || inst.N() == 0 {
		return Outcome{}, ErrEmptyInstance
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if alpha < 0 {
		alpha = rng.Float64()
	}

	rcl := make([]int, 0, inst.N())
	pick := func(cl *CandidateList, _ int) int {
		gmin, gmax := cl.At(0).Sum, cl.At(0).Sum
		for i := 1; i < cl.Len(); i++ {
			if v := cl.At(i).Sum; v < gmin {
				gmin = v
			} else if v > gmax {
				gmax = v
			}
		}
		th := gmax - alpha*(gmax-gmin)
		rcl = rcl[:0]
		for i := 0; i < cl.Len(); i++ {
			if cl.At(i).Sum >= th {
				rcl = append(rcl, i)
			}
		}

		return rcl[rng.Intn(len(rcl))]
	}

	s := solution.New(inst)
	s.Add(rng.Intn(inst.N()))

	return build(s, pick, false)
}
