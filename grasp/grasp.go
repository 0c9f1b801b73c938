// SPDX-License-Identifier: MIT

// Package grasp drives the construct-then-improve loop for one instance and
// collects every resulting solution in a Pareto archive.
//
// Per iteration i (0-based):
//  1. Derive a private RNG from (Seed, i).
//  2. Construct with the configured Method; the step offset is i, so
//     alternating constructions start on MaxSum and MaxMin in turn.
//  3. Improve the final solution, or every trajectory snapshot, with the
//     configured local search.
//  4. Append the resulting Records to the archive.
//
// An infeasible construction counts as a failure and the loop moves on.
// MaxTime is checked before each iteration; an exhausted budget ends the run
// early and is not an error. Context cancellation ends the run with ctx.Err().
package grasp

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/modiv/construct"
	"github.com/katalvlaran/modiv/instance"
	"github.com/katalvlaran/modiv/localsearch"
	"github.com/katalvlaran/modiv/pareto"
	"github.com/katalvlaran/modiv/solution"
)

// Result summarises one run.
type Result struct {
	All          []solution.Record // every archived solution, in insertion order
	Front        []solution.Record // the non-dominated subset of All
	Iterations   int               // iterations started
	Failures     int               // infeasible constructions
	Improvements int               // local-search moves committed
	TimedOut     bool              // MaxTime ended the run early
	Elapsed      time.Duration
}

// Run executes opts.Iterations GRASP iterations on inst.
//
// Errors:
//   - ErrInvalidOptions for out-of-range options; construct.ErrEmptyInstance.
//   - ErrNoFeasibleSolution when the archive ends up empty.
//   - ctx.Err() when ctx is cancelled; Result holds the work done so far.
func Run(ctx context.Context, inst *instance.Instance, opts Options) (Result, error) {
	if err := validateOptions(opts); err != nil {
		return Result{}, err
	}
	if inst == nil || inst.N() == 0 {
		return Result{}, construct.ErrEmptyInstance
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	log = log.With().Str("instance", inst.Name()).Logger()

	var (
		res     Result
		archive = pareto.NewArchive[solution.Record](opts.Iterations)
		start   = time.Now()
	)
	log.Info().
		Int("iterations", opts.Iterations).
		Stringer("method", opts.Method).
		Bool("local_search", opts.LocalSearch != nil).
		Msg("grasp run started")

	for i := 0; i < opts.Iterations; i++ {
		if err := ctx.Err(); err != nil {
			return finish(res, archive, start), err
		}
		if opts.MaxTime > 0 && time.Since(start) > opts.MaxTime {
			res.TimedOut = true
			log.Info().Int("iteration", i).Msg("max time exceeded")
			break
		}

		res.Iterations++
		iterStart := time.Now()
		sols, err := iterate(inst, opts, i)
		if err != nil && !errors.Is(err, construct.ErrInfeasibleConstruction) {
			return finish(res, archive, start), fmt.Errorf("grasp: iteration %d: %w", i, err)
		}

		if err != nil {
			res.Failures++
			log.Debug().Int("iteration", i).Err(err).Msg("construction failed")
		}
		for _, sol := range sols.solutions {
			archive.Add(sol.Record())
		}
		improved := sols.improvements
		res.Improvements += improved
		opts.Metrics.observe(time.Since(iterStart).Seconds(), err != nil, len(sols.solutions), improved)

		if err == nil {
			last := sols.solutions[len(sols.solutions)-1]
			log.Debug().
				Int("iteration", i).
				Float64("max_sum", last.MaxSum()).
				Float64("max_min", last.MaxMin()).
				Int("cost", last.TotalCost()).
				Int("capacity", last.TotalCapacity()).
				Int("moves", improved).
				Msg("iteration done")
		}
	}

	res = finish(res, archive, start)
	log.Info().
		Int("solutions", len(res.All)).
		Int("front", len(res.Front)).
		Int("failures", res.Failures).
		Dur("elapsed", res.Elapsed).
		Msg("grasp run finished")
	if len(res.All) == 0 {
		return res, ErrNoFeasibleSolution
	}

	return res, nil
}

type iteration struct {
	solutions    []*solution.Solution
	improvements int
}

// iterate constructs and improves the solutions of iteration i.
func iterate(inst *instance.Instance, opts Options, i int) (iteration, error) {
	rng := iterationRNG(opts.Seed, i)

	out, err := buildSolution(inst, opts, rng, i)
	if err != nil {
		return iteration{}, err
	}

	var it iteration
	it.solutions = []*solution.Solution{out.Final}
	if opts.Construction.Trajectory && len(out.Trajectory) > 0 {
		it.solutions = out.Trajectory
	}
	if opts.LocalSearch == nil {
		return it, nil
	}

	ls := *opts.LocalSearch
	for _, s := range it.solutions {
		ls.Seed = rng.Int63()
		stats, err := localsearch.Run(s, ls)
		if err != nil {
			return iteration{}, err
		}
		it.improvements += stats.Improvements
	}

	return it, nil
}

func buildSolution(inst *instance.Instance, opts Options, rng *rand.Rand, i int) (construct.Outcome, error) {
	switch opts.Method {
	case Greedy:
		return construct.Greedy(inst)
	case AlphaGRASP:
		return construct.AlphaGRASP(inst, opts.Alpha, rng)
	default:
		return construct.BiasedRandomized(inst, opts.Construction, rng, i)
	}
}

func finish(res Result, archive *pareto.Archive[solution.Record], start time.Time) Result {
	res.All = archive.All()
	res.Front = archive.Front()
	res.Elapsed = time.Since(start)

	return res
}
