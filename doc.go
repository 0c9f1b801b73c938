// Package modiv searches for node subsets that are both far apart in total
// (MaxSum) and far apart pairwise (MaxMin), under a strict cost budget and a
// strict capacity floor.
//
// 🚀 What is modiv?
//
//	A GRASP + VND toolkit for the bi-objective constrained maximum-diversity
//	problem:
//		• Instances: triplet (MDG), extended (GDP) and JSON readers
//		• Solutions: O(1) incremental objectives, exact MaxMin on removal
//		• Construction: biased-randomized GRASP, greedy, alpha-GRASP
//		• Local search: Best/First Improve over (out, in) exchanges, VND
//		• Pareto: dominance, non-dominated filtering, run archive
//		• Indicators: hypervolume, set coverage, additive epsilon
//
// Packages:
//
//	matrix/      — dense distance storage + structural validators
//	instance/    — immutable Instance and its readers
//	solution/    — incremental Solution, feasibility, Record projection
//	construct/   — Candidate List and constructive procedures
//	localsearch/ — Improvers, Standard loop, VND
//	pareto/      — Point, Dominates, NonDominated, Archive
//	indicator/   — HV, SC, eps, reference fronts, NaN-aware means
//	grasp/       — one GRASP run on one instance
//	config/      — YAML experiment files
//	report/      — CSV fronts, JSON run summaries, indicator tables
//	cmd/modiv/   — the solve / evaluate CLI
//
// The core packages are single-threaded and deterministic for a given seed;
// independent runs are parallelised by the CLI only.
//
//	go install github.com/katalvlaran/modiv/cmd/modiv@latest
package modiv
