// Package construct builds feasible starting solutions for the local search.
//
// What:
//
//   - CandidateList: every unselected node with its cached distance sum and
//     minimum distance to the partial solution, refreshed in O(|list|) after
//     each insertion instead of being recomputed.
//   - BiasedRandomized: GRASP construction whose choice is a biased random
//     rank in the sorted candidate list (Geometric or Triangular).
//   - Greedy: deterministic farthest-pair seed plus best MaxSum insertion.
//   - AlphaGRASP: classic restricted-candidate-list construction.
//
// Loop shared by every method:
//
//  1. Seed the solution (random node, or the farthest pair for Greedy).
//  2. Pick the active objective for this step from the Approach.
//  3. Drop candidates whose insertion alone would break the cost budget.
//  4. Stop when none remain; otherwise choose one, insert it with its cached
//     scores as hints and refresh the remaining entries.
//  5. Once capacity is satisfied, optionally snapshot the partial solution.
//
// A run that never reaches a feasible state returns ErrInfeasibleConstruction;
// no placeholder solution is ever produced.
//
// Determinism:
//
//	All randomness comes from the caller's *rand.Rand; equal seeds give equal
//	solutions. A *rand.Rand is not goroutine-safe, so use one per run.
package construct
