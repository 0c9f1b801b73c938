// Package localsearch improves a feasible solution with (k_out, k_in)
// exchange moves: remove k_out selected nodes, insert k_in unselected ones.
//
// Acceptance (every improver, every criterion):
//
//	The exact post-exchange objectives (Solution.Preview) must be no worse on
//	both MaxSum and MaxMin, and the move must stay within the cost budget,
//	above the capacity floor and keep at least two members. The Criterion then
//	decides what counts as progress:
//	  - ByMaxSum: MaxSum strictly increases.
//	  - ByMaxMin: MaxMin strictly increases.
//	  - ByDominance: either one strictly increases (the new point dominates).
//
// Improvers (closed set, one exchange attempt per call):
//
//   - BestImprove scans out-combinations in ascending lexicographic order and
//     tracks the one with the lowest contribution (strict <, first wins), then
//     scans in-combinations measured without that out-combination, keeps the
//     feasible one with the highest contribution and commits the pair if its
//     contribution does not lose on either objective and the exact preview is
//     accepted. Deterministic.
//   - FirstImprove shuffles members and non-members with a seeded RNG and
//     commits the first accepted move. A wall-clock budget bounds each call;
//     running out reports "no improvement".
//
// Drivers:
//
//   - RunStandard repeats one neighborhood until it fails.
//   - RunVND cycles through the ordered neighborhoods: success restarts from
//     the first, failure moves on, the last failure terminates. With the
//     Alternate approach a neighborhood only fails once both objectives have
//     failed, and the starting objective flips after every committed move.
//   - Run validates Options and dispatches on Strategy and Scheme.
//
// Termination:
//
//	Every accepted move keeps both objectives and strictly raises one, so no
//	state repeats and the descent ends in finitely many moves. MaxIterations
//	caps attempts explicitly; a FirstImprove timeout ends the descent.
package localsearch
