// Package solution holds the mutable candidate subset of one search run and
// keeps its objectives and resource totals incrementally up to date.
//
// What:
//
//   - MaxSum: sum of pairwise distances among selected nodes.
//   - MaxMin: minimum pairwise distance; +Inf while fewer than two nodes are selected.
//   - TotalCost / TotalCapacity: sums over selected nodes.
//
// How:
//
//   - Add scans the current members once (O(k)); AddHinted applies a cached
//     Contribution in O(1), which is how construction feeds candidate-list
//     scores back in.
//   - Remove subtracts the node's distance sum. MaxMin stays exact: if the
//     removed node's nearest member is farther than the current MaxMin nothing
//     changes, otherwise the minimum is recomputed over the remaining members.
//   - Preview evaluates an exchange without mutating; Exchange commits it.
//   - SatisfiesCost / SatisfiesCapacity evaluate hypothetical totals against
//     the strict bounds (cost < K, capacity > B).
//
// Errors & panics:
//
//   - Verify recomputes everything from scratch and returns ErrDrift on mismatch.
//   - Adding a member, removing a non-member or passing an out-of-range node
//     are programmer errors and panic with a "solution:" prefix.
//
// Concurrency:
//
//	A Solution is not safe for concurrent mutation. The Instance it points to
//	is read-only and may be shared.
package solution
