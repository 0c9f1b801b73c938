// Package matrix provides the dense float64 storage used for pairwise distances.
//
// The package is deliberately small:
//
//   - Dense: row-major r×c buffer with bounds-checked At/Set (no panics on user input).
//   - Validators: square, symmetric within a tolerance, zero diagonal, finite and
//     non-negative entries. ValidateDistance composes them in a fixed order.
//
// Instances built by the instance package copy a validated Dense into a flat slice
// once, so hot loops in construction and local search never go through the
// interface.
//
// Complexity:
//
//	At/Set are O(1); Clone and every validator are O(r*c).
package matrix
