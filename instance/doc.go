// Package instance defines the immutable problem record for constrained
// bi-objective maximum diversity: n candidate nodes, a symmetric distance
// matrix, per-node cost and capacity, a strict cost budget K and a strict
// capacity floor B.
//
// What:
//
//   - Instance: validated, read-only; safe to share between goroutines.
//   - New: builds an Instance from a matrix.Matrix plus cost/capacity vectors.
//   - ReadTriplet: classic MDG text form ("n p" header, then "u v d" lines).
//   - ReadExtended: the same triplets preceded by "n" and followed by
//     "K B", a cost line and a capacity line.
//   - ReadJSON: a JSON document parsed with gjson.
//   - Load: opens a file and dispatches on extension and header shape.
//
// Triplet instances carry no resources, so every node costs 1 and has
// capacity 1, K = p+1 and B = 0: any subset of at most p nodes is feasible.
//
// Complexity:
//
//	New and every reader run in O(n²) time and space. Distance is O(1).
package instance
