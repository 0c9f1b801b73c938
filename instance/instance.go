// SPDX-License-Identifier: MIT

package instance

import (
	"fmt"

	"github.com/katalvlaran/modiv/matrix"
)

// SymmetryTol is the tolerance New uses when validating distance matrices.
const SymmetryTol = 1e-9

// Instance is the immutable problem record. The zero value is not usable;
// build instances with New or one of the readers.
type Instance struct {
	name        string
	n           int
	dist        []float64 // row-major n×n copy of the validated matrix
	cost        []int
	capacity    []int
	budget      int
	minCapacity int
}

// New validates the inputs and returns an Instance owning private copies of them.
//
// Errors:
//   - ErrEmpty when dist is nil or has no rows.
//   - ErrInvalidDistance wrapping the matrix sentinel on structural problems.
//   - ErrLengthMismatch when len(cost) or len(capacity) differs from n.
//   - ErrNegativeResource on negative vector entries.
//
// Complexity: O(n²).
func New(name string, dist matrix.Matrix, cost, capacity []int, budget, minCapacity int) (*Instance, error) {
	if dist == nil || dist.Rows() == 0 {
		return nil, ErrEmpty
	}
	if err := matrix.ValidateDistance(dist, SymmetryTol); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDistance, err)
	}

	n := dist.Rows()
	if len(cost) != n || len(capacity) != n {
		return nil, fmt.Errorf("%w: n=%d cost=%d capacity=%d", ErrLengthMismatch, n, len(cost), len(capacity))
	}

	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < n; i++ {
		if cost[i] < 0 || capacity[i] < 0 {
			return nil, fmt.Errorf("%w: node %d", ErrNegativeResource, i)
		}
	}

	in := &Instance{
		name:        name,
		n:           n,
		dist:        make([]float64, n*n),
		cost:        append([]int(nil), cost...),
		capacity:    append([]int(nil), capacity...),
		budget:      budget,
		minCapacity: minCapacity,
	}
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if v, err = dist.At(i, j); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidDistance, err)
			}
			in.dist[i*n+j] = v
		}
	}

	return in, nil
}

// Name returns the instance label (usually the file base name).
func (in *Instance) Name() string { return in.name }

// N returns the number of candidate nodes.
func (in *Instance) N() int { return in.n }

// Distance returns d(i, j). Indices are not checked beyond the slice bounds.
func (in *Instance) Distance(i, j int) float64 { return in.dist[i*in.n+j] }

// Row returns the distances from i to every node. The slice aliases internal
// storage and must not be modified.
func (in *Instance) Row(i int) []float64 { return in.dist[i*in.n : (i+1)*in.n] }

// Cost returns the cost of node i.
func (in *Instance) Cost(i int) int { return in.cost[i] }

// Capacity returns the capacity of node i.
func (in *Instance) Capacity(i int) int { return in.capacity[i] }

// Budget returns K; feasible solutions have total cost strictly below it.
func (in *Instance) Budget() int { return in.budget }

// MinCapacity returns B; feasible solutions have total capacity strictly above it.
func (in *Instance) MinCapacity() int { return in.minCapacity }

// String is a compact one-line description for logs.
func (in *Instance) String() string {
	return fmt.Sprintf("%s(n=%d K=%d B=%d)", in.name, in.n, in.budget, in.minCapacity)
}
