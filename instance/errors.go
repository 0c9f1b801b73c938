// SPDX-License-Identifier: MIT

package instance

import "errors"

var (
	// ErrEmpty is returned when an instance has no candidate nodes.
	ErrEmpty = errors.New("instance: no candidate nodes")

	// ErrLengthMismatch indicates cost or capacity vectors whose length differs from n.
	ErrLengthMismatch = errors.New("instance: vector length does not match n")

	// ErrNegativeResource indicates a negative cost or capacity entry.
	ErrNegativeResource = errors.New("instance: negative cost or capacity")

	// ErrInvalidDistance wraps a matrix validation failure (asymmetry, NaN, negatives...).
	ErrInvalidDistance = errors.New("instance: invalid distance matrix")

	// ErrFormat is returned by readers on malformed input.
	ErrFormat = errors.New("instance: malformed input")
)
