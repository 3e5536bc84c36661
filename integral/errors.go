// Package integral implements the fixed-length signed-index tuple that
// identifies a Feynman integral, along with its derived depth, rank,
// and sector projections.
package integral

import "errors"

// ErrShapeMismatch is returned by Add/Sub when the two operands have
// different lengths — a programmer error, not a recoverable condition.
var ErrShapeMismatch = errors.New("integral: shape mismatch")
