// Package family implements the algebraic preparation stage: turning a
// topology description (loop/external momenta, propagators, scalar
// product rules) into the Symanzik U/F polynomials and the symbolic IBP
// templates that seed a reduction run.
package family

import "errors"

// ErrIncompletePropagators is returned by New when the propagator set's
// scalar-product linearization matrix is singular — the propagators do
// not span every internal scalar product, so the topology cannot be
// IBP-reduced as given.
var ErrIncompletePropagators = errors.New("family: propagator set is incomplete")

// ErrSymbolCollision is returned when two declared names (internals,
// externals, invariants, the dimension symbol) coincide.
var ErrSymbolCollision = errors.New("family: symbol declared more than once")

// ErrArity is returned when the number of propagators or scalar-product
// rules does not match what the topology's internal/external counts
// require.
var ErrArity = errors.New("family: wrong number of entries for this topology")

// ErrBadExpr is returned by the momentum/invariant expression parser on
// malformed input.
var ErrBadExpr = errors.New("family: malformed linear expression")
