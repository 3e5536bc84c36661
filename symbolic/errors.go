// Package symbolic is a minimal computer-algebra primitive: multivariate
// rational functions over big.Rat coefficients, with differentiation,
// monomial substitution, and Gaussian-elimination-based linear algebra.
//
// spec.md §1 names "the symbolic algebra library used for differentiation,
// expansion, substitution, matrix rank, matrix inverse and linear-system
// solving" as an explicit external collaborator consumed by family only
// through a narrow interface. No general-purpose CAS exists anywhere in
// the reference lineage (see DESIGN.md), so this package is that narrow
// interface's one concrete, minimal implementation — not a substitute for
// a production CAS, but sufficient to drive every operation family.go
// needs.
package symbolic

import "errors"

// ErrSingular is returned when a matrix of Expr fails to invert because a
// pivot column is identically (not merely numerically) zero.
var ErrSingular = errors.New("symbolic: matrix is singular")

// ErrNonSquare is returned when Inverse is asked to invert a non-square matrix.
var ErrNonSquare = errors.New("symbolic: matrix is not square")

// ErrFreeVariable is returned when LinearCoeffs finds that an expression
// claimed to be linear in a given variable still depends on it after
// differentiation — a defensive check guarding the "IBP coefficients
// are always linear in the a_i" invariant from spec.md §4.3.
var ErrFreeVariable = errors.New("symbolic: expression is not linear in the requested variable")

// ErrUnboundVariable is returned by Eval when a variable appearing in the
// expression has no entry in the sample assignment.
var ErrUnboundVariable = errors.New("symbolic: unbound variable in evaluation")
