// Package sparse implements the descending-column-order sparse equation
// representation and merge-based Gaussian elimination shared by the
// ModP reduction pass and the symbolic specialization pass.
//
// spec.md §9's Design Note criticizes the original EquationFF/EquationSym
// duplication: two structurally identical implementations, one per
// coefficient ring, kept in lockstep by hand. Go generics remove the
// duplication outright — Row[T] is written once against the Ring[T]
// capability interface, and modp.Elem and symbolic.Expr each satisfy it
// without sparse importing either package.
package sparse

import "errors"

// ErrEmptyRow is returned by operations that require at least one term.
var ErrEmptyRow = errors.New("sparse: row has no terms")

// ErrColumnMismatch names the case of a pivot column that does not
// appear in the target row at all. Eliminate does not return it: in
// that case it returns the target row unchanged.
var ErrColumnMismatch = errors.New("sparse: pivot column absent from target row")
