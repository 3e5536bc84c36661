// Package modp implements arithmetic in GF(p) for the largest 63-bit
// prime, p = 9223372036854775783.
package modp

import "errors"

// ErrDivByZero is returned when a division or inverse is attempted on
// the ring zero. Every field operation other than Div and Inverse is
// total; the only other errors in this package come from
// FromDecimalString (invalid literal) and Solve (mismatched shapes).
var ErrDivByZero = errors.New("modp: division by zero")
