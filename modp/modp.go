package modp

import (
	"fmt"
	"math/big"
	"math/bits"
)

// P is the modulus: the largest prime below 2^63.
const P uint64 = 9223372036854775783

// pBig is the math/big mirror of P, used only for the few operations
// that genuinely need arbitrary-precision intermediates: decimal
// string parsing, big-integer and negative int64 reduction, and
// 128-bit product reduction. See DESIGN.md for why
// math/big is the one standard-library exception in this module.
var pBig = new(big.Int).SetUint64(P)

// Elem is a residue in [0, P). The zero value is the ring zero.
// Invariant: the stored value is always fully reduced; every
// constructor and operator in this package upholds it.
type Elem struct {
	v uint64
}

// Zero is the additive identity.
var Zero = Elem{}

// One is the multiplicative identity.
var One = Elem{v: 1}

// FromRaw wraps a value already known to lie in [0, P). Callers that
// cannot make that promise should use FromSignedInt64 or
// FromSignedBig instead.
func FromRaw(v uint64) Elem {
	return Elem{v: v % P} // defensive reduction; cheap relative to the safety it buys
}

// FromSignedInt64 reduces an arbitrary signed 64-bit integer into GF(p).
func FromSignedInt64(n int64) Elem {
	if n >= 0 {
		return Elem{v: uint64(n) % P}
	}
	// -n may overflow int64 when n == math.MinInt64; route through big.Int.
	neg := new(big.Int).SetInt64(n)
	neg.Neg(neg)
	neg.Mod(neg, pBig)
	return negateRaw(neg.Uint64())
}

// FromSignedBig reduces an arbitrary-precision signed integer into GF(p).
func FromSignedBig(n *big.Int) Elem {
	r := new(big.Int).Mod(n, pBig) // Euclidean mod: result always in [0, p)
	return Elem{v: r.Uint64()}
}

// FromDecimalString parses a (possibly signed) base-10 integer literal
// and reduces it into GF(p), using a big.Int as the arbitrary-precision
// intermediate required by spec.md §4.1.
func FromDecimalString(s string) (Elem, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Zero, fmt.Errorf("modp: invalid decimal literal %q", s)
	}
	return FromSignedBig(n), nil
}

// negateRaw returns -v mod P for v already in [0, P).
func negateRaw(v uint64) Elem {
	if v == 0 {
		return Zero
	}
	return Elem{v: P - v}
}

// Neg returns the additive inverse.
func (a Elem) Neg() Elem {
	return negateRaw(a.v)
}

// Add returns a+b mod P.
func (a Elem) Add(b Elem) Elem {
	s := a.v + b.v
	if s >= P || s < a.v { // s < a.v catches uint64 wraparound, impossible here since 2P < 2^64 but kept for clarity
		s -= P
	}
	return Elem{v: s}
}

// Sub returns a-b mod P.
func (a Elem) Sub(b Elem) Elem {
	return a.Add(b.Neg())
}

// Mul returns a*b mod P via a 128-bit product reduced through big.Int.
func (a Elem) Mul(b Elem) Elem {
	hi, lo := bits.Mul64(a.v, b.v)
	prod := new(big.Int).SetUint64(hi)
	prod.Lsh(prod, 64)
	prod.Or(prod, new(big.Int).SetUint64(lo))
	prod.Mod(prod, pBig)
	return Elem{v: prod.Uint64()}
}

// Inverse returns the multiplicative inverse of a, or ErrDivByZero if
// a is the ring zero. Computed via Fermat's little theorem: a^(P-2).
func (a Elem) Inverse() (Elem, error) {
	if a.v == 0 {
		return Zero, ErrDivByZero
	}
	return a.Pow(P - 2), nil
}

// Div returns a/b, or ErrDivByZero if b is the ring zero.
func (a Elem) Div(b Elem) (Elem, error) {
	inv, err := b.Inverse()
	if err != nil {
		return Zero, err
	}
	return a.Mul(inv), nil
}

// Pow returns a^k for a non-negative exponent k, via square-and-multiply.
func (a Elem) Pow(k uint64) Elem {
	result := One
	base := a
	for k > 0 {
		if k&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		k >>= 1
	}
	return result
}

// Equal reports whether a and b are the same residue.
func (a Elem) Equal(b Elem) bool {
	return a.v == b.v
}

// EqualInt reports whether a equals the reduction of the signed integer n.
func (a Elem) EqualInt(n int64) bool {
	return a.Equal(FromSignedInt64(n))
}

// IsZero reports whether a is the ring zero.
func (a Elem) IsZero() bool {
	return a.v == 0
}

// Zero and One satisfy the sparse.Ring[Elem] capability interface.
func (a Elem) Zero() Elem { return Zero }
func (a Elem) One() Elem  { return One }

// Raw exposes the underlying residue in [0, P).
func (a Elem) Raw() uint64 {
	return a.v
}

// AsSigned returns the representative of a in the symmetric range
// (-P/2, P/2], the inverse of FromSignedInt64 for |x| < P/2.
func (a Elem) AsSigned() int64 {
	if a.v > P/2 {
		return -int64(P - a.v)
	}
	return int64(a.v)
}

// String renders the residue in decimal, matching spec.md §6's
// "coefficients rendered as ModP decimal" output contract.
func (a Elem) String() string {
	return fmt.Sprintf("%d", a.v)
}
