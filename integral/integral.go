package integral

import (
	"fmt"
	"strconv"
	"strings"
)

// Integral is a fixed-length tuple of signed propagator indices
// (a1, ..., an). Two integrals are equal iff their index tuples are
// equal; Key gives a comparable representation for map use, since Go
// slices cannot be used as map keys directly.
type Integral []int32

// New copies idx into a fresh Integral.
func New(idx []int32) Integral {
	out := make(Integral, len(idx))
	copy(out, idx)
	return out
}

// Add returns a+b elementwise, or ErrShapeMismatch if the lengths differ.
func (a Integral) Add(b Integral) (Integral, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("integral: %d vs %d: %w", len(a), len(b), ErrShapeMismatch)
	}
	out := make(Integral, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out, nil
}

// Sub returns a-b elementwise, or ErrShapeMismatch if the lengths differ.
func (a Integral) Sub(b Integral) (Integral, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("integral: %d vs %d: %w", len(a), len(b), ErrShapeMismatch)
	}
	out := make(Integral, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out, nil
}

// Depth is Σ max(ai, 0).
func (a Integral) Depth() int {
	d := 0
	for _, v := range a {
		if v > 0 {
			d += int(v)
		}
	}
	return d
}

// Rank is Σ max(-ai, 0).
func (a Integral) Rank() int {
	r := 0
	for _, v := range a {
		if v < 0 {
			r += int(-v)
		}
	}
	return r
}

// Sector is the bitmask with bit i set iff a[i] > 0. Panics if len(a)
// exceeds the bit width of uint64, which never happens for the
// propagator counts this module's topologies use.
func (a Integral) Sector() uint64 {
	if len(a) > 64 {
		panic("integral: sector mask overflow: more than 64 propagators")
	}
	var m uint64
	for i, v := range a {
		if v > 0 {
			m |= 1 << uint(i)
		}
	}
	return m
}

// Less gives the lexicographic order over index tuples, used by family
// to sort IBP template terms deterministically.
func (a Integral) Less(b Integral) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// Equal reports whether a and b hold the same index tuple.
func (a Integral) Equal(b Integral) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Key returns a comparable/hashable string representation of a,
// suitable for use as a map key.
func (a Integral) Key() string {
	var sb strings.Builder
	for i, v := range a {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(int(v)))
	}
	return sb.String()
}

// String renders a as a bracketed tuple "[a1, a2, ..., an]", matching
// the output contract for master-reduction linear combinations.
func (a Integral) String() string {
	parts := make([]string, len(a))
	for i, v := range a {
		parts[i] = strconv.Itoa(int(v))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
