package modp

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samples() []Elem {
	return []Elem{
		FromSignedInt64(0),
		FromSignedInt64(1),
		FromSignedInt64(-1),
		FromSignedInt64(42),
		FromSignedInt64(-42),
		FromSignedInt64(1 << 40),
		FromSignedInt64(-(1 << 40)),
		FromRaw(P - 1),
	}
}

func TestAddMatchesBigInt(t *testing.T) {
	xs, ys := samples(), samples()
	for _, x := range xs {
		for _, y := range ys {
			got := x.Add(y)
			want := new(big.Int).Add(bigOf(x), bigOf(y))
			want.Mod(want, pBig)
			assert.Equal(t, want.Uint64(), got.Raw())
		}
	}
}

func TestSubMatchesBigInt(t *testing.T) {
	xs, ys := samples(), samples()
	for _, x := range xs {
		for _, y := range ys {
			got := x.Sub(y)
			want := new(big.Int).Sub(bigOf(x), bigOf(y))
			want.Mod(want, pBig)
			assert.Equal(t, want.Uint64(), got.Raw())
		}
	}
}

func TestMulMatchesBigInt(t *testing.T) {
	xs, ys := samples(), samples()
	for _, x := range xs {
		for _, y := range ys {
			got := x.Mul(y)
			want := new(big.Int).Mul(bigOf(x), bigOf(y))
			want.Mod(want, pBig)
			assert.Equal(t, want.Uint64(), got.Raw())
		}
	}
}

func bigOf(e Elem) *big.Int {
	return new(big.Int).SetUint64(e.Raw())
}

func TestInverseRoundTrip(t *testing.T) {
	for _, x := range samples() {
		if x.IsZero() {
			continue
		}
		inv, err := x.Inverse()
		require.NoError(t, err)
		assert.True(t, x.Mul(inv).Equal(One))
	}
}

func TestZeroInverseFails(t *testing.T) {
	_, err := Zero.Inverse()
	assert.ErrorIs(t, err, ErrDivByZero)

	_, err = FromSignedInt64(5).Div(Zero)
	assert.ErrorIs(t, err, ErrDivByZero)
}

func TestPowBaseCases(t *testing.T) {
	for _, x := range samples() {
		assert.True(t, x.Pow(0).Equal(One))
		if x.IsZero() {
			continue
		}
		assert.True(t, x.Pow(3).Equal(x.Mul(x.Pow(2))))
	}
}

func TestSignedRoundTrip(t *testing.T) {
	cases := []int64{0, 1, -1, 42, -42, 1 << 40, -(1 << 40), int64(P/2) - 1, -(int64(P/2) - 1)}
	for _, n := range cases {
		got := FromSignedInt64(n).AsSigned()
		assert.Equal(t, n, got)
	}
}

func TestFromDecimalString(t *testing.T) {
	e, err := FromDecimalString("-42")
	require.NoError(t, err)
	assert.True(t, e.Equal(FromSignedInt64(-42)))

	_, err = FromDecimalString("not-a-number")
	assert.Error(t, err)
}

func TestStringIsDecimal(t *testing.T) {
	assert.Equal(t, "42", FromSignedInt64(42).String())
	assert.Equal(t, "0", Zero.String())
}
