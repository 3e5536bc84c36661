package sparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiyutuci/inibp/modp"
)

func e(n int64) modp.Elem { return modp.FromSignedInt64(n) }

func TestNewRowCombinesAndDropsZero(t *testing.T) {
	r := NewRow([]Term[modp.Elem]{
		{Col: 1, Coeff: e(2)},
		{Col: 1, Coeff: e(-2)},
		{Col: 3, Coeff: e(5)},
		{Col: 2, Coeff: e(0)},
	})
	require.Equal(t, 1, len(r.Terms()))
	assert.Equal(t, 3, r.Terms()[0].Col)
}

func TestNormalizeIdempotentAndLeadingOne(t *testing.T) {
	r := NewRow([]Term[modp.Elem]{
		{Col: 5, Coeff: e(3)},
		{Col: 1, Coeff: e(7)},
	})
	n1, err := r.Normalize()
	require.NoError(t, err)
	lead, ok := n1.Coeff(5)
	require.True(t, ok)
	assert.True(t, lead.Equal(modp.One))

	n2, err := n1.Normalize()
	require.NoError(t, err)
	assert.Equal(t, n1.Terms(), n2.Terms())
}

func TestNormalizeEmptyFails(t *testing.T) {
	var r Row[modp.Elem]
	_, err := r.Normalize()
	assert.ErrorIs(t, err, ErrEmptyRow)
}

func TestEliminateRemovesPivotColumn(t *testing.T) {
	pivot, err := NewRow([]Term[modp.Elem]{
		{Col: 5, Coeff: e(1)},
		{Col: 1, Coeff: e(3)},
	}).Normalize()
	require.NoError(t, err)

	r := NewRow([]Term[modp.Elem]{
		{Col: 5, Coeff: e(2)},
		{Col: 2, Coeff: e(9)},
	})

	out := r.Eliminate(pivot, 5)
	_, has := out.Coeff(5)
	assert.False(t, has)

	terms := out.Terms()
	for i := 1; i < len(terms); i++ {
		assert.Greater(t, terms[i-1].Col, terms[i].Col)
	}
	assert.False(t, out.IsEmpty())
}

func TestEliminateNoOpWhenColumnAbsent(t *testing.T) {
	pivot, err := NewRow([]Term[modp.Elem]{{Col: 9, Coeff: e(1)}}).Normalize()
	require.NoError(t, err)

	r := NewRow([]Term[modp.Elem]{{Col: 2, Coeff: e(4)}})
	out := r.Eliminate(pivot, 9)
	assert.Equal(t, r.Terms(), out.Terms())
}

func TestEliminationAssociativeOnDisjointColumns(t *testing.T) {
	p1, err := NewRow([]Term[modp.Elem]{{Col: 10, Coeff: e(1)}, {Col: 1, Coeff: e(2)}}).Normalize()
	require.NoError(t, err)
	p2, err := NewRow([]Term[modp.Elem]{{Col: 5, Coeff: e(1)}, {Col: 1, Coeff: e(3)}}).Normalize()
	require.NoError(t, err)

	r := NewRow([]Term[modp.Elem]{
		{Col: 10, Coeff: e(4)},
		{Col: 5, Coeff: e(6)},
		{Col: 1, Coeff: e(8)},
	})

	a := r.Eliminate(p1, 10).Eliminate(p2, 5)
	b := r.Eliminate(p2, 5).Eliminate(p1, 10)
	assert.Equal(t, a.Terms(), b.Terms())
}
