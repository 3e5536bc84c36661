package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiyutuci/inibp/integral"
	"github.com/chiyutuci/inibp/modp"
	"github.com/chiyutuci/inibp/sectorgraph"
)

func elem(n int64) modp.Elem { return modp.FromSignedInt64(n) }

func TestReduceSingleEquation(t *testing.T) {
	s0 := integral.New([]int32{1, 1})
	s1 := integral.New([]int32{2, 1})
	seeds := []integral.Integral{s0, s1}
	weights := map[string]int{s0.Key(): 0, s1.Key(): 1}
	sec := &sectorgraph.Sector{ID: 3}

	tmpl := IbpTemplateFF{
		{Delta: integral.New([]int32{0, 0}), Coeffs: []modp.Elem{elem(1), elem(-1), elem(0)}},
		{Delta: integral.New([]int32{-1, 0}), Coeffs: []modp.Elem{elem(0), elem(0), elem(-3)}},
	}

	res, err := Reduce(sec, []IbpTemplateFF{tmpl}, seeds, weights, 10, 10)
	require.NoError(t, err)

	require.Equal(t, []int{0}, res.Masters)
	require.Contains(t, res.Reductions, 1)
	require.NotContains(t, res.Reductions, 0)

	combo := res.Reductions[1]
	require.Len(t, combo, 1)
	assert.Equal(t, 0, combo[0].Weight)
	assert.True(t, combo[0].Coeff.Equal(elem(3)))
}

func TestReduceNoRowsAllMasters(t *testing.T) {
	s0 := integral.New([]int32{1, 1})
	seeds := []integral.Integral{s0}
	weights := map[string]int{s0.Key(): 0}
	sec := &sectorgraph.Sector{ID: 3}

	tmpl := IbpTemplateFF{
		{Delta: integral.New([]int32{-5, -5}), Coeffs: []modp.Elem{elem(1), elem(0), elem(0)}},
	}

	res, err := Reduce(sec, []IbpTemplateFF{tmpl}, seeds, weights, 10, 10)
	require.NoError(t, err)

	assert.Equal(t, []int{0}, res.Masters)
	assert.Empty(t, res.Reductions)
}

func TestReduceRespectsDepthRankBudget(t *testing.T) {
	s0 := integral.New([]int32{1, 1})
	s1 := integral.New([]int32{9, 1})
	seeds := []integral.Integral{s0, s1}
	weights := map[string]int{s0.Key(): 0, s1.Key(): 1}
	sec := &sectorgraph.Sector{ID: 3}

	tmpl := IbpTemplateFF{
		{Delta: integral.New([]int32{0, 0}), Coeffs: []modp.Elem{elem(1), elem(-1), elem(0)}},
		{Delta: integral.New([]int32{-1, 0}), Coeffs: []modp.Elem{elem(0), elem(0), elem(-3)}},
	}

	res, err := Reduce(sec, []IbpTemplateFF{tmpl}, seeds, weights, 5, 5)
	require.NoError(t, err)

	assert.ElementsMatch(t, []int{0}, res.Masters)
	assert.Empty(t, res.Reductions)
}
