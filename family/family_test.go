package family

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiyutuci/inibp/modp"
)

// bubbleSpec builds the one-loop self-energy topology: internal
// momentum k, external momentum p, propagators D1=k^2-m^2 and
// D2=(k+p)^2-m^2, single scalar product p.p = s.
func bubbleSpec() Spec {
	return Spec{
		Name:       "bubble",
		Internals:  []string{"k"},
		Externals:  []string{"p"},
		Invariants: []InvariantDecl{{Name: "s", MassDimension: 2}, {Name: "m", MassDimension: 1}},
		SPRules:    []SPRule{{A: "p", B: "p", Value: "s"}},
		Propagators: []PropagatorDecl{
			{Momentum: "k", Mass: "m"},
			{Momentum: "k+p", Mass: "m"},
		},
	}
}

func TestNewBubbleAccessors(t *testing.T) {
	f, err := New(bubbleSpec())
	require.NoError(t, err)

	assert.Equal(t, "bubble", f.Name())
	assert.Equal(t, 1, f.NumInternals())
	assert.Equal(t, 2, f.NumPropagators())
	assert.Equal(t, []string{"a1", "a2"}, f.IndexSymbols())
	assert.Equal(t, "D", f.DimName())
	assert.Equal(t, []string{"s", "m"}, f.InvariantNames())
}

// TestGPolyMatchesHandComputedSymanzik checks U+F against a by-hand
// derivation: for this topology U = -(a1+a2), F = (a1+a2)^2*m^2 -
// a1*a2*s, so G = U+F = -(a1+a2) + (a1+a2)^2*m^2 - a1*a2*s.
func TestGPolyMatchesHandComputedSymanzik(t *testing.T) {
	f, err := New(bubbleSpec())
	require.NoError(t, err)

	sample := map[string]modp.Elem{
		"a1": modp.FromSignedInt64(1),
		"a2": modp.FromSignedInt64(1),
		"s":  modp.FromSignedInt64(2),
		"m":  modp.FromSignedInt64(3),
	}
	got, err := f.GPoly().Eval(sample)
	require.NoError(t, err)

	want := modp.FromSignedInt64(-(1 + 1) + (1+1)*(1+1)*3*3 - 1*1*2)
	assert.True(t, got.Equal(want))
}

func TestTemplatesCountAndEvalCoeff(t *testing.T) {
	f, err := New(bubbleSpec())
	require.NoError(t, err)

	sample := map[string]modp.Elem{
		"D": modp.FromSignedInt64(4),
		"s": modp.FromSignedInt64(2),
		"m": modp.FromSignedInt64(3),
	}
	templates, err := f.Templates(sample)
	require.NoError(t, err)
	assert.Len(t, templates, f.NumInternals()*(f.NumInternals()+len(bubbleSpec().Externals)))
	for _, tmpl := range templates {
		assert.NotEmpty(t, tmpl)
		for _, term := range tmpl {
			assert.Len(t, term.Coeffs, f.NumPropagators()+1)
		}
	}
}

func TestNewRejectsSymbolCollision(t *testing.T) {
	spec := bubbleSpec()
	spec.Externals = []string{"k"} // collides with the internal momentum
	_, err := New(spec)
	assert.ErrorIs(t, err, ErrSymbolCollision)
}

func TestNewRejectsWrongPropagatorArity(t *testing.T) {
	spec := bubbleSpec()
	spec.Propagators = spec.Propagators[:1]
	_, err := New(spec)
	assert.ErrorIs(t, err, ErrArity)
}

func TestNewRejectsIncompletePropagatorSet(t *testing.T) {
	spec := bubbleSpec()
	// Both propagators depend on k the same way (no p dependence at
	// all), so the linearization matrix from scalar products to
	// propagators is singular: k.p is not determined.
	spec.Propagators = []PropagatorDecl{
		{Momentum: "k", Mass: "m"},
		{Momentum: "k", Mass: "0"},
	}
	_, err := New(spec)
	assert.ErrorIs(t, err, ErrIncompletePropagators)
}
