package family

import (
	"sort"

	"github.com/chiyutuci/inibp/integral"
	"github.com/chiyutuci/inibp/symbolic"
)

// templateAccum accumulates one term's coefficient across however many
// (s, t) contributions land on the same Δ key.
type templateAccum struct {
	delta integral.Integral
	coeff symbolic.Expr
}

// generateIBP builds one symbolic IBP template per (i, j) pair — i an
// internal momentum index, j ranging over internals then externals —
// following family.cpp's _generate_ibp double loop and the D_t
// monomial walk that turns a propagator-derivative expression into a
// descending map of index-shift coefficients.
func (f *Family) generateIBP() {
	n := f.nProps
	momenta := append(append([]string(nil), f.internals...), f.externals...)

	for i := 0; i < f.nInts; i++ {
		for j := 0; j < len(momenta); j++ {
			eq := map[string]*templateAccum{}

			if i == j {
				zero := make(integral.Integral, n)
				accumulate(eq, zero, f.dimension)
			}

			for s := 0; s < n; s++ {
				coeff := symbolic.Var(f.symIndices[s]).Neg().
					Mul(symbolic.Var(momenta[j])).
					Mul(f.propagators[s].Diff(f.internals[i]))
				coeff = f.substSPRules(coeff)
				if coeff.IsZero() {
					continue
				}

				delta := make(integral.Integral, n)
				delta[s] = 1

				coeff = f.substSPSFromProps(coeff)

				for t := 0; t < n; t++ {
					coeffD := coeff.Diff(f.symProps[t])
					if !coeffD.IsZero() {
						delta[t]--
						accumulate(eq, delta, coeffD)
						delta[t]++
					}
					coeff = coeff.SubstVar(f.symProps[t], symbolic.ZeroExpr())
					if coeff.IsZero() {
						break
					}
				}
				if !coeff.IsZero() {
					accumulate(eq, delta, coeff)
				}
			}

			tmpl := make(ibpTemplate, 0, len(eq))
			for _, a := range eq {
				if !a.coeff.IsZero() {
					tmpl = append(tmpl, ibpTerm{Delta: a.delta, Coeff: a.coeff})
				}
			}
			if len(tmpl) == 0 {
				continue
			}
			sort.Slice(tmpl, func(x, y int) bool { return tmpl[y].Delta.Less(tmpl[x].Delta) })
			f.ibp = append(f.ibp, tmpl)
		}
	}
}

func accumulate(eq map[string]*templateAccum, delta integral.Integral, c symbolic.Expr) {
	k := delta.Key()
	if a, ok := eq[k]; ok {
		a.coeff = a.coeff.Add(c)
		return
	}
	eq[k] = &templateAccum{delta: integral.New(delta), coeff: c}
}
