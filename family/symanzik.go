package family

import "github.com/chiyutuci/inibp/symbolic"

type spVarRef struct {
	v1, v2 string
}

// computeSPS builds _spsFromProps: the expression of every internal
// scalar product (l_i·l_j, l_i·p_j) in terms of the propagator symbols
// D_1..D_n, by inverting the linear map from scalar products to
// propagators. Grounded on family.cpp's _compute_sps.
func (f *Family) computeSPS() error {
	n := f.nProps
	M := symbolic.NewMatrix(n, n)
	constVec := make([]symbolic.Expr, n)
	var xVars []spVarRef

	for s := 0; s < n; s++ {
		prop := f.propagators[s]

		constVal := prop
		for _, li := range f.internals {
			constVal = constVal.SubstVar(li, symbolic.ZeroExpr())
		}
		constVec[s] = constVal

		index := 0
		for i := 0; i < f.nInts; i++ {
			d1 := prop.Diff(f.internals[i])

			diag, err := d1.Diff(f.internals[i]).Div(symbolic.FromInt(2))
			if err != nil {
				return err
			}
			M.Set(s, index, diag)
			if s == 0 {
				xVars = append(xVars, spVarRef{f.internals[i], f.internals[i]})
			}
			index++

			for j := i + 1; j < f.nInts; j++ {
				M.Set(s, index, d1.Diff(f.internals[j]))
				if s == 0 {
					xVars = append(xVars, spVarRef{f.internals[i], f.internals[j]})
				}
				index++
			}
			for j := 0; j < f.nExts; j++ {
				M.Set(s, index, d1.Diff(f.externals[j]))
				if s == 0 {
					xVars = append(xVars, spVarRef{f.internals[i], f.externals[j]})
				}
				index++
			}
		}
	}

	inv, err := symbolic.Inverse(M)
	if err != nil {
		return ErrIncompletePropagators
	}

	rhs := make([]symbolic.Expr, n)
	for s := 0; s < n; s++ {
		rhs[s] = symbolic.Var(f.symProps[s]).Sub(constVec[s])
	}

	f.spsFromProps = make([]spRuleRec, n)
	for i := 0; i < n; i++ {
		acc := symbolic.ZeroExpr()
		for j := 0; j < n; j++ {
			acc = acc.Add(inv.At(i, j).Mul(rhs[j]))
		}
		f.spsFromProps[i] = spRuleRec{v1: xVars[i].v1, v2: xVars[i].v2, value: acc}
	}
	return nil
}

// computeSymanzik builds U and F from the Schwinger-parametrized
// propagator sum W = Σ_s (-a_s) * prop_s. Grounded on family.cpp's
// _compute_symanzik.
func (f *Family) computeSymanzik() {
	w := symbolic.ZeroExpr()
	for s := 0; s < f.nProps; s++ {
		w = w.Add(symbolic.Var(f.symIndices[s]).Neg().Mul(f.propagators[s]))
	}

	j := w.Neg()
	for _, li := range f.internals {
		j = j.SubstVar(li, symbolic.ZeroExpr())
	}

	L := f.nInts
	M := symbolic.NewMatrix(L, L)
	V := make([]symbolic.Expr, L)
	two := symbolic.FromInt(2)
	for i := 0; i < L; i++ {
		di := w.Diff(f.internals[i])

		vi := di.Neg()
		for _, li := range f.internals {
			vi = vi.SubstVar(li, symbolic.ZeroExpr())
		}
		vi, _ = vi.Div(two)
		V[i] = vi

		for k := i; k < L; k++ {
			entry, _ := di.Diff(f.internals[k]).Div(two)
			M.Set(i, k, entry)
			if k != i {
				M.Set(k, i, entry)
			}
		}
	}

	u, _ := symbolic.Determinant(M)
	u = f.substSPRules(u)

	fPoly := u.Mul(j)
	minv, err := symbolic.Inverse(M)
	if err == nil {
		w2 := make([]symbolic.Expr, L)
		for i := 0; i < L; i++ {
			acc := symbolic.ZeroExpr()
			for k := 0; k < L; k++ {
				acc = acc.Add(minv.At(i, k).Mul(V[k]))
			}
			w2[i] = acc
		}
		quad := symbolic.ZeroExpr()
		for i := 0; i < L; i++ {
			quad = quad.Add(V[i].Mul(w2[i]))
		}
		fPoly = fPoly.Add(quad.Mul(u))
	}
	fPoly = f.substSPRules(fPoly)

	f.uPoly = u
	f.fPoly = fPoly
}
