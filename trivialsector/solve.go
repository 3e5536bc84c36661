package trivialsector

import (
	"github.com/chiyutuci/inibp/modp"
	"github.com/chiyutuci/inibp/symbolic"
)

// solveKEquation tests whether there exists k_1..k_n (constants, not
// depending on the a_i) such that H = Σ k_i a_i ∂G/∂a_i − G vanishes
// identically on the given sector, by evaluating that identity at
// `samples` deterministic GF(p) assignments of the surviving a_i (the
// zeroed-out a_i contribute an all-zero k_i column, leaving that k_i
// unconstrained, exactly as it would be treated symbolically) and
// solving the resulting linear system over GF(p).
func solveKEquation(g symbolic.Expr, dG []symbolic.Expr, indices []string, n int, sector uint64, base map[string]modp.Elem, samples int) (bool, error) {
	rows := make([][]modp.Elem, 0, samples)
	rhs := make([]modp.Elem, 0, samples)

	for r := 0; r < samples; r++ {
		sample := make(map[string]modp.Elem, len(base)+n)
		for k, v := range base {
			sample[k] = v
		}
		for i := 0; i < n; i++ {
			if sector&(1<<uint(i)) != 0 {
				sample[indices[i]] = deterministicSample(r, i)
			} else {
				sample[indices[i]] = modp.Zero
			}
		}

		gVal, err := g.Eval(sample)
		if err != nil {
			return false, err
		}
		row := make([]modp.Elem, n)
		for i := 0; i < n; i++ {
			if sector&(1<<uint(i)) == 0 {
				continue
			}
			dVal, err := dG[i].Eval(sample)
			if err != nil {
				return false, err
			}
			row[i] = sample[indices[i]].Mul(dVal)
		}
		rows = append(rows, row)
		rhs = append(rhs, gVal)
	}

	return modp.Solve(rows, rhs)
}

// deterministicSample returns a reproducible, generically-chosen GF(p)
// value for sample round r of index i — distinct across (r, i) pairs
// without relying on a random source, so Detect's result is
// deterministic across runs (spec.md §8's determinism property).
func deterministicSample(r, i int) modp.Elem {
	return modp.FromSignedInt64(int64((r+1)*1000003 + i*97 + 1))
}
