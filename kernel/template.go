package kernel

import (
	"github.com/chiyutuci/inibp/integral"
	"github.com/chiyutuci/inibp/modp"
)

// TemplateTerm is one (Δ, coefficients) entry of a ModP-specialized IBP
// template: Coeffs has length NumPropagators()+1, holding the
// coefficient of a_1..a_n followed by the constant term — the order
// symbolic.Expr.LinearCoeffs returns.
type TemplateTerm struct {
	Delta  integral.Integral
	Coeffs []modp.Elem
}

// IbpTemplateFF is a single IBP relation, ModP-specialized, in
// descending-Δ order.
type IbpTemplateFF []TemplateTerm

// evalCoeff evaluates a linear coefficient c_1..c_n,c_const (as
// returned by symbolic.Expr.LinearCoeffs) at a concrete index tuple:
// Σ c_i*idx[i] + c_const.
func evalCoeff(coeffs []modp.Elem, idx integral.Integral) modp.Elem {
	acc := coeffs[len(coeffs)-1]
	for i, v := range idx {
		acc = acc.Add(coeffs[i].Mul(modp.FromSignedInt64(int64(v))))
	}
	return acc
}
