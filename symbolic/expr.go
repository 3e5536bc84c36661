package symbolic

import (
	"fmt"

	"github.com/chiyutuci/inibp/modp"
)

// Expr is a multivariate rational function Num/Den. Polynomials are the
// special case Den == 1. Division genuinely occurs in this domain
// (matrix inverses, trivial-sector k-equations), so Expr — not Poly — is
// the coefficient type family.go and trivialsector actually compute with.
type Expr struct {
	Num, Den *Poly
}

// FromPoly lifts a polynomial to a (degenerate) rational function.
func FromPoly(p *Poly) Expr {
	return Expr{Num: p, Den: OnePoly()}
}

// FromInt lifts an integer constant.
func FromInt(n int64) Expr {
	return FromPoly(ConstInt(n))
}

// Var returns the rational function consisting of a single variable.
func Var(name string) Expr {
	return FromPoly(VarPoly(name))
}

// ZeroExpr is the additive identity.
func ZeroExpr() Expr { return FromInt(0) }

// OneExpr is the multiplicative identity.
func OneExpr() Expr { return FromInt(1) }

// Add returns a+b = (aN*bD + bN*aD) / (aD*bD).
func (a Expr) Add(b Expr) Expr {
	return Expr{
		Num: AddPoly(MulPoly(a.Num, b.Den), MulPoly(b.Num, a.Den)),
		Den: MulPoly(a.Den, b.Den),
	}
}

// Sub returns a-b.
func (a Expr) Sub(b Expr) Expr {
	return Expr{
		Num: SubPoly(MulPoly(a.Num, b.Den), MulPoly(b.Num, a.Den)),
		Den: MulPoly(a.Den, b.Den),
	}
}

// Neg returns -a.
func (a Expr) Neg() Expr {
	return Expr{Num: NegPoly(a.Num), Den: a.Den}
}

// Mul returns a*b.
func (a Expr) Mul(b Expr) Expr {
	return Expr{Num: MulPoly(a.Num, b.Num), Den: MulPoly(a.Den, b.Den)}
}

// Div returns a/b, or an error carrying ErrSingular-flavoured context if
// b is identically zero (its Num is the zero polynomial).
func (a Expr) Div(b Expr) (Expr, error) {
	if b.Num.IsZero() {
		return Expr{}, fmt.Errorf("symbolic: division by the zero rational function")
	}
	return Expr{Num: MulPoly(a.Num, b.Den), Den: MulPoly(a.Den, b.Num)}, nil
}

// IsZero reports whether a is the zero rational function. Decidable
// because Den is never the zero polynomial for a validly constructed
// Expr, so a is zero iff its numerator is.
func (a Expr) IsZero() bool {
	return a.Num.IsZero()
}

// Zero and One satisfy the sparse.Ring[Expr] capability interface.
func (a Expr) Zero() Expr { return ZeroExpr() }
func (a Expr) One() Expr  { return OneExpr() }

// Expand is a documented no-op: Expr/Poly values are always maintained
// in fully combined canonical form (see Poly's doc comment), so there is
// nothing left to canonicalize. The method exists only so Expr visibly
// satisfies the "apply .expand() after every subtraction" guidance of
// spec.md §9 — it is never load-bearing here.
func (a Expr) Expand() Expr { return a }

// Diff returns the partial derivative of a with respect to v, via the
// quotient rule: d(N/D) = (N'D - N D') / D^2.
func (a Expr) Diff(v string) Expr {
	nPrime := DiffPoly(a.Num, v)
	dPrime := DiffPoly(a.Den, v)
	return Expr{
		Num: SubPoly(MulPoly(nPrime, a.Den), MulPoly(a.Num, dPrime)),
		Den: MulPoly(a.Den, a.Den),
	}
}

// SubstVar replaces every occurrence of v with repl (itself a rational
// function) throughout both numerator and denominator. Num and Den are
// scaled by the same shared power of repl.Den (the larger of the two
// degrees of v), so the resulting ratio is a correct — if not minimal —
// representation of the substituted rational function.
func (a Expr) SubstVar(v string, repl Expr) Expr {
	maxE := a.Num.DegreeIn(v)
	if d := a.Den.DegreeIn(v); d > maxE {
		maxE = d
	}
	return Expr{
		Num: substVarFracPoly(a.Num, v, repl.Num, repl.Den, maxE),
		Den: substVarFracPoly(a.Den, v, repl.Num, repl.Den, maxE),
	}
}

// SubstZero zeroes out each variable in vars.
func (a Expr) SubstZero(vars ...string) Expr {
	out := a
	for _, v := range vars {
		out = out.SubstVar(v, ZeroExpr())
	}
	return out
}

// SubstProduct replaces the bilinear monomial v1*v2 (or v1^2) with repl
// throughout numerator and denominator — the scalar-product rule
// application of spec.md §4.4. repl may itself be a rational function
// (matrix-inverse entries generally are); Num and Den share the same
// power of repl.Den so the resulting ratio stays correct.
func (a Expr) SubstProduct(v1, v2 string, repl Expr) Expr {
	m := maxPairs(a.Num, v1, v2)
	if d := maxPairs(a.Den, v1, v2); d > m {
		m = d
	}
	return Expr{
		Num: substProductFracPoly(a.Num, v1, v2, repl.Num, repl.Den, m),
		Den: substProductFracPoly(a.Den, v1, v2, repl.Num, repl.Den, m),
	}
}

// FreeOf reports whether a depends on none of vars.
func (a Expr) FreeOf(vars ...string) bool {
	return a.Num.FreeOf(vars...) && a.Den.FreeOf(vars...)
}

// Eval evaluates a at a complete ModP sample.
func (a Expr) Eval(sample map[string]modp.Elem) (modp.Elem, error) {
	num, err := a.Num.Eval(sample)
	if err != nil {
		return modp.Zero, err
	}
	den, err := a.Den.Eval(sample)
	if err != nil {
		return modp.Zero, err
	}
	out, err := num.Div(den)
	if err != nil {
		return modp.Zero, fmt.Errorf("symbolic: denominator vanishes at sample: %w", err)
	}
	return out, nil
}

// LinearCoeffs decomposes a, assumed affine-linear in indexVars, into
// (c_1, ..., c_k, c_const) evaluated at sample — the specialization step
// spec.md §4.4 describes for IbpTemplateFF. Returns ErrFreeVariable if a
// still depends on some indexVars[i] after differentiating it away,
// which would mean the linearity invariant was violated upstream.
func (a Expr) LinearCoeffs(sample map[string]modp.Elem, indexVars []string) ([]modp.Elem, error) {
	out := make([]modp.Elem, len(indexVars)+1)
	for i, v := range indexVars {
		d := a.Diff(v)
		if !d.FreeOf(indexVars...) {
			return nil, fmt.Errorf("%w: %s", ErrFreeVariable, v)
		}
		val, err := d.Eval(sample)
		if err != nil {
			return nil, err
		}
		out[i] = val
	}
	constExpr := a.SubstZero(indexVars...)
	val, err := constExpr.Eval(sample)
	if err != nil {
		return nil, err
	}
	out[len(indexVars)] = val
	return out, nil
}

func isOnePoly(p *Poly) bool {
	if len(p.terms) != 1 {
		return false
	}
	t, ok := p.terms[monomial{}.key()]
	return ok && len(t.exps) == 0 && t.coeff.Sign() != 0 && t.coeff.IsInt() && t.coeff.Num().Int64() == 1
}

// String renders a as "Num" or "Num/(Den)".
func (a Expr) String() string {
	if isOnePoly(a.Den) {
		return a.Num.String()
	}
	return fmt.Sprintf("(%s)/(%s)", a.Num.String(), a.Den.String())
}
