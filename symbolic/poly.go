package symbolic

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/chiyutuci/inibp/modp"
)

// monomial is an exponent vector over named variables; zero exponents are
// never stored, so the empty monomial represents the constant 1.
type monomial map[string]int

// key renders a canonical, sort-stable string for use as a map key —
// monomial equality must not depend on insertion order.
func (m monomial) key() string {
	if len(m) == 0 {
		return ""
	}
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	var sb strings.Builder
	for _, n := range names {
		fmt.Fprintf(&sb, "%s^%d|", n, m[n])
	}
	return sb.String()
}

func (m monomial) clone() monomial {
	out := make(monomial, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func mulMonomial(a, b monomial) monomial {
	out := a.clone()
	for k, v := range b {
		out[k] += v
	}
	return out
}

// Poly is a multivariate polynomial over big.Rat coefficients, stored as
// a monomial-keyed map — the representation is always fully combined
// ("expanded") by construction, so equality-to-zero is trivially decidable
// without a separate canonicalization pass.
type Poly struct {
	terms map[string]polyTerm
}

type polyTerm struct {
	exps  monomial
	coeff *big.Rat
}

// ZeroPoly returns the additive identity.
func ZeroPoly() *Poly {
	return &Poly{terms: map[string]polyTerm{}}
}

// OnePoly returns the multiplicative identity.
func OnePoly() *Poly {
	return ConstPoly(big.NewRat(1, 1))
}

// ConstPoly returns the constant polynomial c.
func ConstPoly(c *big.Rat) *Poly {
	p := ZeroPoly()
	if c.Sign() != 0 {
		p.terms[monomial{}.key()] = polyTerm{exps: monomial{}, coeff: new(big.Rat).Set(c)}
	}
	return p
}

// ConstInt returns the constant polynomial n.
func ConstInt(n int64) *Poly {
	return ConstPoly(big.NewRat(n, 1))
}

// VarPoly returns the degree-1 polynomial consisting of the single
// variable name.
func VarPoly(name string) *Poly {
	p := ZeroPoly()
	m := monomial{name: 1}
	p.terms[m.key()] = polyTerm{exps: m, coeff: big.NewRat(1, 1)}
	return p
}

// Clone returns a deep copy.
func (p *Poly) Clone() *Poly {
	out := ZeroPoly()
	for k, t := range p.terms {
		out.terms[k] = polyTerm{exps: t.exps.clone(), coeff: new(big.Rat).Set(t.coeff)}
	}
	return out
}

// addTerm folds (exps, coeff) into p, dropping the entry if the combined
// coefficient becomes zero.
func (p *Poly) addTerm(exps monomial, coeff *big.Rat) {
	k := exps.key()
	if existing, ok := p.terms[k]; ok {
		sum := new(big.Rat).Add(existing.coeff, coeff)
		if sum.Sign() == 0 {
			delete(p.terms, k)
		} else {
			p.terms[k] = polyTerm{exps: existing.exps, coeff: sum}
		}
		return
	}
	if coeff.Sign() == 0 {
		return
	}
	p.terms[k] = polyTerm{exps: exps.clone(), coeff: new(big.Rat).Set(coeff)}
}

// AddPoly returns a+b.
func AddPoly(a, b *Poly) *Poly {
	out := a.Clone()
	for _, t := range b.terms {
		out.addTerm(t.exps, t.coeff)
	}
	return out
}

// NegPoly returns -a.
func NegPoly(a *Poly) *Poly {
	out := ZeroPoly()
	neg := big.NewRat(-1, 1)
	for _, t := range a.terms {
		out.addTerm(t.exps, new(big.Rat).Mul(t.coeff, neg))
	}
	return out
}

// SubPoly returns a-b.
func SubPoly(a, b *Poly) *Poly {
	return AddPoly(a, NegPoly(b))
}

// MulPoly returns a*b, the Cauchy product of the two monomial maps.
func MulPoly(a, b *Poly) *Poly {
	out := ZeroPoly()
	for _, ta := range a.terms {
		for _, tb := range b.terms {
			out.addTerm(mulMonomial(ta.exps, tb.exps), new(big.Rat).Mul(ta.coeff, tb.coeff))
		}
	}
	return out
}

// ScalePoly returns a*c for a rational scalar c.
func ScalePoly(a *Poly, c *big.Rat) *Poly {
	out := ZeroPoly()
	for _, t := range a.terms {
		out.addTerm(t.exps, new(big.Rat).Mul(t.coeff, c))
	}
	return out
}

// PowPoly returns a^n for a non-negative integer exponent n.
func PowPoly(a *Poly, n int) *Poly {
	out := OnePoly()
	for i := 0; i < n; i++ {
		out = MulPoly(out, a)
	}
	return out
}

// DiffPoly returns the partial derivative of a with respect to v.
func DiffPoly(a *Poly, v string) *Poly {
	out := ZeroPoly()
	for _, t := range a.terms {
		e, ok := t.exps[v]
		if !ok || e == 0 {
			continue
		}
		newExps := t.exps.clone()
		if e == 1 {
			delete(newExps, v)
		} else {
			newExps[v] = e - 1
		}
		out.addTerm(newExps, new(big.Rat).Mul(t.coeff, big.NewRat(int64(e), 1)))
	}
	return out
}

// SubstVar replaces every occurrence of variable v with the polynomial
// repl, re-expanding the result. Used both for "zero out a_i" (repl =
// ZeroPoly) and for genuine variable elimination.
func SubstVar(a *Poly, v string, repl *Poly) *Poly {
	out := ZeroPoly()
	for _, t := range a.terms {
		e, ok := t.exps[v]
		if !ok || e == 0 {
			out.addTerm(t.exps, t.coeff)
			continue
		}
		rest := t.exps.clone()
		delete(rest, v)
		restPoly := &Poly{terms: map[string]polyTerm{rest.key(): {exps: rest, coeff: new(big.Rat).Set(t.coeff)}}}
		term := MulPoly(restPoly, PowPoly(repl, e))
		out = AddPoly(out, term)
	}
	return out
}

// SubstZero is shorthand for SubstVar(a, v, ZeroPoly()) over several
// variables at once — the "zero out a_i for i not in the sector" step of
// spec.md §4.5.
func SubstZero(a *Poly, vars ...string) *Poly {
	out := a
	for _, v := range vars {
		out = SubstVar(out, v, ZeroPoly())
	}
	return out
}

// SubstProduct replaces occurrences of the bilinear monomial factor v1*v2
// (or v1^2 when v1 == v2) with repl, decomposing each monomial's v1/v2
// exponents into as many whole (v1·v2) pairs as it contains. This is the
// scalar-product substitution of spec.md §4.4: _spsRules and
// _spsFromProps are both lists of such pairwise rules.
func SubstProduct(a *Poly, v1, v2 string, repl *Poly) *Poly {
	out := ZeroPoly()
	for _, t := range a.terms {
		e1 := t.exps[v1]
		var pairs int
		rest := t.exps.clone()
		if v1 == v2 {
			pairs = e1 / 2
			if pairs > 0 {
				if e1%2 == 0 {
					delete(rest, v1)
				} else {
					rest[v1] = 1
				}
			}
		} else {
			e2 := t.exps[v2]
			pairs = e1
			if e2 < pairs {
				pairs = e2
			}
			if pairs > 0 {
				if e1 == pairs {
					delete(rest, v1)
				} else {
					rest[v1] = e1 - pairs
				}
				if e2 == pairs {
					delete(rest, v2)
				} else {
					rest[v2] = e2 - pairs
				}
			}
		}
		restPoly := &Poly{terms: map[string]polyTerm{rest.key(): {exps: rest, coeff: new(big.Rat).Set(t.coeff)}}}
		out = AddPoly(out, MulPoly(restPoly, PowPoly(repl, pairs)))
	}
	return out
}

// maxPairs returns the largest number of (v1,v2) bilinear pairs any
// single term of p decomposes into — see SubstProduct.
func maxPairs(p *Poly, v1, v2 string) int {
	max := 0
	for _, t := range p.terms {
		var pairs int
		if v1 == v2 {
			pairs = t.exps[v1] / 2
		} else {
			e1, e2 := t.exps[v1], t.exps[v2]
			pairs = e1
			if e2 < pairs {
				pairs = e2
			}
		}
		if pairs > max {
			max = pairs
		}
	}
	return max
}

// substVarFracPoly substitutes v -> replNum/replDen (a rational function)
// into p. maxE is the shared power to which replDen is raised across
// every term, supplied by the caller (typically max(p.DegreeIn(v)) taken
// jointly over a fraction's numerator and denominator) so that numerator
// and denominator of the resulting Expr remain a valid — if not
// minimal — representation of the same rational function.
func substVarFracPoly(p *Poly, v string, replNum, replDen *Poly, maxE int) *Poly {
	out := ZeroPoly()
	for _, t := range p.terms {
		e := t.exps[v]
		rest := t.exps.clone()
		delete(rest, v)
		restPoly := &Poly{terms: map[string]polyTerm{rest.key(): {exps: rest, coeff: new(big.Rat).Set(t.coeff)}}}
		factor := MulPoly(PowPoly(replNum, e), PowPoly(replDen, maxE-e))
		out = AddPoly(out, MulPoly(restPoly, factor))
	}
	return out
}

// substProductFracPoly is the fraction-aware analogue of SubstProduct:
// it substitutes the bilinear factor v1*v2 (or v1^2) by replNum/replDen,
// raising replDen to the shared power maxPairsVal across every term.
func substProductFracPoly(p *Poly, v1, v2 string, replNum, replDen *Poly, maxPairsVal int) *Poly {
	out := ZeroPoly()
	for _, t := range p.terms {
		e1 := t.exps[v1]
		var pairs int
		rest := t.exps.clone()
		if v1 == v2 {
			pairs = e1 / 2
			if pairs > 0 {
				if e1%2 == 0 {
					delete(rest, v1)
				} else {
					rest[v1] = 1
				}
			}
		} else {
			e2 := t.exps[v2]
			pairs = e1
			if e2 < pairs {
				pairs = e2
			}
			if pairs > 0 {
				if e1 == pairs {
					delete(rest, v1)
				} else {
					rest[v1] = e1 - pairs
				}
				if e2 == pairs {
					delete(rest, v2)
				} else {
					rest[v2] = e2 - pairs
				}
			}
		}
		restPoly := &Poly{terms: map[string]polyTerm{rest.key(): {exps: rest, coeff: new(big.Rat).Set(t.coeff)}}}
		factor := MulPoly(PowPoly(replNum, pairs), PowPoly(replDen, maxPairsVal-pairs))
		out = AddPoly(out, MulPoly(restPoly, factor))
	}
	return out
}

// IsZero reports whether p is the zero polynomial. Decidable in O(1)
// because the monomial map never holds zero-coefficient entries.
func (p *Poly) IsZero() bool {
	return len(p.terms) == 0
}

// FreeOf reports whether p has zero exponent in every one of vars, across
// every term.
func (p *Poly) FreeOf(vars ...string) bool {
	for _, t := range p.terms {
		for _, v := range vars {
			if t.exps[v] != 0 {
				return false
			}
		}
	}
	return true
}

// DegreeIn returns the maximum exponent of v across all terms (0 if p is
// free of v), used by Expr.SubstVar to pick the shared power of the
// replacement's denominator.
func (p *Poly) DegreeIn(v string) int {
	max := 0
	for _, t := range p.terms {
		if e := t.exps[v]; e > max {
			max = e
		}
	}
	return max
}

// TotalDegree returns the maximum total monomial degree across all terms.
func (p *Poly) TotalDegree() int {
	max := 0
	for _, t := range p.terms {
		d := 0
		for _, e := range t.exps {
			d += e
		}
		if d > max {
			max = d
		}
	}
	return max
}

// Eval evaluates p at sample, a complete assignment of every variable
// appearing in p to a ModP element. Returns ErrUnboundVariable if a
// variable is missing.
func (p *Poly) Eval(sample map[string]modp.Elem) (modp.Elem, error) {
	acc := modp.Zero
	for _, t := range p.terms {
		term := ratToModP(t.coeff)
		for name, e := range t.exps {
			val, ok := sample[name]
			if !ok {
				return modp.Zero, fmt.Errorf("%w: %s", ErrUnboundVariable, name)
			}
			term = term.Mul(val.Pow(uint64(e)))
		}
		acc = acc.Add(term)
	}
	return acc, nil
}

// ratToModP reduces a big.Rat coefficient into GF(p) by separately
// reducing numerator and denominator and dividing in the field. A
// big.Rat's denominator is never zero, but it can be a multiple of p;
// ratToModP panics in that case.
func ratToModP(r *big.Rat) modp.Elem {
	num := modp.FromSignedBig(r.Num())
	den := modp.FromSignedBig(r.Denom())
	out, err := num.Div(den)
	if err != nil {
		// Denom() is never zero for a valid big.Rat; reaching here means
		// p happens to divide the (reduced) denominator at this prime —
		// an unlucky sample the caller should retry with a different one.
		panic("symbolic: denominator vanishes mod p")
	}
	return out
}

// String renders p as a sum of monomials in lexicographic order of
// their canonical keys (the constant term first), purely for
// diagnostics and test failure messages.
func (p *Poly) String() string {
	if p.IsZero() {
		return "0"
	}
	keys := make([]string, 0, len(p.terms))
	for k := range p.terms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	for i, k := range keys {
		t := p.terms[k]
		if i > 0 {
			sb.WriteString(" + ")
		}
		fmt.Fprintf(&sb, "(%s)", t.coeff.RatString())
		names := make([]string, 0, len(t.exps))
		for n := range t.exps {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			fmt.Fprintf(&sb, "*%s^%d", n, t.exps[n])
		}
	}
	return sb.String()
}
