package family

import (
	"fmt"
	"strconv"

	"github.com/chiyutuci/inibp/integral"
	"github.com/chiyutuci/inibp/kernel"
	"github.com/chiyutuci/inibp/modp"
	"github.com/chiyutuci/inibp/symbolic"
)

// ibpTerm is one (Δ, coefficient) entry of a symbolic IBP template,
// coefficient still expressed over the index symbols a_1..a_n before
// ModP specialization.
type ibpTerm struct {
	Delta integral.Integral
	Coeff symbolic.Expr
}

// ibpTemplate is a single IBP relation in descending-Δ order — the
// symbolic counterpart of kernel.IbpTemplateFF.
type ibpTemplate []ibpTerm

// spRuleRec is one scalar-product substitution rule, v1·v2 = value.
type spRuleRec struct {
	v1, v2 string
	value  symbolic.Expr
}

// Family holds the algebraic preparation for one topology: the
// Symanzik polynomials and the symbolic IBP templates, ready to be
// specialized to GF(p) via Templates.
type Family struct {
	name string

	registry *symbolic.Registry

	dimName        string // empty if the dimension was fixed to a numeric literal
	invariantNames []string

	dimension symbolic.Expr

	internals []string
	externals []string

	nInts, nExts, nProps int

	propagators []symbolic.Expr

	spRules      []spRuleRec // external-external, from Spec
	spsFromProps []spRuleRec // internal/internal and internal/external, computed

	symIndices []string // a1..an
	symProps   []string // D1..Dn

	uPoly, fPoly symbolic.Expr

	ibp []ibpTemplate
}

// New builds a Family from spec, running the full algebraic
// preparation pipeline: propagator construction, scalar-product
// linearization, the Symanzik polynomials, and IBP template
// generation.
func New(spec Spec) (*Family, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}

	f := &Family{
		name:      spec.Name,
		registry:  symbolic.NewRegistry(),
		internals: append([]string(nil), spec.Internals...),
		externals: append([]string(nil), spec.Externals...),
		nInts:     len(spec.Internals),
		nExts:     len(spec.Externals),
	}
	f.nProps = spec.nprops()

	dimName := spec.Dimension
	if dimName == "" {
		dimName = "D"
	}
	if n, err := strconv.ParseInt(dimName, 10, 64); err == nil {
		f.dimension = symbolic.FromInt(n)
	} else {
		f.registry.Declare(dimName)
		f.dimension = symbolic.Var(dimName)
		f.dimName = dimName
	}

	for _, n := range f.internals {
		f.registry.Declare(n)
	}
	for _, n := range f.externals {
		f.registry.Declare(n)
	}
	for _, inv := range spec.Invariants {
		f.registry.Declare(inv.Name)
		f.invariantNames = append(f.invariantNames, inv.Name)
	}

	invarOne := spec.InvarOne

	for _, r := range spec.SPRules {
		val, err := parseLinearExpr(r.Value)
		if err != nil {
			return nil, err
		}
		if invarOne != "" {
			val = val.SubstVar(invarOne, symbolic.OneExpr())
		}
		f.spRules = append(f.spRules, spRuleRec{v1: r.A, v2: r.B, value: val})
	}

	for _, p := range spec.Propagators {
		mom, err := parseLinearExpr(p.Momentum)
		if err != nil {
			return nil, err
		}
		mass, err := parseLinearExpr(p.Mass)
		if err != nil {
			return nil, err
		}
		prop := mom.Mul(mom).Sub(mass.Mul(mass))
		prop = f.substSPRules(prop)
		if invarOne != "" {
			prop = prop.SubstVar(invarOne, symbolic.OneExpr())
		}
		f.propagators = append(f.propagators, prop)
	}

	f.symIndices = make([]string, f.nProps)
	f.symProps = make([]string, f.nProps)
	for i := 0; i < f.nProps; i++ {
		f.symIndices[i] = fmt.Sprintf("a%d", i+1)
		f.symProps[i] = fmt.Sprintf("D%d", i+1)
	}

	if err := f.computeSPS(); err != nil {
		return nil, err
	}
	f.computeSymanzik()
	f.generateIBP()

	return f, nil
}

// substSPRules applies every declared external-external scalar-product
// rule to e, in declaration order.
func (f *Family) substSPRules(e symbolic.Expr) symbolic.Expr {
	for _, r := range f.spRules {
		e = e.SubstProduct(r.v1, r.v2, r.value)
	}
	return e
}

// substSPSFromProps applies every computed internal scalar-product
// substitution (the D_t-valued rules _compute_sps derives) to e.
func (f *Family) substSPSFromProps(e symbolic.Expr) symbolic.Expr {
	for _, r := range f.spsFromProps {
		e = e.SubstProduct(r.v1, r.v2, r.value)
	}
	return e
}

// Name returns the family's declared name.
func (f *Family) Name() string { return f.name }

// NumInternals returns the number of loop momenta.
func (f *Family) NumInternals() int { return f.nInts }

// NumPropagators returns the number of propagators (and IBP index
// symbols) of the topology.
func (f *Family) NumPropagators() int { return f.nProps }

// IndexSymbols returns the a1..an index symbol names, in propagator
// order.
func (f *Family) IndexSymbols() []string {
	return append([]string(nil), f.symIndices...)
}

// GPoly returns U+F, the polynomial TrivialSectorOracle's k-equation is
// built from.
func (f *Family) GPoly() symbolic.Expr {
	return f.uPoly.Add(f.fPoly)
}

// DimName returns the dimension symbol's name, or "" if the dimension
// was fixed to a numeric literal and needs no ModP sample.
func (f *Family) DimName() string { return f.dimName }

// InvariantNames returns the declared invariants, in declaration
// order — the other symbols Templates/GPoly.Eval need a concrete ModP
// value for besides the index symbols and the dimension.
func (f *Family) InvariantNames() []string {
	return append([]string(nil), f.invariantNames...)
}

// Templates specializes every symbolic IBP template to GF(p) at
// sample, which must supply a value for the dimension symbol (if
// symbolic) and every declared invariant.
func (f *Family) Templates(sample map[string]modp.Elem) ([]kernel.IbpTemplateFF, error) {
	out := make([]kernel.IbpTemplateFF, 0, len(f.ibp))
	for _, tmpl := range f.ibp {
		ff := make(kernel.IbpTemplateFF, 0, len(tmpl))
		for _, term := range tmpl {
			coeffs, err := term.Coeff.LinearCoeffs(sample, f.symIndices)
			if err != nil {
				return nil, fmt.Errorf("family %s: %w", f.name, err)
			}
			ff = append(ff, kernel.TemplateTerm{Delta: term.Delta, Coeffs: coeffs})
		}
		out = append(out, ff)
	}
	return out, nil
}
