package family

import "fmt"

// InvariantDecl declares a non-momentum symbol (a Mandelstam invariant
// or a mass) available to propagator and scalar-product-rule
// expressions. MassDimension is carried through for display only — the
// reduction algorithm never reasons about mass dimension.
type InvariantDecl struct {
	Name          string
	MassDimension int
}

// SPRule fixes the value of one external-external scalar product:
// A·B = Value, where Value is a linear expression over the declared
// invariants (and, trivially, integer literals).
type SPRule struct {
	A, B, Value string
}

// PropagatorDecl is one inverse propagator (Momentum)^2 - (Mass)^2,
// Momentum a linear combination of internal/external momenta, Mass a
// linear combination of invariants (or "0").
type PropagatorDecl struct {
	Momentum, Mass string
}

// Spec is the topology description family.New consumes — the
// language-neutral counterpart of the original source's YAML-loaded
// Family constructor arguments.
type Spec struct {
	Name string

	// Dimension names the spacetime-dimension symbol. Empty defaults to
	// "D"; a field that parses as a plain integer fixes the dimension
	// to that numeric constant instead of leaving it symbolic.
	Dimension string

	Internals []string
	Externals []string

	Invariants []InvariantDecl

	// InvarOne names the invariant that is set identically to 1
	// throughout (conventionally used to homogenize mass dimensions).
	// Empty means no such substitution is made.
	InvarOne string

	SPRules     []SPRule
	Propagators []PropagatorDecl
}

// nsps returns E(E+1)/2, the number of independent external-external
// scalar products.
func (s Spec) nsps() int {
	e := len(s.Externals)
	return e * (e + 1) / 2
}

// nprops returns L*E + L(L+1)/2, the number of independent internal
// scalar products (and hence the required propagator count).
func (s Spec) nprops() int {
	l, e := len(s.Internals), len(s.Externals)
	return l*e + l*(l+1)/2
}

// validate checks symbol-collision and arity constraints, mirroring
// the original Family constructor's upfront checks.
func (s Spec) validate() error {
	if s.Name == "" {
		return fmt.Errorf("family: %w: name is required", ErrArity)
	}
	if len(s.Internals) == 0 {
		return fmt.Errorf("family: %w: at least one internal momentum is required", ErrArity)
	}
	seen := map[string]bool{}
	declare := func(name string) error {
		if seen[name] {
			return fmt.Errorf("%w: %q", ErrSymbolCollision, name)
		}
		seen[name] = true
		return nil
	}
	dimName := s.Dimension
	if dimName == "" {
		dimName = "D"
	}
	if !isNumeric(dimName) {
		if err := declare(dimName); err != nil {
			return err
		}
	}
	for _, n := range s.Internals {
		if err := declare(n); err != nil {
			return err
		}
	}
	for _, n := range s.Externals {
		if err := declare(n); err != nil {
			return err
		}
	}
	for _, inv := range s.Invariants {
		if err := declare(inv.Name); err != nil {
			return err
		}
	}
	if s.InvarOne != "" && !seen[s.InvarOne] {
		return fmt.Errorf("%w: invar_one %q was not declared as an invariant", ErrArity, s.InvarOne)
	}

	if len(s.SPRules) != s.nsps() {
		return fmt.Errorf("family: %d sps_rules, want %d: %w", len(s.SPRules), s.nsps(), ErrArity)
	}
	if len(s.Propagators) != s.nprops() {
		return fmt.Errorf("family: %d propagators, want %d: %w", len(s.Propagators), s.nprops(), ErrArity)
	}

	known := func(name string) bool { return seen[name] }
	for _, r := range s.SPRules {
		if !known(r.A) || !known(r.B) {
			return fmt.Errorf("family: %w: sps_rule references undeclared momentum %q/%q", ErrArity, r.A, r.B)
		}
		toks, err := symbolsIn(r.Value)
		if err != nil {
			return err
		}
		for _, t := range toks {
			if !known(t) {
				return fmt.Errorf("family: %w: sps_rule value references undeclared symbol %q", ErrArity, t)
			}
		}
	}
	for _, p := range s.Propagators {
		toks, err := symbolsIn(p.Momentum)
		if err != nil {
			return err
		}
		for _, t := range toks {
			if !known(t) {
				return fmt.Errorf("family: %w: propagator momentum references undeclared symbol %q", ErrArity, t)
			}
		}
		toks, err = symbolsIn(p.Mass)
		if err != nil {
			return err
		}
		for _, t := range toks {
			if !known(t) {
				return fmt.Errorf("family: %w: propagator mass references undeclared symbol %q", ErrArity, t)
			}
		}
	}
	return nil
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '-' && i == 0 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
