package family

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chiyutuci/inibp/symbolic"
)

// parseLinearExpr parses a sum/difference of integer literals and bare
// symbol names — "k1+p1-p2", "m", "0", "s" — into an Expr. The original
// source hands these fields to a full general-purpose parser (GiNaC's)
// against its symbol table; every propagator momentum/mass and
// sps_rules value this module's config format admits is itself a plain
// linear combination, so this deliberately narrower parser is a scoped
// simplification rather than a missing feature.
func parseLinearExpr(s string) (symbolic.Expr, error) {
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return symbolic.Expr{}, fmt.Errorf("%w: empty expression", ErrBadExpr)
	}
	expr := symbolic.ZeroExpr()
	i := 0
	for i < len(s) {
		sign := 1
		switch s[i] {
		case '+':
			i++
		case '-':
			sign = -1
			i++
		}
		j := i
		for j < len(s) && s[j] != '+' && s[j] != '-' {
			j++
		}
		tok := s[i:j]
		if tok == "" {
			return symbolic.Expr{}, fmt.Errorf("%w: %q", ErrBadExpr, s)
		}
		var term symbolic.Expr
		if n, err := strconv.ParseInt(tok, 10, 64); err == nil {
			term = symbolic.FromInt(n)
		} else {
			term = symbolic.Var(tok)
		}
		if sign < 0 {
			term = term.Neg()
		}
		expr = expr.Add(term)
		i = j
	}
	return expr, nil
}

// symbolsIn returns the set of bare symbol names a linear expression
// string references, skipping integer literals — used by Spec
// validation to check every referenced name was actually declared.
func symbolsIn(s string) ([]string, error) {
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrBadExpr)
	}
	var out []string
	i := 0
	for i < len(s) {
		switch s[i] {
		case '+', '-':
			i++
		}
		j := i
		for j < len(s) && s[j] != '+' && s[j] != '-' {
			j++
		}
		tok := s[i:j]
		if tok == "" {
			return nil, fmt.Errorf("%w: %q", ErrBadExpr, s)
		}
		if _, err := strconv.ParseInt(tok, 10, 64); err != nil {
			out = append(out, tok)
		}
		i = j
	}
	return out, nil
}
