package kernel

import (
	"fmt"
	"sort"

	"github.com/chiyutuci/inibp/integral"
	"github.com/chiyutuci/inibp/modp"
	"github.com/chiyutuci/inibp/sectorgraph"
	"github.com/chiyutuci/inibp/sparse"
)

// Term is one entry of a master-integral linear combination: Coeff
// times the integral at Weight (an index into the sector's seed/weight
// table, not a literal array position).
type Term struct {
	Weight int
	Coeff  modp.Elem
}

// Result is one sector's reduction: the weights of seeds that never
// became a pivot (masters), and, for every pivot seed, the linear
// combination of masters it reduces to.
type Result struct {
	Masters    []int
	Reductions map[int][]Term
}

// Reduce runs the ReductionKernel algorithm for one sector: it builds
// one sparse equation per (seed, template) pair within the depth/rank
// budget, orders the system, and eliminates it column by column,
// recording which seed weights become pivots and which survive as
// masters. Grounded on Reduce::_reduction's two-phase elimination loop
// in reduce.cpp.
func Reduce(sec *sectorgraph.Sector, templates []IbpTemplateFF, seeds []integral.Integral, weights map[string]int, depthMax, rankMax int) (*Result, error) {
	type sysRow struct {
		row   sparse.Row[modp.Elem]
		seqno int
	}

	var system []sysRow
	for _, s := range seeds {
		if s.Depth() >= depthMax || s.Rank() >= rankMax {
			continue
		}
		for _, tmpl := range templates {
			terms := make([]sparse.Term[modp.Elem], 0, len(tmpl))
			for _, term := range tmpl {
				t, err := s.Add(term.Delta)
				if err != nil {
					return nil, fmt.Errorf("kernel: sector %d: %w", sec.ID, err)
				}
				w, ok := weights[t.Key()]
				if !ok {
					continue
				}
				gamma := evalCoeff(term.Coeffs, s)
				if gamma.IsZero() {
					continue
				}
				terms = append(terms, sparse.Term[modp.Elem]{Col: w, Coeff: gamma})
			}
			if len(terms) == 0 {
				continue
			}
			row := sparse.NewRow(terms)
			if row.IsEmpty() {
				continue
			}
			system = append(system, sysRow{row: row, seqno: len(system)})
		}
	}

	sort.SliceStable(system, func(i, j int) bool {
		li, _ := system[i].row.LeadingCol()
		lj, _ := system[j].row.LeadingCol()
		if li != lj {
			return li < lj
		}
		si, sj := len(system[i].row.Terms()), len(system[j].row.Terms())
		if si != sj {
			return si < sj
		}
		return system[i].seqno < system[j].seqno
	})

	pivotOf := map[int]int{}
	var g []sparse.Row[modp.Elem]

	for _, sr := range system {
		e := sr.row
		for {
			lead, ok := e.LeadingCol()
			if !ok {
				break
			}
			pr, has := pivotOf[lead]
			if !has {
				break
			}
			e = e.Eliminate(g[pr], lead)
		}
		if e.IsEmpty() {
			continue
		}

		norm, err := e.Normalize()
		if err != nil {
			return nil, fmt.Errorf("kernel: sector %d, prime %d: %w: %v", sec.ID, modp.P, ErrModularSingularity, err)
		}
		e = norm

		terms := e.Terms()
		i := 1
		for i < len(terms) {
			col := terms[i].Col
			pr, has := pivotOf[col]
			if !has {
				i++
				continue
			}
			e = e.Eliminate(g[pr], col)
			terms = e.Terms()
		}

		lead, ok := e.LeadingCol()
		if !ok {
			continue
		}
		pivotOf[lead] = len(g)
		g = append(g, e)
	}

	result := &Result{Reductions: map[int][]Term{}}
	for w, rowIdx := range pivotOf {
		terms := g[rowIdx].Terms()
		var combo []Term
		for _, t := range terms[1:] {
			combo = append(combo, Term{Weight: t.Col, Coeff: t.Coeff.Neg()})
		}
		result.Reductions[w] = combo
	}

	for _, s := range seeds {
		if s.Depth() >= depthMax || s.Rank() >= rankMax {
			continue
		}
		w := weights[s.Key()]
		if _, isPivot := pivotOf[w]; !isPivot {
			result.Masters = append(result.Masters, w)
		}
	}
	sort.Ints(result.Masters)

	return result, nil
}
