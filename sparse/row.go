package sparse

import "sort"

// Term is a single (column, coefficient) pair of a sparse row. Column
// identifies an unknown — in kernel, an integral's assigned elimination
// index — not a literal array position.
type Term[T Ring[T]] struct {
	Col   int
	Coeff T
}

// Row is a sparse linear equation sum_i Coeff_i * x_{Col_i} = 0, kept in
// strictly descending Col order. Descending order lets elimination always
// compare leading (highest-index, i.e. "hardest") terms first, which is
// the order spec.md §4.3 requires: harder integrals are eliminated before
// easier ones, leaving masters as the last standing unknowns.
type Row[T Ring[T]] struct {
	terms []Term[T]
}

// NewRow builds a Row from an unsorted term list, combining duplicate
// columns and dropping zero coefficients.
func NewRow[T Ring[T]](terms []Term[T]) Row[T] {
	r := Row[T]{terms: append([]Term[T](nil), terms...)}
	r.combine()
	return r
}

// Insert adds coeff to the existing entry at col (creating one if
// absent), keeping the row sorted.
func (r *Row[T]) Insert(col int, coeff T) {
	for i := range r.terms {
		if r.terms[i].Col == col {
			r.terms[i].Coeff = r.terms[i].Coeff.Add(coeff)
			return
		}
	}
	r.terms = append(r.terms, Term[T]{Col: col, Coeff: coeff})
	r.Sort()
}

// Sort restores descending-Col order after ad hoc mutation.
func (r *Row[T]) Sort() {
	sort.Slice(r.terms, func(i, j int) bool { return r.terms[i].Col > r.terms[j].Col })
}

// combine sorts, merges duplicate columns, and drops zero coefficients.
func (r *Row[T]) combine() {
	r.Sort()
	out := r.terms[:0]
	for _, t := range r.terms {
		if n := len(out); n > 0 && out[n-1].Col == t.Col {
			out[n-1].Coeff = out[n-1].Coeff.Add(t.Coeff)
			continue
		}
		out = append(out, t)
	}
	r.terms = out
	r.EraseZero()
}

// EraseZero drops every term whose coefficient is the ring zero.
func (r *Row[T]) EraseZero() {
	out := r.terms[:0]
	for _, t := range r.terms {
		if !t.Coeff.IsZero() {
			out = append(out, t)
		}
	}
	r.terms = out
}

// IsEmpty reports whether the row has no non-zero terms — the identity
// 0 = 0.
func (r Row[T]) IsEmpty() bool {
	return len(r.terms) == 0
}

// Terms returns the row's terms in descending-Col order. The returned
// slice aliases internal storage and must be treated as read-only.
func (r Row[T]) Terms() []Term[T] {
	return r.terms
}

// LeadingCol returns the largest column index with a non-zero
// coefficient, and whether one exists.
func (r Row[T]) LeadingCol() (int, bool) {
	if len(r.terms) == 0 {
		return 0, false
	}
	return r.terms[0].Col, true
}

// Coeff returns the coefficient stored at col, and whether col appears
// in the row at all.
func (r Row[T]) Coeff(col int) (T, bool) {
	for _, t := range r.terms {
		if t.Col == col {
			return t.Coeff, true
		}
	}
	var zero T
	return zero, false
}

// Normalize divides every coefficient by the leading one, so the
// leading term becomes the ring's One. Returns ErrEmptyRow on an empty
// row.
func (r Row[T]) Normalize() (Row[T], error) {
	if len(r.terms) == 0 {
		return r, ErrEmptyRow
	}
	lead := r.terms[0].Coeff
	out := make([]Term[T], len(r.terms))
	for i, t := range r.terms {
		v, err := t.Coeff.Div(lead)
		if err != nil {
			return Row[T]{}, err
		}
		out[i] = Term[T]{Col: t.Col, Coeff: v}
	}
	return Row[T]{terms: out}, nil
}

// Scale returns r with every coefficient multiplied by c.
func (r Row[T]) Scale(c T) Row[T] {
	out := make([]Term[T], 0, len(r.terms))
	for _, t := range r.terms {
		v := t.Coeff.Mul(c)
		if !v.IsZero() {
			out = append(out, Term[T]{Col: t.Col, Coeff: v})
		}
	}
	return Row[T]{terms: out}
}

// merge combines two descending-sorted term slices in O(len(a)+len(b)),
// adding coefficients that share a column and dropping the result when
// it cancels to zero.
func merge[T Ring[T]](a, b []Term[T]) []Term[T] {
	out := make([]Term[T], 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Col > b[j].Col:
			out = append(out, a[i])
			i++
		case a[i].Col < b[j].Col:
			out = append(out, b[j])
			j++
		default:
			s := a[i].Coeff.Add(b[j].Coeff)
			if !s.IsZero() {
				out = append(out, Term[T]{Col: a[i].Col, Coeff: s})
			}
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

// Add returns r+o via merge-based combination of the two sorted rows.
func (r Row[T]) Add(o Row[T]) Row[T] {
	return Row[T]{terms: merge(r.terms, o.terms)}
}

// Sub returns r-o.
func (r Row[T]) Sub(o Row[T]) Row[T] {
	if o.IsEmpty() {
		return r.Clone()
	}
	lead := o.terms[0].Coeff
	negOne := lead.Zero().Sub(lead.One())
	return r.Add(o.Scale(negOne))
}

// Eliminate uses pivot (already Normalize-d, whose leading column is
// pivotCol) to cancel column pivotCol out of r, returning the resulting
// row. If r does not contain pivotCol, r is returned unchanged (this is
// not an error: most rows are sparse in most columns). The returned row
// never carries pivotCol again, by construction of merge's cancellation.
func (r Row[T]) Eliminate(pivot Row[T], pivotCol int) Row[T] {
	factor, ok := r.Coeff(pivotCol)
	if !ok || factor.IsZero() {
		return r
	}
	return r.Add(pivot.Scale(factor.Zero().Sub(factor)))
}

// Clone returns a copy of r with an independent backing array.
func (r Row[T]) Clone() Row[T] {
	out := make([]Term[T], len(r.terms))
	copy(out, r.terms)
	return Row[T]{terms: out}
}
