package symbolic

import "fmt"

// Matrix is a dense rows×cols grid of Expr, used by family.go for the
// scalar-product linearization matrix and the Symanzik M matrix
// (trivialsector solves its k-equation system with modp.Solve, not
// with Matrix). Gaussian elimination below
// never needs numeric pivoting heuristics: IsZero is exact, so "the
// first non-zero entry in the column" is always a legitimate pivot.
type Matrix struct {
	rows, cols int
	data       []Expr
}

// NewMatrix returns an rows×cols matrix of zero entries.
func NewMatrix(rows, cols int) *Matrix {
	data := make([]Expr, rows*cols)
	for i := range data {
		data[i] = ZeroExpr()
	}
	return &Matrix{rows: rows, cols: cols, data: data}
}

func (m *Matrix) Rows() int { return m.rows }
func (m *Matrix) Cols() int { return m.cols }

// At returns the entry at (r, c).
func (m *Matrix) At(r, c int) Expr {
	return m.data[r*m.cols+c]
}

// Set assigns the entry at (r, c).
func (m *Matrix) Set(r, c int, v Expr) {
	m.data[r*m.cols+c] = v
}

// Clone returns a deep-enough copy (Expr values are immutable by
// convention in this package, so a shallow slice copy suffices).
func (m *Matrix) Clone() *Matrix {
	out := &Matrix{rows: m.rows, cols: m.cols, data: make([]Expr, len(m.data))}
	copy(out.data, m.data)
	return out
}

// rowEchelon reduces m in place (Gauss, no back-substitution) and
// returns the list of pivot columns found, one per pivot row, in the
// order rows were used.
func (m *Matrix) rowEchelon() []int {
	pivotCols := make([]int, 0, m.rows)
	pivotRow := 0
	for col := 0; col < m.cols && pivotRow < m.rows; col++ {
		sel := -1
		for r := pivotRow; r < m.rows; r++ {
			if !m.At(r, col).IsZero() {
				sel = r
				break
			}
		}
		if sel == -1 {
			continue
		}
		if sel != pivotRow {
			m.swapRows(sel, pivotRow)
		}
		pivot := m.At(pivotRow, col)
		for r := 0; r < m.rows; r++ {
			if r == pivotRow {
				continue
			}
			factor, err := m.At(r, col).Div(pivot)
			if err != nil {
				continue // pivot is non-zero by construction; unreachable
			}
			if factor.IsZero() {
				continue
			}
			for c := col; c < m.cols; c++ {
				m.Set(r, c, m.At(r, c).Sub(factor.Mul(m.At(pivotRow, c))))
			}
		}
		pivotCols = append(pivotCols, col)
		pivotRow++
	}
	return pivotCols
}

func (m *Matrix) swapRows(a, b int) {
	for c := 0; c < m.cols; c++ {
		m.data[a*m.cols+c], m.data[b*m.cols+c] = m.data[b*m.cols+c], m.data[a*m.cols+c]
	}
}

// Rank returns the symbolic rank of m: the number of pivots Gaussian
// elimination finds (exact, since IsZero is exact on this
// representation).
func Rank(m *Matrix) int {
	return len(m.Clone().rowEchelon())
}

// Inverse returns the inverse of square matrix m via Gauss-Jordan on the
// augmented [m | I] matrix, or ErrSingular if m's rank is less than its
// dimension.
func Inverse(m *Matrix) (*Matrix, error) {
	if m.rows != m.cols {
		return nil, fmt.Errorf("symbolic: %dx%d: %w", m.rows, m.cols, ErrNonSquare)
	}
	n := m.rows
	aug := NewMatrix(n, 2*n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			aug.Set(r, c, m.At(r, c))
		}
		aug.Set(r, n+r, OneExpr())
	}
	pivots := aug.rowEchelon()
	if len(pivots) < n {
		return nil, fmt.Errorf("symbolic: rank %d of %d: %w", len(pivots), n, ErrSingular)
	}
	out := NewMatrix(n, n)
	for r := 0; r < n; r++ {
		pivot := aug.At(r, r)
		for c := 0; c < n; c++ {
			v, err := aug.At(r, n+c).Div(pivot)
			if err != nil {
				return nil, fmt.Errorf("symbolic: %w", ErrSingular)
			}
			out.Set(r, c, v)
		}
	}
	return out, nil
}

// Determinant returns det(m) for a square matrix, via forward Gaussian
// elimination (tracking the sign flip of each row swap and the running
// product of pivots), or ErrNonSquare if m isn't square.
func Determinant(m *Matrix) (Expr, error) {
	if m.rows != m.cols {
		return Expr{}, fmt.Errorf("symbolic: %dx%d: %w", m.rows, m.cols, ErrNonSquare)
	}
	n := m.rows
	a := m.Clone()
	det := OneExpr()
	for col := 0; col < n; col++ {
		sel := -1
		for r := col; r < n; r++ {
			if !a.At(r, col).IsZero() {
				sel = r
				break
			}
		}
		if sel == -1 {
			return ZeroExpr(), nil
		}
		if sel != col {
			a.swapRows(sel, col)
			det = det.Neg()
		}
		pivot := a.At(col, col)
		det = det.Mul(pivot)
		for r := col + 1; r < n; r++ {
			if a.At(r, col).IsZero() {
				continue
			}
			factor, err := a.At(r, col).Div(pivot)
			if err != nil {
				continue // pivot is non-zero by construction; unreachable
			}
			for c := col; c < n; c++ {
				a.Set(r, c, a.At(r, c).Sub(factor.Mul(a.At(col, c))))
			}
		}
	}
	return det, nil
}

// Solve reports whether the affine system A·k = b has at least one
// solution, via exact Gaussian elimination on the augmented matrix
// [A | b]. This is exactly the question spec.md §4.5's TrivialSectorOracle
// needs answered — existence, not the solution vector itself.
func Solve(a *Matrix, b []Expr) (bool, error) {
	if len(b) != a.rows {
		return false, fmt.Errorf("symbolic: rhs length %d does not match %d rows", len(b), a.rows)
	}
	aug := NewMatrix(a.rows, a.cols+1)
	for r := 0; r < a.rows; r++ {
		for c := 0; c < a.cols; c++ {
			aug.Set(r, c, a.At(r, c))
		}
		aug.Set(r, a.cols, b[r])
	}
	aug.rowEchelon()
	for r := 0; r < aug.rows; r++ {
		allZero := true
		for c := 0; c < a.cols; c++ {
			if !aug.At(r, c).IsZero() {
				allZero = false
				break
			}
		}
		if allZero && !aug.At(r, a.cols).IsZero() {
			return false, nil // an equation "0 = nonzero": inconsistent
		}
	}
	return true, nil
}
