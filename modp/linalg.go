package modp

import "fmt"

// Solve reports whether the affine system A·x = b has at least one
// solution over GF(p), via Gaussian elimination on the augmented
// matrix [A|b]. Used by trivialsector's k-equation test, which probes
// solvability through finite-field sampling rather than symbolic
// monomial grouping (see DESIGN.md).
func Solve(rows [][]Elem, rhs []Elem) (bool, error) {
	n := len(rows)
	if len(rhs) != n {
		return false, fmt.Errorf("modp: rhs length %d does not match %d rows", len(rhs), n)
	}
	if n == 0 {
		return true, nil
	}
	cols := len(rows[0])
	aug := make([][]Elem, n)
	for r := range rows {
		if len(rows[r]) != cols {
			return false, fmt.Errorf("modp: ragged row %d", r)
		}
		row := make([]Elem, cols+1)
		copy(row, rows[r])
		row[cols] = rhs[r]
		aug[r] = row
	}

	pivotRow := 0
	for col := 0; col < cols && pivotRow < n; col++ {
		sel := -1
		for r := pivotRow; r < n; r++ {
			if !aug[r][col].IsZero() {
				sel = r
				break
			}
		}
		if sel == -1 {
			continue
		}
		aug[sel], aug[pivotRow] = aug[pivotRow], aug[sel]
		pivot := aug[pivotRow][col]
		for r := 0; r < n; r++ {
			if r == pivotRow || aug[r][col].IsZero() {
				continue
			}
			factor, err := aug[r][col].Div(pivot)
			if err != nil {
				continue // pivot is non-zero by construction; unreachable
			}
			for c := col; c <= cols; c++ {
				aug[r][c] = aug[r][c].Sub(factor.Mul(aug[pivotRow][c]))
			}
		}
		pivotRow++
	}

	for r := 0; r < n; r++ {
		allZero := true
		for c := 0; c < cols; c++ {
			if !aug[r][c].IsZero() {
				allZero = false
				break
			}
		}
		if allZero && !aug[r][cols].IsZero() {
			return false, nil
		}
	}
	return true, nil
}
