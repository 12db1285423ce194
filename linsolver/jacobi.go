package linsolver

import "github.com/cesdsol/cesdsol/la"

// Jacobi is the diagonal preconditioner: Apply caches 1/A_ii per row, Solve
// scales the right-hand side by that cached inverse diagonal.
type Jacobi struct {
	inverseDiagonal []float64
}

// Apply scans each row of a for its diagonal entry and caches its inverse.
// A missing or zero diagonal entry falls back to 1 (no scaling for that row).
func (j *Jacobi) Apply(a *la.CSRMatrix) bool {
	n := a.RowCount()
	j.inverseDiagonal = make([]float64, n)
	for row := 0; row < n; row++ {
		d := 1.0
		for k := a.GetRowCount(row); k < a.GetRowCount(row+1); k++ {
			if a.GetColumnIndex(k) == row && a.GetValue(k) != 0 {
				d = a.GetValue(k)
				break
			}
		}
		j.inverseDiagonal[row] = 1 / d
	}
	return true
}

func (j *Jacobi) Solve(a *la.CSRMatrix, b []float64, x []float64) bool {
	if j.inverseDiagonal == nil {
		j.Apply(a)
	}
	for i := range b {
		x[i] = j.inverseDiagonal[i] * b[i]
	}
	return true
}
