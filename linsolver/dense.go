package linsolver

import (
	"github.com/cesdsol/cesdsol/la"
	"gonum.org/v1/gonum/mat"
)

// Dense solves A*x=b by expanding the CSR Jacobian to a dense matrix and
// factorizing it with gonum/mat's LU — adequate for the small/medium
// systems exercised by the bundled example scenarios (§8), grounded on the
// gonum/mat.Dense usage shown throughout the pack's linsolve/lapack
// reference files.
type Dense struct{}

func (Dense) Solve(a *la.CSRMatrix, b []float64, x []float64) bool {
	n := a.RowCount()
	dense := mat.NewDense(n, n, a.ToDense())
	rhs := mat.NewVecDense(n, append([]float64(nil), b...))
	var sol mat.VecDense
	if err := sol.SolveVec(dense, rhs); err != nil {
		return false
	}
	for i := 0; i < n; i++ {
		x[i] = sol.AtVec(i)
	}
	return true
}
