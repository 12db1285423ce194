package linsolver

import (
	"github.com/cesdsol/cesdsol/la"
	"gonum.org/v1/gonum/linsolve"
	"gonum.org/v1/gonum/mat"
)

// csrOperator adapts a *la.CSRMatrix to gonum/linsolve's MulVecToer
// contract, the same shape the pack's Allen-Cahn GMRES/CG example wraps a
// mat.SymBandDense in.
type csrOperator struct {
	a      *la.CSRMatrix
	precon Preconditioner
}

func (op csrOperator) MulVecTo(dst *mat.VecDense, _ bool, x mat.Vector) {
	n := op.a.RowCount()
	xv := make([]float64, n)
	for i := 0; i < n; i++ {
		xv[i] = x.AtVec(i)
	}
	y := la.NewVector(n)
	op.a.MultiplyVector(xv, y)
	for i := 0; i < n; i++ {
		dst.SetVec(i, y[i])
	}
}

// PreconSolve implements gonum/linsolve's optional PreconSolver contract,
// forwarding to the injected Preconditioner (Identity when none is set).
func (op csrOperator) PreconSolve(dst *mat.VecDense, _ bool, rhs mat.Vector) error {
	n := op.a.RowCount()
	b := make([]float64, n)
	for i := 0; i < n; i++ {
		b[i] = rhs.AtVec(i)
	}
	x := make([]float64, n)
	op.precon.Solve(op.a, b, x)
	for i := 0; i < n; i++ {
		dst.SetVec(i, x[i])
	}
	return nil
}

// GMRES solves A*x=b iteratively via gonum/linsolve's restarted GMRES
// method, for the nonsymmetric Jacobians the stationary-problem solver
// produces. Preconditioner defaults to Identity when nil.
type GMRES struct {
	Restart        int
	IterationLimit int
	Preconditioner Preconditioner
}

func (s GMRES) Solve(a *la.CSRMatrix, b []float64, x []float64) bool {
	n := a.RowCount()
	precon := s.Preconditioner
	if precon == nil {
		precon = Identity{}
	}
	precon.Apply(a)
	method := &linsolve.GMRES{Restart: s.Restart}
	settings := &linsolve.Settings{
		MaxIterations: s.IterationLimit,
		InitX:         mat.NewVecDense(n, append([]float64(nil), x...)),
	}
	result, err := linsolve.Iterative(csrOperator{a: a, precon: precon}, mat.NewVecDense(n, append([]float64(nil), b...)), method, settings)
	if err != nil {
		return false
	}
	for i := 0; i < n; i++ {
		x[i] = result.X.AtVec(i)
	}
	return true
}
