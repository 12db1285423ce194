package linsolver

import (
	"testing"

	"github.com/cesdsol/cesdsol/la"
	"github.com/cpmech/gosl/chk"
)

// diag2x2 builds [[2,0],[0,4]] in CSR, 0-based.
func diag2x2() *la.CSRMatrix {
	m := la.NewCSRMatrix(2, 2, 2, 0)
	m.SetRowCount(0, 0)
	m.SetRowCount(1, 1)
	m.SetRowCount(2, 2)
	m.SetColumnIndex(0, 0)
	m.SetColumnIndex(1, 1)
	m.SetValue(0, 2)
	m.SetValue(1, 4)
	return m
}

func TestDenseSolvesDiagonalSystem(tst *testing.T) {
	chk.PrintTitle("DenseSolvesDiagonalSystem")
	a := diag2x2()
	x := make([]float64, 2)
	if !(Dense{}).Solve(a, []float64{4, 8}, x) {
		tst.Fatal("expected Dense.Solve to succeed")
	}
	chk.Array(tst, "solution", 1e-12, x, []float64{2, 2})
}

func TestJacobiCachesInverseDiagonal(tst *testing.T) {
	chk.PrintTitle("JacobiCachesInverseDiagonal")
	a := diag2x2()
	j := &Jacobi{}
	if !j.Apply(a) {
		tst.Fatal("expected Apply to succeed")
	}
	chk.Array(tst, "inverse diagonal", 1e-15, j.inverseDiagonal, []float64{0.5, 0.25})

	x := make([]float64, 2)
	if !j.Solve(a, []float64{4, 8}, x) {
		tst.Fatal("expected Solve to succeed")
	}
	chk.Array(tst, "preconditioned rhs", 1e-15, x, []float64{2, 2})
}

func TestJacobiSolveAppliesLazily(tst *testing.T) {
	chk.PrintTitle("JacobiSolveAppliesLazily")
	a := diag2x2()
	j := &Jacobi{}
	x := make([]float64, 2)
	j.Solve(a, []float64{4, 8}, x)
	chk.Array(tst, "lazily-applied result", 1e-15, x, []float64{2, 2})
}

func TestGMRESSolvesDiagonalSystem(tst *testing.T) {
	chk.PrintTitle("GMRESSolvesDiagonalSystem")
	a := diag2x2()
	x := make([]float64, 2)
	s := GMRES{Restart: 2, IterationLimit: 10}
	if !s.Solve(a, []float64{4, 8}, x) {
		tst.Fatal("expected GMRES.Solve to succeed")
	}
	chk.Array(tst, "solution", 1e-8, x, []float64{2, 2})
}

func TestGMRESWithJacobiPreconditioner(tst *testing.T) {
	chk.PrintTitle("GMRESWithJacobiPreconditioner")
	a := diag2x2()
	x := make([]float64, 2)
	s := GMRES{Restart: 2, IterationLimit: 10, Preconditioner: &Jacobi{}}
	if !s.Solve(a, []float64{4, 8}, x) {
		tst.Fatal("expected preconditioned GMRES.Solve to succeed")
	}
	chk.Array(tst, "solution", 1e-8, x, []float64{2, 2})
}

func TestIdentityPreconditionerIsNoop(tst *testing.T) {
	chk.PrintTitle("IdentityPreconditionerIsNoop")
	a := diag2x2()
	x := make([]float64, 2)
	Identity{}.Solve(a, []float64{4, 8}, x)
	chk.Array(tst, "unscaled rhs", 1e-15, x, []float64{4, 8})
}
