// Package linsolver defines the linear-solver collaborator contract
// (§6: "solve(&A,&b,&mut x) -> bool") and ships two concrete backends, a
// dense direct solve and an iterative GMRES, so the end-to-end scenarios
// in spec.md §8 are runnable instead of leaving the interface unimplemented.
package linsolver

import "github.com/cesdsol/cesdsol/la"

// Solver is the external linear-solver collaborator: given the assembled
// Jacobian and right-hand side, write the solution into x and report
// success. Implementations may internally parallelise (§5).
type Solver interface {
	Solve(a *la.CSRMatrix, b []float64, x []float64) bool
}

// Preconditioner is an injected sub-collaborator: Apply factors/prepares
// in place, Solve applies the preconditioner to a right-hand side.
type Preconditioner interface {
	Apply(a *la.CSRMatrix) bool
	Solve(a *la.CSRMatrix, b []float64, x []float64) bool
}

// Identity is the trivial preconditioner (x = b), used when no
// preconditioning is configured.
type Identity struct{}

func (Identity) Apply(a *la.CSRMatrix) bool { return true }
func (Identity) Solve(a *la.CSRMatrix, b []float64, x []float64) bool {
	copy(x, b)
	return true
}
