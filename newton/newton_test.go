package newton

import (
	"testing"

	"github.com/cesdsol/cesdsol/la"
	"github.com/cesdsol/cesdsol/linesearch"
	"github.com/cesdsol/cesdsol/linsolver"
	"github.com/cpmech/gosl/chk"
)

// identityProblem is a Target whose equations equal its variables and
// whose Jacobian is the identity, so a single Modified Newton step solves
// it exactly (x_new = x - J^-1*eq = 0).
type identityProblem struct {
	x []float64
}

func (p *identityProblem) GetVariables() []float64  { return append([]float64(nil), p.x...) }
func (p *identityProblem) SetVariables(x []float64) { p.x = append([]float64(nil), x...) }
func (p *identityProblem) SetVariablesUpdated()     {}
func (p *identityProblem) GetEquations() []float64  { return append([]float64(nil), p.x...) }
func (p *identityProblem) GetMerit() float64 {
	var sum float64
	for _, v := range p.x {
		sum += v * v
	}
	return sum / float64(len(p.x))
}
func (p *identityProblem) GetJacobian() *la.CSRMatrix { return la.IdentityCSR(len(p.x)) }
func (p *identityProblem) CalculateSolutionNorm() float64 {
	return la.Norm(la.Vector(p.x))
}
func (p *identityProblem) DOFCount() int { return len(p.x) }

func TestSolveConvergesInOneStepForIdentitySystem(tst *testing.T) {
	chk.PrintTitle("SolveConvergesInOneStepForIdentitySystem")
	p := &identityProblem{x: []float64{3, -2}}
	s := New(linsolver.Dense{}, linesearch.NewTrivial())
	out := s.Solve(p)
	if !out.Success {
		tst.Fatal("expected Newton to converge")
	}
	chk.IntAssert(out.IterationCount, 0)
	chk.Scalar(tst, "final merit", 1e-20, out.FinalMerit, 0)
	chk.Array(tst, "solved variables", 1e-12, p.x, []float64{0, 0})
}

func TestSolveFailsWhenLinearSolverFails(tst *testing.T) {
	chk.PrintTitle("SolveFailsWhenLinearSolverFails")
	p := &identityProblem{x: []float64{1}}
	s := New(failingSolver{}, linesearch.NewTrivial())
	out := s.Solve(p)
	if out.Success {
		tst.Fatal("expected Newton to report failure when the linear solver fails")
	}
	chk.IntAssert(out.IterationCount, 0)
}

type failingSolver struct{}

func (failingSolver) Solve(a *la.CSRMatrix, b []float64, x []float64) bool { return false }

func TestDefaultExitsExcludeMeritOverflow(tst *testing.T) {
	chk.PrintTitle("DefaultExitsExcludeMeritOverflow")
	s := New(linsolver.Dense{}, linesearch.NewTrivial())
	if s.ExitConditions&MeritOverflow != 0 {
		tst.Fatal("expected New's default ExitConditions to exclude MeritOverflow")
	}
	if s.ExitConditions&MeritGoalReached == 0 {
		tst.Fatal("expected New's default ExitConditions to include MeritGoalReached")
	}
}
