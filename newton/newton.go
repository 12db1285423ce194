// Package newton implements the Modified Newton nonlinear solver (§4.6),
// the Go counterpart of Math/ModifiedNewton.h: an injected linear solver
// drives each Newton step, an injected line searcher applies it, and a
// configurable OR-combination of exit conditions governs termination.
package newton

import (
	"math"

	"github.com/cesdsol/cesdsol/la"
	"github.com/cesdsol/cesdsol/linesearch"
	"github.com/cesdsol/cesdsol/linsolver"
)

// ExitConditions are the OR-combinable flags of §4.6.
type ExitConditions uint32

const (
	MeritGoalReached ExitConditions = 1 << iota
	IterationCount
	MeritOverflow
	SolutionStagnation
	MeritStagnation
	MeritIncrease
	Everything   = MeritGoalReached | IterationCount | MeritOverflow | SolutionStagnation | MeritStagnation | MeritIncrease
	DefaultExits = MeritGoalReached | IterationCount | SolutionStagnation | MeritStagnation | MeritIncrease
)

// Target is the subset of the Problem runtime the Newton solver drives:
// Jacobian/residual access plus everything a line searcher needs.
type Target interface {
	linesearch.Target
	GetJacobian() *la.CSRMatrix
	GetEquations() []float64
	CalculateSolutionNorm() float64
	DOFCount() int
}

// Solver is the Modified Newton nonlinear solver.
type Solver struct {
	LinearSolver      linsolver.Solver
	LineSearcher      linesearch.Searcher
	ExitConditions    ExitConditions
	MeritGoal         float64
	IterationLimit    int
	MaxMerit          float64
	SolutionTolerance float64
	MeritTolerance    float64
	MeritIncreaseFactor float64
}

// New builds a Solver with the C++ defaults: every exit condition except
// MeritOverflow enabled, meritGoal 1e-8, iterationLimit 100, maxMerit 1e10,
// solution/merit tolerances 1e-10, meritIncreaseFactor 1.
func New(linSolver linsolver.Solver, lineSearcher linesearch.Searcher) *Solver {
	return &Solver{
		LinearSolver:        linSolver,
		LineSearcher:        lineSearcher,
		ExitConditions:      DefaultExits,
		MeritGoal:           1e-8,
		IterationLimit:      100,
		MaxMerit:            1e10,
		SolutionTolerance:   1e-10,
		MeritTolerance:      1e-10,
		MeritIncreaseFactor: 1,
	}
}

// OutputInfo reports the Newton solution's success, final merit, and
// iteration count (§7's structured OutputInfo).
type OutputInfo struct {
	Success       bool
	FinalMerit    float64
	IterationCount int
}

// Solve runs the Modified Newton iteration against problem until an exit
// condition fires.
func (s *Solver) Solve(problem Target) OutputInfo {
	dof := problem.DOFCount()
	tmp := make([]float64, dof)
	var oldMerit, oldSolutionNorm float64
	iterationCount := 0

	for {
		if !s.LinearSolver.Solve(problem.GetJacobian(), problem.GetEquations(), tmp) {
			return OutputInfo{Success: false, FinalMerit: oldMerit, IterationCount: iterationCount}
		}
		for i := range tmp {
			tmp[i] = -tmp[i]
		}

		result := s.LineSearcher.Solve(problem, tmp)
		if !result.Success {
			return OutputInfo{Success: false, FinalMerit: oldMerit, IterationCount: iterationCount}
		}

		merit := problem.GetMerit()
		solutionNorm := problem.CalculateSolutionNorm()

		if s.ExitConditions&MeritGoalReached != 0 && merit < s.MeritGoal {
			return OutputInfo{Success: true, FinalMerit: merit, IterationCount: iterationCount}
		}
		if s.ExitConditions&MeritOverflow != 0 && merit > s.MaxMerit {
			return OutputInfo{Success: false, FinalMerit: oldMerit, IterationCount: iterationCount}
		}
		if iterationCount > 0 {
			if s.ExitConditions&MeritIncrease != 0 && merit > s.MeritIncreaseFactor*oldMerit {
				return OutputInfo{Success: false, FinalMerit: oldMerit, IterationCount: iterationCount}
			}
			if s.ExitConditions&MeritStagnation != 0 && math.Abs(merit-oldMerit) < s.MeritTolerance {
				return OutputInfo{Success: false, FinalMerit: oldMerit, IterationCount: iterationCount}
			}
			if s.ExitConditions&SolutionStagnation != 0 && math.Abs(solutionNorm-oldSolutionNorm) < s.SolutionTolerance {
				return OutputInfo{Success: false, FinalMerit: oldMerit, IterationCount: iterationCount}
			}
		}
		oldMerit = merit
		oldSolutionNorm = solutionNorm

		iterationCount++
		if s.ExitConditions&IterationCount != 0 && iterationCount > s.IterationLimit {
			return OutputInfo{Success: false, FinalMerit: oldMerit, IterationCount: iterationCount}
		}
	}
}
