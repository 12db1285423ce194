package linesearch

import "math"

const goldenRatio = 1.6180339887498949

// GSSExitConditions are the OR-combinable exit flags for GoldenSection
// (§4.7).
type GSSExitConditions uint32

const (
	MeritGoalReached GSSExitConditions = 1 << iota
	IterationCount
	SolutionStagnation
	MeritStagnation
	GSSEverything = MeritGoalReached | IterationCount | SolutionStagnation | MeritStagnation
)

// GoldenSection minimises merit(x_prev + alpha*direction) over
// alpha in [Left,Right] via the standard golden-section search with two
// cached interior probes, the Go counterpart of GoldenSectionSearch.h.
type GoldenSection struct {
	ExitConditions    GSSExitConditions
	Left, Right       float64
	SolutionTolerance float64
	MeritTolerance    float64
	MeritGoal         float64
	IterationLimit    int
}

// NewGoldenSection builds a GoldenSection searcher with the C++ defaults:
// [0,1] bracket, 1e-8 tolerances/goal, 100 iterations, every exit enabled.
func NewGoldenSection() GoldenSection {
	return GoldenSection{
		ExitConditions:    GSSEverything,
		Left:              0,
		Right:             1,
		SolutionTolerance: 1e-8,
		MeritTolerance:    1e-8,
		MeritGoal:         1e-8,
		IterationLimit:    100,
	}
}

func (g GoldenSection) meritAt(problem Target, previousSolution, direction []float64, alpha float64) float64 {
	x := make([]float64, len(previousSolution))
	for i := range x {
		x[i] = previousSolution[i] + alpha*direction[i]
	}
	problem.SetVariables(x)
	return problem.GetMerit()
}

func (g GoldenSection) Solve(problem Target, direction []float64) Result {
	previousSolution := problem.GetVariables()

	a, b := g.Left, g.Right
	c := b - (b-a)/goldenRatio
	d := a + (b-a)/goldenRatio
	fc := g.meritAt(problem, previousSolution, direction, c)
	fd := g.meritAt(problem, previousSolution, direction, d)

	var fCurrent float64
	iteration := 0
	for {
		if fc < fd {
			b, d, fd = d, c, fc
			c = b - (b-a)/goldenRatio
			fc = g.meritAt(problem, previousSolution, direction, c)
			fCurrent = fc
		} else {
			a, c, fc = c, d, fd
			d = a + (b-a)/goldenRatio
			fd = g.meritAt(problem, previousSolution, direction, d)
			fCurrent = fd
		}

		if g.ExitConditions&MeritGoalReached != 0 && fCurrent < g.MeritGoal {
			break
		}
		if g.ExitConditions&SolutionStagnation != 0 && b-a < g.SolutionTolerance {
			break
		}
		if g.ExitConditions&MeritStagnation != 0 && math.Abs(fd-fc) < g.MeritTolerance {
			break
		}

		iteration++
		if g.ExitConditions&IterationCount != 0 && iteration > g.IterationLimit {
			break
		}
	}

	return Result{Success: true, FinalMerit: fCurrent, IterationCount: iteration}
}
