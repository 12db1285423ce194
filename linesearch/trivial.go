package linesearch

// Trivial applies x <- x + shiftFactor*direction unconditionally — the Go
// counterpart of TrivialLineSearcher.h.
type Trivial struct {
	ShiftFactor float64
}

// NewTrivial builds a Trivial searcher with shiftFactor 1, matching the
// C++ default constructor argument.
func NewTrivial() Trivial { return Trivial{ShiftFactor: 1} }

func (t Trivial) Solve(problem Target, direction []float64) Result {
	x := problem.GetVariables()
	for i, d := range direction {
		x[i] += t.ShiftFactor * d
	}
	problem.SetVariables(x)
	problem.SetVariablesUpdated()
	return Result{Success: true, FinalMerit: problem.GetMerit(), IterationCount: 0}
}
